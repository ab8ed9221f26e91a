//go:build !ignore_autogenerated

// Code generated by hand in the style of controller-gen's deepcopy-gen; keep
// in sync with the type definitions in this package.

package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	runtime "k8s.io/apimachinery/pkg/runtime"
)

func deepCopyConditions(in []metav1.Condition) []metav1.Condition {
	if in == nil {
		return nil
	}
	out := make([]metav1.Condition, len(in))
	for i := range in {
		in[i].DeepCopyInto(&out[i])
	}
	return out
}

func (in *SourceReference) DeepCopy() *SourceReference {
	if in == nil {
		return nil
	}
	out := new(SourceReference)
	*out = *in
	return out
}

func (in *PartnerReference) DeepCopy() *PartnerReference {
	if in == nil {
		return nil
	}
	out := new(PartnerReference)
	*out = *in
	return out
}

func (in *DockerfileRecipe) DeepCopy() *DockerfileRecipe {
	if in == nil {
		return nil
	}
	out := new(DockerfileRecipe)
	*out = *in
	return out
}

func (in *BuildpacksRecipe) DeepCopy() *BuildpacksRecipe {
	if in == nil {
		return nil
	}
	out := new(BuildpacksRecipe)
	*out = *in
	if in.Buildpacks != nil {
		out.Buildpacks = make([]string, len(in.Buildpacks))
		copy(out.Buildpacks, in.Buildpacks)
	}
	return out
}

func (in *BuildRecipe) DeepCopyInto(out *BuildRecipe) {
	*out = *in
	out.Dockerfile = in.Dockerfile.DeepCopy()
	out.Buildpacks = in.Buildpacks.DeepCopy()
	if in.Env != nil {
		out.Env = make([]corev1.EnvVar, len(in.Env))
		for i := range in.Env {
			in.Env[i].DeepCopyInto(&out.Env[i])
		}
	}
	if in.Args != nil {
		out.Args = make([]string, len(in.Args))
		copy(out.Args, in.Args)
	}
}

func (in *BuildRecipe) DeepCopy() *BuildRecipe {
	if in == nil {
		return nil
	}
	out := new(BuildRecipe)
	in.DeepCopyInto(out)
	return out
}

func (in *DeployRecipe) DeepCopyInto(out *DeployRecipe) {
	*out = *in
	if in.Env != nil {
		out.Env = make([]corev1.EnvVar, len(in.Env))
		for i := range in.Env {
			in.Env[i].DeepCopyInto(&out.Env[i])
		}
	}
	if in.ContainerPorts != nil {
		out.ContainerPorts = make([]corev1.ContainerPort, len(in.ContainerPorts))
		copy(out.ContainerPorts, in.ContainerPorts)
	}
	if in.ServicePorts != nil {
		out.ServicePorts = make([]corev1.ServicePort, len(in.ServicePorts))
		for i := range in.ServicePorts {
			in.ServicePorts[i].DeepCopyInto(&out.ServicePorts[i])
		}
	}
}

func (in *DeployRecipe) DeepCopy() *DeployRecipe {
	if in == nil {
		return nil
	}
	out := new(DeployRecipe)
	in.DeepCopyInto(out)
	return out
}

func (in *CharacterMeta) DeepCopy() *CharacterMeta {
	if in == nil {
		return nil
	}
	out := new(CharacterMeta)
	*out = *in
	return out
}

func (in *CharacterSpec) DeepCopyInto(out *CharacterSpec) {
	*out = *in
	out.Meta = in.Meta
	out.Repository = in.Repository.DeepCopy()
	out.Build = in.Build.DeepCopy()
	out.Deploy = in.Deploy.DeepCopy()
	if in.Partners != nil {
		out.Partners = make(map[string]PartnerReference, len(in.Partners))
		for k, v := range in.Partners {
			out.Partners[k] = v
		}
	}
}

func (in *CharacterSpec) DeepCopy() *CharacterSpec {
	if in == nil {
		return nil
	}
	out := new(CharacterSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *PrefaceSpec) DeepCopyInto(out *PrefaceSpec) {
	*out = *in
	out.Git = in.Git.DeepCopy()
	if in.Inline != nil {
		out.Inline = in.Inline.DeepCopy()
	}
}

func (in *PrefaceSpec) DeepCopy() *PrefaceSpec {
	if in == nil {
		return nil
	}
	out := new(PrefaceSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ActorSpec) DeepCopyInto(out *ActorSpec) {
	*out = *in
	out.Source = in.Source.DeepCopy()
	out.Build = in.Build.DeepCopy()
	out.Deploy = in.Deploy.DeepCopy()
}

func (in *ActorSpec) DeepCopy() *ActorSpec {
	if in == nil {
		return nil
	}
	out := new(ActorSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ActorStatus) DeepCopyInto(out *ActorStatus) {
	*out = *in
	out.Conditions = deepCopyConditions(in.Conditions)
}

func (in *Actor) DeepCopyInto(out *Actor) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Actor) DeepCopy() *Actor {
	if in == nil {
		return nil
	}
	out := new(Actor)
	in.DeepCopyInto(out)
	return out
}

func (in *Actor) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *ActorList) DeepCopyInto(out *ActorList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Actor, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *ActorList) DeepCopy() *ActorList {
	if in == nil {
		return nil
	}
	out := new(ActorList)
	in.DeepCopyInto(out)
	return out
}

func (in *ActorList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *PlaybookSpec) DeepCopyInto(out *PlaybookSpec) {
	*out = *in
	in.Preface.DeepCopyInto(&out.Preface)
	if in.Characters != nil {
		out.Characters = make([]CharacterSpec, len(in.Characters))
		for i := range in.Characters {
			in.Characters[i].DeepCopyInto(&out.Characters[i])
		}
	}
	if in.TTLSeconds != nil {
		v := *in.TTLSeconds
		out.TTLSeconds = &v
	}
}

func (in *PlaybookStatus) DeepCopyInto(out *PlaybookStatus) {
	*out = *in
	out.Conditions = deepCopyConditions(in.Conditions)
}

func (in *Playbook) DeepCopyInto(out *Playbook) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Playbook) DeepCopy() *Playbook {
	if in == nil {
		return nil
	}
	out := new(Playbook)
	in.DeepCopyInto(out)
	return out
}

func (in *Playbook) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *PlaybookList) DeepCopyInto(out *PlaybookList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Playbook, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *PlaybookList) DeepCopy() *PlaybookList {
	if in == nil {
		return nil
	}
	out := new(PlaybookList)
	in.DeepCopyInto(out)
	return out
}

func (in *PlaybookList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *CharacterStatus) DeepCopyInto(out *CharacterStatus) {
	*out = *in
	out.Conditions = deepCopyConditions(in.Conditions)
}

func (in *Character) DeepCopyInto(out *Character) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Character) DeepCopy() *Character {
	if in == nil {
		return nil
	}
	out := new(Character)
	in.DeepCopyInto(out)
	return out
}

func (in *Character) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *CharacterList) DeepCopyInto(out *CharacterList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Character, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *CharacterList) DeepCopy() *CharacterList {
	if in == nil {
		return nil
	}
	out := new(CharacterList)
	in.DeepCopyInto(out)
	return out
}

func (in *CharacterList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
