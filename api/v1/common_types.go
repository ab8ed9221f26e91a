package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ConditionAccessor is implemented by every kind in this group so that
// internal/condition can operate on Playbook, Actor, and Character uniformly.
type ConditionAccessor interface {
	GetConditions() []metav1.Condition
	SetConditions([]metav1.Condition)
	GetGeneration() int64
}

// SourceReference pins a character's source to a git repository, optionally
// at a branch, tag, or resolved revision, and an optional sub-path.
type SourceReference struct {
	Repo string `json:"repo"`

	// +optional
	Branch string `json:"branch,omitempty"`
	// +optional
	Tag string `json:"tag,omitempty"`
	// +optional
	Rev string `json:"rev,omitempty"`
	// +optional
	Path string `json:"path,omitempty"`
}

// PartnerReference is a declared dependency from one character on another.
type PartnerReference struct {
	Repo string `json:"repo"`

	// +optional
	Branch string `json:"branch,omitempty"`
	// +optional
	Tag string `json:"tag,omitempty"`
	// +optional
	Rev string `json:"rev,omitempty"`
	// +optional
	Path string `json:"path,omitempty"`
}

// BuildMethod selects which builder strategy a BuildRecipe requires.
type BuildMethod string

const (
	BuildMethodDockerfile BuildMethod = "Dockerfile"
	BuildMethodBuildpacks BuildMethod = "Buildpacks"
)

// DockerfileRecipe names the Dockerfile to build with Kaniko.
type DockerfileRecipe struct {
	// +kubebuilder:default="Dockerfile"
	Dockerfile string `json:"dockerfile,omitempty"`
}

// BuildpacksRecipe selects a Cloud Native Buildpacks builder image and an
// explicit ordered list of buildpack ids.
type BuildpacksRecipe struct {
	Builder string `json:"builder"`

	// +optional
	Buildpacks []string `json:"buildpacks,omitempty"`
}

// BuildRecipe describes how to turn a source tree into an image. When both
// Dockerfile and Buildpacks are nil the method defaults to Buildpacks.
type BuildRecipe struct {
	// +optional
	Dockerfile *DockerfileRecipe `json:"dockerfile,omitempty"`
	// +optional
	Buildpacks *BuildpacksRecipe `json:"buildpacks,omitempty"`

	// +optional
	Env []corev1.EnvVar `json:"env,omitempty"`
	// +optional
	Args []string `json:"args,omitempty"`
	// +optional
	Context string `json:"context,omitempty"`
}

// Method returns the effective build method, defaulting to Buildpacks.
func (b *BuildRecipe) Method() BuildMethod {
	if b != nil && b.Dockerfile != nil {
		return BuildMethodDockerfile
	}
	return BuildMethodBuildpacks
}

// DeployRecipe describes the runtime shape of a character's workload.
type DeployRecipe struct {
	// +optional
	Env []corev1.EnvVar `json:"env,omitempty"`
	// +optional
	ContainerPorts []corev1.ContainerPort `json:"containerPorts,omitempty"`
	// +optional
	ServicePorts []corev1.ServicePort `json:"servicePorts,omitempty"`
}

// CharacterMeta carries the identity fields shared between inline manifests
// and Character custom resources.
type CharacterMeta struct {
	Name string `json:"name"`
}
