// Package manifest decodes and encodes the TOML character manifest
// (`amp.toml`) using github.com/pelletier/go-toml/v2.
package manifest

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	corev1 "k8s.io/api/core/v1"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// Filename is the conventional manifest file name resolved repositories are
// expected to carry at their root (or at PrefaceSpec/SourceReference.Path).
const Filename = "amp.toml"

type doc struct {
	Meta struct {
		Name       string `toml:"name"`
		Repository string `toml:"repository"`
	} `toml:"meta"`

	Build *struct {
		Dockerfile *struct {
			Dockerfile string `toml:"dockerfile"`
		} `toml:"dockerfile"`
		Buildpacks *struct {
			Builder    string   `toml:"builder"`
			Buildpacks []string `toml:"buildpacks"`
		} `toml:"buildpacks"`
		Env     map[string]string `toml:"env"`
		Args    []string          `toml:"args"`
		Context string            `toml:"context"`
	} `toml:"build"`

	Deploy *struct {
		Env            map[string]string `toml:"env"`
		ContainerPorts []int32           `toml:"container_ports"`
		ServicePorts   []int32           `toml:"service_ports"`
	} `toml:"deploy"`

	Partners map[string]struct {
		Repo   string `toml:"repo"`
		Branch string `toml:"branch"`
		Tag    string `toml:"tag"`
		Rev    string `toml:"rev"`
		Path   string `toml:"path"`
	} `toml:"partners"`
}

// Load decodes raw TOML bytes into a CharacterSpec. Unknown top-level keys
// are preserved for forward compatibility by decoding a second time into a
// generic map and returning whatever doesn't correspond to a recognized
// table.
func Load(raw []byte) (amphitheatrev1.CharacterSpec, map[string]any, error) {
	var d doc
	if err := toml.Unmarshal(raw, &d); err != nil {
		return amphitheatrev1.CharacterSpec{}, nil, fmt.Errorf("decode amp.toml: %w", err)
	}

	var all map[string]any
	if err := toml.Unmarshal(raw, &all); err != nil {
		return amphitheatrev1.CharacterSpec{}, nil, fmt.Errorf("decode amp.toml as map: %w", err)
	}
	for _, known := range []string{"meta", "build", "deploy", "partners"} {
		delete(all, known)
	}

	spec := amphitheatrev1.CharacterSpec{
		Meta: amphitheatrev1.CharacterMeta{Name: d.Meta.Name},
	}
	if d.Meta.Repository != "" {
		spec.Repository = &amphitheatrev1.SourceReference{Repo: d.Meta.Repository}
	}

	if d.Build != nil {
		spec.Build = &amphitheatrev1.BuildRecipe{
			Env:     toEnvVars(d.Build.Env),
			Args:    d.Build.Args,
			Context: d.Build.Context,
		}
		if d.Build.Dockerfile != nil {
			spec.Build.Dockerfile = &amphitheatrev1.DockerfileRecipe{Dockerfile: d.Build.Dockerfile.Dockerfile}
		}
		if d.Build.Buildpacks != nil {
			spec.Build.Buildpacks = &amphitheatrev1.BuildpacksRecipe{
				Builder:    d.Build.Buildpacks.Builder,
				Buildpacks: d.Build.Buildpacks.Buildpacks,
			}
		}
	}

	if d.Deploy != nil {
		spec.Deploy = &amphitheatrev1.DeployRecipe{Env: toEnvVars(d.Deploy.Env)}
		for _, p := range d.Deploy.ContainerPorts {
			spec.Deploy.ContainerPorts = append(spec.Deploy.ContainerPorts, corev1.ContainerPort{ContainerPort: p})
		}
		for _, p := range d.Deploy.ServicePorts {
			spec.Deploy.ServicePorts = append(spec.Deploy.ServicePorts, corev1.ServicePort{Port: p})
		}
	}

	if len(d.Partners) > 0 {
		spec.Partners = make(map[string]amphitheatrev1.PartnerReference, len(d.Partners))
		for name, p := range d.Partners {
			spec.Partners[name] = amphitheatrev1.PartnerReference{
				Repo: p.Repo, Branch: p.Branch, Tag: p.Tag, Rev: p.Rev, Path: p.Path,
			}
		}
	}

	return spec, all, nil
}

// Marshal encodes the meta table of a CharacterSpec (name and repository)
// plus any unknown preserved keys as TOML. The build, deploy, partners,
// live and once fields are not written. Nothing in this repository calls
// it; the controllers only use Load.
func Marshal(spec amphitheatrev1.CharacterSpec, unknown map[string]any) ([]byte, error) {
	d := doc{}
	d.Meta.Name = spec.Meta.Name
	if spec.Repository != nil {
		d.Meta.Repository = spec.Repository.Repo
	}
	out := map[string]any{"meta": d.Meta}
	for k, v := range unknown {
		out[k] = v
	}
	return toml.Marshal(out)
}

func toEnvVars(m map[string]string) []corev1.EnvVar {
	if len(m) == 0 {
		return nil
	}
	vars := make([]corev1.EnvVar, 0, len(m))
	for k, v := range m {
		vars = append(vars, corev1.EnvVar{Name: k, Value: v})
	}
	return vars
}
