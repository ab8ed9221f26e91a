package resolver

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/manifest"
	"github.com/amphitheatre-app/amphitheatre/internal/scm"
)

// CatalogRepository is the hard-coded catalog repository URL cloned to
// read characters/<name>/<version>/amp.toml.
const CatalogRepository = "https://github.com/amphitheatre-app/catalog"

// DefaultCatalogVersion is used when a catalog preface doesn't pin a
// version.
const DefaultCatalogVersion = "latest"

// Resolver turns a PrefaceSpec or PartnerReference into a CharacterSpec.
type Resolver struct {
	SCM    scm.Client
	Hub    client.Client
	Recipe SourcePatcher
}

// ResolvePreface matches the preface against exactly one supported source.
func (r *Resolver) ResolvePreface(ctx context.Context, p amphitheatrev1.PrefaceSpec) (amphitheatrev1.CharacterSpec, error) {
	switch {
	case p.Inline != nil:
		return *p.Inline, nil

	case p.Git != nil:
		return r.resolveGit(ctx, *p.Git)

	case p.Registry == amphitheatrev1.PrefaceRegistryCatalog:
		return r.resolveCatalog(ctx, p.Name, p.Version)

	case p.Registry == amphitheatrev1.PrefaceRegistryHub:
		return r.resolveHub(ctx, p.Name)

	case p.Registry != "":
		return amphitheatrev1.CharacterSpec{}, UnknownRegistryError{Registry: string(p.Registry)}

	default:
		return amphitheatrev1.CharacterSpec{}, UnknownPrefaceError{}
	}
}

// ResolvePartner loads the character manifest a PartnerReference points at.
// Partners are always resolved via an explicit git reference: a repository
// URL plus an optional branch, tag, or path.
func (r *Resolver) ResolvePartner(ctx context.Context, p amphitheatrev1.PartnerReference) (amphitheatrev1.CharacterSpec, error) {
	return r.resolveGit(ctx, amphitheatrev1.SourceReference{
		Repo: p.Repo, Branch: p.Branch, Tag: p.Tag, Rev: p.Rev, Path: p.Path,
	})
}

func (r *Resolver) resolveGit(ctx context.Context, ref amphitheatrev1.SourceReference) (amphitheatrev1.CharacterSpec, error) {
	patched, err := r.Recipe.PatchSource(ctx, ref)
	if err != nil {
		return amphitheatrev1.CharacterSpec{}, fmt.Errorf("patch source for %s: %w", ref.Repo, err)
	}

	path := patched.Path
	if path == "" {
		path = manifest.Filename
	}
	raw, err := r.SCM.FetchFile(ctx, patched.Repo, patched.Rev, path)
	if err != nil {
		return amphitheatrev1.CharacterSpec{}, fmt.Errorf("fetch manifest from %s@%s: %w", patched.Repo, patched.Rev, err)
	}

	spec, _, err := manifest.Load(raw)
	if err != nil {
		return amphitheatrev1.CharacterSpec{}, err
	}
	if spec.Repository == nil {
		spec.Repository = &patched
	}
	return spec, nil
}

func (r *Resolver) resolveCatalog(ctx context.Context, name, version string) (amphitheatrev1.CharacterSpec, error) {
	if version == "" {
		version = DefaultCatalogVersion
	}
	path := fmt.Sprintf("characters/%s/%s/%s", name, version, manifest.Filename)

	branch, err := r.SCM.DefaultBranch(ctx, CatalogRepository)
	if err != nil {
		return amphitheatrev1.CharacterSpec{}, fmt.Errorf("resolve catalog default branch: %w", err)
	}
	raw, err := r.SCM.FetchFile(ctx, CatalogRepository, branch, path)
	if err != nil {
		return amphitheatrev1.CharacterSpec{}, fmt.Errorf("fetch catalog manifest %s: %w", path, err)
	}
	spec, _, err := manifest.Load(raw)
	return spec, err
}

func (r *Resolver) resolveHub(ctx context.Context, name string) (amphitheatrev1.CharacterSpec, error) {
	character := &amphitheatrev1.Character{}
	if err := r.Hub.Get(ctx, types.NamespacedName{Name: name}, character); err != nil {
		return amphitheatrev1.CharacterSpec{}, fmt.Errorf("read Character/%s from hub: %w", name, err)
	}
	return character.Spec, nil
}
