package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/controller-runtime/pkg/client"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/scm"
)

// NewResolver wires a Resolver with a git-backed SourcePatcher over sc.
func NewResolver(sc scm.Client, hub client.Client) *Resolver {
	return &Resolver{
		SCM:    sc,
		Hub:    hub,
		Recipe: &GitSourcePatcher{SCM: sc},
	}
}

// ResolvePass performs exactly one scan/fetch pass over characters, per
// spec.md §4.2's Resolving algorithm: build `present` from the names
// already in characters, find every partner referenced by some character
// whose name isn't in `present` yet, and fetch each such partner's
// manifest once, concurrently. It does not loop to a fixed point — a
// partner chain longer than one ring is picked up by the caller's next
// pass (the next reconcile, once the characters fetched here are appended
// and observed), not by an internal loop.
func (r *Resolver) ResolvePass(ctx context.Context, characters []amphitheatrev1.CharacterSpec) ([]amphitheatrev1.CharacterSpec, error) {
	present := make(map[string]bool, len(characters))
	for _, c := range characters {
		present[c.Meta.Name] = true
	}

	pending := pendingPartners(characters, present)
	if len(pending) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	fetched := make([]amphitheatrev1.CharacterSpec, len(pending))
	for i, p := range pending {
		i, p := i, p
		g.Go(func() error {
			spec, err := r.ResolvePartner(gctx, p.ref)
			if err != nil {
				return fmt.Errorf("resolve partner %s: %w", p.name, err)
			}
			fetched[i] = spec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fetched, nil
}

type pendingPartner struct {
	name string
	ref  amphitheatrev1.PartnerReference
}

// pendingPartners collects every partner referenced by characters whose
// name isn't already in present, scanning characters in order and
// deduping by name so a partner declared by more than one character is
// only fetched once per pass.
func pendingPartners(characters []amphitheatrev1.CharacterSpec, present map[string]bool) []pendingPartner {
	var pending []pendingPartner
	seen := map[string]bool{}
	for _, c := range characters {
		for name, ref := range c.Partners {
			if present[name] || seen[name] {
				continue
			}
			seen[name] = true
			pending = append(pending, pendingPartner{name: name, ref: ref})
		}
	}
	return pending
}
