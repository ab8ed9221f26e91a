package resolver

import (
	"context"
	"fmt"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/scm"
)

// SourcePatcher resolves a SourceReference's Rev: tag wins over branch,
// branch wins over the repository's default branch, and whichever one is
// chosen is resolved to a commit SHA through the SCM client.
type SourcePatcher interface {
	PatchSource(ctx context.Context, ref amphitheatrev1.SourceReference) (amphitheatrev1.SourceReference, error)
}

// GitSourcePatcher implements SourcePatcher against a real scm.Client.
type GitSourcePatcher struct {
	SCM scm.Client
}

func (p *GitSourcePatcher) PatchSource(ctx context.Context, ref amphitheatrev1.SourceReference) (amphitheatrev1.SourceReference, error) {
	if ref.Rev != "" {
		return ref, nil
	}

	reference := ref.Tag
	if reference == "" {
		reference = ref.Branch
	}
	if reference == "" {
		branch, err := p.SCM.DefaultBranch(ctx, ref.Repo)
		if err != nil {
			return ref, fmt.Errorf("resolve default branch for %s: %w", ref.Repo, err)
		}
		ref.Branch = branch
		reference = branch
	}

	sha, err := p.SCM.FindCommit(ctx, ref.Repo, reference)
	if err != nil {
		return ref, fmt.Errorf("find commit %s@%s: %w", ref.Repo, reference, err)
	}
	ref.Rev = sha
	return ref, nil
}
