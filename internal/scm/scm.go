// Package scm implements the minimal source-control operations the
// resolver needs: resolving a branch/tag name to a commit SHA, and reading
// a repository's default branch or a single file's contents. There is
// deliberately no clone, push, or pull-request management here — those stay
// outside the controllers entirely.
package scm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v61/github"
)

// Client is the seam the resolver depends on, so tests can substitute a
// fake that returns a fixed commit SHA without reaching the network.
type Client interface {
	// FindCommit resolves reference (a branch or tag name) on repo to its
	// commit SHA.
	FindCommit(ctx context.Context, repo, reference string) (string, error)
	// DefaultBranch returns repo's default branch name.
	DefaultBranch(ctx context.Context, repo string) (string, error)
	// FetchFile returns the raw contents of path at ref in repo.
	FetchFile(ctx context.Context, repo, ref, path string) ([]byte, error)
}

// GitHubClient implements Client against the GitHub REST API via
// google/go-github.
type GitHubClient struct {
	gh *github.Client
}

// NewGitHubClient builds a client. token may be empty for public repos.
func NewGitHubClient(token string) *GitHubClient {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &GitHubClient{gh: gh}
}

func splitOwnerRepo(repo string) (owner, name string, err error) {
	parts := strings.SplitN(RepoPath(repo), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot determine owner/repo from %q", repo)
	}
	return parts[0], parts[1], nil
}

func (c *GitHubClient) FindCommit(ctx context.Context, repo, reference string) (string, error) {
	owner, name, err := splitOwnerRepo(repo)
	if err != nil {
		return "", err
	}
	commit, _, err := c.gh.Repositories.GetCommit(ctx, owner, name, reference, nil)
	if err != nil {
		return "", fmt.Errorf("find commit %s@%s: %w", repo, reference, err)
	}
	return commit.GetSHA(), nil
}

func (c *GitHubClient) DefaultBranch(ctx context.Context, repo string) (string, error) {
	owner, name, err := splitOwnerRepo(repo)
	if err != nil {
		return "", err
	}
	r, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", fmt.Errorf("get repository %s: %w", repo, err)
	}
	return r.GetDefaultBranch(), nil
}

func (c *GitHubClient) FetchFile(ctx context.Context, repo, ref, path string) ([]byte, error) {
	owner, name, err := splitOwnerRepo(repo)
	if err != nil {
		return nil, err
	}
	content, _, _, err := c.gh.Repositories.GetContents(ctx, owner, name, path, &github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, fmt.Errorf("fetch %s@%s:%s: %w", repo, ref, path, err)
	}
	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s@%s:%s: %w", repo, ref, path, err)
	}
	return []byte(decoded), nil
}

// RepoPath normalizes a repository URL into an "owner/repo" path: strip
// scheme/host, drop leading '/', strip trailing '.git'.
func RepoPath(repo string) string {
	path := repo
	if idx := strings.Index(path, "://"); idx != -1 {
		path = path[idx+3:]
	}
	if idx := strings.Index(path, "/"); idx != -1 {
		path = path[idx+1:]
	} else {
		// No '/': this was host-only or already a bare path; leave as-is.
		return strings.TrimPrefix(strings.TrimSuffix(path, ".git"), "/")
	}
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, ".git")
	return path
}
