package build

import (
	"context"
	"fmt"

	batchv1 "k8s.io/api/batch/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/hashutil"
	"github.com/amphitheatre-app/amphitheatre/internal/kubeapply"
	"github.com/amphitheatre-app/amphitheatre/internal/resources"
	"github.com/amphitheatre-app/amphitheatre/internal/resources/containers"
)

// KanikoJobBuilder runs the Kaniko build strategy: a batch Job with a
// syncer init container (git-sync for a remote source, amp-syncer for a
// local one) and the Kaniko executor as the main container.
type KanikoJobBuilder struct {
	Deps  Deps
	Actor *amphitheatrev1.Actor
}

// Prepare has no prerequisites for the Kaniko path; it always reports ok.
func (b *KanikoJobBuilder) Prepare(ctx context.Context) (bool, error) { return true, nil }

func (b *KanikoJobBuilder) jobName() string { return b.Actor.Spec.Name + "-build" }

// Build upserts the build Job, skipping the write when its spec hash
// already matches what's on the cluster.
func (b *KanikoJobBuilder) Build(ctx context.Context) error {
	syncer := containers.SyncerContainer("syncer", b.Actor.Spec.Source, true)
	kaniko := containers.KanikoContainer(b.Actor.Spec.Build, b.Actor.Spec.Image, "")

	job, err := resources.BuildJob(b.Actor, kaniko, &syncer, b.Deps.Scheme)
	if err != nil {
		return fmt.Errorf("build kaniko job: %w", err)
	}

	hash, err := hashutil.Of(job.Spec)
	if err != nil {
		return fmt.Errorf("hash build job spec: %w", err)
	}

	existing := &batchv1.Job{}
	err = b.Deps.Client.Get(ctx, types.NamespacedName{Namespace: job.Namespace, Name: job.Name}, existing)
	switch {
	case errors.IsNotFound(err):
		hashutil.Stamp(job, hash)
		return kubeapply.Apply(ctx, b.Deps.Client, job)
	case err != nil:
		return fmt.Errorf("get build job: %w", err)
	}

	if !hashutil.NeedsUpdate(existing, hash) {
		return nil
	}
	hashutil.Stamp(job, hash)
	return kubeapply.Apply(ctx, b.Deps.Client, job)
}

// Completed implements the Job's .status.succeeded >= 1 rule.
func (b *KanikoJobBuilder) Completed(ctx context.Context) (bool, error) {
	job := &batchv1.Job{}
	err := b.Deps.Client.Get(ctx, types.NamespacedName{Namespace: b.Actor.Namespace, Name: b.jobName()}, job)
	if errors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get build job: %w", err)
	}
	return resources.JobCompleted(job), nil
}
