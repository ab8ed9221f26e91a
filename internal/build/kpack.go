package build

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/hashutil"
	"github.com/amphitheatre-app/amphitheatre/internal/kubeapply"
	"github.com/amphitheatre-app/amphitheatre/internal/resources"
)

// KpackBuilder runs the Buildpacks build strategy: it delegates the
// actual build to kpack's own Image CR, which kpack's controller turns
// into a managed Job running the Cloud Native Buildpacks lifecycle. This
// repository only ensures the cluster-scoped ClusterStore/ClusterBuilder
// chain is Ready, upserts the Image CR, and watches its Ready condition.
type KpackBuilder struct {
	Deps  Deps
	Actor *amphitheatrev1.Actor
}

func (b *KpackBuilder) imageName() string { return b.Actor.Spec.Name + "-image" }

// Prepare implements the kpack prepare order: ClusterStore ->
// ClusterBuildpacks (each) -> ClusterBuilder, then the per-Actor
// ServiceAccount kpack's Image CR runs its build as.
func (b *KpackBuilder) Prepare(ctx context.Context) (bool, error) {
	ready, err := resources.EnsureClusterStoreReady(ctx, b.Deps.Client, resources.DefaultClusterStoreName)
	if err != nil || !ready {
		return ready, err
	}

	var buildpackNames []string
	if b.Actor.Spec.Build != nil && b.Actor.Spec.Build.Buildpacks != nil {
		buildpackNames = b.Actor.Spec.Build.Buildpacks.Buildpacks
	}
	ready, err = resources.EnsureClusterBuildpacksReady(ctx, b.Deps.Client, buildpackNames)
	if err != nil || !ready {
		return ready, err
	}

	ready, err = resources.EnsureClusterBuilderReady(ctx, b.Deps.Client, resources.DefaultClusterBuilderName)
	if err != nil || !ready {
		return ready, err
	}

	if err := resources.EnsureKpackServiceAccount(ctx, b.Deps.Client, b.Actor); err != nil {
		return false, fmt.Errorf("ensure kpack service account: %w", err)
	}
	return true, nil
}

// Build upserts the kpack Image CR, skipping the write when its spec hash
// already matches what's on the cluster.
func (b *KpackBuilder) Build(ctx context.Context) error {
	img, err := resources.BuildKpackImage(b.Actor, resources.KpackServiceAccountName(b.Actor.Spec.Name), b.Deps.Scheme)
	if err != nil {
		return fmt.Errorf("build kpack image: %w", err)
	}

	hash, err := hashutil.Of(img.Object["spec"])
	if err != nil {
		return fmt.Errorf("hash kpack image spec: %w", err)
	}

	existing := &unstructured.Unstructured{}
	existing.SetGroupVersionKind(img.GroupVersionKind())
	err = b.Deps.Client.Get(ctx, types.NamespacedName{Namespace: img.GetNamespace(), Name: img.GetName()}, existing)
	switch {
	case errors.IsNotFound(err):
		hashutil.Stamp(img, hash)
		return kubeapply.Apply(ctx, b.Deps.Client, img)
	case err != nil:
		return fmt.Errorf("get kpack image: %w", err)
	}

	if !hashutil.NeedsUpdate(existing, hash) {
		return nil
	}
	hashutil.Stamp(img, hash)
	return kubeapply.Apply(ctx, b.Deps.Client, img)
}

// Completed implements the kpack completion rule: the Image CR carries a
// condition {type=Ready, status=True}.
func (b *KpackBuilder) Completed(ctx context.Context) (bool, error) {
	img := &unstructured.Unstructured{}
	img.SetGroupVersionKind(resources.KpackImageGVK)
	err := b.Deps.Client.Get(ctx, types.NamespacedName{Namespace: b.Actor.Namespace, Name: b.imageName()}, img)
	if errors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get kpack image: %w", err)
	}
	return resources.ImageReady(img), nil
}
