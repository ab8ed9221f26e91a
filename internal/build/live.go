package build

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/hashutil"
	"github.com/amphitheatre-app/amphitheatre/internal/kubeapply"
	"github.com/amphitheatre-app/amphitheatre/internal/resources"
	"github.com/amphitheatre-app/amphitheatre/internal/resources/containers"
)

// LiveBuilder runs the long-running-pod build strategy: a PVC-backed
// workspace shared by a continuously-syncing syncer and a builder
// container (Kaniko or the Buildpacks lifecycle, chosen by Method) that
// keeps rebuilding as the workspace changes.
type LiveBuilder struct {
	Deps   Deps
	Actor  *amphitheatrev1.Actor
	Method amphitheatrev1.BuildMethod
}

// Prepare ensures the workspace PVC exists before the syncer Pod is built
// on top of it.
func (b *LiveBuilder) Prepare(ctx context.Context) (bool, error) {
	pvc, err := resources.BuildPVC(b.Actor, b.Deps.Scheme)
	if err != nil {
		return false, fmt.Errorf("build workspace pvc: %w", err)
	}
	existing := &corev1.PersistentVolumeClaim{}
	err = b.Deps.Client.Get(ctx, types.NamespacedName{Namespace: pvc.Namespace, Name: pvc.Name}, existing)
	if errors.IsNotFound(err) {
		if err := kubeapply.Apply(ctx, b.Deps.Client, pvc); err != nil {
			return false, fmt.Errorf("apply workspace pvc: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get workspace pvc: %w", err)
	}
	return true, nil
}

func (b *LiveBuilder) buildContainer() corev1.Container {
	return containers.BuilderContainer(b.Method, b.Actor.Spec.Build, b.Actor.Spec.Image)
}

// Build upserts the syncer Pod, skipping the write when its spec hash
// already matches what's on the cluster.
func (b *LiveBuilder) Build(ctx context.Context) error {
	pod, err := resources.BuildSyncerPod(b.Actor, b.buildContainer(), b.Deps.Scheme)
	if err != nil {
		return fmt.Errorf("build syncer pod: %w", err)
	}

	hash, err := hashutil.Of(pod.Spec)
	if err != nil {
		return fmt.Errorf("hash syncer pod spec: %w", err)
	}

	existing := &corev1.Pod{}
	err = b.Deps.Client.Get(ctx, types.NamespacedName{Namespace: pod.Namespace, Name: pod.Name}, existing)
	switch {
	case errors.IsNotFound(err):
		hashutil.Stamp(pod, hash)
		return kubeapply.Apply(ctx, b.Deps.Client, pod)
	case err != nil:
		return fmt.Errorf("get syncer pod: %w", err)
	}

	if !hashutil.NeedsUpdate(existing, hash) {
		return nil
	}
	// Pod specs are largely immutable once created; a genuine change (e.g. a
	// new build recipe) requires deleting the Pod and recreating it.
	if err := b.Deps.Client.Delete(ctx, existing); err != nil && !errors.IsNotFound(err) {
		return fmt.Errorf("delete stale syncer pod: %w", err)
	}
	hashutil.Stamp(pod, hash)
	return kubeapply.Apply(ctx, b.Deps.Client, pod)
}

// Completed reports whether the syncer Pod has reached the Running phase,
// the live-mode analogue of a batch Job's completion. It does not check
// whether the builder container has pushed an image.
func (b *LiveBuilder) Completed(ctx context.Context) (bool, error) {
	pod := &corev1.Pod{}
	err := b.Deps.Client.Get(ctx, types.NamespacedName{Namespace: b.Actor.Namespace, Name: resources.SyncerPodName(b.Actor.Spec.Name)}, pod)
	if errors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get syncer pod: %w", err)
	}
	return resources.SyncerPodReady(pod), nil
}
