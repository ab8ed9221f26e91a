package resources

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// kpack's CRDs (pivotal/kpack, group build.pivotal.io) have no vendored Go
// client in this module's dependency set; they're addressed as
// unstructured.Unstructured, the same way a cluster addresses any CRD it
// doesn't carry a typed client for.
var (
	// KpackImageGVK identifies kpack's Image custom resource, exported so
	// callers outside this package can Get/watch it without redeclaring the
	// GroupVersionKind.
	KpackImageGVK            = schema.GroupVersionKind{Group: "kpack.io", Version: "v1alpha2", Kind: "Image"}
	kpackClusterStoreGVK     = schema.GroupVersionKind{Group: "kpack.io", Version: "v1alpha2", Kind: "ClusterStore"}
	kpackClusterBuildpackGVK = schema.GroupVersionKind{Group: "kpack.io", Version: "v1alpha2", Kind: "ClusterBuildpack"}
	kpackClusterBuilderGVK   = schema.GroupVersionKind{Group: "kpack.io", Version: "v1alpha2", Kind: "ClusterBuilder"}
)

// DefaultClusterStoreName, DefaultClusterBuilderName name the cluster-scoped
// kpack prerequisites the Building state's Prepare step ensures exist and
// are Ready.
const (
	DefaultClusterStoreName   = "amp-store"
	DefaultClusterBuilderName = "amp-builder"
)

// BuildKpackImage returns the kpack Image CR that drives the non-live
// Buildpacks builder strategy. serviceAccountName names the per-Actor
// ServiceAccount carrying the registry pull secret, mirroring the Kaniko
// path's docker-config Secret mount with kpack's own credential convention.
func BuildKpackImage(actor *amphitheatrev1.Actor, serviceAccountName string, scheme *runtime.Scheme) (*unstructured.Unstructured, error) {
	img := &unstructured.Unstructured{}
	img.SetGroupVersionKind(KpackImageGVK)
	img.SetName(actor.Spec.Name + "-image")
	img.SetNamespace(actor.Namespace)
	img.SetLabels(childLabels(actor, "kpack-image"))
	if err := controllerutil.SetControllerReference(actor, img, scheme); err != nil {
		return nil, err
	}

	buildpacks := []any{}
	var builder string
	if actor.Spec.Build != nil && actor.Spec.Build.Buildpacks != nil {
		builder = actor.Spec.Build.Buildpacks.Builder
		for _, bp := range actor.Spec.Build.Buildpacks.Buildpacks {
			buildpacks = append(buildpacks, map[string]any{"id": bp})
		}
	}

	spec := map[string]any{
		"tag":                actor.Spec.Image,
		"serviceAccountName": serviceAccountName,
		"builder": map[string]any{
			"name": DefaultClusterBuilderName,
			"kind": "ClusterBuilder",
		},
		"source": map[string]any{
			"blob": map[string]any{"url": "amp-workspace://" + actor.Spec.Name},
		},
	}
	if len(buildpacks) > 0 {
		spec["buildpacks"] = buildpacks
	}
	if builder != "" {
		spec["builderImage"] = builder
	}
	img.Object["spec"] = spec
	return img, nil
}

// ImageReady reports the kpack completion rule: the Image CR carries a
// condition {type=Ready, status=True}.
func ImageReady(img *unstructured.Unstructured) bool {
	return unstructuredConditionTrue(img, "Ready")
}

// EnsureClusterStoreReady, EnsureClusterBuildpacksReady, and
// EnsureClusterBuilderReady implement the kpack prepare order: ClusterStore
// -> ClusterBuildpacks (each) -> ClusterBuilder, each checked for a True
// Ready condition before the next is consulted.
func EnsureClusterStoreReady(ctx context.Context, c client.Client, name string) (bool, error) {
	return clusterResourceReady(ctx, c, kpackClusterStoreGVK, name)
}

func EnsureClusterBuildpacksReady(ctx context.Context, c client.Client, names []string) (bool, error) {
	for _, name := range names {
		ready, err := clusterResourceReady(ctx, c, kpackClusterBuildpackGVK, name)
		if err != nil || !ready {
			return ready, err
		}
	}
	return true, nil
}

func EnsureClusterBuilderReady(ctx context.Context, c client.Client, name string) (bool, error) {
	return clusterResourceReady(ctx, c, kpackClusterBuilderGVK, name)
}

func clusterResourceReady(ctx context.Context, c client.Client, gvk schema.GroupVersionKind, name string) (bool, error) {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(gvk)
	if err := c.Get(ctx, types.NamespacedName{Name: name}, obj); err != nil {
		return false, fmt.Errorf("get %s %s: %w", gvk.Kind, name, err)
	}
	return unstructuredConditionTrue(obj, "Ready"), nil
}

func unstructuredConditionTrue(obj *unstructured.Unstructured, conditionType string) bool {
	conditions, found, err := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if err != nil || !found {
		return false
	}
	for _, c := range conditions {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if m["type"] == conditionType && m["status"] == "True" {
			return true
		}
	}
	return false
}
