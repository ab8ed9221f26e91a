package build

import (
	"context"
	"testing"

	"github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/resources"
)

func newKpackBuildScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	g := gomega.NewWithT(t)
	scheme := runtime.NewScheme()
	g.Expect(clientgoscheme.AddToScheme(scheme)).To(gomega.Succeed())
	g.Expect(amphitheatrev1.AddToScheme(scheme)).To(gomega.Succeed())

	for _, gvk := range []schema.GroupVersionKind{
		resources.KpackImageGVK,
		{Group: "kpack.io", Version: "v1alpha2", Kind: "ClusterStore"},
		{Group: "kpack.io", Version: "v1alpha2", Kind: "ClusterBuildpack"},
		{Group: "kpack.io", Version: "v1alpha2", Kind: "ClusterBuilder"},
	} {
		scheme.AddKnownTypeWithName(gvk, &unstructured.Unstructured{})
		listGVK := gvk
		listGVK.Kind += "List"
		scheme.AddKnownTypeWithName(listGVK, &unstructured.UnstructuredList{})
	}
	return scheme
}

func newKpackActor() *amphitheatrev1.Actor {
	actor := &amphitheatrev1.Actor{}
	actor.Name = "web"
	actor.Namespace = "ns"
	actor.Spec = amphitheatrev1.ActorSpec{Name: "web", Image: "registry.example.com/web:latest"}
	return actor
}

func readyClusterResource(kind, name string) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]any{}}
	obj.SetGroupVersionKind(schema.GroupVersionKind{Group: "kpack.io", Version: "v1alpha2", Kind: kind})
	obj.SetName(name)
	_ = unstructured.SetNestedSlice(obj.Object, []any{
		map[string]any{"type": "Ready", "status": "True"},
	}, "status", "conditions")
	return obj
}

func TestKpackBuilder_Prepare_WaitsOnClusterStore(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newKpackBuildScheme(t)
	actor := newKpackActor()
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	b := &KpackBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor}

	ok, err := b.Prepare(context.Background())
	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(ok).To(gomega.BeFalse())
}

func TestKpackBuilder_Prepare_ReadyChainCreatesServiceAccount(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newKpackBuildScheme(t)
	actor := newKpackActor()
	c := fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(
			readyClusterResource("ClusterStore", resources.DefaultClusterStoreName),
			readyClusterResource("ClusterBuilder", resources.DefaultClusterBuilderName),
		).
		Build()
	b := &KpackBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor}

	ok, err := b.Prepare(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(ok).To(gomega.BeTrue())

	sa := &corev1.ServiceAccount{}
	g.Expect(c.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: resources.KpackServiceAccountName("web")}, sa)).To(gomega.Succeed())
}

func TestKpackBuilder_BuildAndCompleted(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newKpackBuildScheme(t)
	actor := newKpackActor()
	actor.Spec.Build = &amphitheatrev1.BuildRecipe{Buildpacks: &amphitheatrev1.BuildpacksRecipe{}}
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	b := &KpackBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor}

	g.Expect(b.Build(context.Background())).To(gomega.Succeed())

	img := &unstructured.Unstructured{}
	img.SetGroupVersionKind(resources.KpackImageGVK)
	g.Expect(c.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: "web-image"}, img)).To(gomega.Succeed())

	done, err := b.Completed(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(done).To(gomega.BeFalse())

	_ = unstructured.SetNestedSlice(img.Object, []any{
		map[string]any{"type": "Ready", "status": "True"},
	}, "status", "conditions")
	g.Expect(c.Update(context.Background(), img)).To(gomega.Succeed())

	done, err = b.Completed(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(done).To(gomega.BeTrue())
}
