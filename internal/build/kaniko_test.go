package build

import (
	"context"
	"testing"

	"github.com/onsi/gomega"
	batchv1 "k8s.io/api/batch/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

func newBuildScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	g := gomega.NewWithT(t)
	g.Expect(clientgoscheme.AddToScheme(scheme)).To(gomega.Succeed())
	g.Expect(amphitheatrev1.AddToScheme(scheme)).To(gomega.Succeed())
	return scheme
}

func TestKanikoJobBuilder_Prepare_AlwaysReady(t *testing.T) {
	g := gomega.NewWithT(t)
	b := &KanikoJobBuilder{}
	ok, err := b.Prepare(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(ok).To(gomega.BeTrue())
}

func TestKanikoJobBuilder_Build_CreatesJob(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newBuildScheme(t)
	actor := &amphitheatrev1.Actor{}
	actor.Name = "web"
	actor.Namespace = "ns"
	actor.Spec = amphitheatrev1.ActorSpec{
		Name:  "web",
		Image: "registry.example.com/web:latest",
		Build: &amphitheatrev1.BuildRecipe{Dockerfile: &amphitheatrev1.DockerfileRecipe{}},
	}

	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	b := &KanikoJobBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor}

	g.Expect(b.Build(context.Background())).To(gomega.Succeed())

	job := &batchv1.Job{}
	g.Expect(c.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: "web-build"}, job)).To(gomega.Succeed())
}

func TestKanikoJobBuilder_Completed(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newBuildScheme(t)
	actor := &amphitheatrev1.Actor{}
	actor.Name = "web"
	actor.Namespace = "ns"
	actor.Spec = amphitheatrev1.ActorSpec{Name: "web"}

	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	b := &KanikoJobBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor}

	done, err := b.Completed(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(done).To(gomega.BeFalse())

	job := &batchv1.Job{}
	job.Name = "web-build"
	job.Namespace = "ns"
	job.Status.Succeeded = 1
	g.Expect(c.Create(context.Background(), job)).To(gomega.Succeed())

	done, err = b.Completed(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(done).To(gomega.BeTrue())
}
