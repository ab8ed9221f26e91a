package build

import (
	"context"
	"testing"

	"github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/resources"
)

func newLiveActor() *amphitheatrev1.Actor {
	actor := &amphitheatrev1.Actor{}
	actor.Name = "web"
	actor.Namespace = "ns"
	actor.Spec = amphitheatrev1.ActorSpec{
		Name:  "web",
		Image: "registry.example.com/web:latest",
		Live:  true,
	}
	return actor
}

func TestLiveBuilder_Prepare_CreatesPVCThenReusesIt(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newBuildScheme(t)
	actor := newLiveActor()
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	b := &LiveBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor}

	ok, err := b.Prepare(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(ok).To(gomega.BeTrue())

	pvc := &corev1.PersistentVolumeClaim{}
	g.Expect(c.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: resources.PVCName("web")}, pvc)).To(gomega.Succeed())

	ok, err = b.Prepare(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(ok).To(gomega.BeTrue())
}

func TestLiveBuilder_Build_CreatesSyncerPod(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newBuildScheme(t)
	actor := newLiveActor()
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	b := &LiveBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor, Method: amphitheatrev1.BuildMethodDockerfile}

	g.Expect(b.Build(context.Background())).To(gomega.Succeed())

	pod := &corev1.Pod{}
	g.Expect(c.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: resources.SyncerPodName("web")}, pod)).To(gomega.Succeed())
	g.Expect(pod.Spec.Containers).To(gomega.HaveLen(2))
}

func TestLiveBuilder_Completed(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newBuildScheme(t)
	actor := newLiveActor()
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	b := &LiveBuilder{Deps: Deps{Client: c, Scheme: scheme}, Actor: actor}

	done, err := b.Completed(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(done).To(gomega.BeFalse())

	pod := &corev1.Pod{}
	pod.Name = resources.SyncerPodName("web")
	pod.Namespace = "ns"
	pod.Status.Phase = corev1.PodRunning
	g.Expect(c.Create(context.Background(), pod)).To(gomega.Succeed())

	done, err = b.Completed(context.Background())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(done).To(gomega.BeTrue())
}
