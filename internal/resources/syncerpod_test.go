package resources

import (
	"testing"

	"github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
)

func TestBuildSyncerPod_Sidecars(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")
	actor.Spec.Live = true

	build := corev1.Container{Name: "build"}
	pod, err := BuildSyncerPod(actor, build, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(pod.Name).To(gomega.Equal(SyncerPodName("web")))
	g.Expect(pod.Spec.RestartPolicy).To(gomega.Equal(corev1.RestartPolicyAlways))
	g.Expect(pod.Spec.Containers).To(gomega.HaveLen(2))
	g.Expect(pod.Spec.InitContainers).To(gomega.BeEmpty())
}

func TestBuildSyncerPod_Once_RunsAsInitContainers(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")
	actor.Spec.Live = true
	actor.Spec.Once = true

	build := corev1.Container{Name: "build"}
	pod, err := BuildSyncerPod(actor, build, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(pod.Spec.RestartPolicy).To(gomega.Equal(corev1.RestartPolicyOnFailure))
	g.Expect(pod.Spec.InitContainers).To(gomega.HaveLen(2))
	g.Expect(pod.Spec.Containers).To(gomega.HaveLen(1))
}

func TestSyncerPodReady(t *testing.T) {
	g := gomega.NewWithT(t)

	g.Expect(SyncerPodReady(nil)).To(gomega.BeFalse())

	pod := &corev1.Pod{}
	g.Expect(SyncerPodReady(pod)).To(gomega.BeFalse())

	pod.Status.Phase = corev1.PodRunning
	g.Expect(SyncerPodReady(pod)).To(gomega.BeTrue())
}
