package resources

import (
	"testing"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/onsi/gomega"
)

func TestBuildJob_NoSyncer(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")

	build := corev1.Container{Name: "build", Image: "gcr.io/kaniko-project/executor:v1.9.0"}
	job, err := BuildJob(actor, build, nil, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(job.Name).To(gomega.Equal("web-build"))
	g.Expect(job.Namespace).To(gomega.Equal("ns"))
	g.Expect(job.Spec.Template.Spec.InitContainers).To(gomega.BeEmpty())
	g.Expect(job.Spec.Template.Spec.Containers).To(gomega.HaveLen(1))
	g.Expect(job.Spec.Template.Spec.Containers[0].Name).To(gomega.Equal("build"))
	g.Expect(job.Spec.Template.Spec.RestartPolicy).To(gomega.Equal(corev1.RestartPolicyNever))
	g.Expect(job.OwnerReferences).To(gomega.HaveLen(1))
}

func TestBuildJob_WithSyncerInitContainer(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")

	build := corev1.Container{Name: "build"}
	syncer := &corev1.Container{Name: "syncer"}
	job, err := BuildJob(actor, build, syncer, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(job.Spec.Template.Spec.InitContainers).To(gomega.HaveLen(1))
	g.Expect(job.Spec.Template.Spec.InitContainers[0].Name).To(gomega.Equal("syncer"))
}

func TestJobCompleted(t *testing.T) {
	g := gomega.NewWithT(t)

	g.Expect(JobCompleted(nil)).To(gomega.BeFalse())
	g.Expect(JobCompleted(&batchv1.Job{})).To(gomega.BeFalse())

	succeeded := &batchv1.Job{Status: batchv1.JobStatus{Succeeded: 1}}
	g.Expect(JobCompleted(succeeded)).To(gomega.BeTrue())
}
