package resources

import (
	"testing"

	"github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

func newScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	gomega.NewWithT(t).Expect(amphitheatrev1.AddToScheme(scheme)).To(gomega.Succeed())
	return scheme
}

func newActor(name string) *amphitheatrev1.Actor {
	actor := &amphitheatrev1.Actor{}
	actor.Name = name
	actor.Namespace = "ns"
	actor.Spec = amphitheatrev1.ActorSpec{Name: name, Image: "registry.example.com/" + name + ":latest"}
	return actor
}

func TestBuildDeployment_NonLive_NoSyncerSidecar(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")

	deploy, err := BuildDeployment(actor, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(deploy.Spec.Template.Spec.Containers).To(gomega.HaveLen(1))
	g.Expect(deploy.Spec.Template.Spec.Containers[0].Name).To(gomega.Equal(AppContainerName))
	g.Expect(deploy.OwnerReferences).To(gomega.HaveLen(1))
}

func TestBuildDeployment_LiveContinuous_AddsSyncerAndBuilderSidecars(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")
	actor.Spec.Live = true
	actor.Spec.Once = false
	actor.Spec.Source = &amphitheatrev1.SourceReference{}

	deploy, err := BuildDeployment(actor, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(deploy.Spec.Template.Spec.Containers).To(gomega.HaveLen(3))
	names := []string{
		deploy.Spec.Template.Spec.Containers[0].Name,
		deploy.Spec.Template.Spec.Containers[1].Name,
		deploy.Spec.Template.Spec.Containers[2].Name,
	}
	g.Expect(names).To(gomega.ConsistOf(AppContainerName, "syncer", "lifecycle"))
	g.Expect(deploy.Spec.Template.Spec.Volumes).To(gomega.HaveLen(2))
}

func TestBuildDeployment_LiveOnce_NoSidecarOnlyApp(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")
	actor.Spec.Live = true
	actor.Spec.Once = true

	deploy, err := BuildDeployment(actor, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(deploy.Spec.Template.Spec.Containers).To(gomega.HaveLen(1))
}

func TestBuildDeployment_CarriesDeployEnvAndPorts(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")
	actor.Spec.Deploy = &amphitheatrev1.DeployRecipe{
		Env:            []corev1.EnvVar{{Name: "PORT", Value: "8080"}},
		ContainerPorts: []corev1.ContainerPort{{ContainerPort: 8080}},
	}

	deploy, err := BuildDeployment(actor, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	app := deploy.Spec.Template.Spec.Containers[0]
	g.Expect(app.Env).To(gomega.HaveLen(1))
	g.Expect(app.Ports).To(gomega.HaveLen(1))
}
