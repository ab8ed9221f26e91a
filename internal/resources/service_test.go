package resources

import (
	"testing"

	"github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

func TestNeedsService(t *testing.T) {
	g := gomega.NewWithT(t)

	actor := newActor("web")
	g.Expect(NeedsService(actor)).To(gomega.BeFalse())

	actor.Spec.Deploy = &amphitheatrev1.DeployRecipe{}
	g.Expect(NeedsService(actor)).To(gomega.BeFalse())

	actor.Spec.Deploy.ServicePorts = []corev1.ServicePort{{Port: 80}}
	g.Expect(NeedsService(actor)).To(gomega.BeTrue())
}

func TestBuildService(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newScheme(t)
	actor := newActor("web")
	actor.Spec.Deploy = &amphitheatrev1.DeployRecipe{ServicePorts: []corev1.ServicePort{{Port: 80}}}

	svc, err := BuildService(actor, scheme)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(svc.Name).To(gomega.Equal("web"))
	g.Expect(svc.Spec.Ports).To(gomega.HaveLen(1))
	g.Expect(svc.Spec.Selector).To(gomega.Equal(selectorLabels(actor)))
	g.Expect(svc.OwnerReferences).To(gomega.HaveLen(1))
}
