package resources

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// NeedsService reports whether actor's deploy recipe declares service
// ports — the Running state only upserts a Service when this holds.
func NeedsService(actor *amphitheatrev1.Actor) bool {
	return actor.Spec.Deploy != nil && len(actor.Spec.Deploy.ServicePorts) > 0
}

// BuildService returns the Service exposing actor's Deployment, selecting
// its Pods by character name.
func BuildService(actor *amphitheatrev1.Actor, scheme *runtime.Scheme) (*corev1.Service, error) {
	svc := &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      actor.Spec.Name,
			Namespace: actor.Namespace,
			Labels:    childLabels(actor, "service"),
		},
		Spec: corev1.ServiceSpec{
			Selector: selectorLabels(actor),
			Ports:    actor.Spec.Deploy.ServicePorts,
		},
	}
	if err := controllerutil.SetControllerReference(actor, svc, scheme); err != nil {
		return nil, err
	}
	return svc, nil
}
