// Package resources builds the typed child resources the Playbook and
// Actor controllers reconcile: Namespace, Actor, Deployment, Service,
// build Job, kpack Image, PersistentVolumeClaim, and the live-mode syncer
// Pod. Every Build* function returns a value ready for
// internal/kubeapply.Apply without talking to the API server, so they're
// cheap to unit test by comparing the returned object. The Ensure* helpers
// (kpack prerequisites, the kpack ServiceAccount) read and write through
// the client they are given.
package resources

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
)

// NamespaceName deterministically derives a Playbook's target namespace
// name from its id, so it can be recomputed without reading it back off
// the object (invariant: "named deterministically from its id").
func NamespaceName(playbookID string) string {
	return "amp-" + playbookID
}

// BuildNamespace returns the namespace owned by playbook, named
// deterministically from its id.
func BuildNamespace(playbook *amphitheatrev1.Playbook, playbookID string, scheme *runtime.Scheme) (*corev1.Namespace, error) {
	ns := &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{
			Name: NamespaceName(playbookID),
			Labels: map[string]string{
				constant.OwnerLabel: playbook.Name,
			},
		},
	}
	if err := controllerutil.SetControllerReference(playbook, ns, scheme); err != nil {
		return nil, err
	}
	return ns, nil
}
