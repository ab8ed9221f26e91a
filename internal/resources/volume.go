package resources

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// DefaultLiveWorkspaceSize is the requested capacity of a live Actor's
// shared workspace volume.
const DefaultLiveWorkspaceSize = "1Gi"

// PVCName names the PersistentVolumeClaim a live Actor's syncer and builder
// share.
func PVCName(actorName string) string { return actorName + "-pvc" }

// BuildPVC returns the workspace PVC for a live Actor.
func BuildPVC(actor *amphitheatrev1.Actor, scheme *runtime.Scheme) (*corev1.PersistentVolumeClaim, error) {
	pvc := &corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      PVCName(actor.Spec.Name),
			Namespace: actor.Namespace,
			Labels:    childLabels(actor, "pvc"),
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: resource.MustParse(DefaultLiveWorkspaceSize),
				},
			},
		},
	}
	if err := controllerutil.SetControllerReference(actor, pvc, scheme); err != nil {
		return nil, err
	}
	return pvc, nil
}
