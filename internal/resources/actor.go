package resources

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
)

// BuildActor returns the namespaced Actor CR for one resolved character,
// owned by playbook. The Actor's own status lifecycle (Pending -> Building
// -> Running) is driven independently by the Actor controller once this
// object exists; this builder only ever sets Spec.
func BuildActor(playbook *amphitheatrev1.Playbook, namespace string, spec amphitheatrev1.ActorSpec, scheme *runtime.Scheme) (*amphitheatrev1.Actor, error) {
	actor := &amphitheatrev1.Actor{
		TypeMeta: metav1.TypeMeta{APIVersion: amphitheatrev1.GroupVersion.String(), Kind: "Actor"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name,
			Namespace: namespace,
			Labels: map[string]string{
				constant.OwnerLabel:     playbook.Name,
				constant.CharacterLabel: spec.Name,
			},
		},
		Spec: spec,
	}
	if err := controllerutil.SetControllerReference(playbook, actor, scheme); err != nil {
		return nil, err
	}
	return actor, nil
}
