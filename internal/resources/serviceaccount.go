package resources

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
)

// KpackServiceAccountName names the per-Actor ServiceAccount the kpack
// Image CR runs its builds as, carrying the registry pull secret kpack
// needs to push the built image.
func KpackServiceAccountName(actorName string) string { return actorName + "-builder" }

// EnsureKpackServiceAccount creates or patches the per-Actor ServiceAccount
// kpack runs image builds as, merging in the docker-config pull secret
// rather than replacing the object outright — symmetrical with
// credentials.Syncer.Sync's namespace-wide ServiceAccount patch, but
// scoped to one Actor's build identity instead of the whole namespace.
func EnsureKpackServiceAccount(ctx context.Context, c client.Client, actor *amphitheatrev1.Actor) error {
	name := KpackServiceAccountName(actor.Spec.Name)
	sa := &corev1.ServiceAccount{}
	err := c.Get(ctx, types.NamespacedName{Namespace: actor.Namespace, Name: name}, sa)
	switch {
	case errors.IsNotFound(err):
		sa = &corev1.ServiceAccount{
			ObjectMeta: metav1.ObjectMeta{
				Name:      name,
				Namespace: actor.Namespace,
				Labels:    childLabels(actor, "service-account"),
			},
			Secrets:          []corev1.ObjectReference{{Name: credentials.DockerConfigSecretName}},
			ImagePullSecrets: []corev1.LocalObjectReference{{Name: credentials.DockerConfigSecretName}},
		}
		if err := c.Create(ctx, sa); err != nil {
			return fmt.Errorf("create service account %s/%s: %w", actor.Namespace, name, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("get service account %s/%s: %w", actor.Namespace, name, err)
	}

	if !hasObjectRef(sa.Secrets, credentials.DockerConfigSecretName) {
		sa.Secrets = append(sa.Secrets, corev1.ObjectReference{Name: credentials.DockerConfigSecretName})
	}
	if !hasLocalObjectRef(sa.ImagePullSecrets, credentials.DockerConfigSecretName) {
		sa.ImagePullSecrets = append(sa.ImagePullSecrets, corev1.LocalObjectReference{Name: credentials.DockerConfigSecretName})
	}
	if err := c.Update(ctx, sa); err != nil {
		return fmt.Errorf("update service account %s/%s: %w", actor.Namespace, name, err)
	}
	return nil
}

func hasObjectRef(refs []corev1.ObjectReference, name string) bool {
	for _, r := range refs {
		if r.Name == name {
			return true
		}
	}
	return false
}

func hasLocalObjectRef(refs []corev1.LocalObjectReference, name string) bool {
	for _, r := range refs {
		if r.Name == name {
			return true
		}
	}
	return false
}
