package credentials

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/amphitheatre-app/amphitheatre/internal/kubeapply"
)

// DockerConfigSecretName is the Secret name every synced namespace receives
// a docker-config payload under.
const DockerConfigSecretName = "amp-docker-config"

// dockerConfigJSON mirrors the .dockerconfigjson schema.
type dockerConfigJSON struct {
	Auths map[string]dockerConfigEntry `json:"auths"`
}

type dockerConfigEntry struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Auth     string `json:"auth"`
}

// Syncer replicates a Credentials snapshot into namespaces: a docker-config
// Secret, one Secret per declared repository, and a patch of the
// ServiceAccount named ServiceAccountName in that namespace to reference
// both.
type Syncer struct {
	Client             client.Client
	ServiceAccountName string
}

// Sync writes the docker-config and per-repository Secrets into namespace
// and patches the named ServiceAccount's secrets and imagePullSecrets.
func (s *Syncer) Sync(ctx context.Context, namespace string, creds Credentials) error {
	dockerSecret, err := s.dockerConfigSecret(namespace, creds)
	if err != nil {
		return fmt.Errorf("build docker config secret: %w", err)
	}
	if err := kubeapply.Apply(ctx, s.Client, dockerSecret); err != nil {
		return err
	}

	repoSecretNames := make([]string, 0, len(creds.Repositories))
	for _, repo := range creds.Repositories {
		secret := repositorySecret(namespace, repo)
		if err := kubeapply.Apply(ctx, s.Client, secret); err != nil {
			return err
		}
		repoSecretNames = append(repoSecretNames, secret.Name)
	}

	return s.patchServiceAccount(ctx, namespace, dockerSecret.Name, repoSecretNames)
}

func (s *Syncer) dockerConfigSecret(namespace string, creds Credentials) (*corev1.Secret, error) {
	auths := map[string]dockerConfigEntry{}
	for _, reg := range creds.Registries {
		auth := base64.StdEncoding.EncodeToString([]byte(reg.Username + ":" + reg.Password))
		auths[reg.Host()] = dockerConfigEntry{Username: reg.Username, Password: reg.Password, Auth: auth}
	}
	payload, err := json.Marshal(dockerConfigJSON{Auths: auths})
	if err != nil {
		return nil, err
	}

	return &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: DockerConfigSecretName, Namespace: namespace},
		Type:       corev1.SecretTypeDockerConfigJson,
		Data:       map[string][]byte{corev1.DockerConfigJsonKey: payload},
	}, nil
}

func repositorySecret(namespace string, repo Repository) *corev1.Secret {
	return &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: "amp-repo-" + sanitizeName(repo.URL), Namespace: namespace},
		Type:       corev1.SecretTypeBasicAuth,
		StringData: map[string]string{
			corev1.BasicAuthUsernameKey: repo.Username,
			corev1.BasicAuthPasswordKey: repo.Password,
		},
	}
}

func sanitizeName(url string) string {
	out := make([]byte, 0, len(url))
	for _, r := range url {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, byte(r))
		case r >= 'A' && r <= 'Z':
			out = append(out, byte(r-'A'+'a')) // fold to lowercase, DNS-1123 label
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}

func (s *Syncer) patchServiceAccount(ctx context.Context, namespace, dockerSecretName string, repoSecretNames []string) error {
	sa := &corev1.ServiceAccount{}
	if err := s.Client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: s.ServiceAccountName}, sa); err != nil {
		return fmt.Errorf("get service account %s/%s: %w", namespace, s.ServiceAccountName, err)
	}

	sa.ImagePullSecrets = mergeLocalObjectRefs(sa.ImagePullSecrets, dockerSecretName)
	for _, name := range repoSecretNames {
		sa.Secrets = mergeObjectRefs(sa.Secrets, name)
	}

	return s.Client.Update(ctx, sa)
}

func mergeLocalObjectRefs(existing []corev1.LocalObjectReference, name string) []corev1.LocalObjectReference {
	for _, r := range existing {
		if r.Name == name {
			return existing
		}
	}
	return append(existing, corev1.LocalObjectReference{Name: name})
}

func mergeObjectRefs(existing []corev1.ObjectReference, name string) []corev1.ObjectReference {
	for _, r := range existing {
		if r.Name == name {
			return existing
		}
	}
	return append(existing, corev1.ObjectReference{Name: name})
}
