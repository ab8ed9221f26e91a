package config

import (
	"context"
	"fmt"

	apiextensionsv1client "k8s.io/apiextensions-apiserver/pkg/client/clientset/versioned/typed/apiextensions/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/rest"
)

// RequiredCRDs names the CustomResourceDefinitions the manager must find
// installed before it starts; Playbooks and Actors are this repository's
// own CRDs and are never auto-installed by the manager itself.
var RequiredCRDs = []string{
	"playbooks.amphitheatre.app",
	"actors.amphitheatre.app",
}

// CheckCRDsInstalled fails fast with a descriptive error, rather than
// letting the manager start and silently never sync its informers, when
// one of RequiredCRDs is missing from the API server.
func CheckCRDsInstalled(ctx context.Context, cfg *rest.Config) error {
	client, err := apiextensionsv1client.NewForConfig(cfg)
	if err != nil {
		return fmt.Errorf("build apiextensions client: %w", err)
	}

	var missing []string
	for _, name := range RequiredCRDs {
		if _, err := client.CustomResourceDefinitions().Get(ctx, name, metav1.GetOptions{}); err != nil {
			if errors.IsNotFound(err) {
				missing = append(missing, name)
				continue
			}
			return fmt.Errorf("get CustomResourceDefinition %s: %w", name, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required CustomResourceDefinitions not installed: %v (run `make install` or apply config/crd)", missing)
	}
	return nil
}
