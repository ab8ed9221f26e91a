package credentials

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// SecretName is the well-known Secret the Watcher reconciles.
const SecretName = "amp-credentials"

// PayloadKey is the data key under which the TOML credentials document is
// stored.
const PayloadKey = "credentials.toml"

// Watcher reconciles the amp-credentials Secret in the controller's own
// namespace, decodes its TOML payload, and atomically replaces Store's
// snapshot.
type Watcher struct {
	client.Client
	Namespace string
	Store     *Store
	// OnReload, if set, runs after every successful reload — the manager
	// wires this to Sync so docker-config/per-repository Secrets and the
	// controllers' ServiceAccount are refreshed on every credentials change.
	OnReload func(ctx context.Context, creds Credentials) error
}

// Reconcile implements reconcile.Reconciler.
func (w *Watcher) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := logf.FromContext(ctx)

	if req.Namespace != w.Namespace || req.Name != SecretName {
		return ctrl.Result{}, nil
	}

	secret := &corev1.Secret{}
	if err := w.Get(ctx, types.NamespacedName{Namespace: req.Namespace, Name: req.Name}, secret); err != nil {
		if errors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("get credentials secret: %w", err)
	}

	payload, ok := secret.Data[PayloadKey]
	if !ok {
		log.Info("credentials secret missing payload key, ignoring", "key", PayloadKey)
		return ctrl.Result{}, nil
	}

	var creds Credentials
	if err := toml.NewDecoder(bytes.NewReader(payload)).Decode(&creds); err != nil {
		return ctrl.Result{}, fmt.Errorf("decode credentials payload: %w", err)
	}

	w.Store.Replace(creds)
	log.Info("reloaded credentials snapshot", "registries", len(creds.Registries), "repositories", len(creds.Repositories))

	if w.OnReload != nil {
		if err := w.OnReload(ctx, creds); err != nil {
			return ctrl.Result{}, fmt.Errorf("sync credentials: %w", err)
		}
	}

	return ctrl.Result{}, nil
}

// SetupWithManager registers the Watcher on all Secrets; Reconcile ignores
// every Secret other than the well-known one.
func (w *Watcher) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&corev1.Secret{}).
		Named("credentials-watcher").
		Complete(w)
}
