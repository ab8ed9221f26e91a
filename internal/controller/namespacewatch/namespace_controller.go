// Package namespacewatch reconciles the namespace bootstrap watch:
// namespaces carrying the label syncer.<domain>/sync=true trigger
// credential replication into that namespace.
package namespacewatch

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
)

// Reconciler replicates the current credentials snapshot into any
// Namespace labeled for sync.
type Reconciler struct {
	client.Client
	Store *credentials.Store
	Sync  *credentials.Syncer
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	ns := &corev1.Namespace{}
	if err := r.Get(ctx, req.NamespacedName, ns); err != nil {
		if errors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("get namespace %s: %w", req.Name, err)
	}

	if ns.Labels[constant.SyncLabel] != "true" || !ns.DeletionTimestamp.IsZero() {
		return ctrl.Result{}, nil
	}

	if err := r.Sync.Sync(ctx, ns.Name, r.Store.Get()); err != nil {
		return ctrl.Result{}, fmt.Errorf("sync credentials into %s: %w", ns.Name, err)
	}
	return ctrl.Result{}, nil
}

var syncLabelPredicate = predicate.Funcs{
	CreateFunc: func(e event.CreateEvent) bool {
		return e.Object.GetLabels()[constant.SyncLabel] == "true"
	},
	UpdateFunc: func(e event.UpdateEvent) bool {
		return e.ObjectNew.GetLabels()[constant.SyncLabel] == "true"
	},
	DeleteFunc:  func(event.DeleteEvent) bool { return false },
	GenericFunc: func(event.GenericEvent) bool { return false },
}

func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&corev1.Namespace{}, builder.WithPredicates(syncLabelPredicate)).
		Named("namespace-bootstrap-watch").
		Complete(r)
}
