package actor

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/condition"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/events"
	"github.com/amphitheatre-app/amphitheatre/internal/predicate"
	"github.com/amphitheatre-app/amphitheatre/internal/streaming"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
)

// Reconciler drives the Actor state machine: Pending -> Building -> Running,
// selecting and driving a build strategy before materializing the Actor's
// Deployment and optional Service.
type Reconciler struct {
	client.Client
	Scheme      *runtime.Scheme
	Recorder    *events.Recorder
	Prober      credentials.Prober
	Credentials *credentials.Store
	Stream      *streaming.Handle
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	actor := &amphitheatrev1.Actor{}
	if err := r.Get(ctx, req.NamespacedName, actor); err != nil {
		if errors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("get actor %s: %w", req.Name, err)
	}

	if !actor.DeletionTimestamp.IsZero() {
		return r.finalize(ctx, actor)
	}

	if !controllerutil.ContainsFinalizer(actor, constant.ActorFinalizer) {
		controllerutil.AddFinalizer(actor, constant.ActorFinalizer)
		if err := r.Update(ctx, actor); err != nil {
			return ctrl.Result{}, fmt.Errorf("add finalizer to actor %s: %w", actor.Name, err)
		}
	}

	d := deps{scheme: r.Scheme, recorder: r.Recorder, prober: r.Prober}

	wc := &workflow.Context[*amphitheatrev1.Actor]{
		Object:      actor,
		Client:      r.Client,
		Credentials: r.Credentials,
		Stream:      r.Stream,
		Log:         log,
	}

	initial := stateFor(d, condition.StatusType(actor, lifecycleTypes))

	result, err := workflow.Run(ctx, wc, initial)
	if err != nil {
		handler := condition.NewReconcileErrorHandler(log, r.Status(), actor,
			amphitheatrev1.ActorConditionFailed, "actor")
		return handler.Handle(ctx, err, constant.ReasonBuildFailed, "reconcile actor")
	}
	return result, nil
}

// stateFor maps the lifecycle condition currently True on the object back
// to the workflow state that resumes it. An empty or unrecognized status
// (a freshly created Actor) starts at InitialState.
func stateFor(d deps, status string) workflow.State[*amphitheatrev1.Actor] {
	switch status {
	case amphitheatrev1.ActorConditionBuilding:
		return BuildingState(d)
	case amphitheatrev1.ActorConditionRunning:
		return RunningState(d)
	default:
		return InitialState(d)
	}
}

// finalize removes the finalizer without further cleanup. Child resources
// (Deployment, Service, build Job/Image/Pod) carry owner references back to
// the Actor, and the Actor's own namespace is owned by its Playbook, so
// deleting either cascades the rest; when the namespace is already
// Terminating there's nothing left to do but let that cascade finish.
func (r *Reconciler) finalize(ctx context.Context, actor *amphitheatrev1.Actor) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(actor, constant.ActorFinalizer) {
		return ctrl.Result{}, nil
	}

	ns := &corev1.Namespace{}
	err := r.Get(ctx, types.NamespacedName{Name: actor.Namespace}, ns)
	if err != nil && !errors.IsNotFound(err) {
		return ctrl.Result{}, fmt.Errorf("get namespace %s: %w", actor.Namespace, err)
	}
	terminating := err == nil && !ns.DeletionTimestamp.IsZero()

	if !terminating {
		r.Recorder.Tracing(actor, "relying on owner references to clean up child resources")
	}

	controllerutil.RemoveFinalizer(actor, constant.ActorFinalizer)
	if err := r.Update(ctx, actor); err != nil {
		return ctrl.Result{}, fmt.Errorf("remove finalizer from actor %s: %w", actor.Name, err)
	}
	return ctrl.Result{}, nil
}

func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&amphitheatrev1.Actor{}, builder.WithPredicates(predicate.GenerationChangedPredicate)).
		Owns(&appsv1.Deployment{}).
		Owns(&corev1.Service{}).
		Named("actor").
		Complete(r)
}
