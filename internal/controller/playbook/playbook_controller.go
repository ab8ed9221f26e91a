package playbook

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
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
	"github.com/amphitheatre-app/amphitheatre/internal/resolver"
	"github.com/amphitheatre-app/amphitheatre/internal/streaming"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
)

// Reconciler drives the Playbook state machine: Pending -> Resolving ->
// Running, materializing an owned namespace and one Actor per resolved
// character.
type Reconciler struct {
	client.Client
	Scheme      *runtime.Scheme
	Resolver    *resolver.Resolver
	Recorder    *events.Recorder
	Credentials *credentials.Store
	Stream      *streaming.Handle
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	playbook := &amphitheatrev1.Playbook{}
	if err := r.Get(ctx, req.NamespacedName, playbook); err != nil {
		if errors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("get playbook %s: %w", req.Name, err)
	}

	if !playbook.DeletionTimestamp.IsZero() {
		return r.finalize(ctx, playbook)
	}

	if !controllerutil.ContainsFinalizer(playbook, constant.PlaybookFinalizer) {
		controllerutil.AddFinalizer(playbook, constant.PlaybookFinalizer)
		if err := r.Update(ctx, playbook); err != nil {
			return ctrl.Result{}, fmt.Errorf("add finalizer to playbook %s: %w", playbook.Name, err)
		}
	}

	d := deps{resolver: r.Resolver, recorder: r.Recorder, scheme: r.Scheme}

	wc := &workflow.Context[*amphitheatrev1.Playbook]{
		Object:      playbook,
		Client:      r.Client,
		Credentials: r.Credentials,
		Stream:      r.Stream,
		Log:         log,
	}

	initial := stateFor(d, condition.StatusType(playbook, lifecycleTypes))

	result, err := workflow.Run(ctx, wc, initial)
	if err != nil {
		handler := condition.NewReconcileErrorHandler(log, r.Status(), playbook,
			amphitheatrev1.PlaybookConditionFailed, "playbook")
		return handler.Handle(ctx, err, constant.ReasonApplyFailed, "reconcile playbook")
	}
	return result, nil
}

// stateFor maps the lifecycle condition currently True on the object back
// to the workflow state that resumes it. An empty or unrecognized status
// (a freshly created Playbook) starts at InitialState.
func stateFor(d deps, status string) workflow.State[*amphitheatrev1.Playbook] {
	switch status {
	case amphitheatrev1.PlaybookConditionResolving:
		return ResolvingState(d)
	case amphitheatrev1.PlaybookConditionRunning:
		return RunningState(d)
	default:
		return InitialState(d)
	}
}

func (r *Reconciler) finalize(ctx context.Context, playbook *amphitheatrev1.Playbook) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(playbook, constant.PlaybookFinalizer) {
		return ctrl.Result{}, nil
	}

	if err := r.Stream.DeleteStream(ctx, playbook.Name); err != nil {
		return ctrl.Result{}, fmt.Errorf("delete stream for playbook %s: %w", playbook.Name, err)
	}

	controllerutil.RemoveFinalizer(playbook, constant.PlaybookFinalizer)
	if err := r.Update(ctx, playbook); err != nil {
		return ctrl.Result{}, fmt.Errorf("remove finalizer from playbook %s: %w", playbook.Name, err)
	}
	return ctrl.Result{}, nil
}

func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&amphitheatrev1.Playbook{}, builder.WithPredicates(predicate.GenerationChangedPredicate)).
		Owns(&amphitheatrev1.Actor{}).
		Owns(&corev1.Namespace{}).
		Named("playbook").
		Complete(r)
}
