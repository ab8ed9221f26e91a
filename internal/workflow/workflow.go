// Package workflow is a tiny generic state/task/intent scheduler: a
// Context[T] bundles the observed object, a Kubernetes client, a
// credentials snapshot, and a messaging handle; a State[T] handles one
// reconcile step and returns an Intent[T] that is either a transition to
// the next state, a timed requeue, or "done" (await the next change). Both
// the Playbook and Actor controllers are thin wrappers around Run.
package workflow

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/streaming"
)

// Context bundles everything a State or Task needs to act: the observed
// object, a Kubernetes client handle, a shared-lock-guarded credentials
// snapshot, and a JetStream messaging handle. All fields except Object are
// immutable after construction, trading hidden global mutable state for an
// explicit, passed-down context.
type Context[T any] struct {
	Object      T
	Client      client.Client
	Credentials *credentials.Store
	Stream      *streaming.Handle
	Log         logr.Logger
}

// IntentKind discriminates the closed Intent sum a Task can return:
// NextState | Requeue(duration) | Done.
type IntentKind int

const (
	IntentNextState IntentKind = iota
	IntentRequeue
	IntentDone
)

// Intent is the tagged result of a State's or Task's handling of one
// reconcile step. Its fields are unexported, so outside this package an
// Intent is either built through NextState, RequeueAfter, or Done, or is
// the zero value returned alongside a non-nil error, which Run discards.
type Intent[T any] struct {
	kind  IntentKind
	next  State[T]
	after time.Duration
}

// NextState builds an Intent that transitions the workflow to s and
// continues looping within the same reconcile.
func NextState[T any](s State[T]) Intent[T] {
	return Intent[T]{kind: IntentNextState, next: s}
}

// RequeueAfter builds an Intent that asks the Kubernetes runtime to requeue
// after d.
func RequeueAfter[T any](d time.Duration) Intent[T] {
	return Intent[T]{kind: IntentRequeue, after: d}
}

// Done builds an Intent meaning "await the next change" — no further work
// this reconcile.
func Done[T any]() Intent[T] {
	return Intent[T]{kind: IntentDone}
}

// State exposes one reconcile step. Handle returns the next Intent, or an
// error that the caller's error policy turns into a 60s requeue.
type State[T any] interface {
	Name() string
	Handle(ctx context.Context, wc *Context[T]) (Intent[T], error)
}

// Task is a State's unit of work: Matches guards on a status predicate,
// Execute performs side effects and returns the resulting Intent. A State
// backed by Tasks (see TaskState) tries each Task in order and runs the
// first one that matches.
type Task[T any] interface {
	Matches(ctx context.Context, wc *Context[T]) bool
	Execute(ctx context.Context, wc *Context[T]) (Intent[T], error)
}

// TaskState is a State composed of an ordered list of Tasks. It is the
// shape every concrete Playbook/Actor state takes; most states carry one
// task, but a list keeps the door open for sub-states sharing one
// lifecycle condition.
type TaskState[T any] struct {
	StateName string
	Tasks     []Task[T]
}

func (s *TaskState[T]) Name() string { return s.StateName }

// Handle runs the first matching task. If none match, the workflow is
// Done — the precondition for this state's task isn't met yet, so nothing
// to do until the object changes again.
func (s *TaskState[T]) Handle(ctx context.Context, wc *Context[T]) (Intent[T], error) {
	for _, t := range s.Tasks {
		if t.Matches(ctx, wc) {
			return t.Execute(ctx, wc)
		}
	}
	return Done[T](), nil
}

// Run drives the state machine starting from initial until it yields
// Requeue or Done, translating the result into a ctrl.Result. On error it
// returns the error and does not set a requeue duration, leaving the
// calling Reconcile's error policy (internal/condition's
// ReconcileErrorHandler) to decide on the 60s retry.
func Run[T any](ctx context.Context, wc *Context[T], initial State[T]) (ctrl.Result, error) {
	state := initial
	for {
		intent, err := state.Handle(ctx, wc)
		if err != nil {
			return ctrl.Result{}, err
		}
		switch intent.kind {
		case IntentNextState:
			state = intent.next
			continue
		case IntentRequeue:
			return ctrl.Result{RequeueAfter: intent.after}, nil
		case IntentDone:
			return ctrl.Result{}, nil
		default:
			return ctrl.Result{}, nil
		}
	}
}
