// Package apierrors implements a single error taxonomy for the reconcile
// loop, unifying what the legacy API code split across two incompatible
// error types (one carrying a NATS streaming variant, one without) into
// one Kind-tagged error every caller can classify the same way regardless
// of where it originated.
package apierrors

import "fmt"

// Kind classifies an error for the purposes of the reconcile error policy:
// whether it's transient and worth a blind retry or a semantic failure
// that won't resolve itself. A builder prerequisite that isn't Ready yet
// is reported through workflow.RequeueAfter instead — it isn't a Go error
// at all, so no Kind exists for it.
type Kind string

const (
	// KindTransient covers Kubernetes API timeouts, SCM fetch failures, and
	// registry probe failures: requeue in 60s, no special handling.
	KindTransient Kind = "Transient"
	// KindSemantic covers resolver failures that won't resolve themselves
	// on retry: unknown registry, missing preface, bad repo URL, empty
	// default registry.
	KindSemantic Kind = "Semantic"
	// KindMutation covers resource mutation failures: conflicts,
	// validation errors, a missing owner namespace.
	KindMutation Kind = "Mutation"
	// KindMissingField covers a required spec field absent at reconcile
	// time: no namespace in metadata, no syncer/builder chosen when one is
	// required.
	KindMissingField Kind = "MissingField"
	// KindFinalizer covers errors encountered while running a finalizer.
	KindFinalizer Kind = "Finalizer"
	// KindStreaming covers failures from the JetStream handle — the
	// taxonomy's unification point for the legacy NATS-carrying ApiError
	// variant; KindOf reports it as Streaming, and the reconcile error
	// handler requeues it after 60s like every other Kind.
	KindStreaming Kind = "Streaming"
)

// Error is the unified error type: it tags a wrapped error with a Kind so
// KindOf can classify it without string-matching. The Playbook controller's
// Initial and Resolving states wrap their failures this way; other helpers
// return plain wrapped errors, which KindOf reports as KindTransient.
type Error struct {
	Kind    Kind
	Op      string
	Err     error
	Object  string // namespace/name of the offending object, when known
}

func (e *Error) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("%s: %s (%s): %v", e.Kind, e.Op, e.Object, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err as op under kind, with no offending object recorded.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewWithObject wraps err as op under kind, recording the offending
// object's namespace/name for the error message.
func NewWithObject(kind Kind, op, object string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err, Object: object}
}

// KindOf extracts the Kind from err, defaulting to KindTransient for any
// error this package didn't wrap (the conservative choice: an
// unclassified error gets the ordinary 60s-requeue policy, not special
// treatment).
func KindOf(err error) Kind {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind
	}
	return KindTransient
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
