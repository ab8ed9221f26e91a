// Package events wraps client-go's record.EventRecorder with the two
// event reasons the Playbook and Actor controllers emit on every state
// transition: Tracing for a normal progression, Reconciling while a
// reconcile is in flight waiting on a child resource.
package events

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
)

const (
	ReasonTracing     = "Tracing"
	ReasonReconciling = "Reconciling"
)

// Recorder narrows record.EventRecorder to the two event shapes this
// repository's controllers emit.
type Recorder struct {
	inner record.EventRecorder
}

// NewRecorder wraps recorder, typically built by a manager's
// GetEventRecorderFor in cmd/main.go.
func NewRecorder(recorder record.EventRecorder) *Recorder {
	return &Recorder{inner: recorder}
}

// Tracing records a Normal event describing a state transition.
func (r *Recorder) Tracing(object runtime.Object, message string) {
	if r == nil || r.inner == nil {
		return
	}
	r.inner.Event(object, "Normal", ReasonTracing, message)
}

// Reconciling records a Normal event describing an in-progress wait on a
// child resource (e.g. a build Job, a kpack Image).
func (r *Recorder) Reconciling(object runtime.Object, message string) {
	if r == nil || r.inner == nil {
		return
	}
	r.inner.Event(object, "Normal", ReasonReconciling, message)
}
