// Package actor implements the Actor controller's Pending -> Building ->
// Running state machine on top of internal/workflow, selecting and driving
// one of internal/build's builder strategies to produce the Actor's image
// before materializing its Deployment and, optionally, Service.
package actor

import (
	"k8s.io/apimachinery/pkg/runtime"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/events"
)

// deps bundles what every state's tasks need beyond the workflow.Context:
// the scheme child resources are owner-stamped against, the event
// recorder, and the registry image-exists prober, all constructed once in
// cmd/main.go and threaded unchanged from state to state.
type deps struct {
	scheme   *runtime.Scheme
	recorder *events.Recorder
	prober   credentials.Prober
}

// lifecycleTypes lists the mutually exclusive Actor lifecycle condition
// types the workflow engine drives; exactly one is True at a time.
var lifecycleTypes = []string{
	amphitheatrev1.ActorConditionPending,
	amphitheatrev1.ActorConditionBuilding,
	amphitheatrev1.ActorConditionRunning,
	amphitheatrev1.ActorConditionFailed,
}
