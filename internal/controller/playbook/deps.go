// Package playbook implements the Playbook controller's Pending ->
// Resolving -> Running state machine on top of internal/workflow.
package playbook

import (
	"k8s.io/apimachinery/pkg/runtime"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/events"
	"github.com/amphitheatre-app/amphitheatre/internal/resolver"
)

// deps bundles what every state's tasks need beyond the workflow.Context:
// the character resolver, the event recorder, and the scheme child
// resources are owner-stamped against, all constructed once in
// cmd/main.go and threaded unchanged from state to state.
type deps struct {
	resolver *resolver.Resolver
	recorder *events.Recorder
	scheme   *runtime.Scheme
}

// lifecycleTypes lists the mutually exclusive Playbook lifecycle condition
// types the workflow engine drives; exactly one is True at a time.
var lifecycleTypes = []string{
	amphitheatrev1.PlaybookConditionPending,
	amphitheatrev1.PlaybookConditionResolving,
	amphitheatrev1.PlaybookConditionRunning,
	amphitheatrev1.PlaybookConditionFailed,
}
