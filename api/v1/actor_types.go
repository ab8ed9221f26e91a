package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ActorSpec is the derived, per-Playbook materialization of one character.
// It is computed once by the Playbook controller's Running state (see
// internal/controller/playbook) and never hand-edited after creation, short
// of the controller re-deriving and re-applying it.
type ActorSpec struct {
	Name string `json:"name"`

	// Image is the resolved container image reference. Must be non-empty
	// before the Actor may enter the deploying sub-state.
	// +optional
	Image string `json:"image,omitempty"`

	// Source is always nil when Live is true: a live Actor's source comes
	// through the syncer instead of a one-shot checkout.
	// +optional
	Source *SourceReference `json:"source,omitempty"`

	// +optional
	Build *BuildRecipe `json:"build,omitempty"`
	// +optional
	Deploy *DeployRecipe `json:"deploy,omitempty"`

	// +optional
	Live bool `json:"live,omitempty"`
	// +optional
	Once bool `json:"once,omitempty"`
}

// ActorStatus reflects the Pending -> Building -> Running lifecycle.
type ActorStatus struct {
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

const (
	ActorConditionPending  = "Pending"
	ActorConditionBuilding = "Building"
	ActorConditionRunning  = "Running"
	ActorConditionFailed   = "Failed"
)

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Image",type=string,JSONPath=".spec.image"
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=".metadata.creationTimestamp"

// Actor is the namespaced, per-character workload instance within a
// Playbook.
type Actor struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ActorSpec   `json:"spec,omitempty"`
	Status ActorStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ActorList contains a list of Actor.
type ActorList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Actor `json:"items"`
}

func (a *Actor) GetConditions() []metav1.Condition     { return a.Status.Conditions }
func (a *Actor) SetConditions(cond []metav1.Condition) { a.Status.Conditions = cond }

func init() {
	SchemeBuilder.Register(&Actor{}, &ActorList{})
}
