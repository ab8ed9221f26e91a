package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CharacterSpec is the portable, reusable description of one buildable and
// deployable component, the Go-native shape of an amp.toml manifest (see
// internal/manifest for the TOML encoding).
type CharacterSpec struct {
	Meta CharacterMeta `json:"meta"`

	// +optional
	Repository *SourceReference `json:"repository,omitempty"`
	// +optional
	Build *BuildRecipe `json:"build,omitempty"`
	// +optional
	Deploy *DeployRecipe `json:"deploy,omitempty"`
	// +optional
	Partners map[string]PartnerReference `json:"partners,omitempty"`

	// +optional
	Live bool `json:"live,omitempty"`
	// +optional
	Once bool `json:"once,omitempty"`
}

// CharacterStatus carries no lifecycle of its own; Characters are read-only
// manifests once fetched, so the field exists only to satisfy
// ConditionAccessor; hub-registry lookups read the CR and nothing in this
// repository writes conditions onto it.
type CharacterStatus struct {
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Repository",type=string,JSONPath=".spec.repository.repo"

// Character is a cluster-scoped catalog entry a Playbook's preface or a
// character's partners can reference by name via `registry: hub`.
type Character struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CharacterSpec   `json:"spec,omitempty"`
	Status CharacterStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// CharacterList contains a list of Character.
type CharacterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Character `json:"items"`
}

func (c *Character) GetConditions() []metav1.Condition   { return c.Status.Conditions }
func (c *Character) SetConditions(cond []metav1.Condition) { c.Status.Conditions = cond }

func init() {
	SchemeBuilder.Register(&Character{}, &CharacterList{})
}
