package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PrefaceRegistry selects where the Playbook's starting character manifest
// comes from.
type PrefaceRegistry string

const (
	// PrefaceRegistryCatalog clones characters/<name>/<version>/amp.toml from
	// the hard-coded catalog repository.
	PrefaceRegistryCatalog PrefaceRegistry = "catalog"
	// PrefaceRegistryHub reads a Character CR named <name> from the cluster.
	PrefaceRegistryHub PrefaceRegistry = "hub"
)

// PrefaceSpec names a way to obtain the Playbook's first character: Inline,
// Git, or Registry+Name. The resolver uses the first of those that is set,
// in that order, and does not reject a preface that sets more than one. A
// Registry other than catalog or hub is an UnknownCharacterRegistry error,
// and a preface with none of them set is an UnknownPreface error.
type PrefaceSpec struct {
	// +optional
	Registry PrefaceRegistry `json:"registry,omitempty"`
	// +optional
	Name string `json:"name,omitempty"`
	// +optional
	Version string `json:"version,omitempty"`

	// +optional
	Git *SourceReference `json:"git,omitempty"`

	// +optional
	Inline *CharacterSpec `json:"inline,omitempty"`
}

// PlaybookSpec is the user-declared unit of work.
type PlaybookSpec struct {
	Title string `json:"title"`

	// +optional
	Description string `json:"description,omitempty"`

	Preface PrefaceSpec `json:"preface"`

	// Characters is the resolved set, keyed by meta.name, grown by the
	// Resolving state until every declared partner already appears by name.
	// +optional
	Characters []CharacterSpec `json:"characters,omitempty"`

	// TTLSeconds, if set, is consumed by the TTL reaper: the Playbook is
	// deleted once creationTimestamp + TTLSeconds has elapsed.
	// +optional
	TTLSeconds *int64 `json:"ttlSeconds,omitempty"`
}

// PlaybookStatus reflects the Initial -> Resolving -> Running lifecycle.
type PlaybookStatus struct {
	// +optional
	Namespace string `json:"namespace,omitempty"`

	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

const (
	PlaybookConditionPending   = "Pending"
	PlaybookConditionResolving = "Resolving"
	PlaybookConditionRunning   = "Running"
	PlaybookConditionSucceeded = "Succeeded"
	PlaybookConditionFailed    = "Failed"
)

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Namespace",type=string,JSONPath=".status.namespace"
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=".metadata.creationTimestamp"

// Playbook is the top-level, user-declared unit of work: it owns a
// namespace and the set of Actors materialized from its resolved characters.
type Playbook struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   PlaybookSpec   `json:"spec,omitempty"`
	Status PlaybookStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// PlaybookList contains a list of Playbook.
type PlaybookList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Playbook `json:"items"`
}

func (p *Playbook) GetConditions() []metav1.Condition     { return p.Status.Conditions }
func (p *Playbook) SetConditions(cond []metav1.Condition) { p.Status.Conditions = cond }

func init() {
	SchemeBuilder.Register(&Playbook{}, &PlaybookList{})
}
