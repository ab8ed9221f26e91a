// Package constant centralizes label, annotation, and field-manager names
// shared across reconcilers.
package constant

const (
	// Domain is the API group and the prefix used for every finalizer,
	// label, and annotation this repository owns.
	Domain = "amphitheatre.app"

	// FieldManager is the server-side-apply field manager used by every
	// hash-gated child resource update.
	FieldManager = "amp-controllers"

	// PlaybookFinalizer runs on Playbook deletion: it tears down the
	// associated JetStream stream before owner references clean up the rest.
	PlaybookFinalizer = "playbooks." + Domain + "/finalizer"
	// ActorFinalizer runs on Actor deletion.
	ActorFinalizer = "actors." + Domain + "/finalizer"

	// OwnerLabel records the owning Playbook or Actor name for list/select
	// operations that can't rely on owner references alone (e.g. Service
	// selectors).
	OwnerLabel = Domain + "/owner"
	// CharacterLabel records the character name an Actor and its children
	// were derived from; used as the Service selector.
	CharacterLabel = Domain + "/character"
	// ComponentLabel marks which child-resource role a resource plays
	// (job, deployment, service, syncer, image, pvc).
	ComponentLabel = Domain + "/component"

	// SyncLabel, when set to "true" on a Namespace, triggers credential
	// replication into that namespace.
	SyncLabel = "syncer." + Domain + "/sync"

	// LastAppliedHashAnnotation gates idempotent child-resource updates.
	LastAppliedHashAnnotation = Domain + "/last-applied-hash"

	// CharactersConfigMapLabel marks the content-addressed ConfigMap the
	// Playbook's Running state writes with the resolved character graph, so
	// an operator can inspect it with kubectl without reading CR status.
	CharactersConfigMapLabel = Domain + "/characters-manifest"

	// ConditionTypeReady names the overall Ready condition surfaced to
	// Kubernetes-native tooling (kubectl wait, status printers); the
	// per-lifecycle condition types (Pending/Resolving/.../Failed) remain
	// the source of truth the workflow engine drives.
	ConditionTypeReady = "Ready"
)

const (
	ReasonAutoRun             = "AutoRun"
	ReasonUnknownPreface      = "UnknownPreface"
	ReasonUnknownRegistry     = "UnknownCharacterRegistry"
	ReasonEmptyRegistryAddr   = "EmptyRegistryAddress"
	ReasonApplyFailed         = "ApplyFailed"
	ReasonCleanupFailed       = "CleanupFailed"
	ReasonStatusUpdateFailed  = "StatusUpdateFailed"
	ReasonBuilderNotReady     = "BuilderNotReady"
	ReasonBuildFailed         = "BuildFailed"
	ReasonImageExists         = "ImageExists"
	ReasonDeployed            = "Deployed"
	ReasonNamespaceTerminated = "NamespaceTerminating"
)
