package playbook

import (
	"context"
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/hashutil"
	"github.com/amphitheatre-app/amphitheatre/internal/kubeapply"
	"github.com/amphitheatre-app/amphitheatre/internal/resolver"
	"github.com/amphitheatre-app/amphitheatre/internal/resources"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
	"github.com/amphitheatre-app/amphitheatre/pkg/hashedconfigmap"
)

// RunningState materializes the owned namespace and one Actor per resolved
// character, then waits for the next change: everything it does is
// idempotent, so there's no further state transition once the resolved set
// is stable.
func RunningState(d deps) workflow.State[*amphitheatrev1.Playbook] {
	return &workflow.TaskState[*amphitheatrev1.Playbook]{
		StateName: amphitheatrev1.PlaybookConditionRunning,
		Tasks:     []workflow.Task[*amphitheatrev1.Playbook]{materializeTask{d: d}},
	}
}

type materializeTask struct{ d deps }

func (materializeTask) Matches(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Playbook]) bool {
	return true
}

func (t materializeTask) Execute(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Playbook]) (workflow.Intent[*amphitheatrev1.Playbook], error) {
	playbook := wc.Object

	ns, err := resources.BuildNamespace(playbook, playbook.Name, t.d.scheme)
	if err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, fmt.Errorf("build namespace: %w", err)
	}
	if err := kubeapply.Apply(ctx, wc.Client, ns); err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, err
	}
	if playbook.Status.Namespace != ns.Name {
		playbook.Status.Namespace = ns.Name
		if err := wc.Client.Status().Update(ctx, playbook); err != nil {
			return workflow.Intent[*amphitheatrev1.Playbook]{}, err
		}
	}

	if err := t.snapshotCharacters(ctx, wc, playbook, ns.Name); err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, err
	}

	creds := wc.Credentials.Get()
	for _, character := range playbook.Spec.Characters {
		if err := t.materializeActor(ctx, wc, ns.Name, character, creds); err != nil {
			return workflow.Intent[*amphitheatrev1.Playbook]{}, err
		}
	}

	return workflow.Done[*amphitheatrev1.Playbook](), nil
}

// snapshotCharacters writes the resolved character graph into a
// content-addressed ConfigMap in the materialized namespace, so an operator
// can read `kubectl get/describe configmap` instead of decoding the
// Playbook's spec.characters field. The ConfigMap's name rolls whenever
// the graph changes and stale ones are pruned automatically.
func (t materializeTask) snapshotCharacters(
	ctx context.Context,
	wc *workflow.Context[*amphitheatrev1.Playbook],
	playbook *amphitheatrev1.Playbook,
	namespace string,
) error {
	payload, err := json.MarshalIndent(playbook.Spec.Characters, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal resolved characters: %w", err)
	}
	hcm := hashedconfigmap.New(wc.Client, t.d.scheme, playbook.Name+"-characters", namespace,
		"characters.json", constant.CharactersConfigMapLabel, constant.FieldManager)
	if _, err := hcm.Apply(ctx, string(payload), playbook); err != nil {
		return fmt.Errorf("snapshot resolved characters: %w", err)
	}
	return nil
}

func (t materializeTask) materializeActor(
	ctx context.Context,
	wc *workflow.Context[*amphitheatrev1.Playbook],
	namespace string,
	character amphitheatrev1.CharacterSpec,
	creds credentials.Credentials,
) error {
	image, err := resolver.DeriveImage(creds, character.Meta.Name)
	if err != nil {
		return fmt.Errorf("derive image for %s: %w", character.Meta.Name, err)
	}

	source := character.Repository
	if character.Live {
		source = nil
	}

	spec := amphitheatrev1.ActorSpec{
		Name:   character.Meta.Name,
		Image:  image,
		Source: source,
		Build:  character.Build,
		Deploy: character.Deploy,
		Live:   character.Live,
		Once:   character.Once,
	}

	actor, err := resources.BuildActor(wc.Object, namespace, spec, t.d.scheme)
	if err != nil {
		return fmt.Errorf("build actor %s: %w", spec.Name, err)
	}

	hash, err := hashutil.Of(actor.Spec)
	if err != nil {
		return fmt.Errorf("hash actor spec %s: %w", spec.Name, err)
	}

	existing := &amphitheatrev1.Actor{}
	err = wc.Client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: spec.Name}, existing)
	switch {
	case errors.IsNotFound(err):
		hashutil.Stamp(actor, hash)
		return kubeapply.Apply(ctx, wc.Client, actor)
	case err != nil:
		return fmt.Errorf("get actor %s: %w", spec.Name, err)
	}

	if !hashutil.NeedsUpdate(existing, hash) {
		return nil
	}
	hashutil.Stamp(actor, hash)
	return kubeapply.Apply(ctx, wc.Client, actor)
}
