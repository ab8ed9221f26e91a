package playbook

import (
	"context"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/apierrors"
	"github.com/amphitheatre-app/amphitheatre/internal/condition"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
)

// InitialState is the entry point for a freshly created Playbook: it
// ensures the per-Playbook JetStream stream exists, resolves the preface
// into the first character and appends it to spec.characters (spec.md
// §4.2's Initial actions), then hands off to Resolving.
func InitialState(d deps) workflow.State[*amphitheatrev1.Playbook] {
	return &workflow.TaskState[*amphitheatrev1.Playbook]{
		StateName: amphitheatrev1.PlaybookConditionPending,
		Tasks:     []workflow.Task[*amphitheatrev1.Playbook]{beginResolvingTask{d: d}},
	}
}

type beginResolvingTask struct{ d deps }

func (beginResolvingTask) Matches(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Playbook]) bool {
	return !condition.IsTrue(wc.Object, amphitheatrev1.PlaybookConditionResolving) &&
		!condition.IsTrue(wc.Object, amphitheatrev1.PlaybookConditionRunning)
}

func (t beginResolvingTask) Execute(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Playbook]) (workflow.Intent[*amphitheatrev1.Playbook], error) {
	playbook := wc.Object

	if err := wc.Stream.EnsureStream(ctx, playbook.Name); err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, apierrors.NewWithObject(apierrors.KindStreaming, "ensure stream", playbook.Name, err)
	}

	preface, err := t.d.resolver.ResolvePreface(ctx, playbook.Spec.Preface)
	if err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, apierrors.NewWithObject(apierrors.KindSemantic, "resolve preface", playbook.Name, err)
	}
	playbook.Spec.Characters = []amphitheatrev1.CharacterSpec{preface}
	if err := wc.Client.Update(ctx, playbook); err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, err
	}

	condition.SetLifecycleCondition(playbook, lifecycleTypes,
		amphitheatrev1.PlaybookConditionResolving, constant.ReasonAutoRun, "resolving character manifests")
	if err := wc.Client.Status().Update(ctx, playbook); err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, err
	}
	t.d.recorder.Tracing(playbook, "began resolving partner characters")

	return workflow.NextState[*amphitheatrev1.Playbook](ResolvingState(t.d)), nil
}
