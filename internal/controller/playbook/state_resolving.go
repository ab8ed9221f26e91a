package playbook

import (
	"context"
	"sort"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/apierrors"
	"github.com/amphitheatre-app/amphitheatre/internal/condition"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
)

// ResolvingState performs one scan/fetch/append pass per reconcile over
// the partner graph, per spec.md §4.2: build `present` from the names
// already in spec.characters, fetch every partner referenced by some
// character that isn't present yet, and append what was fetched. It only
// hands off to Running once a pass finds nothing left to fetch — a
// partner chain longer than one ring is resolved over successive
// reconciles, not by looping to a fixed point inside one call.
func ResolvingState(d deps) workflow.State[*amphitheatrev1.Playbook] {
	return &workflow.TaskState[*amphitheatrev1.Playbook]{
		StateName: amphitheatrev1.PlaybookConditionResolving,
		Tasks:     []workflow.Task[*amphitheatrev1.Playbook]{resolveCharactersTask{d: d}},
	}
}

type resolveCharactersTask struct{ d deps }

func (resolveCharactersTask) Matches(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Playbook]) bool {
	return true
}

func (t resolveCharactersTask) Execute(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Playbook]) (workflow.Intent[*amphitheatrev1.Playbook], error) {
	playbook := wc.Object

	fetched, err := t.d.resolver.ResolvePass(ctx, playbook.Spec.Characters)
	if err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, apierrors.NewWithObject(apierrors.KindSemantic, "resolve partner characters", playbook.Name, err)
	}

	if len(fetched) == 0 {
		condition.SetLifecycleCondition(playbook, lifecycleTypes,
			amphitheatrev1.PlaybookConditionRunning, constant.ReasonAutoRun, "resolved all partner characters")
		if err := wc.Client.Status().Update(ctx, playbook); err != nil {
			return workflow.Intent[*amphitheatrev1.Playbook]{}, err
		}
		t.d.recorder.Tracing(playbook, "resolved character graph")
		return workflow.NextState[*amphitheatrev1.Playbook](RunningState(t.d)), nil
	}

	sort.Slice(fetched, func(i, j int) bool { return fetched[i].Meta.Name < fetched[j].Meta.Name })
	playbook.Spec.Characters = append(playbook.Spec.Characters, fetched...)
	if err := wc.Client.Update(ctx, playbook); err != nil {
		return workflow.Intent[*amphitheatrev1.Playbook]{}, err
	}
	t.d.recorder.Tracing(playbook, "fetched one ring of partner characters")

	return workflow.RequeueAfter[*amphitheatrev1.Playbook](0), nil
}
