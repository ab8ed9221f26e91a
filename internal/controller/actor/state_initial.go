package actor

import (
	"context"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/condition"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
)

// InitialState is the entry point for a freshly created Actor: it consults
// the registry to see whether the image is already built and, when the
// Actor isn't live, skips straight to Running if so.
func InitialState(d deps) workflow.State[*amphitheatrev1.Actor] {
	return &workflow.TaskState[*amphitheatrev1.Actor]{
		StateName: amphitheatrev1.ActorConditionPending,
		Tasks:     []workflow.Task[*amphitheatrev1.Actor]{beginBuildingTask{d: d}},
	}
}

type beginBuildingTask struct{ d deps }

func (beginBuildingTask) Matches(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor]) bool {
	return !condition.IsTrue(wc.Object, amphitheatrev1.ActorConditionBuilding) &&
		!condition.IsTrue(wc.Object, amphitheatrev1.ActorConditionRunning)
}

func (t beginBuildingTask) Execute(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor]) (workflow.Intent[*amphitheatrev1.Actor], error) {
	actor := wc.Object

	if !actor.Spec.Live {
		creds := wc.Credentials.Get()
		reg, _ := creds.Default()
		if t.d.prober.ImageExists(ctx, actor.Spec.Image, reg) {
			condition.SetLifecycleCondition(actor, lifecycleTypes,
				amphitheatrev1.ActorConditionRunning, constant.ReasonImageExists, "image already built")
			if err := wc.Client.Status().Update(ctx, actor); err != nil {
				return workflow.Intent[*amphitheatrev1.Actor]{}, err
			}
			t.d.recorder.Tracing(actor, "image already built, skipping to running")
			return workflow.NextState[*amphitheatrev1.Actor](RunningState(t.d)), nil
		}
	}

	condition.SetLifecycleCondition(actor, lifecycleTypes,
		amphitheatrev1.ActorConditionBuilding, constant.ReasonAutoRun, "building image")
	if err := wc.Client.Status().Update(ctx, actor); err != nil {
		return workflow.Intent[*amphitheatrev1.Actor]{}, err
	}
	t.d.recorder.Tracing(actor, "began building image")
	return workflow.NextState[*amphitheatrev1.Actor](BuildingState(t.d)), nil
}
