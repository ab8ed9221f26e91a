package actor

import (
	"context"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/build"
	"github.com/amphitheatre-app/amphitheatre/internal/condition"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
)

// BuildingState selects the builder strategy for the Actor's recipe and
// drives it through Prepare, Build, and Completed, requeuing at each step
// that isn't ready yet.
func BuildingState(d deps) workflow.State[*amphitheatrev1.Actor] {
	return &workflow.TaskState[*amphitheatrev1.Actor]{
		StateName: amphitheatrev1.ActorConditionBuilding,
		Tasks:     []workflow.Task[*amphitheatrev1.Actor]{driveBuildTask{d: d}},
	}
}

type driveBuildTask struct{ d deps }

func (driveBuildTask) Matches(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor]) bool {
	return true
}

func (t driveBuildTask) Execute(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor]) (workflow.Intent[*amphitheatrev1.Actor], error) {
	actor := wc.Object
	creds := wc.Credentials.Get()

	builder := build.Select(build.Deps{Client: wc.Client, Scheme: t.d.scheme}, actor, creds)

	ok, err := builder.Prepare(ctx)
	if err != nil {
		return workflow.Intent[*amphitheatrev1.Actor]{}, err
	}
	if !ok {
		t.d.recorder.Reconciling(actor, "waiting for build prerequisites")
		return workflow.RequeueAfter[*amphitheatrev1.Actor](build.PrepareBackoff), nil
	}

	if err := builder.Build(ctx); err != nil {
		return workflow.Intent[*amphitheatrev1.Actor]{}, err
	}

	done, err := builder.Completed(ctx)
	if err != nil {
		return workflow.Intent[*amphitheatrev1.Actor]{}, err
	}
	if !done {
		t.d.recorder.Reconciling(actor, "waiting for build to complete")
		return workflow.RequeueAfter[*amphitheatrev1.Actor](build.PrepareBackoff), nil
	}

	condition.SetLifecycleCondition(actor, lifecycleTypes,
		amphitheatrev1.ActorConditionRunning, constant.ReasonAutoRun, "build completed")
	if err := wc.Client.Status().Update(ctx, actor); err != nil {
		return workflow.Intent[*amphitheatrev1.Actor]{}, err
	}
	t.d.recorder.Tracing(actor, "build completed")
	return workflow.NextState[*amphitheatrev1.Actor](RunningState(t.d)), nil
}
