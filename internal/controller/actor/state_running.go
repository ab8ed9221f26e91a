package actor

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/condition"
	"github.com/amphitheatre-app/amphitheatre/internal/hashutil"
	"github.com/amphitheatre-app/amphitheatre/internal/kubeapply"
	"github.com/amphitheatre-app/amphitheatre/internal/resources"
	"github.com/amphitheatre-app/amphitheatre/internal/workflow"
)

// RunningState materializes the Actor's Deployment and, when the deploy
// recipe declares service ports, its Service. Both writes are idempotent,
// so this state never transitions away on its own.
func RunningState(d deps) workflow.State[*amphitheatrev1.Actor] {
	return &workflow.TaskState[*amphitheatrev1.Actor]{
		StateName: amphitheatrev1.ActorConditionRunning,
		Tasks:     []workflow.Task[*amphitheatrev1.Actor]{deployTask{d: d}},
	}
}

type deployTask struct{ d deps }

func (deployTask) Matches(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor]) bool {
	return true
}

func (t deployTask) Execute(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor]) (workflow.Intent[*amphitheatrev1.Actor], error) {
	actor := wc.Object

	if err := t.upsertDeployment(ctx, wc, actor); err != nil {
		return workflow.Intent[*amphitheatrev1.Actor]{}, err
	}

	if resources.NeedsService(actor) {
		if err := t.upsertService(ctx, wc, actor); err != nil {
			return workflow.Intent[*amphitheatrev1.Actor]{}, err
		}
	}

	condition.SetCondition(actor, metav1.Condition{
		Type:    condition.TypeReady,
		Status:  metav1.ConditionTrue,
		Reason:  condition.ReasonDeployed,
		Message: "deployment and service materialized",
	})
	if err := wc.Client.Status().Update(ctx, actor); err != nil {
		return workflow.Intent[*amphitheatrev1.Actor]{}, err
	}

	return workflow.Done[*amphitheatrev1.Actor](), nil
}

// upsertDeployment upserts the Actor's Deployment, skipping the write when
// its pod spec hash already matches what's on the cluster.
func (t deployTask) upsertDeployment(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor], actor *amphitheatrev1.Actor) error {
	deploy, err := resources.BuildDeployment(actor, t.d.scheme)
	if err != nil {
		return fmt.Errorf("build deployment: %w", err)
	}

	hash, err := hashutil.Of(deploy.Spec)
	if err != nil {
		return fmt.Errorf("hash deployment spec: %w", err)
	}

	existing := &appsv1.Deployment{}
	err = wc.Client.Get(ctx, types.NamespacedName{Namespace: deploy.Namespace, Name: deploy.Name}, existing)
	switch {
	case errors.IsNotFound(err):
		hashutil.Stamp(deploy, hash)
		return kubeapply.Apply(ctx, wc.Client, deploy)
	case err != nil:
		return fmt.Errorf("get deployment: %w", err)
	}

	if !hashutil.NeedsUpdate(existing, hash) {
		return nil
	}
	hashutil.Stamp(deploy, hash)
	return kubeapply.Apply(ctx, wc.Client, deploy)
}

// upsertService upserts the Actor's Service, skipping the write when its
// spec hash already matches what's on the cluster.
func (t deployTask) upsertService(ctx context.Context, wc *workflow.Context[*amphitheatrev1.Actor], actor *amphitheatrev1.Actor) error {
	svc, err := resources.BuildService(actor, t.d.scheme)
	if err != nil {
		return fmt.Errorf("build service: %w", err)
	}

	hash, err := hashutil.Of(svc.Spec)
	if err != nil {
		return fmt.Errorf("hash service spec: %w", err)
	}

	existing := &corev1.Service{}
	err = wc.Client.Get(ctx, types.NamespacedName{Namespace: svc.Namespace, Name: svc.Name}, existing)
	switch {
	case errors.IsNotFound(err):
		hashutil.Stamp(svc, hash)
		return kubeapply.Apply(ctx, wc.Client, svc)
	case err != nil:
		return fmt.Errorf("get service: %w", err)
	}

	if !hashutil.NeedsUpdate(existing, hash) {
		return nil
	}
	hashutil.Stamp(svc, hash)
	return kubeapply.Apply(ctx, wc.Client, svc)
}
