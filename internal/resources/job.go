package resources

import (
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/resources/containers"
)

// BuildJob returns the batch Job that runs the Kaniko builder strategy (any
// source, not live); non-live Buildpacks builds go through kpack instead.
// build is the main build container; syncer runs as an init container since a batch
// Job always completes the sync before building, never sidecars it.
func BuildJob(actor *amphitheatrev1.Actor, build corev1.Container, syncer *corev1.Container, owner *runtime.Scheme) (*batchv1.Job, error) {
	podSpec := corev1.PodSpec{
		RestartPolicy: corev1.RestartPolicyNever,
		Volumes:       []corev1.Volume{containers.WorkspaceVolume(), containers.DockerConfigVolume(credentials.DockerConfigSecretName)},
		Containers:    []corev1.Container{build},
	}
	if syncer != nil {
		podSpec.InitContainers = []corev1.Container{*syncer}
	}

	job := &batchv1.Job{
		TypeMeta: metav1.TypeMeta{APIVersion: "batch/v1", Kind: "Job"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      actor.Spec.Name + "-build",
			Namespace: actor.Namespace,
			Labels:    childLabels(actor, "build-job"),
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: ptr.To(int32(2)),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: childLabels(actor, "build-job")},
				Spec:       podSpec,
			},
		},
	}
	if err := controllerutil.SetControllerReference(actor, job, owner); err != nil {
		return nil, err
	}
	return job, nil
}

// JobCompleted reports the Kaniko completion rule: the Job's
// .status.succeeded >= 1.
func JobCompleted(job *batchv1.Job) bool {
	return job != nil && job.Status.Succeeded >= 1
}

func childLabels(actor *amphitheatrev1.Actor, component string) map[string]string {
	return map[string]string{
		constant.OwnerLabel:     actor.Name,
		constant.CharacterLabel: actor.Spec.Name,
		constant.ComponentLabel: component,
	}
}

// selectorLabels is the Deployment's pod-template label and the Service's
// selector (end-to-end scenario: "Service with selector
// amphitheatre.app/character=svc-a"). Character names are unique within a
// Playbook's namespace, so this single label is sufficient to select
// exactly the target Deployment's Pods.
func selectorLabels(actor *amphitheatrev1.Actor) map[string]string {
	return map[string]string{constant.CharacterLabel: actor.Spec.Name}
}
