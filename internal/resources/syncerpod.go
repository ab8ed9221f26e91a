package resources

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/resources/containers"
)

// SyncerPodName names the long-running Pod that drives the live-mode
// builder strategies: a continuously-syncing source stream feeding a
// builder that keeps pushing new images as the workspace changes.
func SyncerPodName(actorName string) string { return actorName + "-syncer" }

// BuildSyncerPod returns the syncer Pod for a live Actor. build is the
// already-selected Kaniko or Lifecycle container. When once is false,
// syncer and build run as long-lived sidecars; when true, they run as init
// containers that exit after the first sync/build pass, matching the
// once-flag semantics used identically by the Deployment's pod layout once
// the Actor starts serving traffic.
func BuildSyncerPod(actor *amphitheatrev1.Actor, build corev1.Container, scheme *runtime.Scheme) (*corev1.Pod, error) {
	once := actor.Spec.Once
	syncer := containers.SyncerContainer("syncer", actor.Spec.Source, once)

	pod := &corev1.Pod{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Pod"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      SyncerPodName(actor.Spec.Name),
			Namespace: actor.Namespace,
			Labels:    childLabels(actor, "syncer"),
		},
		Spec: corev1.PodSpec{
			SecurityContext: containers.PodSecurityContext(),
			RestartPolicy:   corev1.RestartPolicyAlways,
			Volumes: []corev1.Volume{
				containers.WorkspaceVolumeFromPVC(PVCName(actor.Spec.Name)),
				containers.DockerConfigVolume(credentials.DockerConfigSecretName),
			},
		},
	}

	if once {
		pod.Spec.RestartPolicy = corev1.RestartPolicyOnFailure
		pod.Spec.InitContainers = []corev1.Container{syncer, build}
		pod.Spec.Containers = []corev1.Container{containers.IdleContainer()}
	} else {
		pod.Spec.Containers = []corev1.Container{syncer, build}
	}

	if err := controllerutil.SetControllerReference(actor, pod, scheme); err != nil {
		return nil, err
	}
	return pod, nil
}

// SyncerPodReady reports whether the syncer Pod's phase is Running: for the
// sidecar layout (once=false) the syncer and builder containers have
// started; for the init-container layout the init containers have exited
// and the Idle placeholder main container has started. It does not check
// whether a build has been pushed.
func SyncerPodReady(pod *corev1.Pod) bool {
	return pod != nil && (pod.Status.Phase == corev1.PodRunning)
}
