package resources

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/resources/containers"
)

// AppContainerName is the application container's name in every Deployment
// this repository produces.
const AppContainerName = "app"

// BuildDeployment returns the Deployment for actor's Running/Deploying
// state. When actor is live and once=false, the syncer and builder
// containers run alongside the app container as sidecars (spec.md 8.4.4)
// so source changes keep rebuilding the image in place; when once=true
// they already ran to completion as init containers of the syncer Pod
// (internal/resources/syncerpod.go), and only the app container remains as
// the long-running main container here.
func BuildDeployment(actor *amphitheatrev1.Actor, scheme *runtime.Scheme) (*appsv1.Deployment, error) {
	app := corev1.Container{
		Name:  AppContainerName,
		Image: actor.Spec.Image,
	}
	if actor.Spec.Deploy != nil {
		app.Env = actor.Spec.Deploy.Env
		app.Ports = actor.Spec.Deploy.ContainerPorts
	}

	podSpec := corev1.PodSpec{Containers: []corev1.Container{app}}

	if actor.Spec.Live {
		podSpec.Volumes = []corev1.Volume{
			containers.WorkspaceVolumeFromPVC(PVCName(actor.Spec.Name)),
			containers.DockerConfigVolume(credentials.DockerConfigSecretName),
		}
		if !actor.Spec.Once {
			syncer := containers.SyncerContainer("syncer", actor.Spec.Source, false)
			builder := containers.BuilderContainer(actor.Spec.Build.Method(), actor.Spec.Build, actor.Spec.Image)
			podSpec.Containers = append(podSpec.Containers, syncer, builder)
		}
	}

	labels := childLabels(actor, "deployment")
	deploy := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      actor.Spec.Name,
			Namespace: actor.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(int32(1)),
			Selector: &metav1.LabelSelector{MatchLabels: selectorLabels(actor)},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: selectorLabels(actor)},
				Spec:       podSpec,
			},
		},
	}
	if err := controllerutil.SetControllerReference(actor, deploy, scheme); err != nil {
		return nil, err
	}
	return deploy, nil
}
