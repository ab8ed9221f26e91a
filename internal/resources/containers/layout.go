// Package containers builds the container and volume fragments shared by
// the build Job, the kpack Image's builder pod (indirectly, via the
// ServiceAccount it runs as), and the live-mode syncer Pod: the workspace
// emptyDir, the docker-config mount, the syncer container (git-sync or
// amp-syncer), the Kaniko and Buildpacks lifecycle containers, and the
// uid/gid security context rules.
package containers

import (
	"strings"

	corev1 "k8s.io/api/core/v1"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// WorkspaceVolumeName and WorkspaceMountPath implement the shared emptyDir
// workspace every build container mounts at /workspace.
const (
	WorkspaceVolumeName = "workspace"
	WorkspaceMountPath  = "/workspace"
)

// WorkspaceVolume is the shared build workspace, backed by an emptyDir for
// batch-Job builds, or (see Volumes) by a PersistentVolumeClaim in live mode
// so a long-running syncer and builder can share a durable directory.
func WorkspaceVolume() corev1.Volume {
	return corev1.Volume{
		Name:         WorkspaceVolumeName,
		VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
	}
}

// WorkspaceVolumeFromPVC mounts an existing PVC as the workspace instead of
// an emptyDir — the live-mode path, where the workspace must outlive one
// Pod so a later build can reuse what the syncer already wrote.
func WorkspaceVolumeFromPVC(claimName string) corev1.Volume {
	return corev1.Volume{
		Name: WorkspaceVolumeName,
		VolumeSource: corev1.VolumeSource{
			PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: claimName},
		},
	}
}

// Docker credential mount paths: Kaniko expects a docker config directory
// at /kaniko/.docker, Buildpacks lifecycle containers expect one alongside
// the workspace at /workspace/.docker.
const (
	KanikoDockerConfigPath     = "/kaniko/.docker"
	BuildpacksDockerConfigPath = "/workspace/.docker"
)

// DockerConfigVolume mounts secretName's .dockerconfigjson key as
// config.json under the given container mount path.
func DockerConfigVolume(secretName string) corev1.Volume {
	return corev1.Volume{
		Name: "docker-config",
		VolumeSource: corev1.VolumeSource{
			Secret: &corev1.SecretVolumeSource{
				SecretName: secretName,
				Items: []corev1.KeyToPath{
					{Key: corev1.DockerConfigJsonKey, Path: "config.json"},
				},
			},
		},
	}
}

func dockerConfigMount(path string) corev1.VolumeMount {
	return corev1.VolumeMount{Name: "docker-config", MountPath: path, ReadOnly: true}
}

// SyncerImage names the image run for a source sync, chosen by whether the
// source is remote (git-sync clones a pinned revision) or local (amp-syncer
// streams a NATS-transported tree into the shared workspace).
func SyncerImage(source *amphitheatrev1.SourceReference) string {
	if source != nil {
		return "registry.k8s.io/git-sync/git-sync:v4.2.1"
	}
	return "ghcr.io/amphitheatre-app/amp-syncer:latest"
}

// SyncerContainer builds the source-sync container. For a remote source it
// runs git-sync once against the resolved revision; for a local source it
// runs amp-syncer, which drains the Playbook's JetStream file-sync subject
// into the workspace (the transport itself is an external collaborator,
// out of scope here — this container only names it).
func SyncerContainer(name string, source *amphitheatrev1.SourceReference, once bool) corev1.Container {
	c := corev1.Container{
		Name:         name,
		Image:        SyncerImage(source),
		VolumeMounts: []corev1.VolumeMount{{Name: WorkspaceVolumeName, MountPath: WorkspaceMountPath}},
	}
	if source != nil {
		c.Args = []string{
			"--repo=" + source.Repo,
			"--rev=" + source.Rev,
			"--root=" + WorkspaceMountPath,
			"--one-time=" + boolFlag(once),
		}
		return c
	}
	c.Args = []string{"--root=" + WorkspaceMountPath, "--once=" + boolFlag(once)}
	return c
}

func boolFlag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// KanikoContainer builds the Kaniko executor container that reads
// dockerfilePath inside the workspace (joined with an optional build
// context sub-directory) and pushes destination, authenticating via the
// docker-config Secret mounted at /kaniko/.docker.
func KanikoContainer(recipe *amphitheatrev1.BuildRecipe, destination, dockerConfigSecret string) corev1.Container {
	dockerfile := "Dockerfile"
	buildContext := WorkspaceMountPath
	var args []string
	if recipe != nil {
		if recipe.Dockerfile != nil && recipe.Dockerfile.Dockerfile != "" {
			dockerfile = recipe.Dockerfile.Dockerfile
		}
		if recipe.Context != "" {
			buildContext = joinPath(WorkspaceMountPath, recipe.Context)
		}
		args = append(args, recipe.Args...)
	}

	var env []corev1.EnvVar
	if recipe != nil {
		env = recipe.Env
	}

	c := corev1.Container{
		Name:  "kaniko",
		Image: "gcr.io/kaniko-project/executor:latest",
		Args: append([]string{
			"--dockerfile=" + joinPath(buildContext, dockerfile),
			"--context=dir://" + buildContext,
			"--destination=" + destination,
		}, args...),
		Env: env,
		VolumeMounts: []corev1.VolumeMount{
			{Name: WorkspaceVolumeName, MountPath: WorkspaceMountPath},
			dockerConfigMount(KanikoDockerConfigPath),
		},
	}
	return c
}

// BuilderContainer picks the image-building container for a live-mode
// sidecar/init pair by the character's build method: Kaniko for
// Dockerfile, the Buildpacks lifecycle otherwise. Both the syncer Pod and
// the Deployment's live/once=false sidecar layout (spec.md 8.4.4) build
// their builder container through this one selection so the two layouts
// can never disagree about which image it runs.
func BuilderContainer(method amphitheatrev1.BuildMethod, recipe *amphitheatrev1.BuildRecipe, destination string) corev1.Container {
	if method == amphitheatrev1.BuildMethodBuildpacks {
		var bp *amphitheatrev1.BuildpacksRecipe
		if recipe != nil {
			bp = recipe.Buildpacks
		}
		return LifecycleContainer(bp, destination, "")
	}
	return KanikoContainer(recipe, destination, "")
}

// buildpacksUID/buildpacksGID implement the Buildpacks pod-layout rule: the
// container runs as (1000,1000) for Heroku/GCP builders, or (1001,1000)
// for every other builder image.
func buildpacksUID(builder string) int64 {
	b := strings.ToLower(builder)
	if strings.Contains(b, "heroku") || strings.Contains(b, "gcp") || strings.Contains(b, "google") {
		return 1000
	}
	return 1001
}

const buildpacksGID = int64(1000)

// LifecycleContainer builds the Cloud Native Buildpacks lifecycle
// "creator" container for recipe.Buildpacks, running as the uid/gid pair
// dictated by the chosen builder image.
func LifecycleContainer(recipe *amphitheatrev1.BuildpacksRecipe, destination, dockerConfigSecret string) corev1.Container {
	args := []string{"-app=" + WorkspaceMountPath, destination}
	var builder string
	if recipe != nil {
		builder = recipe.Builder
		for _, bp := range recipe.Buildpacks {
			args = append([]string{"-buildpacks=" + bp}, args...)
		}
	}
	uid := buildpacksUID(builder)
	return corev1.Container{
		Name:  "lifecycle",
		Image: builder,
		Args:  args,
		SecurityContext: &corev1.SecurityContext{
			RunAsUser:  &uid,
			RunAsGroup: int64Ptr(buildpacksGID),
		},
		VolumeMounts: []corev1.VolumeMount{
			{Name: WorkspaceVolumeName, MountPath: WorkspaceMountPath},
			dockerConfigMount(BuildpacksDockerConfigPath),
		},
	}
}

// PodSecurityContext returns the pod-level security context for a
// Buildpacks build pod: fsGroup=1000 regardless of the chosen builder
// image, so the shared workspace volume is group-writable by the lifecycle
// container.
func PodSecurityContext() *corev1.PodSecurityContext {
	return &corev1.PodSecurityContext{FSGroup: int64Ptr(buildpacksGID)}
}

func int64Ptr(v int64) *int64 { return &v }

// IdleContainer is the main container of a once=true syncer Pod: the
// syncer and builder already ran to completion as init containers, so
// this container only needs to keep the Pod in a steady Running phase
// until the Actor controller observes the build finished and moves on to
// deploying the application image elsewhere.
func IdleContainer() corev1.Container {
	return corev1.Container{
		Name:    "idle",
		Image:   "registry.k8s.io/pause:3.9",
		Command: []string{"/pause"},
	}
}

func joinPath(base, rel string) string {
	if rel == "" {
		return base
	}
	if strings.HasPrefix(rel, "/") {
		return rel
	}
	return strings.TrimSuffix(base, "/") + "/" + rel
}
