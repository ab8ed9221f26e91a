package containers

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

var _ = Describe("SyncerContainer", func() {
	It("runs git-sync against a remote source with a pinned revision", func() {
		source := &amphitheatrev1.SourceReference{Repo: "https://example.com/app.git", Rev: "abc123"}
		c := SyncerContainer("syncer", source, false)

		Expect(c.Image).To(Equal("registry.k8s.io/git-sync/git-sync:v4.2.1"))
		Expect(c.Args).To(ContainElement("--repo=https://example.com/app.git"))
		Expect(c.Args).To(ContainElement("--rev=abc123"))
		Expect(c.Args).To(ContainElement("--one-time=false"))
	})

	It("runs amp-syncer for a local source, flagging a one-shot sync", func() {
		c := SyncerContainer("syncer", nil, true)

		Expect(c.Image).To(Equal("ghcr.io/amphitheatre-app/amp-syncer:latest"))
		Expect(c.Args).To(ContainElement("--once=true"))
	})
})

var _ = Describe("KanikoContainer", func() {
	It("defaults to a root Dockerfile and the workspace as build context", func() {
		c := KanikoContainer(nil, "registry.example.com/web:latest", "")

		Expect(c.Args).To(ContainElement("--dockerfile=" + WorkspaceMountPath + "/Dockerfile"))
		Expect(c.Args).To(ContainElement("--context=dir://" + WorkspaceMountPath))
		Expect(c.Args).To(ContainElement("--destination=registry.example.com/web:latest"))
	})

	It("honors an explicit Dockerfile path and build context sub-directory", func() {
		recipe := &amphitheatrev1.BuildRecipe{
			Dockerfile: &amphitheatrev1.DockerfileRecipe{Dockerfile: "docker/Dockerfile.prod"},
			Context:    "services/web",
			Args:       []string{"--build-arg=FOO=bar"},
		}
		c := KanikoContainer(recipe, "registry.example.com/web:latest", "")

		Expect(c.Args).To(ContainElement("--dockerfile=" + WorkspaceMountPath + "/services/web/docker/Dockerfile.prod"))
		Expect(c.Args).To(ContainElement("--context=dir://" + WorkspaceMountPath + "/services/web"))
		Expect(c.Args).To(ContainElement("--build-arg=FOO=bar"))
	})

	It("mounts the workspace and the Kaniko docker-config path", func() {
		c := KanikoContainer(nil, "registry.example.com/web:latest", "")

		Expect(c.VolumeMounts).To(ContainElement(corev1.VolumeMount{
			Name: "docker-config", MountPath: KanikoDockerConfigPath, ReadOnly: true,
		}))
	})
})

var _ = Describe("LifecycleContainer", func() {
	It("runs as uid/gid 1000/1000 for a Heroku builder image", func() {
		recipe := &amphitheatrev1.BuildpacksRecipe{Builder: "heroku/builder:22"}
		c := LifecycleContainer(recipe, "registry.example.com/web:latest", "")

		Expect(*c.SecurityContext.RunAsUser).To(Equal(int64(1000)))
		Expect(*c.SecurityContext.RunAsGroup).To(Equal(int64(1000)))
	})

	It("runs as uid/gid 1001/1000 for any other builder image", func() {
		recipe := &amphitheatrev1.BuildpacksRecipe{Builder: "paketobuildpacks/builder-jammy-base"}
		c := LifecycleContainer(recipe, "registry.example.com/web:latest", "")

		Expect(*c.SecurityContext.RunAsUser).To(Equal(int64(1001)))
		Expect(*c.SecurityContext.RunAsGroup).To(Equal(int64(1000)))
	})

	It("prepends a -buildpacks flag per ordered buildpack id", func() {
		recipe := &amphitheatrev1.BuildpacksRecipe{
			Builder:    "paketobuildpacks/builder-jammy-base",
			Buildpacks: []string{"paketo-buildpacks/go", "paketo-buildpacks/procfile"},
		}
		c := LifecycleContainer(recipe, "registry.example.com/web:latest", "")

		Expect(c.Args).To(ContainElement("-buildpacks=paketo-buildpacks/go"))
		Expect(c.Args).To(ContainElement("-buildpacks=paketo-buildpacks/procfile"))
		Expect(c.Args).To(ContainElement("registry.example.com/web:latest"))
	})
})

var _ = Describe("Volumes and security context", func() {
	It("backs the workspace with an emptyDir by default", func() {
		v := WorkspaceVolume()
		Expect(v.Name).To(Equal(WorkspaceVolumeName))
		Expect(v.EmptyDir).NotTo(BeNil())
	})

	It("backs the workspace with a PVC when one is given", func() {
		v := WorkspaceVolumeFromPVC("web-pvc")
		Expect(v.PersistentVolumeClaim.ClaimName).To(Equal("web-pvc"))
	})

	It("mounts the docker-config secret's key as config.json", func() {
		v := DockerConfigVolume("amp-docker-config")
		Expect(v.Secret.SecretName).To(Equal("amp-docker-config"))
		Expect(v.Secret.Items).To(ConsistOf(corev1.KeyToPath{Key: corev1.DockerConfigJsonKey, Path: "config.json"}))
	})

	It("sets fsGroup 1000 on the pod security context regardless of builder", func() {
		Expect(PodSecurityContext().FSGroup).To(HaveValue(Equal(int64(1000))))
	})
})

func TestContainerLayout(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Container Layout Suite")
}
