package config

import (
	"testing"

	"github.com/onsi/gomega"
)

func withEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoad_RequiresNamespace(t *testing.T) {
	g := gomega.NewWithT(t)

	_, err := Load()
	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(err.Error()).To(gomega.ContainSubstring("NAMESPACE"))
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	g := gomega.NewWithT(t)

	withEnv(t, map[string]string{"NAMESPACE": "amp-system"})
	cfg, err := Load()
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(cfg.ServiceAccountName).To(gomega.Equal(defaultServiceAccountName))
	g.Expect(cfg.NATSURL).To(gomega.Equal(defaultNATSURL))
	g.Expect(cfg.GitHubToken).To(gomega.BeEmpty())

	withEnv(t, map[string]string{
		"NAMESPACE":            "amp-system",
		"SERVICE_ACCOUNT_NAME": "custom-sa",
		"NATS_URL":             "nats://custom:4222",
		"GITHUB_TOKEN":         "ghp_token",
	})
	cfg, err = Load()
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(cfg.ServiceAccountName).To(gomega.Equal("custom-sa"))
	g.Expect(cfg.NATSURL).To(gomega.Equal("nats://custom:4222"))
	g.Expect(cfg.GitHubToken).To(gomega.Equal("ghp_token"))
}

func TestLoad_BootstrapRegistry(t *testing.T) {
	g := gomega.NewWithT(t)

	withEnv(t, map[string]string{
		"NAMESPACE":         "amp-system",
		"REGISTRY_URL":      "registry.example.com",
		"REGISTRY_USERNAME": "alice",
		"REGISTRY_PASSWORD": "s3cret",
	})
	cfg, err := Load()
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(cfg.Bootstrap.Registries).To(gomega.HaveLen(1))
	g.Expect(cfg.Bootstrap.Registries[0].Server).To(gomega.Equal("registry.example.com"))
	g.Expect(cfg.Bootstrap.Registries[0].Username).To(gomega.Equal("alice"))
	g.Expect(cfg.Bootstrap.Registries[0].Default).To(gomega.BeTrue())
}
