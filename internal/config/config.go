// Package config collects the environment-driven settings cmd/main.go
// needs before it can start the manager: the controllers' own namespace,
// the default build ServiceAccount, and the NATS JetStream endpoint the
// streaming handle connects to.
package config

import (
	"fmt"
	"os"

	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
)

// Config is the process-wide settings loaded once at startup.
type Config struct {
	// Namespace is the controllers' own namespace, used as the source of
	// the amp-credentials Secret the namespace bootstrap watch replicates.
	Namespace string
	// ServiceAccountName is patched with registry pull secrets by
	// internal/credentials.Syncer.
	ServiceAccountName string
	// NATSURL is the JetStream endpoint internal/streaming.Connect dials.
	NATSURL string
	// GitHubToken authenticates internal/scm's GitHub client; empty is
	// valid and limits resolution to public repositories.
	GitHubToken string
	// Bootstrap seeds the credentials.Store before the amp-credentials
	// Secret has been read even once, so image derivation and registry
	// probes work during the process's first few seconds.
	Bootstrap credentials.Credentials
}

const (
	envNamespace          = "NAMESPACE"
	envServiceAccountName = "SERVICE_ACCOUNT_NAME"
	envNATSURL            = "NATS_URL"
	envGitHubToken        = "GITHUB_TOKEN"
	envRegistryURL        = "REGISTRY_URL"
	envRegistryUsername   = "REGISTRY_USERNAME"
	envRegistryPassword   = "REGISTRY_PASSWORD"

	defaultServiceAccountName = "default"
	defaultNATSURL            = "nats://amp-nats:4222"
)

// Load reads the environment, applying the defaults above to every
// optional setting that is unset.
func Load() (Config, error) {
	cfg := Config{
		Namespace:          os.Getenv(envNamespace),
		ServiceAccountName: getenvDefault(envServiceAccountName, defaultServiceAccountName),
		NATSURL:            getenvDefault(envNATSURL, defaultNATSURL),
		GitHubToken:        os.Getenv(envGitHubToken),
	}
	if cfg.Namespace == "" {
		return Config{}, fmt.Errorf("%s must be set (usually via the Downward API)", envNamespace)
	}

	if url := os.Getenv(envRegistryURL); url != "" {
		cfg.Bootstrap.Registries = []credentials.Registry{{
			Server:   url,
			Username: os.Getenv(envRegistryUsername),
			Password: os.Getenv(envRegistryPassword),
			Default:  true,
		}}
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
