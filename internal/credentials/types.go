// Package credentials implements the process-wide credentials snapshot,
// its Secret-backed hot reload, the registry image-exists probe, and the
// Secret/ServiceAccount replication described by spec section 4.6.
package credentials

// Registry is one entry in the credentials document's registries list. The
// first entry with Default set is the one the resolver's image-derivation
// step and the Actor controller's build-or-skip decision use.
type Registry struct {
	Server   string `toml:"server"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Default  bool   `toml:"default"`
}

// Repository is a per-repository credential used when a character's source
// lives in a private SCM repository.
type Repository struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Credentials is the process-wide structure loaded from the amp-credentials
// Secret's TOML payload.
type Credentials struct {
	Registries   []Registry   `toml:"registries"`
	Repositories []Repository `toml:"repositories"`
}

// DockerIndexServer is the literal Docker Hub server string the resolver
// rewrites to a bare host during image derivation.
const DockerIndexServer = "https://index.docker.io/v1/"

// DockerIndexHost is what DockerIndexServer is rewritten to.
const DockerIndexHost = "index.docker.io"

// Default returns the first registry marked Default; when none is marked
// and exactly one registry is configured, it returns that one. Otherwise
// it returns ok=false (the resolver fails the Actor's image derivation
// with EmptyRegistryAddress in that case).
func (c Credentials) Default() (Registry, bool) {
	for _, r := range c.Registries {
		if r.Default {
			return r, true
		}
	}
	if len(c.Registries) == 1 {
		return c.Registries[0], true
	}
	return Registry{}, false
}

// Host rewrites the literal Docker Hub server URL to its bare host; every
// other server string passes through unchanged.
func (r Registry) Host() string {
	if r.Server == DockerIndexServer {
		return DockerIndexHost
	}
	return r.Server
}

// RepositoryFor returns the repository credential matching url, if any.
func (c Credentials) RepositoryFor(url string) (Repository, bool) {
	for _, r := range c.Repositories {
		if r.URL == url {
			return r, true
		}
	}
	return Repository{}, false
}
