package credentials

import (
	"context"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// Prober performs the registry image-exists check: given an image
// reference and optional basic credential, it issues a HEAD against the
// registry to decide whether the image is already built. A probe failure
// is non-fatal and conservatively treated as "does not exist", favoring an
// unnecessary rebuild over a skipped one.
type Prober struct{}

// ImageExists reports whether ref already exists in its registry. cred may
// be the zero Registry, in which case the probe is attempted anonymously.
func (Prober) ImageExists(ctx context.Context, ref string, cred Registry) bool {
	log := logf.FromContext(ctx)

	tag, err := name.ParseReference(ref)
	if err != nil {
		log.V(1).Info("image-exists probe: unparseable reference, treating as not built", "ref", ref, "error", err)
		return false
	}

	opts := []remote.Option{remote.WithContext(ctx)}
	if cred.Username != "" {
		opts = append(opts, remote.WithAuth(&authn.Basic{Username: cred.Username, Password: cred.Password}))
	}

	if _, err := remote.Head(tag, opts...); err != nil {
		log.V(1).Info("image-exists probe failed, treating as not built", "ref", ref, "error", err)
		return false
	}
	return true
}
