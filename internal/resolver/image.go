package resolver

import (
	"fmt"

	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
)

// DeriveImage derives a character's image reference as
// "<registry host>/<registry username>/<character name>" from the default
// registry credential, since no character pins an explicit image; when the
// registry has no username the middle segment is left out. It fails
// with EmptyRegistryAddressError if no default registry is configured.
func DeriveImage(creds credentials.Credentials, characterName string) (string, error) {
	reg, ok := creds.Default()
	if !ok {
		return "", EmptyRegistryAddressError{}
	}
	host := reg.Host()
	if host == "" {
		return "", EmptyRegistryAddressError{}
	}
	if reg.Username == "" {
		return fmt.Sprintf("%s/%s", host, characterName), nil
	}
	return fmt.Sprintf("%s/%s/%s", host, reg.Username, characterName), nil
}
