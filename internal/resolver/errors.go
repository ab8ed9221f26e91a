package resolver

import "fmt"

// UnknownPrefaceError is returned when a PrefaceSpec matches none of
// catalog/hub/git/inline.
type UnknownPrefaceError struct{}

func (UnknownPrefaceError) Error() string { return "UnknownPreface" }

// UnknownRegistryError is returned when PrefaceSpec.Registry is neither
// "catalog" nor "hub".
type UnknownRegistryError struct{ Registry string }

func (e UnknownRegistryError) Error() string {
	return fmt.Sprintf("UnknownCharacterRegistry(%q)", e.Registry)
}

// EmptyRegistryAddressError is returned when image derivation needs a
// default registry and none is configured.
type EmptyRegistryAddressError struct{}

func (EmptyRegistryAddressError) Error() string { return "EmptyRegistryAddress" }
