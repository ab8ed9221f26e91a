// Package hashutil implements the hash-gated idempotent child-resource
// update pattern: stamp a desired-state hash onto an object's annotations
// and skip the write when nothing changed.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/amphitheatre-app/amphitheatre/internal/constant"
)

// Of returns the hex-encoded SHA-256 digest of v's JSON encoding. v is
// typically an ActorSpec or a derived pod/container spec fragment.
func Of(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// NeedsUpdate reports whether obj's last-applied-hash annotation differs
// from desiredHash: read the live hash, and skip the write when it's
// already equal.
func NeedsUpdate(obj client.Object, desiredHash string) bool {
	return obj.GetAnnotations()[constant.LastAppliedHashAnnotation] != desiredHash
}

// Stamp sets the last-applied-hash annotation on obj to hash, creating the
// annotation map if necessary.
func Stamp(obj client.Object, hash string) {
	annotations := obj.GetAnnotations()
	if annotations == nil {
		annotations = map[string]string{}
	}
	annotations[constant.LastAppliedHashAnnotation] = hash
	obj.SetAnnotations(annotations)
}
