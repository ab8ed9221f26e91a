// Package kubeapply centralizes the server-side-apply idiom used by every
// reconciler in this repository.
package kubeapply

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/amphitheatre-app/amphitheatre/internal/constant"
)

// Apply server-side-applies obj with this repository's field manager,
// forcing ownership of any conflicting field.
func Apply(ctx context.Context, c client.Client, obj client.Object) error {
	if err := c.Patch(ctx, obj, client.Apply, client.FieldOwner(constant.FieldManager), client.ForceOwnership); err != nil {
		return fmt.Errorf("apply %T %s/%s: %w", obj, obj.GetNamespace(), obj.GetName(), err)
	}
	return nil
}
