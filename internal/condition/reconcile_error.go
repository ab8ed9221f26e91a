/*
Copyright 2025 Konflux CI.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package condition

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// ErrorRequeueAfter is the error-policy requeue delay for transient
// infrastructure errors and resolver semantic errors.
const ErrorRequeueAfter = 60 * time.Second

// ReconcileErrorHandler centralizes "log, set Failed+Ready=False, update
// status, requeue in 60s" for both the Playbook and Actor controllers.
type ReconcileErrorHandler struct {
	log          logr.Logger
	statusClient client.StatusWriter
	obj          amphitheatrev1.ConditionAccessor
	failedType   string
	kind         string
}

// NewReconcileErrorHandler creates a handler scoped to one reconciled
// object. failedType is the kind-specific Failed lifecycle condition type
// (e.g. amphitheatrev1.PlaybookConditionFailed).
func NewReconcileErrorHandler(
	log logr.Logger,
	statusClient client.StatusWriter,
	obj amphitheatrev1.ConditionAccessor,
	failedType, kind string,
) *ReconcileErrorHandler {
	return &ReconcileErrorHandler{
		log:          log,
		statusClient: statusClient,
		obj:          obj,
		failedType:   failedType,
		kind:         kind,
	}
}

// Handle sets the Failed and Ready=False conditions, persists the status,
// logs, and requeues in 60s alongside the original error. apierrors.KindOf
// is available to callers that want to branch on the failure's Kind before
// reaching here; Handle itself treats every error the same way.
func (h *ReconcileErrorHandler) Handle(ctx context.Context, err error, reason, operation string) (ctrl.Result, error) {
	h.log.Error(err, fmt.Sprintf("failed to %s", operation))

	SetFailedCondition(h.obj, h.failedType, reason, fmt.Errorf("%s: %w", operation, err))

	if updateErr := h.statusClient.Update(ctx, toObject(h.obj)); updateErr != nil {
		h.log.Error(updateErr, fmt.Sprintf("failed to update %s status after %s failure", h.kind, operation))
	}

	return ctrl.Result{RequeueAfter: ErrorRequeueAfter}, err
}

// toObject narrows ConditionAccessor back to client.Object for the status
// write; every concrete type in api/v1 implements both.
func toObject(obj amphitheatrev1.ConditionAccessor) client.Object {
	co, ok := obj.(client.Object)
	if !ok {
		panic("condition: ConditionAccessor implementation must also be a client.Object")
	}
	return co
}
