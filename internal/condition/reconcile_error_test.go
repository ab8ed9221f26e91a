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
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

func TestReconcileErrorHandler_Handle(t *testing.T) {
	g := gomega.NewWithT(t)

	scheme := runtime.NewScheme()
	g.Expect(amphitheatrev1.AddToScheme(scheme)).To(gomega.Succeed())
	actor := &amphitheatrev1.Actor{}
	actor.Name = "svc-a"
	actor.Namespace = "ns"

	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(actor).WithStatusSubresource(actor).Build()

	h := NewReconcileErrorHandler(logr.Discard(), c.Status(), actor, amphitheatrev1.ActorConditionFailed, "Actor")
	result, err := h.Handle(context.Background(), errors.New("boom"), "BuildFailed", "build image")

	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(result.RequeueAfter).To(gomega.Equal(ErrorRequeueAfter))
	g.Expect(IsTrue(actor, amphitheatrev1.ActorConditionFailed)).To(gomega.BeTrue())
}
