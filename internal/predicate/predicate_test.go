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

package predicate

import (
	"testing"

	"github.com/onsi/gomega"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/event"
)

func TestGenerationChangedPredicate(t *testing.T) {
	g := gomega.NewWithT(t)

	old := &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Generation: 1}}
	same := &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Generation: 1}}
	changed := &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Generation: 2}}

	g.Expect(GenerationChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: same})).To(gomega.BeFalse())
	g.Expect(GenerationChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: changed})).To(gomega.BeTrue())
}

func TestDeploymentReadinessPredicate(t *testing.T) {
	g := gomega.NewWithT(t)

	old := &appsv1.Deployment{Status: appsv1.DeploymentStatus{ReadyReplicas: 0, Replicas: 1}}
	ready := &appsv1.Deployment{Status: appsv1.DeploymentStatus{ReadyReplicas: 1, Replicas: 1}}

	g.Expect(DeploymentReadinessPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: old})).To(gomega.BeFalse())
	g.Expect(DeploymentReadinessPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: ready})).To(gomega.BeTrue())
}

func TestLabelsOrAnnotationsChangedPredicate(t *testing.T) {
	g := gomega.NewWithT(t)

	old := &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{"a": "1"}}}
	same := &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{"a": "1"}}}
	changed := &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{"a": "2"}}}

	g.Expect(LabelsOrAnnotationsChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: same})).To(gomega.BeFalse())
	g.Expect(LabelsOrAnnotationsChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: changed})).To(gomega.BeTrue())
}
