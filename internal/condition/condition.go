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

// Package condition provides status-condition helpers: a generic
// ConditionAccessor, a way to set a condition idempotently, and a way to
// fail a reconcile with both a typed lifecycle condition and the aggregate
// Ready condition.
package condition

import (
	apimeta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// SetCondition updates or adds a condition to a resource's status. It
// automatically sets ObservedGeneration, and preserves LastTransitionTime
// when the condition status hasn't changed, per apimeta.SetStatusCondition's
// contract — repeated calls with the same status are a no-op write.
func SetCondition(obj amphitheatrev1.ConditionAccessor, cond metav1.Condition) {
	cond.ObservedGeneration = obj.GetGeneration()

	conditions := obj.GetConditions()
	apimeta.SetStatusCondition(&conditions, cond)
	obj.SetConditions(conditions)
}

// SetLifecycleCondition sets the named lifecycle condition to True and
// clears any other lifecycle condition type from the list, since the
// workflow engine's states are mutually exclusive and transitions are
// monotonic within one lifecycle.
func SetLifecycleCondition(obj amphitheatrev1.ConditionAccessor, lifecycleTypes []string, activeType, reason, message string) {
	SetCondition(obj, metav1.Condition{
		Type:    activeType,
		Status:  metav1.ConditionTrue,
		Reason:  reason,
		Message: message,
	})
	conditions := obj.GetConditions()
	for _, t := range lifecycleTypes {
		if t == activeType {
			continue
		}
		apimeta.RemoveStatusCondition(&conditions, t)
	}
	obj.SetConditions(conditions)
}

// SetFailedCondition sets a Failed lifecycle condition and the aggregate
// Ready=False condition.
func SetFailedCondition(obj amphitheatrev1.ConditionAccessor, failedType, reason string, err error) {
	SetCondition(obj, metav1.Condition{
		Type:    failedType,
		Status:  metav1.ConditionTrue,
		Reason:  reason,
		Message: err.Error(),
	})
	SetCondition(obj, metav1.Condition{
		Type:    TypeReady,
		Status:  metav1.ConditionFalse,
		Reason:  reason,
		Message: err.Error(),
	})
}

// IsTrue returns true if the specified condition type has status True.
func IsTrue(obj amphitheatrev1.ConditionAccessor, conditionType string) bool {
	cond := apimeta.FindStatusCondition(obj.GetConditions(), conditionType)
	return cond != nil && cond.Status == metav1.ConditionTrue
}

// StatusType returns the condition type of the first True lifecycle
// condition found among candidates, in order, or "" if none is set — this
// is how the workflow engine recovers the object's current status
// condition to construct its initial state.
func StatusType(obj amphitheatrev1.ConditionAccessor, candidates []string) string {
	for _, t := range candidates {
		if IsTrue(obj, t) {
			return t
		}
	}
	return ""
}
