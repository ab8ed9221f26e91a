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

import "github.com/amphitheatre-app/amphitheatre/internal/constant"

// TypeReady is the aggregate readiness condition type, distinct from the
// per-lifecycle condition types (Pending/Resolving/Running/... ) that the
// workflow engine drives.
const TypeReady = constant.ConditionTypeReady

const (
	ReasonAutoRun            = constant.ReasonAutoRun
	ReasonUnknownPreface     = constant.ReasonUnknownPreface
	ReasonUnknownRegistry    = constant.ReasonUnknownRegistry
	ReasonEmptyRegistryAddr  = constant.ReasonEmptyRegistryAddr
	ReasonApplyFailed        = constant.ReasonApplyFailed
	ReasonCleanupFailed      = constant.ReasonCleanupFailed
	ReasonStatusUpdateFailed = constant.ReasonStatusUpdateFailed
	ReasonBuilderNotReady    = constant.ReasonBuilderNotReady
	ReasonBuildFailed        = constant.ReasonBuildFailed
	ReasonImageExists        = constant.ReasonImageExists
	ReasonDeployed           = constant.ReasonDeployed
)
