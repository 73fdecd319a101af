// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package api

// Repository permission levels which can be granted to a collaborator.
const (
	PermissionPull     = "pull"
	PermissionTriage   = "triage"
	PermissionPush     = "push"
	PermissionMaintain = "maintain"
	PermissionAdmin    = "admin"
)

// IsPermission reports whether s is a known collaborator permission level.
func IsPermission(s string) bool {
	switch s {
	case PermissionPull, PermissionTriage, PermissionPush, PermissionMaintain, PermissionAdmin:
		return true
	default:
		return false
	}
}
