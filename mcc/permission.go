// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

import (
	"strings"
	"sync"
)

// PermissionGroup is a set of dotted permission nodes. A "*" segment grants
// every node below it, so "heal.*" grants "heal.self" and "heal.others".
type PermissionGroup struct {
	lock        sync.RWMutex
	permissions [][]string
}

// NewPermissionGroup returns a group holding the specified permissions.
func NewPermissionGroup(permissions ...string) *PermissionGroup {
	group := &PermissionGroup{}
	for _, permission := range permissions {
		group.AddPermission(permission)
	}

	return group
}

// AddPermission adds permission to the group.
func (group *PermissionGroup) AddPermission(permission string) {
	if len(permission) == 0 {
		return
	}

	group.lock.Lock()
	group.permissions = append(group.permissions, strings.Split(permission, "."))
	group.lock.Unlock()
}

// Clear removes all permissions from the group.
func (group *PermissionGroup) Clear() {
	group.lock.Lock()
	group.permissions = nil
	group.lock.Unlock()
}

// Permissions returns the permissions of the group.
func (group *PermissionGroup) Permissions() []string {
	group.lock.RLock()
	defer group.lock.RUnlock()

	result := make([]string, len(group.permissions))
	for i, split := range group.permissions {
		result[i] = strings.Join(split, ".")
	}

	return result
}

// HasPermission reports whether the group grants permission.
// The empty permission is always granted.
func (group *PermissionGroup) HasPermission(permission string) bool {
	if len(permission) == 0 {
		return true
	}

	split := strings.Split(permission, ".")

	group.lock.RLock()
	defer group.lock.RUnlock()

	for _, template := range group.permissions {
		if checkPermission(split, template) {
			return true
		}
	}

	return false
}

func checkPermission(permission []string, template []string) bool {
	lenP := len(permission)
	lenT := len(template)
	for i := 0; i < min(lenP, lenT); i++ {
		if template[i] == "*" {
			return true
		} else if permission[i] != template[i] {
			return false
		}
	}

	return lenP == lenT
}
