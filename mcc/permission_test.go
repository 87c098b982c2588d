// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionGroupWildcards(t *testing.T) {
	tests := []struct {
		granted    []string
		permission string
		want       bool
	}{
		{nil, "heal.self", false},
		{[]string{"heal.self"}, "heal.self", true},
		{[]string{"heal.self"}, "heal.others", false},
		{[]string{"heal.*"}, "heal.others", true},
		{[]string{"*"}, "economy.admin", true},
		{[]string{"heal"}, "heal.self", false},
		{[]string{"heal.self.extra"}, "heal.self", false},
		{nil, "", true},
	}

	for _, tt := range tests {
		group := NewPermissionGroup(tt.granted...)
		assert.Equal(t, tt.want, group.HasPermission(tt.permission), "%v grants %q", tt.granted, tt.permission)
	}
}

func TestPermissionGroupClear(t *testing.T) {
	group := NewPermissionGroup("heal.self", "", "economy.balance")
	assert.Equal(t, []string{"heal.self", "economy.balance"}, group.Permissions())

	group.Clear()
	assert.Empty(t, group.Permissions())
	assert.False(t, group.HasPermission("heal.self"))
}
