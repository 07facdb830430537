package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities(t *testing.T) {
	testCases := []struct {
		name         string
		roles        []string
		publish      bool
		modifyRights bool
		design       bool
	}{
		{name: "no roles", roles: nil},
		{name: "visitor", roles: []string{Visitor, User}},
		{name: "publisher", roles: []string{Publisher}, publish: true},
		{name: "designer", roles: []string{Designer}, design: true},
		{name: "auth manager", roles: []string{AuthManager}, modifyRights: true},
		{name: "admin", roles: []string{Admin}, publish: true, modifyRights: true, design: true},
		{name: "sysadmin alone grants nothing", roles: []string{SysAdmin}},
		{name: "case insensitive", roles: []string{"publisher", "DESIGNER"}, publish: true, design: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.publish, CanPublish(tc.roles))
			assert.Equal(t, tc.modifyRights, CanModifyRights(tc.roles))
			assert.Equal(t, tc.design, CanDesign(tc.roles))
		})
	}
}

func TestPermissions(t *testing.T) {
	perms := Permissions([]string{Publisher, Admin})
	assert.ElementsMatch(t, []Permission{PermPublish, PermModifyRights, PermDesign}, perms)
	assert.Empty(t, Permissions([]string{Visitor}))
}

func TestSystemRoles(t *testing.T) {
	assert.Equal(t,
		[]string{"SysAdmin", "Admin", "Application", "AuthManager", "Publisher", "Designer", "User", "Visitor"},
		SystemRoles(),
	)
	assert.True(t, IsSystemRole("admin"))
	assert.False(t, IsSystemRole("Editor"))
}
