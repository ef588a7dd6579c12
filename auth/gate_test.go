package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cafesys/cafe-backend/auth"
)

func TestParseRole(t *testing.T) {
	role, ok := auth.ParseRole(" Manager ")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleManager, role)

	_, ok = auth.ParseRole("barista")
	assert.False(t, ok)
}

func TestAuthorize(t *testing.T) {
	customer := auth.Identity{Login: "alice", Role: auth.RoleCustomer}
	employee := auth.Identity{Login: "worker", Role: auth.RoleEmployee}
	manager := auth.Identity{Login: "boss", Role: auth.RoleManager}

	ownUnpaid := auth.OrderTarget{OwnerLogin: "alice", Paid: false}
	ownPaid := auth.OrderTarget{OwnerLogin: "alice", Paid: true}
	foreign := auth.OrderTarget{OwnerLogin: "bob", Paid: false}

	tests := []struct {
		name    string
		id      auth.Identity
		action  auth.Action
		target  any
		allowed bool
	}{
		{"no identity", auth.Identity{}, auth.ActionCreateOrder, nil, false},
		{"invalid role", auth.Identity{Login: "x", Role: "barista"}, auth.ActionCreateOrder, nil, false},

		{"customer creates order", customer, auth.ActionCreateOrder, nil, true},
		{"customer edits own unpaid order", customer, auth.ActionEditOrder, ownUnpaid, true},
		{"customer edits own paid order", customer, auth.ActionEditOrder, ownPaid, false},
		{"customer edits foreign order", customer, auth.ActionEditOrder, foreign, false},
		{"employee edits paid order", employee, auth.ActionEditOrder, ownPaid, true},
		{"manager edits foreign order", manager, auth.ActionEditOrder, foreign, true},

		{"customer reads own order", customer, auth.ActionReadOrder, ownPaid, true},
		{"customer reads foreign order", customer, auth.ActionReadOrder, foreign, false},
		{"employee reads any order", employee, auth.ActionReadOrder, foreign, true},

		{"customer sets paid", customer, auth.ActionSetPaid, nil, false},
		{"employee sets paid", employee, auth.ActionSetPaid, nil, true},
		{"customer sets item status", customer, auth.ActionSetStatus, nil, false},
		{"employee sets item status", employee, auth.ActionSetStatus, nil, true},

		{"employee manages menu", employee, auth.ActionManageMenu, nil, false},
		{"manager manages menu", manager, auth.ActionManageMenu, nil, true},
		{"employee manages users", employee, auth.ActionManageUsers, nil, false},
		{"manager manages users", manager, auth.ActionManageUsers, nil, true},

		{"customer edits own profile", customer, auth.ActionEditProfile, auth.ProfileTarget{Login: "alice"}, true},
		{"customer edits other profile", customer, auth.ActionEditProfile, auth.ProfileTarget{Login: "bob"}, false},
		{"manager edits any profile", manager, auth.ActionEditProfile, auth.ProfileTarget{Login: "bob"}, true},

		{"edit order without target", customer, auth.ActionEditOrder, nil, false},
		{"unknown action", manager, auth.Action("order:explode"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Authorize(tt.id, tt.action, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				var denied *auth.Denied
				assert.ErrorAs(t, err, &denied)
			}
		})
	}
}
