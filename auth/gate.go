// Package auth holds the acting identity and the authorization gate every
// mutating core operation passes through.
package auth

import "fmt"

// Identity is the authenticated user and role a core call acts under. It is
// resolved once per session by the shell and threaded into every call; the
// core keeps no session state of its own.
type Identity struct {
	Login string
	Role  Role
}

type Action string

const (
	ActionManageMenu  Action = "menu:manage"
	ActionManageUsers Action = "users:manage"
	ActionCreateOrder Action = "order:create"
	ActionEditOrder   Action = "order:edit"
	ActionReadOrder   Action = "order:read"
	ActionSetPaid     Action = "order:set_paid"
	ActionSetStatus   Action = "order:set_item_status"
	ActionEditProfile Action = "profile:edit"
)

// OrderTarget carries the facts the gate needs about an order.
type OrderTarget struct {
	OwnerLogin string
	Paid       bool
}

// ProfileTarget names the user whose profile fields are being read or edited.
type ProfileTarget struct {
	Login string
}

// Denied is the gate's refusal, carrying the reason shown to the caller.
type Denied struct {
	Reason string
}

func (d *Denied) Error() string {
	return d.Reason
}

func deny(format string, args ...any) error {
	return &Denied{Reason: fmt.Sprintf(format, args...)}
}

// Authorize decides whether identity may perform action on target. It is a
// pure function over its arguments and returns nil on Allow or *Denied
// otherwise. Targets: ActionEditOrder/ActionReadOrder take an OrderTarget,
// ActionEditProfile takes a ProfileTarget, the rest ignore target.
func Authorize(id Identity, action Action, target any) error {
	if id.Login == "" || !id.Role.Valid() {
		return deny("no acting identity")
	}

	switch action {
	case ActionManageMenu, ActionManageUsers:
		if !id.Role.CanManage() {
			return deny("manager access required")
		}

	case ActionCreateOrder:
		// Any authenticated identity may open an order for itself.

	case ActionSetPaid, ActionSetStatus:
		if !id.Role.CanEditAnyOrder() {
			return deny("staff access required")
		}

	case ActionEditOrder:
		order, ok := target.(OrderTarget)
		if !ok {
			return deny("order target required")
		}
		if id.Role.CanEditAnyOrder() {
			return nil
		}
		if order.OwnerLogin != id.Login {
			return deny("order does not belong to you")
		}
		if order.Paid {
			return deny("order already paid")
		}

	case ActionReadOrder:
		order, ok := target.(OrderTarget)
		if !ok {
			return deny("order target required")
		}
		if !id.Role.CanEditAnyOrder() && order.OwnerLogin != id.Login {
			return deny("order does not belong to you")
		}

	case ActionEditProfile:
		profile, ok := target.(ProfileTarget)
		if !ok {
			return deny("profile target required")
		}
		if !id.Role.CanManage() && profile.Login != id.Login {
			return deny("cannot edit another user's profile")
		}

	default:
		return deny("unknown action %q", action)
	}

	return nil
}
