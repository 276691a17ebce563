package identity

import (
	"github.com/google/uuid"
)

// Action enumerates the operations subject to access control
type Action string

const (
	ActionViewBill       Action = "bill.view"
	ActionManageBill     Action = "bill.manage"
	ActionViewShare      Action = "share.view"
	ActionManageShare    Action = "share.manage"
	ActionRecordPayment  Action = "payment.record"
	ActionDeletePayment  Action = "payment.delete"
	ActionManageSettings Action = "settings.manage"
	ActionManageUsers    Action = "users.manage"
	ActionManageReadings Action = "readings.manage"
)

// Decision is the outcome of an authorization check
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns a positive decision
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a negative decision with a reason
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide evaluates whether the actor may perform the action.
// ownerID identifies the user a resource belongs to (the share holder);
// pass uuid.Nil for resources without an owner.
// All role checks in the system go through this function.
func Decide(actor *User, action Action, ownerID uuid.UUID) Decision {
	if actor == nil {
		return Deny("authentication required")
	}

	switch action {
	case ActionViewBill, ActionViewShare:
		if actor.IsAdmin() {
			return Allow()
		}
		if ownerID != uuid.Nil && ownerID == actor.ID {
			return Allow()
		}
		return Deny("residents may only view their own bills and shares")

	case ActionRecordPayment:
		if actor.IsAdmin() {
			return Allow()
		}
		if ownerID != uuid.Nil && ownerID == actor.ID {
			return Allow()
		}
		return Deny("residents may only record payments against their own share")

	case ActionManageBill, ActionManageShare, ActionDeletePayment, ActionManageReadings:
		if actor.IsAdmin() {
			return Allow()
		}
		return Deny("administrator role required")

	case ActionManageSettings, ActionManageUsers:
		if actor.Role.IsSuperAdmin() {
			return Allow()
		}
		return Deny("super admin role required")
	}

	return Deny("unknown action")
}
