package authz

import "casetrack-backend/internal/domain"

// Action is something an actor wants to do to a resource.
type Action string

const (
	ActionRead     Action = "read"
	ActionWrite    Action = "write"
	ActionDelete   Action = "delete"
	ActionReassign Action = "reassign"
)

// Actor is the authenticated caller as seen by the decision function.
type Actor struct {
	ID   int32
	Role domain.UserRole
}

// CanAccess decides whether the actor may perform action on a resource owned
// by ownerID. It is pure and total: every input maps to exactly one outcome.
//
// Admins may do anything. Attorneys may read and write only resources they
// own; they may never delete or reassign. A nil owner means the resource is
// unassigned, which only admins may touch.
func CanAccess(actor Actor, ownerID *int32, action Action) bool {
	if actor.Role == domain.UserRoleAdmin {
		return true
	}
	if actor.Role != domain.UserRoleAttorney {
		return false
	}
	switch action {
	case ActionRead, ActionWrite:
		return ownerID != nil && *ownerID == actor.ID
	default:
		// delete and reassign are admin-only regardless of ownership
		return false
	}
}
