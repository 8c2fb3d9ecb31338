package domain

import "time"

type AccessRequestStatus string

const (
	AccessRequestStatusPending  AccessRequestStatus = "pending"
	AccessRequestStatusApproved AccessRequestStatus = "approved"
	AccessRequestStatusRejected AccessRequestStatus = "rejected"
)

// AccessRequest is a signup intent awaiting an admin decision. Once decided
// the status is terminal; processed fields stay null until then.
type AccessRequest struct {
	ID          int32               `json:"id"`
	Email       string              `json:"email"`
	Name        string              `json:"name"`
	Message     string              `json:"message,omitempty"`
	Status      AccessRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	ProcessedAt *time.Time          `json:"processed_at,omitempty"`
	ProcessedBy *int32              `json:"processed_by,omitempty"`
}
