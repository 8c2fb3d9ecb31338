package domain

import "time"

type CaseStatus string

const (
	CaseStatusActive  CaseStatus = "active"
	CaseStatusPending CaseStatus = "pending"
	CaseStatusClosed  CaseStatus = "closed"
)

type CasePriority string

const (
	CasePriorityLow    CasePriority = "low"
	CasePriorityMedium CasePriority = "medium"
	CasePriorityHigh   CasePriority = "high"
)

// Case is the unit of work. AssignedTo is the sole owner for access-control
// purposes; nil means unassigned, which only admins may touch.
type Case struct {
	ID               int32        `json:"id"`
	SuitNumber       string       `json:"suit_number"`
	FileNumber       string       `json:"file_number"`
	Subject          string       `json:"subject"`
	AssigningOfficer string       `json:"assigning_officer,omitempty"`
	AssignedTo       *int32       `json:"assigned_to"`
	AssignedToName   string       `json:"assigned_to_name,omitempty"`
	Status           CaseStatus   `json:"status"`
	Priority         CasePriority `json:"priority"`
	DateAssigned     time.Time    `json:"date_assigned"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// CaseMovement is an append-only log entry on a case. Never updated or
// deleted except through case cascade delete.
type CaseMovement struct {
	ID           int32     `json:"id"`
	CaseID       int32     `json:"case_id"`
	Location     string    `json:"location,omitempty"`
	ActionTaken  string    `json:"action_taken"`
	Notes        string    `json:"notes,omitempty"`
	MovedBy      int32     `json:"moved_by"`
	MovedByName  string    `json:"moved_by_name,omitempty"`
	MovementDate time.Time `json:"movement_date"`
}

type CaseComment struct {
	ID        int32     `json:"id"`
	CaseID    int32     `json:"case_id"`
	UserID    int32     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CaseDocument is document metadata only; the bytes live in external storage
// addressed by StorageKey.
type CaseDocument struct {
	ID          int32     `json:"id"`
	CaseID      int32     `json:"case_id"`
	FileName    string    `json:"file_name"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	UploadedBy  int32     `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
