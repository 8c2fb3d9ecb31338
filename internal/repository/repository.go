package repository

import (
	"context"
	"time"

	"casetrack-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetApprovedByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	ListApproved(ctx context.Context) ([]domain.User, error)
}

type AccessRequestRepository interface {
	Create(ctx context.Context, req *domain.AccessRequest) error
	GetByID(ctx context.Context, id int32) (*domain.AccessRequest, error)
	GetByEmail(ctx context.Context, email string) (*domain.AccessRequest, error)
	List(ctx context.Context) ([]domain.AccessRequest, error)

	// Approve transitions the request from pending to approved and inserts
	// the provisioned user in the same database transaction. It returns
	// false when the request was no longer pending; in that case nothing
	// is written.
	Approve(ctx context.Context, id, processedBy int32, user *domain.User) (bool, error)

	// Reject transitions the request from pending to rejected. Returns
	// false when the request was no longer pending.
	Reject(ctx context.Context, id, processedBy int32) (bool, error)
}

// CaseFilter narrows case listings.
type CaseFilter struct {
	AssignedTo *int32 // nil means no ownership filter (admin view)
	Search     string
	Status     string
	Page       int32
	PageSize   int32
}

type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id int32) (*domain.Case, error)
	List(ctx context.Context, filter CaseFilter) ([]domain.Case, int32, error)
	Update(ctx context.Context, c *domain.Case) error
	Delete(ctx context.Context, id int32) error

	AddMovement(ctx context.Context, m *domain.CaseMovement) error
	ListMovements(ctx context.Context, caseID int32) ([]domain.CaseMovement, error)
	AddComment(ctx context.Context, c *domain.CaseComment) error
	ListComments(ctx context.Context, caseID int32) ([]domain.CaseComment, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.CaseDocument) error
	GetByID(ctx context.Context, id int32) (*domain.CaseDocument, error)
	ListByCase(ctx context.Context, caseID int32) ([]domain.CaseDocument, error)
	Delete(ctx context.Context, id int32) error
}

type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id int32) (*domain.Reminder, error)
	ListIncomplete(ctx context.Context, userID *int32) ([]domain.Reminder, error)
	ListByCase(ctx context.Context, caseID int32) ([]domain.Reminder, error)
	Update(ctx context.Context, r *domain.Reminder) error
	Delete(ctx context.Context, id int32) error

	// ListDue returns dispatch candidates: due, unsent, incomplete, with
	// the owning user and parent case already resolved. Reminders whose
	// owner or case no longer resolves are not returned.
	ListDue(ctx context.Context, now time.Time) ([]domain.DueReminder, error)

	// MarkSent flips is_sent from false to true. Returns false when the
	// flag was already set, so overlapping dispatch runs count a given
	// reminder at most once each.
	MarkSent(ctx context.Context, id int32) (bool, error)
}
