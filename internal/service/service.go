package service

import (
	"context"
	"io"

	"casetrack-backend/internal/authz"
	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	CurrentUser(ctx context.Context, userID int32) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int32, currentPassword, newPassword string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type AccessRequestService interface {
	Submit(ctx context.Context, email, name, message string) (*domain.AccessRequest, error)
	List(ctx context.Context, actor authz.Actor) ([]domain.AccessRequest, error)
	Approve(ctx context.Context, actor authz.Actor, requestID int32, temporaryPassword string) (*domain.User, error)
	Reject(ctx context.Context, actor authz.Actor, requestID int32) error
}

// CaseDetail is a case with its child records, as returned by Get.
type CaseDetail struct {
	Case      domain.Case           `json:"case"`
	Movements []domain.CaseMovement `json:"movements"`
	Comments  []domain.CaseComment  `json:"comments"`
	Reminders []domain.Reminder     `json:"reminders"`
	Documents []domain.CaseDocument `json:"documents"`
}

// CaseUpdate carries the editable case fields; nil means leave unchanged.
// AssignedToSet distinguishes "reassign to nobody" from "not touched".
type CaseUpdate struct {
	SuitNumber       *string
	FileNumber       *string
	Subject          *string
	AssigningOfficer *string
	Status           *domain.CaseStatus
	Priority         *domain.CasePriority
	AssignedTo       *int32
	AssignedToSet    bool
}

type CaseService interface {
	Create(ctx context.Context, actor authz.Actor, c *domain.Case) error
	Get(ctx context.Context, actor authz.Actor, id int32) (*CaseDetail, error)
	List(ctx context.Context, actor authz.Actor, filter repository.CaseFilter) ([]domain.Case, int32, error)
	Update(ctx context.Context, actor authz.Actor, id int32, update CaseUpdate) error
	Delete(ctx context.Context, actor authz.Actor, id int32) error
	AddMovement(ctx context.Context, actor authz.Actor, caseID int32, location, actionTaken, notes string) (*domain.CaseMovement, error)
	AddComment(ctx context.Context, actor authz.Actor, caseID int32, comment string) (*domain.CaseComment, error)
	AddDocument(ctx context.Context, actor authz.Actor, caseID int32, fileName, contentType string, content io.Reader) (*domain.CaseDocument, error)
	ListDocuments(ctx context.Context, actor authz.Actor, caseID int32) ([]domain.CaseDocument, error)
	OpenDocument(ctx context.Context, actor authz.Actor, documentID int32) (*domain.CaseDocument, io.ReadCloser, error)
	DeleteDocument(ctx context.Context, actor authz.Actor, documentID int32) error
}

// ReminderUpdate carries the client-editable reminder fields; is_sent is not
// among them.
type ReminderUpdate struct {
	Title        *string
	Description  *string
	ReminderDate *string
	IsCompleted  *bool
}

type ReminderService interface {
	Create(ctx context.Context, actor authz.Actor, caseID int32, title, description, reminderDate string) (*domain.Reminder, error)
	List(ctx context.Context, actor authz.Actor) ([]domain.Reminder, error)
	Update(ctx context.Context, actor authz.Actor, reminderID int32, update ReminderUpdate) error
	Delete(ctx context.Context, actor authz.Actor, reminderID int32) error
}

// ReminderNotice is the case context delivered with a reminder email.
type ReminderNotice struct {
	Title       string
	Description string
	CaseSubject string
	SuitNumber  string
}

type EmailService interface {
	SendReminder(ctx context.Context, email, name string, notice ReminderNotice) error
	SendAccessApproved(ctx context.Context, email, name string) error
	SendAccessRejected(ctx context.Context, email, name string) error
}
