package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"casetrack-backend/internal/authz"
	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/logger"
	"casetrack-backend/internal/repository"
	"casetrack-backend/internal/storage"

	"github.com/google/uuid"
)

type caseService struct {
	caseRepo     repository.CaseRepository
	documentRepo repository.DocumentRepository
	reminderRepo repository.ReminderRepository
	blobs        storage.BlobStore
}

func NewCaseService(
	caseRepo repository.CaseRepository,
	documentRepo repository.DocumentRepository,
	reminderRepo repository.ReminderRepository,
	blobs storage.BlobStore,
) CaseService {
	return &caseService{
		caseRepo:     caseRepo,
		documentRepo: documentRepo,
		reminderRepo: reminderRepo,
		blobs:        blobs,
	}
}

// getCaseForAction loads a case and gates it through the access decision.
func (s *caseService) getCaseForAction(ctx context.Context, actor authz.Actor, id int32, action authz.Action) (*domain.Case, error) {
	c, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !authz.CanAccess(actor, c.AssignedTo, action) {
		return nil, ErrForbidden
	}
	return c, nil
}

// Create registers a case assigned to the creating attorney (admins may also
// create, likewise self-assigned) and records the initial movement log entry.
func (s *caseService) Create(ctx context.Context, actor authz.Actor, c *domain.Case) error {
	if c.Subject == "" || c.SuitNumber == "" {
		return fmt.Errorf("%w: subject and suit number are required", ErrValidation)
	}

	// cases are always created self-assigned; reassignment is a separate,
	// admin-only action
	c.AssignedTo = &actor.ID
	if c.Status == "" {
		c.Status = domain.CaseStatusActive
	}
	if c.Priority == "" {
		c.Priority = domain.CasePriorityMedium
	}
	if c.DateAssigned.IsZero() {
		c.DateAssigned = time.Now()
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}

	movement := &domain.CaseMovement{
		CaseID:      c.ID,
		ActionTaken: "Case created and registered",
		Notes:       "Initial case creation",
		MovedBy:     actor.ID,
	}
	return s.caseRepo.AddMovement(ctx, movement)
}

func (s *caseService) Get(ctx context.Context, actor authz.Actor, id int32) (*CaseDetail, error) {
	c, err := s.getCaseForAction(ctx, actor, id, authz.ActionRead)
	if err != nil {
		return nil, err
	}

	movements, err := s.caseRepo.ListMovements(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.caseRepo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	reminders, err := s.reminderRepo.ListByCase(ctx, id)
	if err != nil {
		return nil, err
	}
	documents, err := s.documentRepo.ListByCase(ctx, id)
	if err != nil {
		return nil, err
	}

	return &CaseDetail{
		Case:      *c,
		Movements: movements,
		Comments:  comments,
		Reminders: reminders,
		Documents: documents,
	}, nil
}

// List scopes the listing by role: admins see every case, attorneys only
// their own.
func (s *caseService) List(ctx context.Context, actor authz.Actor, filter repository.CaseFilter) ([]domain.Case, int32, error) {
	if actor.Role != domain.UserRoleAdmin {
		filter.AssignedTo = &actor.ID
	}
	return s.caseRepo.List(ctx, filter)
}

func (s *caseService) Update(ctx context.Context, actor authz.Actor, id int32, update CaseUpdate) error {
	c, err := s.getCaseForAction(ctx, actor, id, authz.ActionWrite)
	if err != nil {
		return err
	}

	if update.AssignedToSet {
		if !authz.CanAccess(actor, c.AssignedTo, authz.ActionReassign) {
			return ErrForbidden
		}
		c.AssignedTo = update.AssignedTo
	}
	if update.SuitNumber != nil {
		c.SuitNumber = *update.SuitNumber
	}
	if update.FileNumber != nil {
		c.FileNumber = *update.FileNumber
	}
	if update.Subject != nil {
		c.Subject = *update.Subject
	}
	if update.AssigningOfficer != nil {
		c.AssigningOfficer = *update.AssigningOfficer
	}
	if update.Priority != nil {
		c.Priority = *update.Priority
	}
	statusChanged := update.Status != nil && *update.Status != c.Status
	if update.Status != nil {
		c.Status = *update.Status
	}

	if err := s.caseRepo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}

	action := "Case updated"
	switch {
	case update.AssignedToSet:
		action = "Case reassigned"
	case statusChanged:
		action = fmt.Sprintf("Case status updated to %s", c.Status)
	}
	movement := &domain.CaseMovement{
		CaseID:      id,
		ActionTaken: action,
		Notes:       "Case information updated",
		MovedBy:     actor.ID,
	}
	return s.caseRepo.AddMovement(ctx, movement)
}

func (s *caseService) Delete(ctx context.Context, actor authz.Actor, id int32) error {
	if _, err := s.getCaseForAction(ctx, actor, id, authz.ActionDelete); err != nil {
		return err
	}
	return s.caseRepo.Delete(ctx, id)
}

func (s *caseService) AddMovement(ctx context.Context, actor authz.Actor, caseID int32, location, actionTaken, notes string) (*domain.CaseMovement, error) {
	if strings.TrimSpace(actionTaken) == "" {
		return nil, fmt.Errorf("%w: action taken is required", ErrValidation)
	}
	if _, err := s.getCaseForAction(ctx, actor, caseID, authz.ActionWrite); err != nil {
		return nil, err
	}

	movement := &domain.CaseMovement{
		CaseID:      caseID,
		Location:    location,
		ActionTaken: actionTaken,
		Notes:       notes,
		MovedBy:     actor.ID,
	}
	if err := s.caseRepo.AddMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to add movement: %w", err)
	}
	return movement, nil
}

func (s *caseService) AddComment(ctx context.Context, actor authz.Actor, caseID int32, comment string) (*domain.CaseComment, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrValidation)
	}
	if _, err := s.getCaseForAction(ctx, actor, caseID, authz.ActionWrite); err != nil {
		return nil, err
	}

	c := &domain.CaseComment{
		CaseID:  caseID,
		UserID:  actor.ID,
		Comment: comment,
	}
	if err := s.caseRepo.AddComment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return c, nil
}

// AddDocument stores the document bytes in the blob store under a generated
// key, then records the metadata against the case. A failed metadata insert
// rolls the blob back so the store holds no orphans.
func (s *caseService) AddDocument(ctx context.Context, actor authz.Actor, caseID int32, fileName, contentType string, content io.Reader) (*domain.CaseDocument, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}
	if _, err := s.getCaseForAction(ctx, actor, caseID, authz.ActionWrite); err != nil {
		return nil, err
	}

	key := uuid.NewString()
	size, err := s.blobs.Save(ctx, key, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &domain.CaseDocument{
		CaseID:      caseID,
		FileName:    fileName,
		StorageKey:  key,
		ContentType: contentType,
		FileSize:    size,
		UploadedBy:  actor.ID,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.Error("Failed to clean up orphaned blob", "storage_key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to add document: %w", err)
	}
	return doc, nil
}

func (s *caseService) ListDocuments(ctx context.Context, actor authz.Actor, caseID int32) ([]domain.CaseDocument, error) {
	if _, err := s.getCaseForAction(ctx, actor, caseID, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.documentRepo.ListByCase(ctx, caseID)
}

// OpenDocument returns the document metadata and a reader over its bytes.
// Access follows the owning case.
func (s *caseService) OpenDocument(ctx context.Context, actor authz.Actor, documentID int32) (*domain.CaseDocument, io.ReadCloser, error) {
	doc, err := s.getDocumentForAction(ctx, actor, documentID, authz.ActionRead)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open document: %w", err)
	}
	return doc, rc, nil
}

func (s *caseService) DeleteDocument(ctx context.Context, actor authz.Actor, documentID int32) error {
	doc, err := s.getDocumentForAction(ctx, actor, documentID, authz.ActionWrite)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return err
	}
	// metadata is gone; a leaked blob is recoverable, a dangling record is not
	if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
		logger.Error("Failed to delete document blob", "storage_key", doc.StorageKey, "error", err)
	}
	return nil
}

// getDocumentForAction loads a document and gates it through the access
// decision of its owning case.
func (s *caseService) getDocumentForAction(ctx context.Context, actor authz.Actor, documentID int32, action authz.Action) (*domain.CaseDocument, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.getCaseForAction(ctx, actor, doc.CaseID, action); err != nil {
		return nil, err
	}
	return doc, nil
}
