package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"casetrack-backend/internal/authz"
	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	caseRepo     repository.CaseRepository
}

func NewReminderService(reminderRepo repository.ReminderRepository, caseRepo repository.CaseRepository) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		caseRepo:     caseRepo,
	}
}

// Create attaches a reminder to a case the actor can write to. The reminder
// is owned by its creator directly, independent of later case reassignment.
func (s *reminderService) Create(ctx context.Context, actor authz.Actor, caseID int32, title, description, reminderDate string) (*domain.Reminder, error) {
	if title == "" || reminderDate == "" {
		return nil, fmt.Errorf("%w: title and reminder date are required", ErrValidation)
	}
	date, err := parseReminderDate(reminderDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reminder date", ErrValidation)
	}

	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !authz.CanAccess(actor, c.AssignedTo, authz.ActionWrite) {
		return nil, ErrForbidden
	}

	rem := &domain.Reminder{
		CaseID:       caseID,
		UserID:       actor.ID,
		Title:        title,
		Description:  description,
		ReminderDate: date,
	}
	if err := s.reminderRepo.Create(ctx, rem); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return rem, nil
}

func (s *reminderService) List(ctx context.Context, actor authz.Actor) ([]domain.Reminder, error) {
	if actor.Role == domain.UserRoleAdmin {
		return s.reminderRepo.ListIncomplete(ctx, nil)
	}
	return s.reminderRepo.ListIncomplete(ctx, &actor.ID)
}

func (s *reminderService) getOwnedReminder(ctx context.Context, actor authz.Actor, reminderID int32) (*domain.Reminder, error) {
	rem, err := s.reminderRepo.GetByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// reminder ownership is direct via user_id, not via the case
	if !authz.CanAccess(actor, &rem.UserID, authz.ActionWrite) {
		return nil, ErrForbidden
	}
	return rem, nil
}

// Update applies the allow-listed fields only; is_sent stays untouched no
// matter what the client sends.
func (s *reminderService) Update(ctx context.Context, actor authz.Actor, reminderID int32, update ReminderUpdate) error {
	rem, err := s.getOwnedReminder(ctx, actor, reminderID)
	if err != nil {
		return err
	}

	if update.Title == nil && update.Description == nil && update.ReminderDate == nil && update.IsCompleted == nil {
		return fmt.Errorf("%w: no valid fields to update", ErrValidation)
	}

	if update.Title != nil {
		rem.Title = *update.Title
	}
	if update.Description != nil {
		rem.Description = *update.Description
	}
	if update.ReminderDate != nil {
		date, err := parseReminderDate(*update.ReminderDate)
		if err != nil {
			return fmt.Errorf("%w: invalid reminder date", ErrValidation)
		}
		rem.ReminderDate = date
	}
	if update.IsCompleted != nil {
		rem.IsCompleted = *update.IsCompleted
	}

	return s.reminderRepo.Update(ctx, rem)
}

func (s *reminderService) Delete(ctx context.Context, actor authz.Actor, reminderID int32) error {
	if _, err := s.getOwnedReminder(ctx, actor, reminderID); err != nil {
		return err
	}
	return s.reminderRepo.Delete(ctx, reminderID)
}

func parseReminderDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}
