package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casetrack-backend/internal/authz"
	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/logger"
	"casetrack-backend/internal/repository"
	"casetrack-backend/internal/security"
)

type accessRequestService struct {
	reqRepo  repository.AccessRequestRepository
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewAccessRequestService(
	reqRepo repository.AccessRequestRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) AccessRequestService {
	return &accessRequestService{
		reqRepo:  reqRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

// Submit files a signup intent. It refuses emails that already belong to an
// approved account, already have a pending request, or were approved before.
func (s *accessRequestService) Submit(ctx context.Context, email, name, message string) (*domain.AccessRequest, error) {
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: email and name are required", ErrValidation)
	}

	if user, err := s.userRepo.GetByEmail(ctx, email); err == nil && user != nil {
		return nil, ErrEmailExists
	}

	if prev, err := s.reqRepo.GetByEmail(ctx, email); err == nil && prev != nil {
		switch prev.Status {
		case domain.AccessRequestStatusPending:
			return nil, ErrRequestPending
		case domain.AccessRequestStatusApproved:
			return nil, ErrRequestApproved
		}
		// a rejected request does not block a fresh submission
	}

	req := &domain.AccessRequest{
		Email:   email,
		Name:    name,
		Message: message,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create access request: %w", err)
	}
	return req, nil
}

func (s *accessRequestService) List(ctx context.Context, actor authz.Actor) ([]domain.AccessRequest, error) {
	// access requests have no owner; only admins clear the nil-owner rule
	if !authz.CanAccess(actor, nil, authz.ActionRead) {
		return nil, ErrForbidden
	}
	return s.reqRepo.List(ctx)
}

// Approve provisions an attorney account from a pending request. The
// pending-check and the transition are a single conditional write, so a
// concurrent decision on the same request gets ErrAlreadyProcessed. The
// notification is best effort and never fails the approval.
func (s *accessRequestService) Approve(ctx context.Context, actor authz.Actor, requestID int32, temporaryPassword string) (*domain.User, error) {
	if !authz.CanAccess(actor, nil, authz.ActionWrite) {
		return nil, ErrForbidden
	}
	if temporaryPassword == "" {
		return nil, fmt.Errorf("%w: password is required for approval", ErrValidation)
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Status != domain.AccessRequestStatusPending {
		return nil, ErrAlreadyProcessed
	}

	hash, err := security.HashPassword(temporaryPassword)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         domain.UserRoleAttorney,
		Status:       domain.UserStatusApproved,
		PasswordHash: hash,
	}

	claimed, err := s.reqRepo.Approve(ctx, requestID, actor.ID, user)
	if err != nil {
		return nil, fmt.Errorf("failed to approve access request: %w", err)
	}
	if !claimed {
		// lost the race: someone else decided this request first
		return nil, ErrAlreadyProcessed
	}

	if err := s.emailSvc.SendAccessApproved(ctx, req.Email, req.Name); err != nil {
		logger.Error("Failed to send approval email", "request_id", requestID, "email", req.Email, "error", err)
	}

	return user, nil
}

func (s *accessRequestService) Reject(ctx context.Context, actor authz.Actor, requestID int32) error {
	if !authz.CanAccess(actor, nil, authz.ActionWrite) {
		return ErrForbidden
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if req.Status != domain.AccessRequestStatusPending {
		return ErrAlreadyProcessed
	}

	claimed, err := s.reqRepo.Reject(ctx, requestID, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to reject access request: %w", err)
	}
	if !claimed {
		return ErrAlreadyProcessed
	}

	if err := s.emailSvc.SendAccessRejected(ctx, req.Email, req.Name); err != nil {
		logger.Error("Failed to send rejection email", "request_id", requestID, "email", req.Email, "error", err)
	}

	return nil
}
