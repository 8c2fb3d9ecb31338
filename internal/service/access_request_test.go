package service_test

import (
	"context"
	"database/sql"
	"testing"

	"casetrack-backend/internal/authz"
	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	adminActor    = authz.Actor{ID: 1, Role: domain.UserRoleAdmin}
	attorneyActor = authz.Actor{ID: 2, Role: domain.UserRoleAttorney}
)

func TestAccessRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		userRepo := new(MockUserRepo)
		svc := service.NewAccessRequestService(reqRepo, userRepo, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "new@firm.com").Return(nil, sql.ErrNoRows)
		reqRepo.On("GetByEmail", ctx, "new@firm.com").Return(nil, sql.ErrNoRows)
		reqRepo.On("Create", ctx, mock.AnythingOfType("*domain.AccessRequest")).Return(nil)

		req, err := svc.Submit(ctx, "new@firm.com", "New Attorney", "please")
		require.NoError(t, err)
		assert.Equal(t, "new@firm.com", req.Email)
	})

	t.Run("Email Already Registered", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		userRepo := new(MockUserRepo)
		svc := service.NewAccessRequestService(reqRepo, userRepo, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "taken@firm.com").Return(&domain.User{ID: 5, Email: "taken@firm.com"}, nil)

		_, err := svc.Submit(ctx, "taken@firm.com", "Someone", "")
		assert.ErrorIs(t, err, service.ErrEmailExists)
		reqRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Pending Request Exists", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		userRepo := new(MockUserRepo)
		svc := service.NewAccessRequestService(reqRepo, userRepo, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "waiting@firm.com").Return(nil, sql.ErrNoRows)
		reqRepo.On("GetByEmail", ctx, "waiting@firm.com").
			Return(&domain.AccessRequest{ID: 3, Status: domain.AccessRequestStatusPending}, nil)

		_, err := svc.Submit(ctx, "waiting@firm.com", "Waiting", "")
		assert.ErrorIs(t, err, service.ErrRequestPending)
	})

	t.Run("Approved Request Exists", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		userRepo := new(MockUserRepo)
		svc := service.NewAccessRequestService(reqRepo, userRepo, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "approved@firm.com").Return(nil, sql.ErrNoRows)
		reqRepo.On("GetByEmail", ctx, "approved@firm.com").
			Return(&domain.AccessRequest{ID: 4, Status: domain.AccessRequestStatusApproved}, nil)

		_, err := svc.Submit(ctx, "approved@firm.com", "Approved", "")
		assert.ErrorIs(t, err, service.ErrRequestApproved)
	})

	t.Run("Rejected Request Does Not Block", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		userRepo := new(MockUserRepo)
		svc := service.NewAccessRequestService(reqRepo, userRepo, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "again@firm.com").Return(nil, sql.ErrNoRows)
		reqRepo.On("GetByEmail", ctx, "again@firm.com").
			Return(&domain.AccessRequest{ID: 5, Status: domain.AccessRequestStatusRejected}, nil)
		reqRepo.On("Create", ctx, mock.AnythingOfType("*domain.AccessRequest")).Return(nil)

		_, err := svc.Submit(ctx, "again@firm.com", "Trying Again", "")
		assert.NoError(t, err)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc := service.NewAccessRequestService(new(MockAccessRequestRepo), new(MockUserRepo), new(MockEmailService))

		_, err := svc.Submit(ctx, "", "Name", "")
		assert.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestAccessRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	pending := &domain.AccessRequest{
		ID:     7,
		Email:  "new@firm.com",
		Name:   "New Attorney",
		Status: domain.AccessRequestStatusPending,
	}

	t.Run("Success Provisions Attorney", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), emailSvc)

		reqRepo.On("GetByID", ctx, int32(7)).Return(pending, nil)
		reqRepo.On("Approve", ctx, int32(7), adminActor.ID, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(3).(*domain.User).ID = 30
			}).Return(true, nil)
		emailSvc.On("SendAccessApproved", ctx, "new@firm.com", "New Attorney").Return(nil)

		user, err := svc.Approve(ctx, adminActor, 7, "temp-password")
		require.NoError(t, err)
		assert.Equal(t, int32(30), user.ID)
		assert.Equal(t, domain.UserRoleAttorney, user.Role)
		assert.Equal(t, domain.UserStatusApproved, user.Status)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "temp-password", user.PasswordHash)
	})

	t.Run("Email Failure Does Not Fail Approval", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), emailSvc)

		reqRepo.On("GetByID", ctx, int32(7)).Return(pending, nil)
		reqRepo.On("Approve", ctx, int32(7), adminActor.ID, mock.AnythingOfType("*domain.User")).Return(true, nil)
		emailSvc.On("SendAccessApproved", ctx, "new@firm.com", "New Attorney").Return(assert.AnError)

		_, err := svc.Approve(ctx, adminActor, 7, "temp-password")
		assert.NoError(t, err)
	})

	t.Run("Non Admin Forbidden", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), new(MockEmailService))

		_, err := svc.Approve(ctx, attorneyActor, 7, "temp-password")
		assert.ErrorIs(t, err, service.ErrForbidden)
		reqRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Missing Password", func(t *testing.T) {
		svc := service.NewAccessRequestService(new(MockAccessRequestRepo), new(MockUserRepo), new(MockEmailService))

		_, err := svc.Approve(ctx, adminActor, 7, "")
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("Already Processed", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), new(MockEmailService))

		decided := &domain.AccessRequest{ID: 8, Status: domain.AccessRequestStatusRejected}
		reqRepo.On("GetByID", ctx, int32(8)).Return(decided, nil)

		_, err := svc.Approve(ctx, adminActor, 8, "temp-password")
		assert.ErrorIs(t, err, service.ErrAlreadyProcessed)
	})

	t.Run("Lost The Race", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), emailSvc)

		reqRepo.On("GetByID", ctx, int32(7)).Return(pending, nil)
		reqRepo.On("Approve", ctx, int32(7), adminActor.ID, mock.AnythingOfType("*domain.User")).Return(false, nil)

		_, err := svc.Approve(ctx, adminActor, 7, "temp-password")
		assert.ErrorIs(t, err, service.ErrAlreadyProcessed)
		emailSvc.AssertNotCalled(t, "SendAccessApproved")
	})

	t.Run("Unknown Request", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), new(MockEmailService))

		reqRepo.On("GetByID", ctx, int32(99)).Return(nil, sql.ErrNoRows)

		_, err := svc.Approve(ctx, adminActor, 99, "temp-password")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestAccessRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	pending := &domain.AccessRequest{
		ID:     7,
		Email:  "new@firm.com",
		Name:   "New Attorney",
		Status: domain.AccessRequestStatusPending,
	}

	t.Run("Success", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), emailSvc)

		reqRepo.On("GetByID", ctx, int32(7)).Return(pending, nil)
		reqRepo.On("Reject", ctx, int32(7), adminActor.ID).Return(true, nil)
		emailSvc.On("SendAccessRejected", ctx, "new@firm.com", "New Attorney").Return(nil)

		assert.NoError(t, svc.Reject(ctx, adminActor, 7))
	})

	t.Run("Non Admin Forbidden", func(t *testing.T) {
		svc := service.NewAccessRequestService(new(MockAccessRequestRepo), new(MockUserRepo), new(MockEmailService))

		assert.ErrorIs(t, svc.Reject(ctx, attorneyActor, 7), service.ErrForbidden)
	})

	t.Run("Lost The Race", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), new(MockEmailService))

		reqRepo.On("GetByID", ctx, int32(7)).Return(pending, nil)
		reqRepo.On("Reject", ctx, int32(7), adminActor.ID).Return(false, nil)

		assert.ErrorIs(t, svc.Reject(ctx, adminActor, 7), service.ErrAlreadyProcessed)
	})
}

func TestAccessRequestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Sees All", func(t *testing.T) {
		reqRepo := new(MockAccessRequestRepo)
		svc := service.NewAccessRequestService(reqRepo, new(MockUserRepo), new(MockEmailService))

		reqRepo.On("List", ctx).Return([]domain.AccessRequest{{ID: 1}, {ID: 2}}, nil)

		reqs, err := svc.List(ctx, adminActor)
		require.NoError(t, err)
		assert.Len(t, reqs, 2)
	})

	t.Run("Attorney Forbidden", func(t *testing.T) {
		svc := service.NewAccessRequestService(new(MockAccessRequestRepo), new(MockUserRepo), new(MockEmailService))

		_, err := svc.List(ctx, attorneyActor)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}
