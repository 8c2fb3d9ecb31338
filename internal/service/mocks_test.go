package service_test

import (
	"context"
	"io"
	"time"

	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
	"casetrack-backend/internal/security"
	"casetrack-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetApprovedByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepo) ListApproved(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockAccessRequestRepo
type MockAccessRequestRepo struct {
	mock.Mock
}

func (m *MockAccessRequestRepo) Create(ctx context.Context, req *domain.AccessRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockAccessRequestRepo) GetByID(ctx context.Context, id int32) (*domain.AccessRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}
func (m *MockAccessRequestRepo) GetByEmail(ctx context.Context, email string) (*domain.AccessRequest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}
func (m *MockAccessRequestRepo) List(ctx context.Context) ([]domain.AccessRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AccessRequest), args.Error(1)
}
func (m *MockAccessRequestRepo) Approve(ctx context.Context, id, processedBy int32, user *domain.User) (bool, error) {
	args := m.Called(ctx, id, processedBy, user)
	return args.Bool(0), args.Error(1)
}
func (m *MockAccessRequestRepo) Reject(ctx context.Context, id, processedBy int32) (bool, error) {
	args := m.Called(ctx, id, processedBy)
	return args.Bool(0), args.Error(1)
}

// MockCaseRepo
type MockCaseRepo struct {
	mock.Mock
}

func (m *MockCaseRepo) Create(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCaseRepo) GetByID(ctx context.Context, id int32) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}
func (m *MockCaseRepo) List(ctx context.Context, filter repository.CaseFilter) ([]domain.Case, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Case), args.Get(1).(int32), args.Error(2)
}
func (m *MockCaseRepo) Update(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCaseRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCaseRepo) AddMovement(ctx context.Context, mv *domain.CaseMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}
func (m *MockCaseRepo) ListMovements(ctx context.Context, caseID int32) ([]domain.CaseMovement, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]domain.CaseMovement), args.Error(1)
}
func (m *MockCaseRepo) AddComment(ctx context.Context, c *domain.CaseComment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCaseRepo) ListComments(ctx context.Context, caseID int32) ([]domain.CaseComment, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]domain.CaseComment), args.Error(1)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.CaseDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *MockDocumentRepo) GetByID(ctx context.Context, id int32) (*domain.CaseDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaseDocument), args.Error(1)
}
func (m *MockDocumentRepo) ListByCase(ctx context.Context, caseID int32) ([]domain.CaseDocument, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]domain.CaseDocument), args.Error(1)
}
func (m *MockDocumentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReminderRepo
type MockReminderRepo struct {
	mock.Mock
}

func (m *MockReminderRepo) Create(ctx context.Context, r *domain.Reminder) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReminderRepo) GetByID(ctx context.Context, id int32) (*domain.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) ListIncomplete(ctx context.Context, userID *int32) ([]domain.Reminder, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) ListByCase(ctx context.Context, caseID int32) ([]domain.Reminder, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) Update(ctx context.Context, r *domain.Reminder) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReminderRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockReminderRepo) ListDue(ctx context.Context, now time.Time) ([]domain.DueReminder, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.DueReminder), args.Error(1)
}
func (m *MockReminderRepo) MarkSent(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReminder(ctx context.Context, email, name string, notice service.ReminderNotice) error {
	args := m.Called(ctx, email, name, notice)
	return args.Error(0)
}
func (m *MockEmailService) SendAccessApproved(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailService) SendAccessRejected(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateToken(userID int32, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.SessionClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.SessionClaims), args.Error(1)
}

// MockBlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	args := m.Called(ctx, key, r)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
