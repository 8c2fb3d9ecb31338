package service_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
	"casetrack-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCaseService(caseRepo *MockCaseRepo, docRepo *MockDocumentRepo, remRepo *MockReminderRepo, blobs *MockBlobStore) service.CaseService {
	if caseRepo == nil {
		caseRepo = new(MockCaseRepo)
	}
	if docRepo == nil {
		docRepo = new(MockDocumentRepo)
	}
	if remRepo == nil {
		remRepo = new(MockReminderRepo)
	}
	if blobs == nil {
		blobs = new(MockBlobStore)
	}
	return service.NewCaseService(caseRepo, docRepo, remRepo, blobs)
}

func ownedCase(id int32, owner int32) *domain.Case {
	return &domain.Case{
		ID:         id,
		SuitNumber: "HC/123/2026",
		Subject:    "Estate of Doe",
		AssignedTo: &owner,
		Status:     domain.CaseStatusActive,
		Priority:   domain.CasePriorityMedium,
	}
}

func TestCaseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Self Assigns And Logs Movement", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("Create", ctx, mock.AnythingOfType("*domain.Case")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Case).ID = 11
			}).Return(nil)
		caseRepo.On("AddMovement", ctx, mock.MatchedBy(func(m *domain.CaseMovement) bool {
			return m.CaseID == 11 && m.MovedBy == attorneyActor.ID
		})).Return(nil)

		c := &domain.Case{SuitNumber: "HC/123/2026", Subject: "Estate of Doe"}
		require.NoError(t, svc.Create(ctx, attorneyActor, c))

		require.NotNil(t, c.AssignedTo)
		assert.Equal(t, attorneyActor.ID, *c.AssignedTo)
		assert.Equal(t, domain.CaseStatusActive, c.Status)
		assert.Equal(t, domain.CasePriorityMedium, c.Priority)
		caseRepo.AssertExpectations(t)
	})

	t.Run("Missing Subject", func(t *testing.T) {
		svc := newCaseService(nil, nil, nil, nil)

		err := svc.Create(ctx, attorneyActor, &domain.Case{SuitNumber: "HC/1/2026"})
		assert.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestCaseService_OwnershipGates(t *testing.T) {
	ctx := context.Background()
	own := ownedCase(10, attorneyActor.ID)
	foreign := ownedCase(20, 99)

	t.Run("Attorney Reads Own Case", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		docRepo := new(MockDocumentRepo)
		remRepo := new(MockReminderRepo)
		svc := newCaseService(caseRepo, docRepo, remRepo, nil)

		caseRepo.On("GetByID", ctx, int32(10)).Return(own, nil)
		caseRepo.On("ListMovements", ctx, int32(10)).Return([]domain.CaseMovement{}, nil)
		caseRepo.On("ListComments", ctx, int32(10)).Return([]domain.CaseComment{}, nil)
		remRepo.On("ListByCase", ctx, int32(10)).Return([]domain.Reminder{}, nil)
		docRepo.On("ListByCase", ctx, int32(10)).Return([]domain.CaseDocument{}, nil)

		detail, err := svc.Get(ctx, attorneyActor, 10)
		require.NoError(t, err)
		assert.Equal(t, int32(10), detail.Case.ID)
	})

	t.Run("Attorney Denied Foreign Case", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("GetByID", ctx, int32(20)).Return(foreign, nil)

		_, err := svc.Get(ctx, attorneyActor, 20)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("Admin Reads Foreign Case", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		docRepo := new(MockDocumentRepo)
		remRepo := new(MockReminderRepo)
		svc := newCaseService(caseRepo, docRepo, remRepo, nil)

		caseRepo.On("GetByID", ctx, int32(20)).Return(foreign, nil)
		caseRepo.On("ListMovements", ctx, int32(20)).Return([]domain.CaseMovement{}, nil)
		caseRepo.On("ListComments", ctx, int32(20)).Return([]domain.CaseComment{}, nil)
		remRepo.On("ListByCase", ctx, int32(20)).Return([]domain.Reminder{}, nil)
		docRepo.On("ListByCase", ctx, int32(20)).Return([]domain.CaseDocument{}, nil)

		_, err := svc.Get(ctx, adminActor, 20)
		assert.NoError(t, err)
	})

	t.Run("Unknown Case", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("GetByID", ctx, int32(404)).Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, adminActor, 404)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestCaseService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Attorney Scoped To Own", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("List", ctx, mock.MatchedBy(func(f repository.CaseFilter) bool {
			return f.AssignedTo != nil && *f.AssignedTo == attorneyActor.ID
		})).Return([]domain.Case{}, int32(0), nil)

		_, _, err := svc.List(ctx, attorneyActor, repository.CaseFilter{})
		assert.NoError(t, err)
		caseRepo.AssertExpectations(t)
	})

	t.Run("Admin Unscoped", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("List", ctx, mock.MatchedBy(func(f repository.CaseFilter) bool {
			return f.AssignedTo == nil
		})).Return([]domain.Case{}, int32(0), nil)

		_, _, err := svc.List(ctx, adminActor, repository.CaseFilter{})
		assert.NoError(t, err)
	})
}

func TestCaseService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Attorney Cannot Reassign Own Case", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)

		newOwner := int32(55)
		err := svc.Update(ctx, attorneyActor, 10, service.CaseUpdate{AssignedTo: &newOwner, AssignedToSet: true})
		assert.ErrorIs(t, err, service.ErrForbidden)
		caseRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Admin Reassigns With Movement", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)
		caseRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Case) bool {
			return c.AssignedTo != nil && *c.AssignedTo == 55
		})).Return(nil)
		caseRepo.On("AddMovement", ctx, mock.MatchedBy(func(m *domain.CaseMovement) bool {
			return m.ActionTaken == "Case reassigned"
		})).Return(nil)

		newOwner := int32(55)
		err := svc.Update(ctx, adminActor, 10, service.CaseUpdate{AssignedTo: &newOwner, AssignedToSet: true})
		assert.NoError(t, err)
		caseRepo.AssertExpectations(t)
	})

	t.Run("Status Change Logged", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)
		caseRepo.On("Update", ctx, mock.AnythingOfType("*domain.Case")).Return(nil)
		caseRepo.On("AddMovement", ctx, mock.MatchedBy(func(m *domain.CaseMovement) bool {
			return strings.Contains(m.ActionTaken, "closed")
		})).Return(nil)

		closed := domain.CaseStatusClosed
		err := svc.Update(ctx, attorneyActor, 10, service.CaseUpdate{Status: &closed})
		assert.NoError(t, err)
	})
}

func TestCaseService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Attorney Cannot Delete Own Case", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)

		assert.ErrorIs(t, svc.Delete(ctx, attorneyActor, 10), service.ErrForbidden)
		caseRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("Admin Deletes", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)
		caseRepo.On("Delete", ctx, int32(10)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, adminActor, 10))
	})
}

func TestCaseService_Documents(t *testing.T) {
	ctx := context.Background()

	t.Run("Upload Stores Blob Then Metadata", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		docRepo := new(MockDocumentRepo)
		blobs := new(MockBlobStore)
		svc := newCaseService(caseRepo, docRepo, nil, blobs)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)
		blobs.On("Save", ctx, mock.AnythingOfType("string"), mock.Anything).Return(int64(12), nil)
		docRepo.On("Create", ctx, mock.MatchedBy(func(d *domain.CaseDocument) bool {
			return d.CaseID == 10 && d.FileSize == 12 && d.StorageKey != "" && d.UploadedBy == attorneyActor.ID
		})).Return(nil)

		doc, err := svc.AddDocument(ctx, attorneyActor, 10, "filing.pdf", "application/pdf", strings.NewReader("twelve bytes"))
		require.NoError(t, err)
		assert.Equal(t, "filing.pdf", doc.FileName)
	})

	t.Run("Metadata Failure Cleans Up Blob", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		docRepo := new(MockDocumentRepo)
		blobs := new(MockBlobStore)
		svc := newCaseService(caseRepo, docRepo, nil, blobs)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)
		blobs.On("Save", ctx, mock.AnythingOfType("string"), mock.Anything).Return(int64(5), nil)
		docRepo.On("Create", ctx, mock.AnythingOfType("*domain.CaseDocument")).Return(assert.AnError)
		blobs.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		_, err := svc.AddDocument(ctx, attorneyActor, 10, "filing.pdf", "application/pdf", strings.NewReader("bytes"))
		assert.Error(t, err)
		blobs.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("string"))
	})

	t.Run("Delete Follows Owning Case", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		docRepo := new(MockDocumentRepo)
		blobs := new(MockBlobStore)
		svc := newCaseService(caseRepo, docRepo, nil, blobs)

		doc := &domain.CaseDocument{ID: 3, CaseID: 20, StorageKey: "key-3"}
		docRepo.On("GetByID", ctx, int32(3)).Return(doc, nil)
		caseRepo.On("GetByID", ctx, int32(20)).Return(ownedCase(20, 99), nil)

		err := svc.DeleteDocument(ctx, attorneyActor, 3)
		assert.ErrorIs(t, err, service.ErrForbidden)
		docRepo.AssertNotCalled(t, "Delete")
		blobs.AssertNotCalled(t, "Delete")
	})
}

func TestCaseService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Trims And Requires Content", func(t *testing.T) {
		caseRepo := new(MockCaseRepo)
		svc := newCaseService(caseRepo, nil, nil, nil)

		_, err := svc.AddComment(ctx, attorneyActor, 10, "   ")
		assert.ErrorIs(t, err, service.ErrValidation)

		caseRepo.On("GetByID", ctx, int32(10)).Return(ownedCase(10, attorneyActor.ID), nil)
		caseRepo.On("AddComment", ctx, mock.MatchedBy(func(c *domain.CaseComment) bool {
			return c.Comment == "noted" && c.UserID == attorneyActor.ID
		})).Return(nil)

		comment, err := svc.AddComment(ctx, attorneyActor, 10, "  noted  ")
		require.NoError(t, err)
		assert.Equal(t, "noted", comment.Comment)
	})
}
