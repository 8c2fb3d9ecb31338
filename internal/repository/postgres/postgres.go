package postgres

import (
	"database/sql"

	"casetrack-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.AccessRequestRepository
	repository.CaseRepository
	repository.DocumentRepository
	repository.ReminderRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		AccessRequestRepository: NewAccessRequestRepository(db),
		CaseRepository:          NewCaseRepository(db),
		DocumentRepository:      NewDocumentRepository(db),
		ReminderRepository:      NewReminderRepository(db),
	}
}
