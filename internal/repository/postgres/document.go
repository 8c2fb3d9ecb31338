package postgres

import (
	"context"
	"database/sql"
	"time"

	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.CaseDocument) error {
	query := `INSERT INTO case_documents (case_id, file_name, storage_key, content_type, file_size, uploaded_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	doc.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, doc.CaseID, doc.FileName, doc.StorageKey, doc.ContentType,
		doc.FileSize, doc.UploadedBy, doc.CreatedAt).Scan(&doc.ID)
}

func (r *documentRepository) GetByID(ctx context.Context, id int32) (*domain.CaseDocument, error) {
	doc := &domain.CaseDocument{}
	query := `SELECT id, case_id, file_name, storage_key, content_type, file_size, uploaded_by, created_at
	          FROM case_documents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc.ID, &doc.CaseID, &doc.FileName, &doc.StorageKey,
		&doc.ContentType, &doc.FileSize, &doc.UploadedBy, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) ListByCase(ctx context.Context, caseID int32) ([]domain.CaseDocument, error) {
	query := `SELECT id, case_id, file_name, storage_key, content_type, file_size, uploaded_by, created_at
	          FROM case_documents WHERE case_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.CaseDocument
	for rows.Next() {
		var doc domain.CaseDocument
		if err := rows.Scan(&doc.ID, &doc.CaseID, &doc.FileName, &doc.StorageKey, &doc.ContentType,
			&doc.FileSize, &doc.UploadedBy, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *documentRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM case_documents WHERE id = $1`, id)
	return err
}
