package postgres

import (
	"context"
	"database/sql"
	"time"

	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
)

type accessRequestRepository struct {
	db *sql.DB
}

func NewAccessRequestRepository(db *sql.DB) repository.AccessRequestRepository {
	return &accessRequestRepository{db: db}
}

func (r *accessRequestRepository) Create(ctx context.Context, req *domain.AccessRequest) error {
	query := `INSERT INTO access_requests (email, name, message, status, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	req.Status = domain.AccessRequestStatusPending
	req.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, req.Email, req.Name, req.Message, req.Status, req.CreatedAt).Scan(&req.ID)
}

func (r *accessRequestRepository) GetByID(ctx context.Context, id int32) (*domain.AccessRequest, error) {
	req := &domain.AccessRequest{}
	query := `SELECT id, email, name, COALESCE(message, ''), status, created_at, processed_at, processed_by
	          FROM access_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.Email, &req.Name, &req.Message, &req.Status, &req.CreatedAt, &req.ProcessedAt, &req.ProcessedBy)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *accessRequestRepository) GetByEmail(ctx context.Context, email string) (*domain.AccessRequest, error) {
	req := &domain.AccessRequest{}
	query := `SELECT id, email, name, COALESCE(message, ''), status, created_at, processed_at, processed_by
	          FROM access_requests WHERE LOWER(email) = LOWER($1) ORDER BY created_at DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&req.ID, &req.Email, &req.Name, &req.Message, &req.Status, &req.CreatedAt, &req.ProcessedAt, &req.ProcessedBy)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *accessRequestRepository) List(ctx context.Context) ([]domain.AccessRequest, error) {
	query := `SELECT id, email, name, COALESCE(message, ''), status, created_at, processed_at, processed_by
	          FROM access_requests ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.AccessRequest
	for rows.Next() {
		var req domain.AccessRequest
		if err := rows.Scan(&req.ID, &req.Email, &req.Name, &req.Message, &req.Status, &req.CreatedAt, &req.ProcessedAt, &req.ProcessedBy); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Approve claims the request with a conditional update and provisions the
// user inside the same transaction. Two concurrent decisions on the same
// request cannot both see a row flip: exactly one observes rows affected = 1.
func (r *accessRequestRepository) Approve(ctx context.Context, id, processedBy int32, user *domain.User) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE access_requests SET status = $1, processed_at = $2, processed_by = $3
		 WHERE id = $4 AND status = $5`,
		domain.AccessRequestStatusApproved, time.Now(), processedBy, id, domain.AccessRequestStatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	user.CreatedAt = time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, name, role, status, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		user.Email, user.Name, user.Role, user.Status, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *accessRequestRepository) Reject(ctx context.Context, id, processedBy int32) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE access_requests SET status = $1, processed_at = $2, processed_by = $3
		 WHERE id = $4 AND status = $5`,
		domain.AccessRequestStatusRejected, time.Now(), processedBy, id, domain.AccessRequestStatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
