package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
)

type caseRepository struct {
	db *sql.DB
}

func NewCaseRepository(db *sql.DB) repository.CaseRepository {
	return &caseRepository{db: db}
}

const caseColumns = `c.id, c.suit_number, c.file_number, c.subject, COALESCE(c.assigning_officer, ''),
	c.assigned_to, COALESCE(u.name, ''), c.status, c.priority, c.date_assigned, c.created_at, c.updated_at`

func scanCase(row interface{ Scan(...any) error }) (*domain.Case, error) {
	c := &domain.Case{}
	err := row.Scan(&c.ID, &c.SuitNumber, &c.FileNumber, &c.Subject, &c.AssigningOfficer,
		&c.AssignedTo, &c.AssignedToName, &c.Status, &c.Priority, &c.DateAssigned, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	query := `INSERT INTO cases (suit_number, file_number, subject, assigning_officer, assigned_to, status, priority, date_assigned, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query, c.SuitNumber, c.FileNumber, c.Subject, c.AssigningOfficer,
		c.AssignedTo, c.Status, c.Priority, c.DateAssigned, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
}

func (r *caseRepository) GetByID(ctx context.Context, id int32) (*domain.Case, error) {
	query := fmt.Sprintf(`SELECT %s FROM cases c LEFT JOIN users u ON c.assigned_to = u.id WHERE c.id = $1`, caseColumns)
	return scanCase(r.db.QueryRowContext(ctx, query, id))
}

func (r *caseRepository) List(ctx context.Context, filter repository.CaseFilter) ([]domain.Case, int32, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		where += fmt.Sprintf(" AND c.assigned_to = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (c.suit_number ILIKE $%d OR c.subject ILIKE $%d OR c.file_number ILIKE $%d)", n, n, n)
	}
	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND c.status = $%d", len(args))
	}

	var total int32
	countQuery := "SELECT COUNT(*) FROM cases c" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM cases c LEFT JOIN users u ON c.assigned_to = u.id%s ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d`,
		caseColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cases []domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		cases = append(cases, *c)
	}
	return cases, total, rows.Err()
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	query := `UPDATE cases SET suit_number=$1, file_number=$2, subject=$3, assigning_officer=$4,
	          assigned_to=$5, status=$6, priority=$7, date_assigned=$8, updated_at=$9 WHERE id=$10`
	c.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, c.SuitNumber, c.FileNumber, c.Subject, c.AssigningOfficer,
		c.AssignedTo, c.Status, c.Priority, c.DateAssigned, c.UpdatedAt, c.ID)
	return err
}

// Delete removes a case; movements, comments, documents and reminders go
// with it via ON DELETE CASCADE.
func (r *caseRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cases WHERE id = $1`, id)
	return err
}

func (r *caseRepository) AddMovement(ctx context.Context, m *domain.CaseMovement) error {
	query := `INSERT INTO movement_logs (case_id, location, action_taken, notes, moved_by, movement_date)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	m.MovementDate = time.Now()
	return r.db.QueryRowContext(ctx, query, m.CaseID, m.Location, m.ActionTaken, m.Notes, m.MovedBy, m.MovementDate).Scan(&m.ID)
}

func (r *caseRepository) ListMovements(ctx context.Context, caseID int32) ([]domain.CaseMovement, error) {
	query := `SELECT m.id, m.case_id, COALESCE(m.location, ''), m.action_taken, COALESCE(m.notes, ''), m.moved_by, COALESCE(u.name, ''), m.movement_date
	          FROM movement_logs m LEFT JOIN users u ON m.moved_by = u.id
	          WHERE m.case_id = $1 ORDER BY m.movement_date DESC`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []domain.CaseMovement
	for rows.Next() {
		var m domain.CaseMovement
		if err := rows.Scan(&m.ID, &m.CaseID, &m.Location, &m.ActionTaken, &m.Notes, &m.MovedBy, &m.MovedByName, &m.MovementDate); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *caseRepository) AddComment(ctx context.Context, c *domain.CaseComment) error {
	query := `INSERT INTO case_comments (case_id, user_id, comment, created_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	c.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, c.CaseID, c.UserID, c.Comment, c.CreatedAt).Scan(&c.ID)
}

func (r *caseRepository) ListComments(ctx context.Context, caseID int32) ([]domain.CaseComment, error) {
	query := `SELECT c.id, c.case_id, c.user_id, COALESCE(u.name, ''), c.comment, c.created_at
	          FROM case_comments c LEFT JOIN users u ON c.user_id = u.id
	          WHERE c.case_id = $1 ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.CaseComment
	for rows.Next() {
		var c domain.CaseComment
		if err := rows.Scan(&c.ID, &c.CaseID, &c.UserID, &c.UserName, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
