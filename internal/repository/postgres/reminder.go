package postgres

import (
	"context"
	"database/sql"
	"time"

	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
)

type reminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `INSERT INTO reminders (case_id, user_id, title, description, reminder_date, is_completed, is_sent, created_at)
	          VALUES ($1, $2, $3, $4, $5, FALSE, FALSE, $6) RETURNING id`
	rem.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, rem.CaseID, rem.UserID, rem.Title, rem.Description,
		rem.ReminderDate, rem.CreatedAt).Scan(&rem.ID)
}

func (r *reminderRepository) GetByID(ctx context.Context, id int32) (*domain.Reminder, error) {
	rem := &domain.Reminder{}
	query := `SELECT id, case_id, user_id, title, COALESCE(description, ''), reminder_date, is_completed, is_sent, created_at
	          FROM reminders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rem.ID, &rem.CaseID, &rem.UserID, &rem.Title,
		&rem.Description, &rem.ReminderDate, &rem.IsCompleted, &rem.IsSent, &rem.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rem, nil
}

// ListIncomplete returns open reminders with case context, soonest first.
// A nil userID returns every user's reminders (admin view).
func (r *reminderRepository) ListIncomplete(ctx context.Context, userID *int32) ([]domain.Reminder, error) {
	query := `SELECT r.id, r.case_id, r.user_id, r.title, COALESCE(r.description, ''), r.reminder_date,
	                 r.is_completed, r.is_sent, r.created_at, COALESCE(c.subject, ''), COALESCE(c.suit_number, '')
	          FROM reminders r LEFT JOIN cases c ON r.case_id = c.id
	          WHERE r.is_completed = FALSE`
	args := []any{}
	if userID != nil {
		query += ` AND r.user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY r.reminder_date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

func (r *reminderRepository) ListByCase(ctx context.Context, caseID int32) ([]domain.Reminder, error) {
	query := `SELECT r.id, r.case_id, r.user_id, r.title, COALESCE(r.description, ''), r.reminder_date,
	                 r.is_completed, r.is_sent, r.created_at, COALESCE(c.subject, ''), COALESCE(c.suit_number, '')
	          FROM reminders r LEFT JOIN cases c ON r.case_id = c.id
	          WHERE r.case_id = $1 ORDER BY r.reminder_date ASC`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

func scanReminders(rows *sql.Rows) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		if err := rows.Scan(&rem.ID, &rem.CaseID, &rem.UserID, &rem.Title, &rem.Description, &rem.ReminderDate,
			&rem.IsCompleted, &rem.IsSent, &rem.CreatedAt, &rem.CaseSubject, &rem.SuitNumber); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// Update writes the editable fields. is_sent is deliberately not part of the
// statement: the flag is owned by the dispatcher and only moves through
// MarkSent.
func (r *reminderRepository) Update(ctx context.Context, rem *domain.Reminder) error {
	query := `UPDATE reminders SET title = $1, description = $2, reminder_date = $3, is_completed = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, rem.Title, rem.Description, rem.ReminderDate, rem.IsCompleted, rem.ID)
	return err
}

func (r *reminderRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	return err
}

// ListDue joins candidates with their owner and parent case. INNER JOINs
// drop reminders whose owner or case fails to resolve, which the dispatcher
// treats as a skip rather than an error.
func (r *reminderRepository) ListDue(ctx context.Context, now time.Time) ([]domain.DueReminder, error) {
	query := `SELECT r.id, r.case_id, r.user_id, r.title, COALESCE(r.description, ''), r.reminder_date,
	                 c.subject, c.suit_number, u.email, u.name
	          FROM reminders r
	          JOIN users u ON r.user_id = u.id
	          JOIN cases c ON r.case_id = c.id
	          WHERE r.reminder_date <= $1 AND r.is_sent = FALSE AND r.is_completed = FALSE`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []domain.DueReminder
	for rows.Next() {
		var d domain.DueReminder
		if err := rows.Scan(&d.ID, &d.CaseID, &d.UserID, &d.Title, &d.Description, &d.ReminderDate,
			&d.CaseSubject, &d.SuitNumber, &d.UserEmail, &d.UserName); err != nil {
			return nil, err
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

// MarkSent is a conditional write so overlapping dispatch runs cannot both
// count the same reminder as newly sent.
func (r *reminderRepository) MarkSent(ctx context.Context, id int32) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET is_sent = TRUE WHERE id = $1 AND is_sent = FALSE`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
