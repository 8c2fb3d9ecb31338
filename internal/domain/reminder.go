package domain

import "time"

// Reminder belongs to exactly one case and one owning user. IsSent is
// monotonic: it flips false to true at most once and is never reset.
type Reminder struct {
	ID           int32     `json:"id"`
	CaseID       int32     `json:"case_id"`
	UserID       int32     `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ReminderDate time.Time `json:"reminder_date"`
	IsCompleted  bool      `json:"is_completed"`
	IsSent       bool      `json:"is_sent"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined display fields, populated on reads that need them.
	CaseSubject string `json:"case_subject,omitempty"`
	SuitNumber  string `json:"suit_number,omitempty"`
}

// DueReminder is a dispatch candidate with the owner and case context already
// resolved by the candidate query.
type DueReminder struct {
	Reminder
	UserEmail string `json:"-"`
	UserName  string `json:"-"`
}
