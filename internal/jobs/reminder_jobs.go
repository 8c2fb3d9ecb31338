package jobs

import (
	"context"
	"time"

	"casetrack-backend/internal/logger"
	"casetrack-backend/internal/service"
)

// SendDueReminders is the cron entry point for the reminder dispatch.
func (jr *JobRunner) SendDueReminders() {
	jr.runWithRecovery("SendDueReminders", func() {
		count, err := jr.DispatchDueReminders(context.Background())
		if err != nil {
			logger.Error("Reminder dispatch failed", "error", err)
			return
		}
		logger.Info("Due reminders sent", "count", count)
	})
}

// DispatchDueReminders scans due, unsent, incomplete reminders, drives the
// notification gateway and marks each successfully delivered reminder sent.
// It is safe to invoke concurrently or redundantly: the mark is a
// conditional write, so only the run that actually flips the flag counts
// the reminder. A failed send leaves the reminder unsent for the next run;
// one item's failure never aborts the rest of the batch.
func (jr *JobRunner) DispatchDueReminders(ctx context.Context) (int, error) {
	due, err := jr.reminderRepo.ListDue(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rem := range due {
		notice := service.ReminderNotice{
			Title:       rem.Title,
			Description: rem.Description,
			CaseSubject: rem.CaseSubject,
			SuitNumber:  rem.SuitNumber,
		}

		if err := jr.emailSvc.SendReminder(ctx, rem.UserEmail, rem.UserName, notice); err != nil {
			logger.Error("Failed to send reminder email",
				"reminder_id", rem.ID,
				"user_id", rem.UserID,
				"email", rem.UserEmail,
				"error", err)
			continue
		}

		// mark right after the successful send, before the next item, to
		// keep the duplicate window as narrow as possible
		marked, err := jr.reminderRepo.MarkSent(ctx, rem.ID)
		if err != nil {
			logger.Error("Failed to mark reminder sent", "reminder_id", rem.ID, "error", err)
			continue
		}
		if !marked {
			// an overlapping run got there first
			logger.Debug("Reminder already marked sent", "reminder_id", rem.ID)
			continue
		}

		count++
		logger.Debug("Sent reminder", "reminder_id", rem.ID, "user_id", rem.UserID, "email", rem.UserEmail)
	}

	return count, nil
}
