package http

import (
	"net/http"

	"casetrack-backend/internal/jobs"
)

// CronHandler exposes the reminder dispatch to external schedulers. Guarded
// by CronAuth, not by user sessions.
type CronHandler struct {
	jobRunner *jobs.JobRunner
}

func NewCronHandler(jobRunner *jobs.JobRunner) *CronHandler {
	return &CronHandler{jobRunner: jobRunner}
}

// SendReminders handles POST /api/cron/send-reminders. Invoking it twice is
// harmless: reminders already marked sent are skipped.
func (h *CronHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	count, err := h.jobRunner.DispatchDueReminders(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"sent":    count,
	})
}
