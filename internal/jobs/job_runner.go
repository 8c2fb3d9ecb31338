package jobs

import (
	"casetrack-backend/internal/config"
	"casetrack-backend/internal/logger"
	"casetrack-backend/internal/repository"
	"casetrack-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reminderRepo repository.ReminderRepository
	emailSvc     service.EmailService
	config       *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(reminderRepo repository.ReminderRepository, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		reminderRepo: reminderRepo,
		emailSvc:     emailSvc,
		config:       cfg,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
