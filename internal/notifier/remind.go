package notifier

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"signoff/internal/config"
	"signoff/internal/models"
	"signoff/internal/repositories"
	"signoff/internal/services"
)

// maxNudges – how many reminders a single step gets before we stop nagging
// its approver.
const maxNudges = 3

// RedisScheduler implements services.ReminderScheduler over the shared redis
// sorted set.
type RedisScheduler struct{}

func (RedisScheduler) ScheduleStep(stepID int, due time.Time) error {
	return repositories.ScheduleStepReminder(stepID, due)
}

func (RedisScheduler) CancelStep(stepID int) error {
	return repositories.RemoveStepReminder(stepID)
}

// RemindStep records and logs a nudge for a step that is still pending, then
// queues the next nudge until the step is processed or the cap is reached.
func RemindStep(db *gorm.DB, scheduler services.ReminderScheduler, stepID int) {
	if err := scheduler.CancelStep(stepID); err != nil {
		log.Errorf("failed to remove reminder for step %d: %v", stepID, err)
	}

	step, err := repositories.StepByID(db, stepID)
	if err != nil {
		log.Errorf("reminder for unknown step %d: %v", stepID, err)
		return
	}
	if step.Status != models.StatusPending {
		return
	}

	sent, err := repositories.CountStepReminders(db, stepID)
	if err != nil {
		log.Errorf("failed to count reminders for step %d: %v", stepID, err)
		return
	}
	if sent >= maxNudges {
		return
	}

	if err := repositories.CreateReminder(db, stepID); err != nil {
		log.Errorf("failed to record reminder for step %d: %v", stepID, err)
		return
	}

	log.Infof("approval request %d still waiting on %s (step %d)",
		step.RequestID, step.ApproverRole, step.StepOrder)

	if sent+1 < maxNudges {
		if err := scheduler.ScheduleStep(stepID, time.Now().Add(config.ReminderAfter)); err != nil {
			log.Errorf("failed to schedule reminder for step %d: %v", stepID, err)
		}
	}
}
