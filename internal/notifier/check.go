package notifier

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"signoff/internal/repositories"
)

// CheckReminders polls redis once a minute and feeds due step ids into the
// channel.
func CheckReminders(ctx context.Context, stepChan chan<- int) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(1 * time.Minute):
		}

		stepIDs, err := repositories.DueStepReminders()
		if err != nil {
			log.Printf("Error checking redis reminders: %v", err)
			continue
		}

		deliver(ctx, stepChan, stepIDs)
	}
}

// deliver hands due step ids to the consumer, bailing out on shutdown so the
// poller never blocks on a channel nobody reads anymore.
func deliver(ctx context.Context, stepChan chan<- int, stepIDs []int) {
	for _, stepID := range stepIDs {
		select {
		case <-ctx.Done():
			return
		case stepChan <- stepID:
		}
	}
}

// Start runs the reminder loop until the context is canceled.
func Start(ctx context.Context, db *gorm.DB) {
	stepChan := make(chan int)
	go CheckReminders(ctx, stepChan)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case stepID := <-stepChan:
				RemindStep(db, RedisScheduler{}, stepID)
			}
		}
	}()
}
