package repositories

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	rdb "signoff/pkg/db/redis"
)

const reminderSet = "step_reminders"

// ScheduleStepReminder – queues a nudge for the step in redis, scored by the
// unix time it becomes due.
func ScheduleStepReminder(stepID int, due time.Time) error {
	return rdb.Client().ZAdd(reminderSet, fmt.Sprintf("remind:%d", stepID), float64(due.Unix()))
}

func RemoveStepReminder(stepID int) error {
	return rdb.Client().ZRem(reminderSet, fmt.Sprintf("remind:%d", stepID))
}

// DueStepReminders returns the ids of all steps whose reminder time has
// passed.
func DueStepReminders() ([]int, error) {
	entries, err := rdb.Client().ZRangeByScoreWithScores(reminderSet, "0", fmt.Sprintf("%d", time.Now().Unix()))
	if err != nil {
		return nil, err
	}

	var stepIDs []int
	for _, entry := range entries {
		parts := strings.Split(entry.Member.(string), ":")
		if len(parts) != 2 {
			continue
		}

		stepID, err := strconv.Atoi(parts[1])
		if err != nil {
			log.Printf("Failed to parse reminder member %q: %v", entry.Member, err)
			continue
		}
		stepIDs = append(stepIDs, stepID)
	}

	return stepIDs, nil
}
