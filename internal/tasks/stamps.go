package tasks

import (
	"time"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

// DeriveStamps computes the timestamp fields implied by moving a task into
// newStatus. startedAt is stamped on the first transition into in-progress,
// completedAt on the first transition into done; existing stamps are never
// touched, so both are monotonic.
func DeriveStamps(old domain.Task, newStatus string, now time.Time) map[string]any {
	stamps := map[string]any{}
	if newStatus == domain.TaskInProgress && old.StartedAt == "" {
		stamps["startedAt"] = domain.FormatTime(now)
	}
	if newStatus == domain.TaskDone && old.CompletedAt == "" {
		stamps["completedAt"] = domain.FormatTime(now)
	}
	return stamps
}
