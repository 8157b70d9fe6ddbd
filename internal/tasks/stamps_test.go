package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

func TestDeriveStamps(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	stamped := domain.FormatTime(now)

	tests := []struct {
		name      string
		old       domain.Task
		newStatus string
		want      map[string]any
	}{
		{
			name:      "first move into in-progress stamps startedAt",
			old:       domain.Task{Status: domain.TaskTodo},
			newStatus: domain.TaskInProgress,
			want:      map[string]any{"startedAt": stamped},
		},
		{
			name:      "second move into in-progress leaves startedAt alone",
			old:       domain.Task{Status: domain.TaskReview, StartedAt: "2026-01-01T00:00:00.000Z"},
			newStatus: domain.TaskInProgress,
			want:      map[string]any{},
		},
		{
			name:      "first move into done stamps completedAt",
			old:       domain.Task{Status: domain.TaskReview, StartedAt: "2026-01-01T00:00:00.000Z"},
			newStatus: domain.TaskDone,
			want:      map[string]any{"completedAt": stamped},
		},
		{
			name:      "done twice keeps the original completedAt",
			old:       domain.Task{Status: domain.TaskDone, CompletedAt: "2026-01-02T00:00:00.000Z"},
			newStatus: domain.TaskDone,
			want:      map[string]any{},
		},
		{
			name:      "skipping straight to done stamps only completedAt",
			old:       domain.Task{Status: domain.TaskTodo},
			newStatus: domain.TaskDone,
			want:      map[string]any{"completedAt": stamped},
		},
		{
			name:      "regressing to todo stamps nothing",
			old:       domain.Task{Status: domain.TaskDone, StartedAt: "x", CompletedAt: "y"},
			newStatus: domain.TaskTodo,
			want:      map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStamps(tt.old, tt.newStatus, now))
		})
	}
}
