package issues

import (
	"time"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

// DeriveStamps computes the timestamp fields implied by moving an issue
// into newStatus: resolvedAt is stamped on the first transition into
// resolved or closed and never touched again.
func DeriveStamps(old domain.Issue, newStatus string, now time.Time) map[string]any {
	stamps := map[string]any{}
	if (newStatus == domain.IssueResolved || newStatus == domain.IssueClosed) && old.ResolvedAt == "" {
		stamps["resolvedAt"] = domain.FormatTime(now)
	}
	return stamps
}
