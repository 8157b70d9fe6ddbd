package issues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-hq/taskflow-backend/internal/activity"
	"github.com/taskflow-hq/taskflow-backend/internal/domain"
	"github.com/taskflow-hq/taskflow-backend/internal/store"
)

var (
	manager = domain.Principal{ID: "manager-1", Role: domain.RoleManager}
	member  = domain.Principal{ID: "member-1", Role: domain.RoleMember}
)

func newTestService() (*Service, *store.Memory, *activity.Feed) {
	mem := store.NewMemory()
	return NewService(mem, activity.NewLogger(mem)), mem, activity.NewFeed(mem)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("any role may report an issue", func(t *testing.T) {
		svc, _, feed := newTestService()

		id, err := svc.Create(ctx, member, CreateInput{
			ProjectID: "p1",
			TaskID:    "t1",
			Title:     "Login loops forever",
		})
		require.NoError(t, err)

		issue, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.IssueOpen, issue.Status)
		assert.Equal(t, domain.SeverityMedium, issue.Severity)
		assert.Equal(t, "member-1", issue.ReportedBy)
		assert.Equal(t, "t1", issue.TaskID)
		assert.Empty(t, issue.ResolvedAt)

		records, err := feed.List(ctx, "p1", 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "reported issue", records[0].Action)
	})

	t.Run("missing title or project is rejected", func(t *testing.T) {
		svc, mem, _ := newTestService()

		_, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1"})
		require.True(t, domain.IsValidation(err))

		_, err = svc.Create(ctx, member, CreateInput{Title: "x"})
		require.True(t, domain.IsValidation(err))
		assert.Equal(t, 0, mem.Count(store.Issues))
	})

	t.Run("unknown severity is rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "x", Severity: "meltdown"})
		require.True(t, domain.IsValidation(err))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("member may not edit issues", func(t *testing.T) {
		svc, _, _ := newTestService()
		id, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "x"})
		require.NoError(t, err)

		status := domain.IssueResolved
		err = svc.Update(ctx, member, id, Patch{Status: &status})
		require.ErrorIs(t, err, domain.ErrForbidden)

		issue, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.IssueOpen, issue.Status)
	})

	t.Run("resolving stamps resolvedAt exactly once", func(t *testing.T) {
		svc, _, _ := newTestService()
		id, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "x"})
		require.NoError(t, err)

		resolved := domain.IssueResolved
		require.NoError(t, svc.Update(ctx, manager, id, Patch{Status: &resolved}))
		first, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.NotEmpty(t, first.ResolvedAt)

		closed := domain.IssueClosed
		require.NoError(t, svc.Update(ctx, manager, id, Patch{Status: &closed}))
		after, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.IssueClosed, after.Status)
		assert.Equal(t, first.ResolvedAt, after.ResolvedAt)
	})

	t.Run("status change audits with the target status", func(t *testing.T) {
		svc, _, feed := newTestService()
		id, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "x"})
		require.NoError(t, err)

		status := domain.IssueInProgress
		require.NoError(t, svc.Update(ctx, manager, id, Patch{Status: &status}))

		records, err := feed.List(ctx, "p1", 0)
		require.NoError(t, err)
		actions := make([]string, 0, len(records))
		for _, r := range records {
			actions = append(actions, r.Action)
		}
		assert.Contains(t, actions, "updated issue status to in-progress")
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc, _, _ := newTestService()
		id, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "x"})
		require.NoError(t, err)

		status := "wontfix"
		err = svc.Update(ctx, manager, id, Patch{Status: &status})
		require.True(t, domain.IsValidation(err))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("member is denied", func(t *testing.T) {
		svc, _, _ := newTestService()
		id, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "x"})
		require.NoError(t, err)

		err = svc.Delete(ctx, member, id)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("manager delete removes and audits", func(t *testing.T) {
		svc, _, feed := newTestService()
		id, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "x"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, manager, id))

		_, err = svc.Get(ctx, id)
		require.ErrorIs(t, err, domain.ErrNotFound)

		records, err := feed.List(ctx, "p1", 0)
		require.NoError(t, err)
		actions := make([]string, 0, len(records))
		for _, r := range records {
			actions = append(actions, r.Action)
		}
		assert.Contains(t, actions, "deleted issue")
	})
}

func TestListByProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Create(ctx, member, CreateInput{ProjectID: "p1", Title: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, member, CreateInput{ProjectID: "p2", Title: "b"})
	require.NoError(t, err)

	got, err := svc.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Title)
}
