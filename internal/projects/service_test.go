package projects

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
	admin   = domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}
	manager = domain.Principal{ID: "manager-1", Role: domain.RoleManager}
	member  = domain.Principal{ID: "member-1", Role: domain.RoleMember}
)

func newTestService() (*Service, *store.Memory, *activity.Feed) {
	mem := store.NewMemory()
	return NewService(mem, activity.NewLogger(mem)), mem, activity.NewFeed(mem)
}

func feedActions(t *testing.T, feed *activity.Feed, projectID string) []string {
	t.Helper()
	records, err := feed.List(context.Background(), projectID, 0)
	require.NoError(t, err)
	actions := make([]string, 0, len(records))
	for _, r := range records {
		actions = append(actions, r.Action)
	}
	return actions
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("manager creates with creator as first member", func(t *testing.T) {
		svc, _, feed := newTestService()

		id, err := svc.Create(ctx, manager, "Launch", "Q3 launch", []string{"member-1", "manager-1", "member-1"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		project, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Launch", project.Name)
		assert.Equal(t, domain.ProjectActive, project.Status)
		assert.Equal(t, "manager-1", project.CreatedBy)
		assert.Equal(t, []string{"manager-1", "member-1"}, project.Members)
		assert.NotEmpty(t, project.CreatedAt)

		assert.Equal(t, []string{"created project"}, feedActions(t, feed, id))
	})

	t.Run("member is denied and nothing is written", func(t *testing.T) {
		svc, mem, _ := newTestService()

		_, err := svc.Create(ctx, member, "Launch", "", nil)
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, 0, mem.Count(store.Projects))
		assert.Equal(t, 0, mem.Count(store.Activities))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		svc, mem, _ := newTestService()

		_, err := svc.Create(ctx, admin, "   ", "", nil)
		require.True(t, domain.IsValidation(err))
		assert.Equal(t, 0, mem.Count(store.Projects))
	})

	t.Run("audit failure does not fail the create", func(t *testing.T) {
		svc, mem, _ := newTestService()
		mem.FailInsert[store.Activities] = true

		id, err := svc.Create(ctx, manager, "Launch", "", nil)
		require.NoError(t, err)

		_, err = svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, mem.Count(store.Activities))
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Create(ctx, manager, "Alpha", "", []string{"member-1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, "Beta", "", nil)
	require.NoError(t, err)

	t.Run("unfiltered returns everything", func(t *testing.T) {
		got, err := svc.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("member filter narrows by membership", func(t *testing.T) {
		got, err := svc.List(ctx, "member-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Alpha", got[0].Name)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("member is denied and the document is untouched", func(t *testing.T) {
		svc, _, _ := newTestService()
		id, err := svc.Create(ctx, manager, "Launch", "", nil)
		require.NoError(t, err)

		name := "Hijacked"
		err = svc.Update(ctx, member, id, Patch{Name: &name})
		require.ErrorIs(t, err, domain.ErrForbidden)

		project, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Launch", project.Name)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc, _, _ := newTestService()
		id, err := svc.Create(ctx, manager, "Launch", "", nil)
		require.NoError(t, err)

		status := "archived"
		err = svc.Update(ctx, manager, id, Patch{Status: &status})
		require.True(t, domain.IsValidation(err))
	})

	t.Run("member replacement keeps the creator", func(t *testing.T) {
		svc, _, feed := newTestService()
		id, err := svc.Create(ctx, manager, "Launch", "", []string{"member-1"})
		require.NoError(t, err)

		err = svc.Update(ctx, admin, id, Patch{Members: []string{"member-2"}})
		require.NoError(t, err)

		project, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"manager-1", "member-2"}, project.Members)

		assert.Contains(t, feedActions(t, feed, id), "updated project")
	})

	t.Run("missing project surfaces not found", func(t *testing.T) {
		svc, _, _ := newTestService()
		status := domain.ProjectOnHold
		err := svc.Update(ctx, manager, "nope", Patch{Status: &status})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a new member and audits with the display name", func(t *testing.T) {
		svc, mem, feed := newTestService()
		require.NoError(t, mem.Put(ctx, store.Users, "member-2", map[string]any{
			"displayName": "Dana Reyes",
			"role":        "member",
		}))

		id, err := svc.Create(ctx, manager, "Launch", "", nil)
		require.NoError(t, err)

		require.NoError(t, svc.AddMember(ctx, manager, id, "member-2"))

		project, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"manager-1", "member-2"}, project.Members)

		records, err := feed.List(ctx, id, 0)
		require.NoError(t, err)
		var found bool
		for _, r := range records {
			if r.Action == "added member" {
				found = true
				assert.Equal(t, domain.TargetMember, r.TargetType)
				assert.Equal(t, "member-2", r.TargetID)
				assert.Equal(t, "Dana Reyes", r.TargetTitle)
			}
		}
		assert.True(t, found)
	})

	t.Run("existing member is a silent no-op", func(t *testing.T) {
		svc, _, feed := newTestService()
		id, err := svc.Create(ctx, manager, "Launch", "", []string{"member-1"})
		require.NoError(t, err)
		before := len(feedActions(t, feed, id))

		require.NoError(t, svc.AddMember(ctx, manager, id, "member-1"))

		project, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"manager-1", "member-1"}, project.Members)
		assert.Len(t, feedActions(t, feed, id), before)
	})

	t.Run("member role is denied", func(t *testing.T) {
		svc, _, _ := newTestService()
		id, err := svc.Create(ctx, manager, "Launch", "", nil)
		require.NoError(t, err)

		err = svc.AddMember(ctx, member, id, "member-2")
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("member is denied and the project survives", func(t *testing.T) {
		svc, mem, _ := newTestService()
		id, err := svc.Create(ctx, manager, "Launch", "", nil)
		require.NoError(t, err)
		auditedBefore := mem.Count(store.Activities)

		err = svc.Delete(ctx, member, id)
		require.ErrorIs(t, err, domain.ErrForbidden)

		_, err = svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, auditedBefore, mem.Count(store.Activities))
	})

	t.Run("manager delete removes the document but keeps the trail", func(t *testing.T) {
		svc, _, feed := newTestService()
		id, err := svc.Create(ctx, manager, "Launch", "", nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, manager, id))

		_, err = svc.Get(ctx, id)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, feedActions(t, feed, id), "deleted project")
		assert.Contains(t, feedActions(t, feed, id), "created project")
	})
}
