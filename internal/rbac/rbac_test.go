package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

func TestAllowed(t *testing.T) {
	managerOnlyActions := []Action{
		CreateProject, EditProject, DeleteProject,
		CreateTask, EditTask, DeleteTask,
		ViewTeam,
	}

	t.Run("members are denied all manager-level actions", func(t *testing.T) {
		for _, action := range managerOnlyActions {
			ok, err := Allowed(domain.RoleMember, action)
			require.NoError(t, err)
			assert.False(t, ok, "member should be denied %s", action)
		}
	})

	t.Run("admins and managers may perform manager-level actions", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager} {
			for _, action := range managerOnlyActions {
				ok, err := Allowed(role, action)
				require.NoError(t, err)
				assert.True(t, ok, "%s should be allowed %s", role, action)
			}
		}
	})

	t.Run("every role may update task status", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleMember} {
			ok, err := Allowed(role, UpdateTaskStatus)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("only admins manage users and full settings", func(t *testing.T) {
		for _, action := range []Action{ManageUsers, AccessFullSettings} {
			ok, err := Allowed(domain.RoleAdmin, action)
			require.NoError(t, err)
			assert.True(t, ok)

			for _, role := range []domain.Role{domain.RoleManager, domain.RoleMember} {
				ok, err := Allowed(role, action)
				require.NoError(t, err)
				assert.False(t, ok, "%s should be denied %s", role, action)
			}
		}
	})

	t.Run("unknown action fails closed", func(t *testing.T) {
		ok, err := Allowed(domain.RoleAdmin, Action("dropDatabase"))
		assert.ErrorIs(t, err, domain.ErrUnknownAction)
		assert.False(t, ok)
	})

	t.Run("unknown role is denied", func(t *testing.T) {
		ok, err := Allowed(domain.Role("superuser"), CreateProject)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(domain.RoleManager, CreateTask))
	assert.ErrorIs(t, Require(domain.RoleMember, DeleteProject), domain.ErrForbidden)
	assert.ErrorIs(t, Require(domain.RoleAdmin, Action("bogus")), domain.ErrUnknownAction)
}
