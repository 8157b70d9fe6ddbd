// Package rbac holds the static permission table consulted by every
// mutating data-access operation. It is a pure lookup: no store access,
// no side effects.
package rbac

import (
	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

// Action is the closed set of gated operations. Keeping it a typed constant
// set (rather than free-form strings) makes an out-of-set action an
// explicit ErrUnknownAction instead of a silent allow.
type Action string

const (
	CreateProject      Action = "createProject"
	EditProject        Action = "editProject"
	DeleteProject      Action = "deleteProject"
	CreateTask         Action = "createTask"
	EditTask           Action = "editTask"
	DeleteTask         Action = "deleteTask"
	UpdateTaskStatus   Action = "updateTaskStatus"
	ViewTeam           Action = "viewTeam"
	ManageUsers        Action = "manageUsers"
	AccessFullSettings Action = "accessFullSettings"
)

// table maps each action to the roles allowed to perform it.
var table = map[Action]map[domain.Role]bool{
	CreateProject: managerOrAdmin(),
	EditProject:   managerOrAdmin(),
	DeleteProject: managerOrAdmin(),
	CreateTask:    managerOrAdmin(),
	EditTask:      managerOrAdmin(),
	DeleteTask:    managerOrAdmin(),
	// Status changes on one's own assigned task are universally allowed.
	// Ownership ("own task") is the caller's responsibility to check before
	// invoking the DAL; the table only decides by role.
	UpdateTaskStatus: {
		domain.RoleAdmin:   true,
		domain.RoleManager: true,
		domain.RoleMember:  true,
	},
	ViewTeam:           managerOrAdmin(),
	ManageUsers:        {domain.RoleAdmin: true},
	AccessFullSettings: {domain.RoleAdmin: true},
}

func managerOrAdmin() map[domain.Role]bool {
	return map[domain.Role]bool{
		domain.RoleAdmin:   true,
		domain.RoleManager: true,
	}
}

// Allowed reports whether role may perform action. Unknown actions fail
// closed with domain.ErrUnknownAction; unknown roles are simply denied.
func Allowed(role domain.Role, action Action) (bool, error) {
	roles, ok := table[action]
	if !ok {
		return false, domain.ErrUnknownAction
	}
	return roles[role], nil
}

// Require is the gate used by the services: it returns nil when the role
// may perform the action, domain.ErrForbidden on a deny, and
// domain.ErrUnknownAction for an action outside the fixed set.
func Require(role domain.Role, action Action) error {
	ok, err := Allowed(role, action)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
