// Package team implements the roster operations: member listing with
// read-time task aggregates, profile edits, and admin role management.
package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskflow-hq/taskflow-backend/internal/activity"
	"github.com/taskflow-hq/taskflow-backend/internal/domain"
	"github.com/taskflow-hq/taskflow-backend/internal/rbac"
	"github.com/taskflow-hq/taskflow-backend/internal/store"
)

type Service struct {
	store store.Store
	audit *activity.Logger
}

func NewService(s store.Store, audit *activity.Logger) *Service {
	return &Service{store: s, audit: audit}
}

// ProfilePatch carries the self-serviceable profile fields.
type ProfilePatch struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
	Department  *string `json:"department"`
	Position    *string `json:"position"`
}

// ListMembers returns the project's roster with per-member task counts.
// The counts are recomputed from the store on every call; there is no
// cached or incrementally maintained counter, so the staleness window is
// zero at O(members × tasks) read cost.
func (s *Service) ListMembers(ctx context.Context, p domain.Principal, projectID string) ([]domain.TeamMember, error) {
	if err := rbac.Require(p.Role, rbac.ViewTeam); err != nil {
		return nil, err
	}

	project, err := s.store.Get(ctx, store.Projects, projectID)
	if err != nil {
		return nil, err
	}

	memberIDs := store.StrSlice(project.Data, "members")
	out := make([]domain.TeamMember, 0, len(memberIDs))
	for _, uid := range memberIDs {
		userDoc, err := s.store.Get(ctx, store.Users, uid)
		if err == domain.ErrNotFound {
			// Stale member reference; the roster simply omits it.
			continue
		}
		if err != nil {
			return nil, err
		}

		completed, err := s.countTasks(ctx, projectID, uid, domain.TaskDone)
		if err != nil {
			return nil, err
		}
		inProgress, err := s.countTasks(ctx, projectID, uid, domain.TaskInProgress)
		if err != nil {
			return nil, err
		}

		out = append(out, domain.TeamMember{
			User:            userFromDoc(userDoc),
			TasksCompleted:  completed,
			TasksInProgress: inProgress,
		})
	}
	return out, nil
}

// ListUsers returns every account, without task aggregates.
func (s *Service) ListUsers(ctx context.Context, p domain.Principal) ([]domain.TeamMember, error) {
	if err := rbac.Require(p.Role, rbac.ViewTeam); err != nil {
		return nil, err
	}

	docs, err := s.store.Query(ctx, store.Users, store.Query{OrderBy: "displayName"})
	if err != nil {
		return nil, err
	}
	out := make([]domain.TeamMember, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.TeamMember{User: userFromDoc(doc)})
	}
	return out, nil
}

func (s *Service) GetUser(ctx context.Context, uid string) (domain.User, error) {
	doc, err := s.store.Get(ctx, store.Users, uid)
	if err != nil {
		return domain.User{}, err
	}
	return userFromDoc(doc), nil
}

// UpdateProfile edits display fields on a user record. Principals may edit
// their own profile; editing anyone else requires manageUsers.
func (s *Service) UpdateProfile(ctx context.Context, p domain.Principal, uid string, patch ProfilePatch) error {
	if p.ID != uid {
		if err := rbac.Require(p.Role, rbac.ManageUsers); err != nil {
			return err
		}
	}

	update := map[string]any{}
	if patch.DisplayName != nil {
		name := strings.TrimSpace(*patch.DisplayName)
		if name == "" {
			return domain.Invalid("displayName", "must not be empty")
		}
		update["displayName"] = name
	}
	if patch.PhotoURL != nil {
		update["photoURL"] = *patch.PhotoURL
	}
	if patch.Department != nil {
		update["department"] = *patch.Department
	}
	if patch.Position != nil {
		update["position"] = *patch.Position
	}
	if len(update) == 0 {
		return domain.Invalid("patch", "no fields to update")
	}

	if err := s.store.Patch(ctx, store.Users, uid, update); err != nil {
		return err
	}

	user, err := s.GetUser(ctx, uid)
	title := uid
	if err == nil && user.DisplayName != "" {
		title = user.DisplayName
	}
	s.audit.Report(ctx, "", p.ID, "updated profile", domain.TargetMember, uid, title)
	return nil
}

// SetRole changes an account's role. Admin only, and never on the acting
// admin's own record: a principal cannot change its own role.
func (s *Service) SetRole(ctx context.Context, p domain.Principal, uid string, role domain.Role) error {
	if err := rbac.Require(p.Role, rbac.ManageUsers); err != nil {
		return err
	}
	if p.ID == uid {
		return domain.ErrForbidden
	}
	if !role.Valid() {
		return domain.Invalid("role", "unknown role")
	}

	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.store.Patch(ctx, store.Users, uid, map[string]any{"role": string(role)}); err != nil {
		return err
	}

	title := user.DisplayName
	if title == "" {
		title = uid
	}
	s.audit.Report(ctx, "", p.ID, fmt.Sprintf("changed role to %s", role), domain.TargetMember, uid, title)
	return nil
}

func (s *Service) countTasks(ctx context.Context, projectID, uid, status string) (int, error) {
	docs, err := s.store.Query(ctx, store.Tasks, store.Query{
		Filters: []store.Filter{
			{Field: "projectId", Op: "==", Value: projectID},
			{Field: "assignedTo", Op: "==", Value: uid},
			{Field: "status", Op: "==", Value: status},
		},
	})
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func userFromDoc(doc store.Document) domain.User {
	return domain.User{
		UID:         doc.ID,
		Email:       store.Str(doc.Data, "email"),
		DisplayName: store.Str(doc.Data, "displayName"),
		PhotoURL:    store.Str(doc.Data, "photoURL"),
		Role:        domain.Role(store.Str(doc.Data, "role")),
		Department:  store.Str(doc.Data, "department"),
		Position:    store.Str(doc.Data, "position"),
		CreatedAt:   store.Str(doc.Data, "createdAt"),
	}
}
