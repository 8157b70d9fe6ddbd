// Package projects implements the project operation family. The creator is
// always a member: Create seeds the member list with the creator, Update
// re-inserts the creator if a replacement list drops them, and AddMember
// only ever grows the set.
package projects

import (
	"context"
	"strings"
	"time"

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

// Patch carries the updatable project fields; nil means "leave unchanged".
// A non-nil Members replaces the member list wholesale, except that the
// creator is always retained.
type Patch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Members     []string `json:"members"`
}

func (s *Service) Create(ctx context.Context, p domain.Principal, name, description string, members []string) (string, error) {
	if err := rbac.Require(p.Role, rbac.CreateProject); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Invalid("name", "must not be empty")
	}

	// Creator first, then the requested members, deduplicated.
	memberSet := map[string]bool{p.ID: true}
	memberList := []string{p.ID}
	for _, m := range members {
		if m == "" || memberSet[m] {
			continue
		}
		memberSet[m] = true
		memberList = append(memberList, m)
	}

	now := domain.FormatTime(time.Now())
	id, err := s.store.Insert(ctx, store.Projects, map[string]any{
		"name":        name,
		"description": description,
		"status":      domain.ProjectActive,
		"createdBy":   p.ID,
		"members":     memberList,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if err != nil {
		return "", err
	}

	s.audit.Report(ctx, id, p.ID, "created project", domain.TargetProject, id, name)
	return id, nil
}

// List returns projects newest first. A non-empty member id narrows the
// result to projects that user belongs to. Reads are not permission-gated.
func (s *Service) List(ctx context.Context, member string) ([]domain.Project, error) {
	q := store.Query{OrderBy: "createdAt", Desc: true}
	if member != "" {
		q.Filters = []store.Filter{{Field: "members", Op: "array-contains", Value: member}}
	}

	docs, err := s.store.Query(ctx, store.Projects, q)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDoc(doc))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Project, error) {
	doc, err := s.store.Get(ctx, store.Projects, id)
	if err != nil {
		return domain.Project{}, err
	}
	return fromDoc(doc), nil
}

func (s *Service) Update(ctx context.Context, p domain.Principal, id string, patch Patch) error {
	if err := rbac.Require(p.Role, rbac.EditProject); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	update := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Invalid("name", "must not be empty")
		}
		update["name"] = name
		current.Name = name
	}
	if patch.Description != nil {
		update["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !domain.ValidProjectStatus(*patch.Status) {
			return domain.Invalid("status", "unknown project status")
		}
		update["status"] = *patch.Status
	}
	if patch.Members != nil {
		members := patch.Members
		found := false
		for _, m := range members {
			if m == current.CreatedBy {
				found = true
				break
			}
		}
		if !found {
			members = append([]string{current.CreatedBy}, members...)
		}
		update["members"] = members
	}
	update["updatedAt"] = domain.FormatTime(time.Now())

	if err := s.store.Patch(ctx, store.Projects, id, update); err != nil {
		return err
	}

	s.audit.Report(ctx, id, p.ID, "updated project", domain.TargetProject, id, current.Name)
	return nil
}

// AddMember appends one user to the member list. Adding an existing member
// is a no-op that still succeeds; the list only ever grows here.
func (s *Service) AddMember(ctx context.Context, p domain.Principal, id, userID string) error {
	if err := rbac.Require(p.Role, rbac.EditProject); err != nil {
		return err
	}
	if userID == "" {
		return domain.Invalid("userId", "must not be empty")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range current.Members {
		if m == userID {
			return nil
		}
	}

	update := map[string]any{
		"members":   append(current.Members, userID),
		"updatedAt": domain.FormatTime(time.Now()),
	}
	if err := s.store.Patch(ctx, store.Projects, id, update); err != nil {
		return err
	}

	title := userID
	if userDoc, err := s.store.Get(ctx, store.Users, userID); err == nil {
		if name := store.Str(userDoc.Data, "displayName"); name != "" {
			title = name
		}
	}
	s.audit.Report(ctx, id, p.ID, "added member", domain.TargetMember, userID, title)
	return nil
}

// Delete removes the project document. Tasks, issues and activity records
// that reference it are left in place; the activity trail in particular
// must survive so "deleted project" stays explainable.
func (s *Service) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := rbac.Require(p.Role, rbac.DeleteProject); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, store.Projects, id); err != nil {
		return err
	}

	s.audit.Report(ctx, id, p.ID, "deleted project", domain.TargetProject, id, current.Name)
	return nil
}

func fromDoc(doc store.Document) domain.Project {
	return domain.Project{
		ID:          doc.ID,
		Name:        store.Str(doc.Data, "name"),
		Description: store.Str(doc.Data, "description"),
		Status:      store.Str(doc.Data, "status"),
		CreatedBy:   store.Str(doc.Data, "createdBy"),
		Members:     store.StrSlice(doc.Data, "members"),
		CreatedAt:   store.Str(doc.Data, "createdAt"),
		UpdatedAt:   store.Str(doc.Data, "updatedAt"),
	}
}
