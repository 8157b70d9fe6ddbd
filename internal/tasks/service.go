// Package tasks implements the task operation family. Status transitions
// are deliberately open: the update path accepts any target status (the
// board UI is what advances todo → in-progress → review → done), and only
// the derived timestamp stamping is state-aware.
package tasks

import (
	"context"
	"fmt"
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

type CreateInput struct {
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssignedTo  string   `json:"assignedTo"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Tags        []string `json:"tags"`
}

// Patch carries the updatable task fields; nil means "leave unchanged".
type Patch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	AssignedTo  *string  `json:"assignedTo"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags"`
}

func (s *Service) Create(ctx context.Context, p domain.Principal, in CreateInput) (string, error) {
	if err := rbac.Require(p.Role, rbac.CreateTask); err != nil {
		return "", err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", domain.Invalid("title", "must not be empty")
	}
	if in.ProjectID == "" {
		return "", domain.Invalid("projectId", "must not be empty")
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !domain.ValidTaskPriority(in.Priority) {
		return "", domain.Invalid("priority", "unknown priority")
	}

	now := domain.FormatTime(time.Now())
	id, err := s.store.Insert(ctx, store.Tasks, map[string]any{
		"projectId":   in.ProjectID,
		"title":       title,
		"description": in.Description,
		"status":      domain.TaskTodo,
		"priority":    in.Priority,
		"assignedTo":  in.AssignedTo,
		"assignedBy":  p.ID,
		"dueDate":     in.DueDate,
		"tags":        in.Tags,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if err != nil {
		return "", err
	}

	s.audit.Report(ctx, in.ProjectID, p.ID, "created task", domain.TargetTask, id, title)
	return id, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Task, error) {
	return s.query(ctx, nil)
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return s.query(ctx, []store.Filter{{Field: "projectId", Op: "==", Value: projectID}})
}

func (s *Service) ListByAssignee(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.query(ctx, []store.Filter{{Field: "assignedTo", Op: "==", Value: userID}})
}

func (s *Service) Get(ctx context.Context, id string) (domain.Task, error) {
	doc, err := s.store.Get(ctx, store.Tasks, id)
	if err != nil {
		return domain.Task{}, err
	}
	return fromDoc(doc), nil
}

// Update patches arbitrary task fields. A status change goes through the
// same stamping rule as UpdateStatus, inside the same store write.
func (s *Service) Update(ctx context.Context, p domain.Principal, id string, patch Patch) error {
	if err := rbac.Require(p.Role, rbac.EditTask); err != nil {
		return err
	}
	return s.apply(ctx, p, id, patch)
}

// UpdateStatus moves a task to the given status. Every role may call this;
// checking that a member only touches their own assigned task (comparing
// assignedTo with the principal) is the caller's responsibility, matching
// the original system, which never enforced ownership at the data layer.
func (s *Service) UpdateStatus(ctx context.Context, p domain.Principal, id, status string) error {
	if err := rbac.Require(p.Role, rbac.UpdateTaskStatus); err != nil {
		return err
	}
	return s.apply(ctx, p, id, Patch{Status: &status})
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := rbac.Require(p.Role, rbac.DeleteTask); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, store.Tasks, id); err != nil {
		return err
	}

	s.audit.Report(ctx, current.ProjectID, p.ID, "deleted task", domain.TargetTask, id, current.Title)
	return nil
}

func (s *Service) apply(ctx context.Context, p domain.Principal, id string, patch Patch) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	update := map[string]any{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.Invalid("title", "must not be empty")
		}
		update["title"] = title
		current.Title = title
	}
	if patch.Description != nil {
		update["description"] = *patch.Description
	}
	if patch.Priority != nil {
		if !domain.ValidTaskPriority(*patch.Priority) {
			return domain.Invalid("priority", "unknown priority")
		}
		update["priority"] = *patch.Priority
	}
	if patch.AssignedTo != nil {
		update["assignedTo"] = *patch.AssignedTo
	}
	if patch.DueDate != nil {
		update["dueDate"] = *patch.DueDate
	}
	if patch.Tags != nil {
		update["tags"] = patch.Tags
	}
	if patch.Status != nil {
		if !domain.ValidTaskStatus(*patch.Status) {
			return domain.Invalid("status", "unknown task status")
		}
		update["status"] = *patch.Status
		for field, value := range DeriveStamps(current, *patch.Status, time.Now()) {
			update[field] = value
		}
	}
	update["updatedAt"] = domain.FormatTime(time.Now())

	if err := s.store.Patch(ctx, store.Tasks, id, update); err != nil {
		return err
	}

	action := "updated task"
	if patch.Status != nil {
		action = fmt.Sprintf("updated task status to %s", *patch.Status)
	}
	s.audit.Report(ctx, current.ProjectID, p.ID, action, domain.TargetTask, id, current.Title)
	return nil
}

func (s *Service) query(ctx context.Context, filters []store.Filter) ([]domain.Task, error) {
	docs, err := s.store.Query(ctx, store.Tasks, store.Query{
		Filters: filters,
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDoc(doc))
	}
	return out, nil
}

func fromDoc(doc store.Document) domain.Task {
	return domain.Task{
		ID:          doc.ID,
		ProjectID:   store.Str(doc.Data, "projectId"),
		Title:       store.Str(doc.Data, "title"),
		Description: store.Str(doc.Data, "description"),
		Status:      store.Str(doc.Data, "status"),
		Priority:    store.Str(doc.Data, "priority"),
		AssignedTo:  store.Str(doc.Data, "assignedTo"),
		AssignedBy:  store.Str(doc.Data, "assignedBy"),
		StartedAt:   store.Str(doc.Data, "startedAt"),
		CompletedAt: store.Str(doc.Data, "completedAt"),
		DueDate:     store.Str(doc.Data, "dueDate"),
		Tags:        store.StrSlice(doc.Data, "tags"),
		CreatedAt:   store.Str(doc.Data, "createdAt"),
		UpdatedAt:   store.Str(doc.Data, "updatedAt"),
	}
}
