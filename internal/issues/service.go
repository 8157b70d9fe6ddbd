// Package issues implements the issue operation family. Issue mutations
// ride on the task permissions, as in the original application: reporting
// is open to every role, editing and deleting require editTask/deleteTask.
package issues

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
	ProjectID   string `json:"projectId"`
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	AssignedTo  string `json:"assignedTo"`
}

// Patch carries the updatable issue fields; nil means "leave unchanged".
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assignedTo"`
}

// Create reports a new open issue. Any authenticated principal may report.
func (s *Service) Create(ctx context.Context, p domain.Principal, in CreateInput) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", domain.Invalid("title", "must not be empty")
	}
	if in.ProjectID == "" {
		return "", domain.Invalid("projectId", "must not be empty")
	}
	if in.Severity == "" {
		in.Severity = domain.SeverityMedium
	}
	if !domain.ValidIssueSeverity(in.Severity) {
		return "", domain.Invalid("severity", "unknown severity")
	}

	now := domain.FormatTime(time.Now())
	id, err := s.store.Insert(ctx, store.Issues, map[string]any{
		"projectId":   in.ProjectID,
		"taskId":      in.TaskID,
		"title":       title,
		"description": in.Description,
		"severity":    in.Severity,
		"status":      domain.IssueOpen,
		"reportedBy":  p.ID,
		"assignedTo":  in.AssignedTo,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if err != nil {
		return "", err
	}

	s.audit.Report(ctx, in.ProjectID, p.ID, "reported issue", domain.TargetIssue, id, title)
	return id, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Issue, error) {
	return s.query(ctx, nil)
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]domain.Issue, error) {
	return s.query(ctx, []store.Filter{{Field: "projectId", Op: "==", Value: projectID}})
}

func (s *Service) Get(ctx context.Context, id string) (domain.Issue, error) {
	doc, err := s.store.Get(ctx, store.Issues, id)
	if err != nil {
		return domain.Issue{}, err
	}
	return fromDoc(doc), nil
}

// Update patches issue fields; a transition into resolved or closed stamps
// resolvedAt once, inside the same store write.
func (s *Service) Update(ctx context.Context, p domain.Principal, id string, patch Patch) error {
	if err := rbac.Require(p.Role, rbac.EditTask); err != nil {
		return err
	}

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
	if patch.Severity != nil {
		if !domain.ValidIssueSeverity(*patch.Severity) {
			return domain.Invalid("severity", "unknown severity")
		}
		update["severity"] = *patch.Severity
	}
	if patch.AssignedTo != nil {
		update["assignedTo"] = *patch.AssignedTo
	}
	if patch.Status != nil {
		if !domain.ValidIssueStatus(*patch.Status) {
			return domain.Invalid("status", "unknown issue status")
		}
		update["status"] = *patch.Status
		for field, value := range DeriveStamps(current, *patch.Status, time.Now()) {
			update[field] = value
		}
	}
	update["updatedAt"] = domain.FormatTime(time.Now())

	if err := s.store.Patch(ctx, store.Issues, id, update); err != nil {
		return err
	}

	action := "updated issue"
	if patch.Status != nil {
		action = fmt.Sprintf("updated issue status to %s", *patch.Status)
	}
	s.audit.Report(ctx, current.ProjectID, p.ID, action, domain.TargetIssue, id, current.Title)
	return nil
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := rbac.Require(p.Role, rbac.DeleteTask); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, store.Issues, id); err != nil {
		return err
	}

	s.audit.Report(ctx, current.ProjectID, p.ID, "deleted issue", domain.TargetIssue, id, current.Title)
	return nil
}

func (s *Service) query(ctx context.Context, filters []store.Filter) ([]domain.Issue, error) {
	docs, err := s.store.Query(ctx, store.Issues, store.Query{
		Filters: filters,
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Issue, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDoc(doc))
	}
	return out, nil
}

func fromDoc(doc store.Document) domain.Issue {
	return domain.Issue{
		ID:          doc.ID,
		ProjectID:   store.Str(doc.Data, "projectId"),
		TaskID:      store.Str(doc.Data, "taskId"),
		Title:       store.Str(doc.Data, "title"),
		Description: store.Str(doc.Data, "description"),
		Severity:    store.Str(doc.Data, "severity"),
		Status:      store.Str(doc.Data, "status"),
		ReportedBy:  store.Str(doc.Data, "reportedBy"),
		AssignedTo:  store.Str(doc.Data, "assignedTo"),
		ResolvedAt:  store.Str(doc.Data, "resolvedAt"),
		CreatedAt:   store.Str(doc.Data, "createdAt"),
		UpdatedAt:   store.Str(doc.Data, "updatedAt"),
	}
}
