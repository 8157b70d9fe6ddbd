// Package activity appends and reads the audit log. One record is written
// per successful mutating call, always after the primary write has
// committed; a failed append never rolls the mutation back.
package activity

import (
	"context"
	"log"
	"time"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
	"github.com/taskflow-hq/taskflow-backend/internal/store"
)

// DefaultLimit caps feed reads when the caller does not ask for a limit.
const DefaultLimit = 50

// Logger appends immutable activity records. Now is injectable for tests.
type Logger struct {
	store store.Store
	Now   func() time.Time
}

func NewLogger(s store.Store) *Logger {
	return &Logger{store: s, Now: time.Now}
}

// Record writes one activity document with a server-observed timestamp and
// returns its id.
func (l *Logger) Record(ctx context.Context, projectID, actorID, action, targetType, targetID, targetTitle string) (string, error) {
	doc := map[string]any{
		"projectId":   projectID,
		"userId":      actorID,
		"action":      action,
		"targetType":  targetType,
		"targetId":    targetID,
		"targetTitle": targetTitle,
		"createdAt":   domain.FormatTime(l.Now()),
	}
	return l.store.Insert(ctx, store.Activities, doc)
}

// Report is the fire-and-report form used after a committed mutation: an
// append failure is logged and swallowed, because losing an audit entry is
// tolerable while failing a committed write is not.
func (l *Logger) Report(ctx context.Context, projectID, actorID, action, targetType, targetID, targetTitle string) {
	if _, err := l.Record(ctx, projectID, actorID, action, targetType, targetID, targetTitle); err != nil {
		log.Printf("[warn] activity append failed action=%q target=%s/%s: %v", action, targetType, targetID, err)
	}
}

// Feed reads the activity log, newest first.
type Feed struct {
	store store.Store
}

func NewFeed(s store.Store) *Feed {
	return &Feed{store: s}
}

// List returns up to limit activities ordered by createdAt descending,
// scoped to one project when projectID is non-empty. limit <= 0 falls back
// to DefaultLimit.
func (f *Feed) List(ctx context.Context, projectID string, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := store.Query{OrderBy: "createdAt", Desc: true, Limit: limit}
	if projectID != "" {
		q.Filters = []store.Filter{{Field: "projectId", Op: "==", Value: projectID}}
	}

	docs, err := f.store.Query(ctx, store.Activities, q)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Activity, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.Activity{
			ID:          doc.ID,
			ProjectID:   store.Str(doc.Data, "projectId"),
			UserID:      store.Str(doc.Data, "userId"),
			Action:      store.Str(doc.Data, "action"),
			TargetType:  store.Str(doc.Data, "targetType"),
			TargetID:    store.Str(doc.Data, "targetId"),
			TargetTitle: store.Str(doc.Data, "targetTitle"),
			CreatedAt:   store.Str(doc.Data, "createdAt"),
		})
	}
	return out, nil
}
