// Package store is the seam between the data-access layer and the external
// document database. The DAL owns no data: every read is a fresh query and
// concurrent writers are serialized only by the store's own per-document
// semantics (last-write-wins, no compare-and-swap).
package store

import "context"

// Filter is one (field, op, value) query constraint. Supported ops are
// "==" and "array-contains", matching what the application actually asks
// of Firestore.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Query describes a filtered, ordered, capped collection read.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Document is a stored record together with its id.
type Document struct {
	ID   string
	Data map[string]any
}

// Collection names used by the application.
const (
	Projects   = "projects"
	Tasks      = "tasks"
	Issues     = "issues"
	Activities = "activities"
	Users      = "users"
)

// Store is the narrow document-store interface the DAL consumes. Failures
// surface as *domain.StoreError except for missing documents, which are
// domain.ErrNotFound.
type Store interface {
	Insert(ctx context.Context, collection string, data map[string]any) (string, error)
	// Put writes a document under a caller-chosen id, creating or fully
	// replacing it. Used for documents keyed externally (users keyed by
	// their auth uid).
	Put(ctx context.Context, collection, id string, data map[string]any) error
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Patch(ctx context.Context, collection, id string, patch map[string]any) error
	Remove(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
}
