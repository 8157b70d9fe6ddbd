package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

// Memory is a map-backed Store used by tests and by credential-less local
// runs (STORE_BACKEND=memory). It mirrors the subset of Firestore query
// semantics the services use: ==, array-contains, single-field ordering
// and a limit.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any

	// FailInsert makes inserts into the named collection fail; tests use it
	// to exercise the best-effort audit path.
	FailInsert map[string]bool
}

func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]map[string]any),
		FailInsert:  make(map[string]bool),
	}
}

func (s *Memory) Insert(ctx context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailInsert[collection] {
		return "", &domain.StoreError{Op: "insert", Collection: collection, Err: fmt.Errorf("injected failure")}
	}

	col := s.collections[collection]
	if col == nil {
		col = make(map[string]map[string]any)
		s.collections[collection] = col
	}
	id := uuid.New().String()
	col[id] = cloneDoc(data)
	return id, nil
}

func (s *Memory) Put(ctx context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collections[collection]
	if col == nil {
		col = make(map[string]map[string]any)
		s.collections[collection] = col
	}
	col[id] = cloneDoc(data)
	return nil
}

func (s *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return Document{}, domain.ErrNotFound
	}
	return Document{ID: id, Data: cloneDoc(data)}, nil
}

func (s *Memory) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for id, data := range s.collections[collection] {
		if matches(data, q.Filters) {
			out = append(out, Document{ID: id, Data: cloneDoc(data)})
		}
	}

	if q.OrderBy != "" {
		sort.Slice(out, func(i, j int) bool {
			less := compareValues(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy]) < 0
			if q.Desc {
				return !less
			}
			return less
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Memory) Patch(ctx context.Context, collection, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	for field, value := range patch {
		data[field] = cloneValue(value)
	}
	return nil
}

func (s *Memory) Remove(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *Memory) Ping(ctx context.Context) error { return nil }

// Count reports how many documents a collection holds; tests use it to
// assert that denied operations left the store untouched.
func (s *Memory) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		switch f.Op {
		case "==":
			if data[f.Field] != f.Value {
				return false
			}
		case "array-contains":
			if !sliceContains(data[f.Field], f.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func sliceContains(v, target any) bool {
	switch items := v.(type) {
	case []string:
		for _, item := range items {
			if item == target {
				return true
			}
		}
	case []any:
		for _, item := range items {
			if item == target {
				return true
			}
		}
	}
	return false
}

func compareValues(a, b any) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func cloneDoc(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneDoc(val)
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
