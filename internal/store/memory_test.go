package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	t.Run("insert then get", func(t *testing.T) {
		id, err := s.Insert(ctx, Tasks, map[string]any{"title": "Fix bug", "status": "todo"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, err := s.Get(ctx, Tasks, id)
		require.NoError(t, err)
		assert.Equal(t, "Fix bug", Str(doc.Data, "title"))
	})

	t.Run("put uses the caller's id and replaces wholesale", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, Users, "u1", map[string]any{"displayName": "Sam", "role": "member"}))
		require.NoError(t, s.Put(ctx, Users, "u1", map[string]any{"displayName": "Sam Carter"}))

		doc, err := s.Get(ctx, Users, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Sam Carter", Str(doc.Data, "displayName"))
		assert.Empty(t, Str(doc.Data, "role"))
	})

	t.Run("get missing id", func(t *testing.T) {
		_, err := s.Get(ctx, Tasks, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("patch merges fields", func(t *testing.T) {
		id, err := s.Insert(ctx, Tasks, map[string]any{"title": "a", "status": "todo"})
		require.NoError(t, err)

		require.NoError(t, s.Patch(ctx, Tasks, id, map[string]any{"status": "done"}))

		doc, err := s.Get(ctx, Tasks, id)
		require.NoError(t, err)
		assert.Equal(t, "done", Str(doc.Data, "status"))
		assert.Equal(t, "a", Str(doc.Data, "title"))
	})

	t.Run("patch missing id", func(t *testing.T) {
		err := s.Patch(ctx, Tasks, "nope", map[string]any{"status": "done"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		id, err := s.Insert(ctx, Tasks, map[string]any{"title": "gone"})
		require.NoError(t, err)
		require.NoError(t, s.Remove(ctx, Tasks, id))

		_, err = s.Get(ctx, Tasks, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, s.Remove(ctx, Tasks, id), domain.ErrNotFound)
	})

	t.Run("returned documents are copies", func(t *testing.T) {
		id, err := s.Insert(ctx, Projects, map[string]any{"members": []string{"u1"}})
		require.NoError(t, err)

		doc, err := s.Get(ctx, Projects, id)
		require.NoError(t, err)
		doc.Data["members"] = []string{"tampered"}

		fresh, err := s.Get(ctx, Projects, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, StrSlice(fresh.Data, "members"))
	})
}

func TestMemoryQuery(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	seed := []map[string]any{
		{"projectId": "p1", "status": "done", "createdAt": "2026-01-01T00:00:00Z", "members": []string{"u1", "u2"}},
		{"projectId": "p1", "status": "todo", "createdAt": "2026-01-03T00:00:00Z", "members": []string{"u1"}},
		{"projectId": "p2", "status": "done", "createdAt": "2026-01-02T00:00:00Z", "members": []string{"u3"}},
	}
	for _, doc := range seed {
		_, err := s.Insert(ctx, Tasks, doc)
		require.NoError(t, err)
	}

	t.Run("equality filter", func(t *testing.T) {
		docs, err := s.Query(ctx, Tasks, Query{Filters: []Filter{{Field: "projectId", Op: "==", Value: "p1"}}})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("combined filters", func(t *testing.T) {
		docs, err := s.Query(ctx, Tasks, Query{Filters: []Filter{
			{Field: "projectId", Op: "==", Value: "p1"},
			{Field: "status", Op: "==", Value: "done"},
		}})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("array-contains", func(t *testing.T) {
		docs, err := s.Query(ctx, Tasks, Query{Filters: []Filter{{Field: "members", Op: "array-contains", Value: "u1"}}})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("descending order with limit", func(t *testing.T) {
		docs, err := s.Query(ctx, Tasks, Query{OrderBy: "createdAt", Desc: true, Limit: 2})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "2026-01-03T00:00:00Z", Str(docs[0].Data, "createdAt"))
		assert.Equal(t, "2026-01-02T00:00:00Z", Str(docs[1].Data, "createdAt"))
	})

	t.Run("no matches yields empty", func(t *testing.T) {
		docs, err := s.Query(ctx, Tasks, Query{Filters: []Filter{{Field: "projectId", Op: "==", Value: "p9"}}})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestMemoryFailInsert(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	s.FailInsert[Activities] = true

	_, err := s.Insert(ctx, Activities, map[string]any{"action": "created task"})
	require.Error(t, err)

	var se *domain.StoreError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, 0, s.Count(Activities))
}
