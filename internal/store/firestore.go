package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

// Firestore implements Store on a Cloud Firestore client. The client is
// process-wide and owned by the caller; this type does not manage its
// lifecycle.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (s *Firestore) Insert(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", &domain.StoreError{Op: "insert", Collection: collection, Err: err}
	}
	return ref.ID, nil
}

func (s *Firestore) Put(ctx context.Context, collection, id string, data map[string]any) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, data)
	if err != nil {
		return &domain.StoreError{Op: "put", Collection: collection, Err: err}
	}
	return nil
}

func (s *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, domain.ErrNotFound
		}
		return Document{}, &domain.StoreError{Op: "get", Collection: collection, Err: err}
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *Firestore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	fq := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, f.Op, f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	iter := fq.Documents(ctx)
	defer iter.Stop()

	var out []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &domain.StoreError{Op: "query", Collection: collection, Err: err}
		}
		out = append(out, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return out, nil
}

func (s *Firestore) Patch(ctx context.Context, collection, id string, patch map[string]any) error {
	updates := make([]firestore.Update, 0, len(patch))
	for field, value := range patch {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return &domain.StoreError{Op: "patch", Collection: collection, Err: err}
	}
	return nil
}

func (s *Firestore) Remove(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return &domain.StoreError{Op: "remove", Collection: collection, Err: err}
	}
	return nil
}

// Ping verifies the store is reachable with a single capped read.
func (s *Firestore) Ping(ctx context.Context) error {
	iter := s.client.Collection(Users).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return &domain.StoreError{Op: "ping", Collection: Users, Err: err}
	}
	return nil
}
