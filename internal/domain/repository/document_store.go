package repository

import (
	"context"
	"errors"

	"hospital-portal/internal/domain/entity"
)

var ErrDocumentNotFound = errors.New("document not found")

// Query selects a whole collection ordered by one field.
type Query struct {
	Collection string
	OrderBy    string
	Descending bool
}

// SnapshotFunc receives every full result set of a live query, in delivery order.
type SnapshotFunc func(snapshot entity.Snapshot)

// ErrorFunc receives the single terminal error of a live query.
type ErrorFunc func(err error)

// Subscription is the cancel handle of a live query.
type Subscription interface {
	// Unsubscribe detaches the listener. No callback runs after it returns.
	Unsubscribe()
}

// DocumentStore is a collection-based schemaless store with store-assigned identity.
type DocumentStore interface {
	Create(ctx context.Context, collection string, fields entity.JSON) (string, error)
	Update(ctx context.Context, collection, id string, fields entity.JSON) error
	Delete(ctx context.Context, collection, id string) error
	Get(ctx context.Context, collection, id string) (*entity.Document, error)
	List(ctx context.Context, query Query, filters entity.JSON) ([]entity.Document, error)
	Subscribe(ctx context.Context, query Query, onSnapshot SnapshotFunc, onError ErrorFunc) (Subscription, error)
}

// SubscriptionFunc adapts a plain function to Subscription.
type SubscriptionFunc func()

func (f SubscriptionFunc) Unsubscribe() {
	f()
}
