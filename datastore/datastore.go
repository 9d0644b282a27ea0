/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/couchstore/storagemodels"
)

type DataStore[T any] interface {
	FindByID(ctx context.Context, key string) (*T, error)

	Save(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error

	Insert(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error

	Update(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error

	Exists(ctx context.Context, key string) (bool, error)

	FindByView(ctx context.Context, query *storagemodels.ViewQuery) ([]T, error)

	FindByN1QL(ctx context.Context, query *storagemodels.N1QLQuery) ([]T, error)

	Query(ctx context.Context, query *storagemodels.N1QLQuery) ([]interface{}, error)

	Stream(ctx context.Context, query *storagemodels.N1QLQuery, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	Remove(ctx context.Context, key string, opts ...storagemodels.WriteOption) error
}
