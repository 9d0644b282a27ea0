/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"

	"github.com/suparena/couchstore/storagemodels"
)

// DataStore adapts a Template to the generic datastore.DataStore[T]
// interface, fixing the entity type once instead of passing it per call.
type DataStore[T any] struct {
	tmpl *Template
}

// NewDataStore creates a typed datastore on top of a shared Template.
func NewDataStore[T any](t *Template) *DataStore[T] {
	return &DataStore[T]{tmpl: t}
}

// Template exposes the underlying Template for operations the typed
// interface does not cover.
func (d *DataStore[T]) Template() *Template {
	return d.tmpl
}

// FindByID retrieves a single entity by document key, or (nil, nil) when
// the key is absent.
func (d *DataStore[T]) FindByID(ctx context.Context, key string) (*T, error) {
	entity := new(T)
	found, err := d.tmpl.FindByID(ctx, key, entity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return entity, nil
}

// Save stores the entity unconditionally.
func (d *DataStore[T]) Save(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error {
	return d.tmpl.Save(ctx, entity, opts...)
}

// Insert stores the entity, failing when its key already exists.
func (d *DataStore[T]) Insert(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error {
	return d.tmpl.Insert(ctx, entity, opts...)
}

// Update replaces the entity's document, failing when it does not exist.
func (d *DataStore[T]) Update(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error {
	return d.tmpl.Update(ctx, entity, opts...)
}

// Exists checks whether a document with the given key exists.
func (d *DataStore[T]) Exists(ctx context.Context, key string) (bool, error) {
	return d.tmpl.Exists(ctx, key)
}

// FindByView maps view rows to entities of type T.
func (d *DataStore[T]) FindByView(ctx context.Context, query *storagemodels.ViewQuery) ([]T, error) {
	return FindByView[T](ctx, d.tmpl, query)
}

// FindByN1QL maps query rows to entities of type T. The statement must
// select the _ID and _CAS document metadata.
func (d *DataStore[T]) FindByN1QL(ctx context.Context, query *storagemodels.N1QLQuery) ([]T, error) {
	return FindByN1QL[T](ctx, d.tmpl, query)
}

// Query executes a query over documents of mixed types.
func (d *DataStore[T]) Query(ctx context.Context, query *storagemodels.N1QLQuery) ([]interface{}, error) {
	return d.tmpl.Query(ctx, query)
}

// Stream delivers query rows over a channel as they arrive.
func (d *DataStore[T]) Stream(ctx context.Context, query *storagemodels.N1QLQuery, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	return Stream[T](ctx, d.tmpl, query, opts...)
}

// Remove deletes the document with the given key.
func (d *DataStore[T]) Remove(ctx context.Context, key string, opts ...storagemodels.WriteOption) error {
	return d.tmpl.Remove(ctx, key, opts...)
}
