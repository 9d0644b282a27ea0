/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides mock implementations of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/storagemodels"
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	queryFunc   func(ctx context.Context, query *storagemodels.N1QLQuery) ([]interface{}, error)
	streamFunc  func(ctx context.Context, query *storagemodels.N1QLQuery, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	getKeyFunc  func(entity T) string
	saveError   error
	removeError error
	updateError error
}

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, query *storagemodels.N1QLQuery) ([]interface{}, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithStreamFunc sets a custom stream function for testing
func (m *DataStore[T]) WithStreamFunc(f func(ctx context.Context, query *storagemodels.N1QLQuery, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]) *DataStore[T] {
	m.streamFunc = f
	return m
}

// WithSaveError makes Save and Insert operations return an error
func (m *DataStore[T]) WithSaveError(err error) *DataStore[T] {
	m.saveError = err
	return m
}

// WithRemoveError makes Remove operations return an error
func (m *DataStore[T]) WithRemoveError(err error) *DataStore[T] {
	m.removeError = err
	return m
}

// WithUpdateError makes Update operations return an error
func (m *DataStore[T]) WithUpdateError(err error) *DataStore[T] {
	m.updateError = err
	return m
}

// Seed places an entity under a key without going through Save
func (m *DataStore[T]) Seed(key string, entity T) *DataStore[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entity
	return m
}

// Len returns the number of stored entities
func (m *DataStore[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *DataStore[T]) keyOf(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	return fmt.Sprintf("%v", entity)
}

// FindByID retrieves an entity by key, or (nil, nil) when absent
func (m *DataStore[T]) FindByID(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}
	return nil, nil
}

// Save stores an entity unconditionally
func (m *DataStore[T]) Save(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error {
	if m.saveError != nil {
		return m.saveError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.keyOf(entity)] = entity
	return nil
}

// Insert stores an entity, failing when its key already exists
func (m *DataStore[T]) Insert(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error {
	if m.saveError != nil {
		return m.saveError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.keyOf(entity)
	if _, exists := m.data[key]; exists {
		var zero T
		return errors.NewAlreadyExistsError(fmt.Sprintf("%T", zero), key)
	}
	m.data[key] = entity
	return nil
}

// Update replaces an entity, failing when its key does not exist
func (m *DataStore[T]) Update(ctx context.Context, entity T, opts ...storagemodels.WriteOption) error {
	if m.updateError != nil {
		return m.updateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.keyOf(entity)
	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	m.data[key] = entity
	return nil
}

// Exists checks whether a key is present
func (m *DataStore[T]) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.data[key]
	return exists, nil
}

// FindByView returns all stored entities; view selection is not simulated
func (m *DataStore[T]) FindByView(ctx context.Context, query *storagemodels.ViewQuery) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.data))
	for _, entity := range m.data {
		out = append(out, entity)
	}
	return out, nil
}

// FindByN1QL returns all stored entities; statement matching is not simulated
func (m *DataStore[T]) FindByN1QL(ctx context.Context, query *storagemodels.N1QLQuery) ([]T, error) {
	return m.FindByView(ctx, nil)
}

// Query delegates to the configured query function, defaulting to all entities
func (m *DataStore[T]) Query(ctx context.Context, query *storagemodels.N1QLQuery) ([]interface{}, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, query)
	}

	entities, err := m.FindByView(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(entities))
	for i, e := range entities {
		out[i] = e
	}
	return out, nil
}

// Stream delegates to the configured stream function, defaulting to a
// stream of all stored entities
func (m *DataStore[T]) Stream(ctx context.Context, query *storagemodels.N1QLQuery, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	if m.streamFunc != nil {
		return m.streamFunc(ctx, query, opts...)
	}

	entities, _ := m.FindByView(ctx, nil)

	ch := make(chan storagemodels.StreamResult[T], len(entities))
	go func() {
		defer close(ch)
		for i, e := range entities {
			select {
			case ch <- storagemodels.StreamResult[T]{
				Item: e,
				Meta: storagemodels.StreamMeta{Index: int64(i), Attempt: 1, Timestamp: time.Now()},
			}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Remove deletes an entity by key
func (m *DataStore[T]) Remove(ctx context.Context, key string, opts ...storagemodels.WriteOption) error {
	if m.removeError != nil {
		return m.removeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	delete(m.data, key)
	return nil
}
