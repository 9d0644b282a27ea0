/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/couchstore/datastore"
)

// TypedStorage holds named DataStore instances for one entity type T, so an
// application can address "the primary user store" or "the archive user
// store" by key.
type TypedStorage[T any] struct {
	mu     sync.RWMutex
	stores map[string]datastore.DataStore[T]
}

// NewTypedStorage creates an empty store registry for type T.
func NewTypedStorage[T any]() *TypedStorage[T] {
	return &TypedStorage[T]{
		stores: make(map[string]datastore.DataStore[T]),
	}
}

// Register adds a datastore under a key. Registering an occupied key is an
// error; use Remove first to replace a store.
func (ts *TypedStorage[T]) Register(key string, ds datastore.DataStore[T]) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, taken := ts.stores[key]; taken {
		return fmt.Errorf("datastore %q is already registered", key)
	}
	ts.stores[key] = ds
	return nil
}

// Get returns the datastore registered under key.
func (ts *TypedStorage[T]) Get(key string) (datastore.DataStore[T], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	ds, ok := ts.stores[key]
	if !ok {
		return nil, fmt.Errorf("no datastore registered under %q", key)
	}
	return ds, nil
}

// Remove drops the datastore registered under key.
func (ts *TypedStorage[T]) Remove(key string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, ok := ts.stores[key]; !ok {
		return fmt.Errorf("no datastore registered under %q", key)
	}
	delete(ts.stores, key)
	return nil
}

// List returns the registered keys in sorted order.
func (ts *TypedStorage[T]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	keys := make([]string, 0, len(ts.stores))
	for k := range ts.stores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MultiTypeStorage holds one TypedStorage per entity type, letting an
// application keep its user stores, order stores and so on behind a single
// registry value.
type MultiTypeStorage struct {
	mu       sync.RWMutex
	storages map[reflect.Type]any
}

// NewMultiTypeStorage creates an empty multi-type registry.
func NewMultiTypeStorage() *MultiTypeStorage {
	return &MultiTypeStorage{
		storages: make(map[reflect.Type]any),
	}
}

// GetTypedStorage returns the TypedStorage for T, creating it on first use.
// This is a function rather than a method since Go methods cannot carry
// their own type parameters.
func GetTypedStorage[T any](mts *MultiTypeStorage) *TypedStorage[T] {
	var zero T
	typ := reflect.TypeOf(zero)

	mts.mu.Lock()
	defer mts.mu.Unlock()

	if storage, ok := mts.storages[typ]; ok {
		return storage.(*TypedStorage[T])
	}

	created := NewTypedStorage[T]()
	mts.storages[typ] = created
	return created
}

// RegisterDataStore registers a datastore for T under a key.
func RegisterDataStore[T any](mts *MultiTypeStorage, key string, ds datastore.DataStore[T]) error {
	return GetTypedStorage[T](mts).Register(key, ds)
}

// GetDataStore returns the datastore for T registered under a key.
func GetDataStore[T any](mts *MultiTypeStorage, key string) (datastore.DataStore[T], error) {
	return GetTypedStorage[T](mts).Get(key)
}

// RemoveDataStore drops the datastore for T registered under a key.
func RemoveDataStore[T any](mts *MultiTypeStorage, key string) error {
	return GetTypedStorage[T](mts).Remove(key)
}

// ListDataStores returns the keys of all datastores registered for T.
func ListDataStores[T any](mts *MultiTypeStorage) []string {
	return GetTypedStorage[T](mts).List()
}
