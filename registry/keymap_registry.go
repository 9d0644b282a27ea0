/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// KeyMapRegistry associates Go types with their Couchbase key maps.
// A key map describes how to derive the document key and type attribute
// for an entity, for example:
//
//	registry.RegisterKeyMap[User](registry.KeyMap{
//	    DocType: "User",
//	    Key:     "user::{Id}",
//	})
//
// Macros in braces are expanded from the entity's JSON fields at write time.

// KeyMap describes how a type maps onto documents in a bucket.
type KeyMap struct {
	// DocType is the value written into the document's type attribute.
	DocType string
	// Key is the document key template, with {Field} macros referring to
	// JSON field names of the entity.
	Key string
}

var (
	keyMapRegistry = make(map[reflect.Type]KeyMap)
	mu             sync.RWMutex
)

// RegisterKeyMap associates a Go type T with a given key map.
func RegisterKeyMap[T any](km KeyMap) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	keyMapRegistry[t] = km
}

// GetKeyMap retrieves the key map for type T, if any.
func GetKeyMap[T any]() (KeyMap, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	km, ok := keyMapRegistry[t]
	return km, ok
}

// GetKeyMapOf retrieves the key map for the dynamic type of v, if any.
// Pointer types resolve to their element type, so a *User and a User
// share one registration.
func GetKeyMapOf(v any) (KeyMap, bool) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	mu.RLock()
	defer mu.RUnlock()
	km, ok := keyMapRegistry[t]
	return km, ok
}
