/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"encoding/json"
	"fmt"
)

// UnmarshalFunc defines a function that takes a raw document body and returns the unmarshaled object.
type UnmarshalFunc func(raw json.RawMessage) (interface{}, error)

// typeRegistry holds the mapping from a document type attribute (like "User", "Order")
// to its unmarshal function.
var typeRegistry = make(map[string]UnmarshalFunc)

// RegisterType registers an unmarshal function for a given document type.
// If a function is already registered for the given type, it panics to prevent
// accidental overrides.
func RegisterType(docType string, fn UnmarshalFunc) {
	if _, exists := typeRegistry[docType]; exists {
		panic(fmt.Sprintf("type registry: type %q already registered", docType))
	}
	typeRegistry[docType] = fn
}

// GetUnmarshalFunc returns the registered unmarshal function for the given document type.
// If no function is registered, it returns an error.
func GetUnmarshalFunc(docType string) (UnmarshalFunc, error) {
	fn, ok := typeRegistry[docType]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for %q", docType)
	}
	return fn, nil
}

// RegisterTypeFor registers a JSON unmarshal function producing *T for the
// given document type. Most callers can use this instead of writing an
// UnmarshalFunc by hand.
func RegisterTypeFor[T any](docType string) {
	RegisterType(docType, func(raw json.RawMessage) (interface{}, error) {
		out := new(T)
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", docType, err)
		}
		return out, nil
	})
}
