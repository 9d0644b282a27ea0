/*
Package couchstore provides a type-safe document mapping layer for Go
applications backed by Couchbase, delegating all protocol work to the
official SDK while handling key derivation, entity conversion and semantic
errors.

The library follows a design-time → build-time → runtime workflow:
  - Design-time: Define entities and annotate OpenAPI specs
  - Build-time: Generate type registrations and key mappings
  - Runtime: Use type-safe document operations

Key Features:
  - Flat template API over one bucket: save, insert, update, remove
    (single and batch), key lookup, existence check
  - Optional per-write durability constraints (persist-to / replicate-to)
    and expiry
  - View queries and N1QL queries, raw or mapped to entities, plus
    single-field fragment projections
  - Key-map driven document keys generated from entity fields
  - Channel-based streaming of query results with retry and progress
    tracking
  - Semantic error types translated from the underlying SDK
  - Thread-safe storage management and mock implementations for testing

Basic Usage:

	// Connect a template to a bucket
	tmpl, err := couchbase.NewTemplate(ctx, couchbase.Config{
	    ConnStr:  "couchbase://localhost",
	    Username: "Administrator",
	    Password: "password",
	    Bucket:   "app",
	})

	// Register the entity's key map
	registry.RegisterKeyMap[User](registry.KeyMap{
	    DocType: "User",
	    Key:     "user::{Id}",
	})

	// Store and load documents
	err = tmpl.Save(ctx, User{ID: "123", Name: "John"})
	found, err := tmpl.FindByID(ctx, "user::123", &user)

	// Or work through a typed store registry
	mts := couchstore.NewMultiTypeStorage()
	couchstore.RegisterDataStore(mts, "users", couchbase.NewDataStore[User](tmpl))

For more information, see the documentation at https://github.com/suparena/couchstore
*/
package couchstore
