/*
Package datastore defines the core interfaces for CouchStore's data persistence layer.

The main interface is DataStore[T], which provides generic document operations for any entity type T:

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

Save writes unconditionally, Insert fails when the key is taken, Update fails
when it is not, and FindByID returns (nil, nil) for an absent key.

Implementations:
  - couchbase: Couchbase implementation backed by a shared Template
  - mock: In-memory mock implementation for testing

The package uses Go generics to ensure type safety at compile time while maintaining
flexibility for different storage backends.
*/
package datastore
