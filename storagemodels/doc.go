/*
Package storagemodels holds the shared value types of CouchStore: query
descriptors (ViewQuery, N1QLQuery), write options (durability and expiry),
streaming types, and cluster health reporting.

The package is deliberately free of SDK imports so that datastore interfaces
and mocks can be expressed without pulling in a client library.
*/
package storagemodels
