/*
Package couchbase implements CouchStore's document operations on top of the
Couchbase SDK (gocb).

The central type is Template, bound to one bucket. It exposes the flat
operation families (save, insert, update and remove, single and batch,
with optional durability constraints), key lookups, view queries, N1QL
queries and an Execute escape hatch, plus accessors for the underlying
bucket, cluster and converter. Entity mapping uses the key maps and type
registrations from the registry package.

	tmpl, err := couchbase.NewTemplate(ctx, couchbase.Config{
	    ConnStr:  "couchbase://localhost",
	    Username: "Administrator",
	    Password: "password",
	    Bucket:   "app",
	})

	err = tmpl.Insert(ctx, user)
	err = tmpl.Save(ctx, user, storagemodels.WithDurability(1, 2))

	found, err := tmpl.FindByID(ctx, "user::123", &user)

Typed access is available through the generic finds and the DataStore
adapter:

	users, err := couchbase.FindByN1QL[User](ctx, tmpl, query)
	store := couchbase.NewDataStore[User](tmpl)

Write semantics follow the store's key/value contract: Save upserts,
Insert fails on an existing key, Update never creates. Errors from the SDK
are translated into the errors package's hierarchy.
*/
package couchbase
