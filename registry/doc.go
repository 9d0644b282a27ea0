/*
Package registry manages type registration and key mapping for CouchStore.

Two registries live here:

Key maps associate a Go type with the template used to derive its document
key, plus the type attribute written into each document:

	registry.RegisterKeyMap[User](registry.KeyMap{
	    DocType: "User",
	    Key:     "user::{Id}",
	})

Macros in braces refer to JSON field names of the entity and are expanded
at write time by the converter. A key template may combine several fields
("order::{UserId}::{OrderId}").

The type registry maps a document's type attribute back to an unmarshal
function, so heterogeneous query results can be decoded to their concrete
types:

	registry.RegisterTypeFor[User]("User")

Registrations are typically generated by cmd/keymap from an annotated
OpenAPI spec, but can also be written by hand in an init function.
*/
package registry
