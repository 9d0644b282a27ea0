/*
Package codec converts between domain entities and the JSON documents stored
in a Couchbase bucket.

The default Converter derives document keys by expanding {Field} macros from
a type's registered key map, injects the document type attribute on encode,
and knows how to map N1QL rows back onto entities. Full-entity row mapping
requires the statement to select the document metadata:

	SELECT b.*, META(b).id AS _ID, META(b).cas AS _CAS FROM bucket b ...

Rows missing either field produce a QueryExecutionError. Fragment decoding
(DecodeFragment) has no such requirement; it maps a single selected field
straight onto a fragment struct.
*/
package codec
