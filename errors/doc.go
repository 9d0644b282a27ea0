/*
Package errors provides semantic error types for the CouchStore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound       = errors.New("document not found")
	    ErrAlreadyExists  = errors.New("document already exists")
	    ErrInvalidInput   = errors.New("invalid input")
	    ErrQueryExecution = errors.New("query execution failed")
	    ErrDurability     = errors.New("durability requirement not met")
	    ErrTimeout        = errors.New("operation timed out")
	    ErrNoKeyMap       = errors.New("no key map found for type")
	)

Usage:

	// Check error type
	found, err := tmpl.FindByID(ctx, "user::123", &user)
	if err != nil {
	    if errors.IsTimeout(err) {
	        // Retry or surface the deadline
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "user::123")
	err := errors.NewValidationError("email", "invalid format")
	err := errors.NewQueryExecutionError(statement, "_ID and _CAS not selected")

Translate converts errors returned by the Couchbase SDK into this hierarchy,
so callers never need to import gocb sentinels directly:

	err := errors.Translate("insert", "User", key, gocbErr)
	// errors.IsAlreadyExists(err) == true when the key was taken

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
