/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"

	"github.com/couchbase/gocb/v2"
)

// Translate converts an error returned by the Couchbase SDK into the
// semantic error hierarchy of this library. Errors that have no local
// equivalent are wrapped with the operation name and returned as-is
// underneath, so errors.Is against gocb sentinels keeps working.
func Translate(op, docType, key string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gocb.ErrDocumentNotFound):
		return &NotFoundError{Type: docType, Key: key}

	case errors.Is(err, gocb.ErrDocumentExists):
		return &AlreadyExistsError{Type: docType, Key: key}

	case errors.Is(err, gocb.ErrDurabilityImpossible),
		errors.Is(err, gocb.ErrDurabilityAmbiguous),
		errors.Is(err, gocb.ErrDurableWriteInProgress):
		return &DurabilityError{Operation: op, Key: key, Cause: err}

	case errors.Is(err, gocb.ErrTimeout),
		errors.Is(err, gocb.ErrAmbiguousTimeout),
		errors.Is(err, gocb.ErrUnambiguousTimeout):
		return &TimeoutError{Operation: op, Key: key, Cause: err}
	}

	return fmt.Errorf("%s failed: %w", op, err)
}

// TranslateQuery converts an error from view or N1QL execution into a
// QueryExecutionError carrying the offending statement.
func TranslateQuery(statement string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gocb.ErrTimeout) || errors.Is(err, gocb.ErrAmbiguousTimeout) || errors.Is(err, gocb.ErrUnambiguousTimeout) {
		return &TimeoutError{Operation: "query", Cause: err}
	}
	return &QueryExecutionError{Statement: statement, Message: err.Error(), Cause: err}
}

// IsRetryable reports whether a query error is worth retrying.
// Temporary server pressure and timeouts qualify; parse and planning
// failures do not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gocb.ErrTemporaryFailure) ||
		errors.Is(err, gocb.ErrTimeout) ||
		errors.Is(err, gocb.ErrAmbiguousTimeout) ||
		errors.Is(err, gocb.ErrUnambiguousTimeout)
}
