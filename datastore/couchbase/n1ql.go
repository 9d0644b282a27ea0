/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/couchbase/gocb/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/couchstore/codec"
	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/registry"
	"github.com/suparena/couchstore/storagemodels"
)

// rowStream is the iteration tail shared by view and query results.
type rowStream interface {
	Err() error
	Close() error
}

// finishRows surfaces a late iteration error and closes the result either way.
func finishRows(res rowStream, statement string) error {
	rowsErr := res.Err()
	closeErr := res.Close()
	if rowsErr != nil {
		return errors.TranslateQuery(statement, rowsErr)
	}
	if closeErr != nil {
		return errors.TranslateQuery(statement, closeErr)
	}
	return nil
}

// QueryN1QL executes a N1QL query and returns the raw result. The caller
// owns the result and must drain or close it.
func (t *Template) QueryN1QL(ctx context.Context, query *storagemodels.N1QLQuery) (*gocb.QueryResult, error) {
	if query.Statement == "" {
		return nil, errors.NewValidationError("statement", "query statement is required")
	}

	res, err := t.cluster.Query(query.Statement, queryOptions(ctx, query))
	if err != nil {
		return nil, errors.TranslateQuery(query.Statement, err)
	}
	return res, nil
}

// Query executes a N1QL query over documents of mixed types, using the type
// registry to decode each row by its type attribute. Rows of unregistered
// types fall back to a generic map.
func (t *Template) Query(ctx context.Context, query *storagemodels.N1QLQuery) ([]interface{}, error) {
	res, err := t.QueryN1QL(ctx, query)
	if err != nil {
		return nil, err
	}

	var results []interface{}
	for res.Next() {
		var raw json.RawMessage
		if err := res.Row(&raw); err != nil {
			_ = res.Close()
			return nil, errors.TranslateQuery(query.Statement, err)
		}

		var row map[string]json.RawMessage
		if err := json.Unmarshal(raw, &row); err != nil {
			_ = res.Close()
			return nil, errors.NewQueryExecutionError(query.Statement,
				fmt.Sprintf("row is not a JSON object: %v", err))
		}

		docType := ""
		if attr, ok := row[codec.TypeAttribute]; ok {
			if err := json.Unmarshal(attr, &docType); err != nil {
				_ = res.Close()
				return nil, errors.NewQueryExecutionError(query.Statement,
					fmt.Sprintf("invalid %s attribute: %v", codec.TypeAttribute, err))
			}
		}

		unmarshalFn, fnErr := registry.GetUnmarshalFunc(docType)
		if docType == "" || fnErr != nil {
			// No registration: decode into a generic map.
			var generic map[string]interface{}
			if err := json.Unmarshal(raw, &generic); err != nil {
				_ = res.Close()
				return nil, errors.NewQueryExecutionError(query.Statement,
					fmt.Sprintf("failed to decode generic row: %v", err))
			}
			results = append(results, generic)
			continue
		}

		obj, err := unmarshalFn(raw)
		if err != nil {
			_ = res.Close()
			return nil, errors.NewQueryExecutionError(query.Statement,
				fmt.Sprintf("failed to decode row of type %q: %v", docType, err))
		}
		results = append(results, obj)
	}

	if err := finishRows(res, query.Statement); err != nil {
		return nil, err
	}
	return results, nil
}

// FindByN1QL executes a N1QL query and maps every row to a T. The statement
// must select enough to rebuild the entity, including the document metadata:
//
//	SELECT b.*, META(b).id AS _ID, META(b).cas AS _CAS FROM bucket b ...
//
// Rows missing either metadata field produce a QueryExecutionError.
func FindByN1QL[T any](ctx context.Context, t *Template, query *storagemodels.N1QLQuery) ([]T, error) {
	res, err := t.QueryN1QL(ctx, query)
	if err != nil {
		return nil, err
	}

	conv := t.Converter()

	var out []T
	for res.Next() {
		var raw json.RawMessage
		if err := res.Row(&raw); err != nil {
			_ = res.Close()
			return nil, errors.TranslateQuery(query.Statement, err)
		}

		var entity T
		id, cas, err := conv.DecodeRow(raw, &entity)
		if err != nil {
			_ = res.Close()
			return nil, withStatement(err, query.Statement)
		}

		t.log.Debug("mapped query row", zap.String("key", id), zap.Uint64("cas", cas))
		out = append(out, entity)
	}

	if err := finishRows(res, query.Statement); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByN1QLProjection executes a N1QL query and decodes every row straight
// into a fragment of type F. No document metadata is required; the selected
// fields map directly onto the fragment.
func FindByN1QLProjection[F any](ctx context.Context, t *Template, query *storagemodels.N1QLQuery) ([]F, error) {
	res, err := t.QueryN1QL(ctx, query)
	if err != nil {
		return nil, err
	}

	conv := t.Converter()

	var out []F
	for res.Next() {
		var raw json.RawMessage
		if err := res.Row(&raw); err != nil {
			_ = res.Close()
			return nil, errors.TranslateQuery(query.Statement, err)
		}

		var fragment F
		if err := conv.DecodeFragment(raw, &fragment); err != nil {
			_ = res.Close()
			return nil, errors.NewQueryExecutionError(query.Statement, err.Error())
		}
		out = append(out, fragment)
	}

	if err := finishRows(res, query.Statement); err != nil {
		return nil, err
	}
	return out, nil
}

func queryOptions(ctx context.Context, query *storagemodels.N1QLQuery) *gocb.QueryOptions {
	opts := &gocb.QueryOptions{
		Context:              ctx,
		PositionalParameters: query.PositionalParams,
		NamedParameters:      query.NamedParams,
		Adhoc:                query.Adhoc,
		ClientContextID:      query.ClientContextID,
	}
	if opts.ClientContextID == "" {
		opts.ClientContextID = uuid.NewString()
	}

	switch query.Consistency {
	case storagemodels.QueryConsistencyRequestPlus:
		opts.ScanConsistency = gocb.QueryScanConsistencyRequestPlus
	default:
		opts.ScanConsistency = gocb.QueryScanConsistencyNotBounded
	}

	return opts
}

// withStatement attaches the statement to a QueryExecutionError produced
// below the query layer, where the statement is unknown.
func withStatement(err error, statement string) error {
	var qe *errors.QueryExecutionError
	if stderrors.As(err, &qe) && qe.Statement == "" {
		return &errors.QueryExecutionError{Statement: statement, Message: qe.Message, Cause: qe.Cause}
	}
	return err
}
