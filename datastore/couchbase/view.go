/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/couchbase/gocb/v2"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/storagemodels"
)

// QueryView executes a view query and returns the raw result. This is the
// right entry point for reduced views, whose rows carry no document
// reference and cannot be mapped to entities. The caller owns the result
// and must drain or close it.
func (t *Template) QueryView(ctx context.Context, query *storagemodels.ViewQuery) (*gocb.ViewResult, error) {
	if query.DesignDocument == "" || query.ViewName == "" {
		return nil, errors.NewValidationError("view", "design document and view name are required")
	}

	res, err := t.bucket.ViewQuery(query.DesignDocument, query.ViewName, viewOptions(ctx, query))
	if err != nil {
		return nil, errors.TranslateQuery(viewStatement(query), err)
	}
	return res, nil
}

// FindByView executes a view query and maps every row's document to a T.
// Reduce is forced off since reduced rows reference no documents. Rows
// whose document vanished after indexing are skipped.
func FindByView[T any](ctx context.Context, t *Template, query *storagemodels.ViewQuery) ([]T, error) {
	mapped := *query
	mapped.Reduce = false
	mapped.Group = false
	mapped.GroupLevel = 0

	res, err := t.QueryView(ctx, &mapped)
	if err != nil {
		return nil, err
	}

	var out []T
	for res.Next() {
		row := res.Row()
		if row.ID == "" {
			_ = res.Close()
			return nil, errors.NewQueryExecutionError(viewStatement(query),
				"view row carries no document id; reduced views cannot be mapped to entities")
		}

		getRes, err := t.collection.Get(row.ID, &gocb.GetOptions{
			Context:    ctx,
			Transcoder: gocb.NewRawJSONTranscoder(),
		})
		if err != nil {
			if stderrors.Is(err, gocb.ErrDocumentNotFound) {
				// The index can trail deletes.
				continue
			}
			_ = res.Close()
			return nil, errors.Translate("find by view", "document", row.ID, err)
		}

		var raw []byte
		if err := getRes.Content(&raw); err != nil {
			_ = res.Close()
			return nil, errors.Translate("find by view", "document", row.ID, err)
		}

		var entity T
		if err := t.decodeDocument(raw, &entity, row.ID); err != nil {
			_ = res.Close()
			return nil, err
		}
		out = append(out, entity)
	}

	if err := finishRows(res, viewStatement(query)); err != nil {
		return nil, err
	}
	return out, nil
}

func viewOptions(ctx context.Context, query *storagemodels.ViewQuery) *gocb.ViewOptions {
	opts := &gocb.ViewOptions{
		Context:      ctx,
		Skip:         query.Skip,
		Limit:        query.Limit,
		Key:          query.Key,
		Keys:         query.Keys,
		StartKey:     query.StartKey,
		EndKey:       query.EndKey,
		InclusiveEnd: query.InclusiveEnd,
		Reduce:       query.Reduce,
		Group:        query.Group,
		GroupLevel:   query.GroupLevel,
		Namespace:    gocb.DesignDocumentNamespaceProduction,
	}

	if query.Descending {
		opts.Order = gocb.ViewOrderingDescending
	} else {
		opts.Order = gocb.ViewOrderingAscending
	}
	if query.Development {
		opts.Namespace = gocb.DesignDocumentNamespaceDevelopment
	}

	switch query.Consistency {
	case storagemodels.ViewConsistencyRequestPlus:
		opts.ScanConsistency = gocb.ViewScanConsistencyRequestPlus
	case storagemodels.ViewConsistencyUpdateAfter:
		opts.ScanConsistency = gocb.ViewScanConsistencyUpdateAfter
	default:
		opts.ScanConsistency = gocb.ViewScanConsistencyNotBounded
	}

	return opts
}

// viewStatement renders a view query's identity for error reporting.
func viewStatement(query *storagemodels.ViewQuery) string {
	return fmt.Sprintf("view %s/%s", query.DesignDocument, query.ViewName)
}
