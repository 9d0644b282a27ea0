/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/storagemodels"
)

// Stream executes a N1QL query and delivers its rows over a channel as they
// arrive, instead of materializing the full result. Transient failures while
// starting the query are retried with backoff; once rows are flowing, an
// error ends the stream.
func Stream[T any](ctx context.Context, t *Template, query *storagemodels.N1QLQuery, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go streamWorker(ctx, t, query, options, resultCh)

	return resultCh
}

func streamWorker[T any](
	ctx context.Context,
	t *Template,
	query *storagemodels.N1QLQuery,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	startTime := time.Now()
	var errs []error
	attempt := 0

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			Attempts:       attempt,
			Errors:         errs,
			StartTime:      startTime,
		}
		elapsed := time.Since(startTime).Seconds()
		if elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	res, err := queryWithRetry(ctx, t, query, options, &attempt, &errs)
	if err != nil {
		if options.ErrorHandler != nil && options.ErrorHandler(err) {
			// Caller chose to swallow the failure; the stream just ends.
			return
		}
		resultCh <- storagemodels.StreamResult[T]{
			Error: err,
			Meta:  storagemodels.StreamMeta{Index: itemIndex, Attempt: attempt, Timestamp: time.Now()},
		}
		return
	}
	defer res.Close()

	conv := t.Converter()

	for res.Next() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result := storagemodels.StreamResult[T]{
			Meta: storagemodels.StreamMeta{Index: itemIndex, Attempt: attempt, Timestamp: time.Now()},
		}

		var raw json.RawMessage
		if err := res.Row(&raw); err != nil {
			result.Error = errors.TranslateQuery(query.Statement, err)
		} else {
			result.Raw = raw
			var entity T
			if _, _, err := conv.DecodeRow(raw, &entity); err == nil {
				result.Item = entity
			} else if err := conv.DecodeFragment(raw, &entity); err == nil {
				// Rows without _ID/_CAS metadata still decode as fragments.
				result.Item = entity
			} else {
				result.Error = fmt.Errorf("failed to decode row into %T: %w", entity, err)
			}
		}

		select {
		case resultCh <- result:
		case <-ctx.Done():
			return
		}
		itemIndex++

		if options.ProgressInterval > 0 && itemIndex%options.ProgressInterval == 0 {
			reportProgress()
		}
	}

	if err := res.Err(); err != nil {
		streamErr := errors.TranslateQuery(query.Statement, err)
		if options.ErrorHandler == nil || !options.ErrorHandler(streamErr) {
			resultCh <- storagemodels.StreamResult[T]{
				Error: streamErr,
				Meta:  storagemodels.StreamMeta{Index: itemIndex, Attempt: attempt, Timestamp: time.Now()},
			}
			return
		}
		errs = append(errs, streamErr)
	}

	reportProgress()
}

// queryWithRetry starts the query, retrying transient failures with backoff.
func queryWithRetry(
	ctx context.Context,
	t *Template,
	query *storagemodels.N1QLQuery,
	options storagemodels.StreamOptions,
	attempt *int,
	errs *[]error,
) (*gocb.QueryResult, error) {
	var lastErr error

	for i := 0; i <= options.MaxRetries; i++ {
		*attempt++

		res, err := t.QueryN1QL(ctx, query)
		if err == nil {
			return res, nil
		}
		lastErr = err
		*errs = append(*errs, err)

		if !errors.IsRetryable(err) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(options.RetryBackoff * time.Duration(i+1)):
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}
