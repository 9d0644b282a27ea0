/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"testing"
	"time"
)

func TestApplyWriteOptions(t *testing.T) {
	opts := ApplyWriteOptions(
		WithDurability(1, 2),
		WithExpiry(30*time.Minute),
	)

	if opts.PersistTo != 1 || opts.ReplicateTo != 2 {
		t.Errorf("unexpected durability: persistTo=%d replicateTo=%d", opts.PersistTo, opts.ReplicateTo)
	}
	if opts.Expiry != 30*time.Minute {
		t.Errorf("unexpected expiry: %v", opts.Expiry)
	}
}

func TestApplyWriteOptionsDefaults(t *testing.T) {
	opts := ApplyWriteOptions()
	if opts.PersistTo != 0 || opts.ReplicateTo != 0 || opts.Expiry != 0 {
		t.Errorf("zero options should impose no constraints: %+v", opts)
	}
}

func TestNewN1QLQuery(t *testing.T) {
	q := NewN1QLQuery("SELECT * FROM `app` b WHERE b.`status` = $1", "active")
	if q.Statement == "" {
		t.Fatal("statement not set")
	}
	if len(q.PositionalParams) != 1 || q.PositionalParams[0] != "active" {
		t.Errorf("unexpected params: %v", q.PositionalParams)
	}
	if q.Consistency != QueryConsistencyNotBounded {
		t.Errorf("default consistency should be not-bounded, got %v", q.Consistency)
	}
}

func TestDefaultStreamOptions(t *testing.T) {
	opts := DefaultStreamOptions()
	if opts.BufferSize != 100 {
		t.Errorf("unexpected buffer size: %d", opts.BufferSize)
	}
	if opts.MaxRetries != 3 {
		t.Errorf("unexpected max retries: %d", opts.MaxRetries)
	}
	if opts.RetryBackoff != time.Second {
		t.Errorf("unexpected backoff: %v", opts.RetryBackoff)
	}

	WithBufferSize(5)(&opts)
	WithMaxRetries(1)(&opts)
	WithProgressInterval(10)(&opts)
	if opts.BufferSize != 5 || opts.MaxRetries != 1 || opts.ProgressInterval != 10 {
		t.Errorf("options not applied: %+v", opts)
	}
}
