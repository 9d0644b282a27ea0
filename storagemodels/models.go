/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"
)

// ViewConsistency controls index freshness for a view query.
type ViewConsistency int

const (
	// ViewConsistencyNotBounded queries the index as-is.
	ViewConsistencyNotBounded ViewConsistency = iota
	// ViewConsistencyRequestPlus updates the index before querying it.
	ViewConsistencyRequestPlus
	// ViewConsistencyUpdateAfter updates the index after the query returns.
	ViewConsistencyUpdateAfter
)

// ViewQuery describes a map/reduce view query against a design document.
// The zero value of every field is a usable default; an empty query over a
// design document and view name is valid.
type ViewQuery struct {
	// DesignDocument is the design document holding the view.
	DesignDocument string
	// ViewName is the view to query.
	ViewName string
	// Skip defines how many rows to omit from the start of the result.
	Skip uint32
	// Limit caps the number of rows returned; zero means no limit.
	Limit uint32
	// Descending reverses the index traversal order.
	Descending bool
	// Key restricts the result to a single key.
	Key interface{}
	// Keys restricts the result to a set of keys.
	Keys []interface{}
	// StartKey and EndKey bound the traversed key range.
	StartKey interface{}
	EndKey   interface{}
	// InclusiveEnd includes the EndKey itself in the range.
	InclusiveEnd bool
	// Reduce runs the view's reduce function. Reduced rows carry no
	// document reference and cannot be mapped to entities.
	Reduce bool
	// Group and GroupLevel control reduced-result grouping.
	Group      bool
	GroupLevel uint32
	// Development targets the dev design document namespace.
	Development bool
	// Consistency controls index staleness.
	Consistency ViewConsistency
}

// QueryConsistency controls index freshness for a N1QL query.
type QueryConsistency int

const (
	// QueryConsistencyNotBounded executes immediately against the index.
	QueryConsistencyNotBounded QueryConsistency = iota
	// QueryConsistencyRequestPlus waits for the index to catch up to the
	// request time.
	QueryConsistencyRequestPlus
)

// N1QLQuery describes a declarative query: a statement plus optional
// placeholder values and tuning parameters. The statement is opaque to
// this library and passed through to the query service.
type N1QLQuery struct {
	// Statement is the N1QL text, possibly containing $1.. or $name
	// placeholders.
	Statement string
	// PositionalParams fills $1, $2, ... placeholders.
	PositionalParams []interface{}
	// NamedParams fills $name placeholders.
	NamedParams map[string]interface{}
	// Adhoc skips the prepared-statement cache when true.
	Adhoc bool
	// Consistency controls index staleness.
	Consistency QueryConsistency
	// ClientContextID tags the query for tracing; one is generated when empty.
	ClientContextID string
}

// NewN1QLQuery builds a query from a statement and positional placeholder values.
func NewN1QLQuery(statement string, params ...interface{}) *N1QLQuery {
	return &N1QLQuery{Statement: statement, PositionalParams: params}
}

// WriteOptions carries the optional constraints of a single write.
type WriteOptions struct {
	// PersistTo is the number of nodes the write must be persisted to
	// before it is acknowledged. Zero imposes no constraint.
	PersistTo uint
	// ReplicateTo is the number of replicas the write must reach before
	// it is acknowledged. Zero imposes no constraint.
	ReplicateTo uint
	// Expiry sets a document time-to-live. Zero means no expiry.
	Expiry time.Duration
}

// WriteOption is a functional option for configuring a write.
type WriteOption func(*WriteOptions)

// WithDurability requires the write to be persisted to persistTo nodes and
// replicated to replicateTo replicas before acknowledgement.
func WithDurability(persistTo, replicateTo uint) WriteOption {
	return func(o *WriteOptions) {
		o.PersistTo = persistTo
		o.ReplicateTo = replicateTo
	}
}

// WithExpiry sets a document time-to-live.
func WithExpiry(d time.Duration) WriteOption {
	return func(o *WriteOptions) {
		o.Expiry = d
	}
}

// ApplyWriteOptions folds a list of options into a WriteOptions value.
func ApplyWriteOptions(opts ...WriteOption) WriteOptions {
	var out WriteOptions
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// EndpointHealth reports the observed state of one service endpoint.
type EndpointHealth struct {
	// Endpoint is the remote address of the service.
	Endpoint string
	// State is "ok", "timeout" or "error".
	State string
	// Latency is the observed ping round trip.
	Latency time.Duration
	// Error holds the failure detail when State is not "ok".
	Error string
}

// ClusterInfo describes the cluster a template is connected to, as observed
// from a ping across its services.
type ClusterInfo struct {
	// ReportID identifies the underlying ping report.
	ReportID string
	// Services maps a service name ("kv", "query", "views", ...) to the
	// health of its endpoints.
	Services map[string][]EndpointHealth
}
