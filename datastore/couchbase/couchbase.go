/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"go.uber.org/zap"

	"github.com/suparena/couchstore/codec"
	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/registry"
	"github.com/suparena/couchstore/storagemodels"
)

// Config holds the connection settings for a Template.
type Config struct {
	// ConnStr is the couchbase:// connection string.
	ConnStr string
	// Username and Password authenticate against the cluster.
	Username string
	Password string
	// Bucket is the bucket all operations are bound to.
	Bucket string
	// Scope and Collection select a named collection; both empty means the
	// bucket's default collection.
	Scope      string
	Collection string
	// ConnectTimeout bounds the initial bootstrap. Defaults to 10s.
	ConnectTimeout time.Duration
}

// Template implements the document operations of this library against a
// single Couchbase bucket. It is safe for concurrent use; all state is
// established at construction time.
type Template struct {
	cluster    *gocb.Cluster
	bucket     *gocb.Bucket
	bucketName string
	collection *gocb.Collection
	converter  codec.Converter
	log        *zap.Logger
}

// TemplateOption configures a Template at construction time.
type TemplateOption func(*Template)

// WithLogger attaches a zap logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) TemplateOption {
	return func(t *Template) {
		t.log = log
	}
}

// WithConverter replaces the default JSON converter.
func WithConverter(c codec.Converter) TemplateOption {
	return func(t *Template) {
		t.converter = c
	}
}

// NewTemplate connects to the cluster described by cfg and returns a
// Template bound to its bucket.
func NewTemplate(ctx context.Context, cfg Config, opts ...TemplateOption) (*Template, error) {
	if cfg.ConnStr == "" {
		return nil, errors.NewValidationError("ConnStr", "connection string is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.NewValidationError("Bucket", "bucket name is required")
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = 10 * time.Second
	}

	cluster, err := gocb.Connect(cfg.ConnStr, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		},
		TimeoutsConfig: gocb.TimeoutsConfig{
			ConnectTimeout: connectTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}

	bucket := cluster.Bucket(cfg.Bucket)
	if err := bucket.WaitUntilReady(connectTimeout, nil); err != nil {
		_ = cluster.Close(nil)
		return nil, fmt.Errorf("bucket %q not ready: %w", cfg.Bucket, err)
	}

	return NewTemplateWithBucket(cluster, bucket, cfg.Scope, cfg.Collection, opts...), nil
}

// NewTemplateWithBucket wraps an already connected cluster and bucket.
// Useful when several templates share one cluster connection.
func NewTemplateWithBucket(cluster *gocb.Cluster, bucket *gocb.Bucket, scope, collection string, opts ...TemplateOption) *Template {
	t := &Template{
		cluster:    cluster,
		bucket:     bucket,
		bucketName: bucket.Name(),
		converter:  codec.NewJSONConverter(),
		log:        zap.NewNop(),
	}
	scope, collection = resolveCollection(scope, collection)
	if scope != "" {
		t.collection = bucket.Scope(scope).Collection(collection)
	} else {
		t.collection = bucket.DefaultCollection()
	}

	for _, opt := range opts {
		opt(t)
	}

	t.log.Info("template bound to bucket",
		zap.String("bucket", t.bucketName),
		zap.String("scope", scope),
		zap.String("collection", collection))
	return t
}

// resolveCollection fills in the "_default" name when only one of the
// scope/collection pair is set. Both empty selects the bucket's default
// collection.
func resolveCollection(scope, collection string) (string, string) {
	if scope == "" && collection == "" {
		return "", ""
	}
	if scope == "" {
		scope = "_default"
	}
	if collection == "" {
		collection = "_default"
	}
	return scope, collection
}

// Bucket returns the underlying bucket handle.
func (t *Template) Bucket() *gocb.Bucket {
	return t.bucket
}

// Cluster returns the underlying cluster handle.
func (t *Template) Cluster() *gocb.Cluster {
	return t.cluster
}

// Collection returns the collection all key/value operations run against.
func (t *Template) Collection() *gocb.Collection {
	return t.collection
}

// Converter returns the converter used for entity mapping.
func (t *Template) Converter() codec.Converter {
	return t.converter
}

// Close shuts down the cluster connection.
func (t *Template) Close() error {
	return t.cluster.Close(nil)
}

// Execute runs an arbitrary action against the bucket, translating any
// SDK error into this library's error hierarchy.
func (t *Template) Execute(ctx context.Context, action func(b *gocb.Bucket) (interface{}, error)) (interface{}, error) {
	result, err := action(t.bucket)
	if err != nil {
		return nil, errors.Translate("execute", "document", "", err)
	}
	return result, nil
}

// ClusterInfo pings the cluster's services and reports their endpoint health.
func (t *Template) ClusterInfo(ctx context.Context) (*storagemodels.ClusterInfo, error) {
	report, err := t.bucket.Ping(&gocb.PingOptions{Context: ctx})
	if err != nil {
		return nil, fmt.Errorf("cluster ping failed: %w", err)
	}

	info := &storagemodels.ClusterInfo{
		ReportID: report.ID,
		Services: make(map[string][]storagemodels.EndpointHealth, len(report.Services)),
	}
	for svc, endpoints := range report.Services {
		name := serviceName(svc)
		for _, ep := range endpoints {
			info.Services[name] = append(info.Services[name], storagemodels.EndpointHealth{
				Endpoint: ep.Remote,
				State:    pingStateName(ep.State),
				Latency:  ep.Latency,
				Error:    ep.Error,
			})
		}
	}
	return info, nil
}

func serviceName(svc gocb.ServiceType) string {
	switch svc {
	case gocb.ServiceTypeKeyValue:
		return "kv"
	case gocb.ServiceTypeViews:
		return "views"
	case gocb.ServiceTypeQuery:
		return "query"
	case gocb.ServiceTypeSearch:
		return "search"
	case gocb.ServiceTypeAnalytics:
		return "analytics"
	case gocb.ServiceTypeManagement:
		return "mgmt"
	default:
		return fmt.Sprintf("service-%d", svc)
	}
}

func pingStateName(state gocb.PingState) string {
	switch state {
	case gocb.PingStateOk:
		return "ok"
	case gocb.PingStateTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// decodeDocument runs a fetched document body through the converter. Reads
// use the raw transcoder, so a converter injected via WithConverter covers
// both directions of the mapping.
func (t *Template) decodeDocument(payload []byte, entityPtr any, key string) error {
	if err := t.converter.Decode(payload, entityPtr); err != nil {
		return fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	return nil
}

// docTypeOf resolves the registered document type of an entity for error
// reporting, falling back to the Go type name.
func docTypeOf(entity any) string {
	if km, ok := registry.GetKeyMapOf(entity); ok && km.DocType != "" {
		return km.DocType
	}
	return fmt.Sprintf("%T", entity)
}
