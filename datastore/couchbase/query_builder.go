/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suparena/couchstore/codec"
	"github.com/suparena/couchstore/registry"
	"github.com/suparena/couchstore/storagemodels"
)

// QueryBuilder provides a fluent interface for building entity queries
// without writing N1QL by hand. The generated statement always selects the
// document metadata needed for entity mapping and constrains rows to the
// type attribute registered for T.
type QueryBuilder[T any] struct {
	tmpl       *Template
	conditions []string
	params     []interface{}
	orderBy    string
	descending bool
	limit      uint
	offset     uint
}

// NewQuery creates a query builder for entities of type T.
func NewQuery[T any](t *Template) *QueryBuilder[T] {
	qb := &QueryBuilder[T]{tmpl: t}

	var zero T
	if km, ok := registry.GetKeyMapOf(zero); ok && km.DocType != "" {
		qb.conditions = append(qb.conditions, fmt.Sprintf("b.`%s` = %s", codec.TypeAttribute, qb.placeholder(km.DocType)))
	}
	return qb
}

func (q *QueryBuilder[T]) placeholder(value interface{}) string {
	q.params = append(q.params, value)
	return fmt.Sprintf("$%d", len(q.params))
}

// WhereEq adds an equality condition on a document field.
func (q *QueryBuilder[T]) WhereEq(field string, value interface{}) *QueryBuilder[T] {
	q.conditions = append(q.conditions, fmt.Sprintf("b.`%s` = %s", field, q.placeholder(value)))
	return q
}

// WherePrefix adds a begins-with condition on a string field.
func (q *QueryBuilder[T]) WherePrefix(field, prefix string) *QueryBuilder[T] {
	q.conditions = append(q.conditions, fmt.Sprintf("b.`%s` LIKE %s", field, q.placeholder(prefix+"%")))
	return q
}

// WhereGreaterThan adds a > condition on a document field.
func (q *QueryBuilder[T]) WhereGreaterThan(field string, value interface{}) *QueryBuilder[T] {
	q.conditions = append(q.conditions, fmt.Sprintf("b.`%s` > %s", field, q.placeholder(value)))
	return q
}

// WhereLessThan adds a < condition on a document field.
func (q *QueryBuilder[T]) WhereLessThan(field string, value interface{}) *QueryBuilder[T] {
	q.conditions = append(q.conditions, fmt.Sprintf("b.`%s` < %s", field, q.placeholder(value)))
	return q
}

// WhereBetween adds an inclusive range condition on a document field.
func (q *QueryBuilder[T]) WhereBetween(field string, start, end interface{}) *QueryBuilder[T] {
	q.conditions = append(q.conditions,
		fmt.Sprintf("b.`%s` BETWEEN %s AND %s", field, q.placeholder(start), q.placeholder(end)))
	return q
}

// CreatedAfter constrains a RFC3339 time field to values after t.
func (q *QueryBuilder[T]) CreatedAfter(field string, t time.Time) *QueryBuilder[T] {
	return q.WhereGreaterThan(field, t.Format(time.RFC3339))
}

// InLastDays constrains a RFC3339 time field to the last n days.
func (q *QueryBuilder[T]) InLastDays(field string, days int) *QueryBuilder[T] {
	return q.CreatedAfter(field, time.Now().AddDate(0, 0, -days))
}

// InLastHours constrains a RFC3339 time field to the last n hours.
func (q *QueryBuilder[T]) InLastHours(field string, hours int) *QueryBuilder[T] {
	return q.CreatedAfter(field, time.Now().Add(-time.Duration(hours)*time.Hour))
}

// OrderBy sorts the result by a document field.
func (q *QueryBuilder[T]) OrderBy(field string, descending bool) *QueryBuilder[T] {
	q.orderBy = field
	q.descending = descending
	return q
}

// Limit caps the number of returned rows.
func (q *QueryBuilder[T]) Limit(n uint) *QueryBuilder[T] {
	q.limit = n
	return q
}

// Offset skips the first n rows.
func (q *QueryBuilder[T]) Offset(n uint) *QueryBuilder[T] {
	q.offset = n
	return q
}

// Build renders the builder into a N1QL query descriptor.
func (q *QueryBuilder[T]) Build() *storagemodels.N1QLQuery {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT b.*, META(b).id AS %s, META(b).cas AS %s FROM `%s` b",
		codec.SelectID, codec.SelectCAS, q.tmpl.bucketName)

	if len(q.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}

	if q.orderBy != "" {
		fmt.Fprintf(&sb, " ORDER BY b.`%s`", q.orderBy)
		if q.descending {
			sb.WriteString(" DESC")
		}
	}
	if q.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.limit)
	}
	if q.offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", q.offset)
	}

	return &storagemodels.N1QLQuery{
		Statement:        sb.String(),
		PositionalParams: q.params,
	}
}

// Find executes the built query and maps the rows to entities.
func (q *QueryBuilder[T]) Find(ctx context.Context) ([]T, error) {
	return FindByN1QL[T](ctx, q.tmpl, q.Build())
}

// Stream executes the built query and delivers rows over a channel.
func (q *QueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	return Stream[T](ctx, q.tmpl, q.Build(), opts...)
}
