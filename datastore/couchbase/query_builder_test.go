/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"strings"
	"testing"
	"time"
)

func TestQueryBuilderTypeCondition(t *testing.T) {
	tmpl := offlineTemplate()

	q := NewQuery[tmplUser](tmpl).Build()

	want := "SELECT b.*, META(b).id AS _ID, META(b).cas AS _CAS FROM `app` b WHERE b.`_type` = $1"
	if q.Statement != want {
		t.Errorf("unexpected statement:\n got %q\nwant %q", q.Statement, want)
	}
	if len(q.PositionalParams) != 1 || q.PositionalParams[0] != "TmplUser" {
		t.Errorf("unexpected params: %+v", q.PositionalParams)
	}
}

func TestQueryBuilderConditions(t *testing.T) {
	tmpl := offlineTemplate()

	q := NewQuery[tmplUser](tmpl).
		WhereEq("name", "Ada").
		WherePrefix("id", "7").
		WhereBetween("score", 10, 20).
		OrderBy("name", true).
		Limit(25).
		Offset(50).
		Build()

	for _, frag := range []string{
		"b.`name` = $2",
		"b.`id` LIKE $3",
		"b.`score` BETWEEN $4 AND $5",
		"ORDER BY b.`name` DESC",
		"LIMIT 25",
		"OFFSET 50",
	} {
		if !strings.Contains(q.Statement, frag) {
			t.Errorf("statement missing %q:\n%s", frag, q.Statement)
		}
	}

	if q.PositionalParams[2] != "7%" {
		t.Errorf("prefix should expand to a LIKE pattern, got %v", q.PositionalParams[2])
	}
	if len(q.PositionalParams) != 5 {
		t.Errorf("expected 5 params, got %d", len(q.PositionalParams))
	}
}

func TestQueryBuilderTimeRange(t *testing.T) {
	tmpl := offlineTemplate()

	cutoff := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	q := NewQuery[tmplUser](tmpl).CreatedAfter("createdAt", cutoff).Build()

	if !strings.Contains(q.Statement, "b.`createdAt` > $2") {
		t.Errorf("time condition missing: %s", q.Statement)
	}
	if q.PositionalParams[1] != "2025-03-01T12:00:00Z" {
		t.Errorf("time should render as RFC3339, got %v", q.PositionalParams[1])
	}
}

func TestQueryBuilderUnregisteredType(t *testing.T) {
	tmpl := offlineTemplate()

	type anon struct{ X string }
	q := NewQuery[anon](tmpl).WhereEq("x", 1).Build()

	// Without a key map there is no type condition; the first param is $1.
	if !strings.Contains(q.Statement, "WHERE b.`x` = $1") {
		t.Errorf("unexpected statement: %s", q.Statement)
	}
}
