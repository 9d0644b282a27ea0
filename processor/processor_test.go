/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"strings"
	"testing"
)

const sampleSpec = `
components:
  schemas:
    UserProfile:
      type: object
      x-couchbase-keymap:
        docType: UserProfile
        key: "user::{UserId}"
      properties:
        UserId:
          type: string
    Order:
      type: object
      x-couchbase-keymap:
        key: "order::{OrderId}"
      properties:
        OrderId:
          type: string
    Untracked:
      type: object
      properties:
        Name:
          type: string
`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 annotated schemas, got %d", len(entries))
	}

	// Entries are sorted by schema name.
	if entries[0].Name != "Order" || entries[1].Name != "UserProfile" {
		t.Errorf("unexpected order: %q, %q", entries[0].Name, entries[1].Name)
	}
	if entries[0].Spec.DocType != "Order" {
		t.Errorf("docType should default to the schema name, got %q", entries[0].Spec.DocType)
	}
	if entries[1].Spec.Key != "user::{UserId}" {
		t.Errorf("unexpected key template: %q", entries[1].Spec.Key)
	}
}

func TestParseMissingKey(t *testing.T) {
	spec := `
components:
  schemas:
    Broken:
      x-couchbase-keymap:
        docType: Broken
`
	if _, err := Parse([]byte(spec)); err == nil {
		t.Fatal("expected error for extension without a key template")
	}
}

func TestGenerate(t *testing.T) {
	code, err := Generate([]byte(sampleSpec), "models")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out := string(code)
	for _, want := range []string{
		"package models",
		"// Code generated by keymap-gen. DO NOT EDIT.",
		`registry.RegisterKeyMap[UserProfile](registry.KeyMap{`,
		`Key:     "user::{UserId}",`,
		`registry.RegisterTypeFor[Order]("Order")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated code missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateNoSchemas(t *testing.T) {
	if _, err := Generate([]byte("components:\n  schemas: {}\n"), "models"); err == nil {
		t.Fatal("expected error when no schema carries the extension")
	}
}
