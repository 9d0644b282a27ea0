/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"testing"

	"github.com/suparena/couchstore/datastore"
	"github.com/suparena/couchstore/datastore/mock"
)

type testUser struct {
	ID   string
	Name string
}

type testOrder struct {
	OrderID string
	Total   float64
}

func newUserStore() datastore.DataStore[testUser] {
	return mock.New[testUser]().WithGetKeyFunc(func(u testUser) string {
		return "user::" + u.ID
	})
}

func TestTypedStorageRegisterAndGet(t *testing.T) {
	ts := NewTypedStorage[testUser]()

	if err := ts.Register("users", newUserStore()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := ts.Register("users", newUserStore()); err == nil {
		t.Error("duplicate Register should fail")
	}

	ds, err := ts.Get("users")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ds == nil {
		t.Fatal("Get returned a nil datastore")
	}

	if _, err := ts.Get("missing"); err == nil {
		t.Error("Get of unknown key should fail")
	}
}

func TestTypedStorageRemoveAndList(t *testing.T) {
	ts := NewTypedStorage[testUser]()

	_ = ts.Register("b", newUserStore())
	_ = ts.Register("a", newUserStore())

	keys := ts.List()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected sorted keys [a b], got %v", keys)
	}

	if err := ts.Remove("a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := ts.Remove("a"); err == nil {
		t.Error("double Remove should fail")
	}
	if len(ts.List()) != 1 {
		t.Error("expected 1 key after removal")
	}
}

func TestMultiTypeStorageSeparatesTypes(t *testing.T) {
	mts := NewMultiTypeStorage()

	if err := RegisterDataStore(mts, "primary", newUserStore()); err != nil {
		t.Fatalf("RegisterDataStore failed: %v", err)
	}

	orderStore := mock.New[testOrder]().WithGetKeyFunc(func(o testOrder) string {
		return "order::" + o.OrderID
	})
	if err := RegisterDataStore[testOrder](mts, "primary", orderStore); err != nil {
		t.Fatalf("same key for a different type should be fine: %v", err)
	}

	users := ListDataStores[testUser](mts)
	orders := ListDataStores[testOrder](mts)
	if len(users) != 1 || len(orders) != 1 {
		t.Errorf("expected one store per type, got %v / %v", users, orders)
	}

	ds, err := GetDataStore[testUser](mts, "primary")
	if err != nil {
		t.Fatalf("GetDataStore failed: %v", err)
	}

	// The returned store really is the typed one.
	ctx := context.Background()
	if err := ds.Save(ctx, testUser{ID: "1", Name: "Ada"}); err != nil {
		t.Fatalf("Save through registry failed: %v", err)
	}
	got, err := ds.FindByID(ctx, "user::1")
	if err != nil || got == nil || got.Name != "Ada" {
		t.Errorf("FindByID through registry = %+v, %v", got, err)
	}

	if err := RemoveDataStore[testUser](mts, "primary"); err != nil {
		t.Fatalf("RemoveDataStore failed: %v", err)
	}
	if len(ListDataStores[testUser](mts)) != 0 {
		t.Error("user stores should be empty after removal")
	}
}
