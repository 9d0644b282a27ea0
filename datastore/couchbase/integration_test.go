//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"

	"github.com/suparena/couchstore/datastore/testmodels"
	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/registry"
	"github.com/suparena/couchstore/storagemodels"
)

func init() {
	registry.RegisterKeyMap[testmodels.RatingSystem](registry.KeyMap{
		DocType: "RatingSystem",
		Key:     "rs::{Id}",
	})
	registry.RegisterTypeFor[testmodels.RatingSystem]("RatingSystem")
}

func getTestTemplate(t *testing.T) *Template {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	connStr := os.Getenv("COUCHBASE_CONNSTR")
	if connStr == "" {
		t.Skip("COUCHBASE_CONNSTR not set, skipping integration test")
	}

	tmpl, err := NewTemplate(context.Background(), Config{
		ConnStr:  connStr,
		Username: os.Getenv("COUCHBASE_USERNAME"),
		Password: os.Getenv("COUCHBASE_PASSWORD"),
		Bucket:   os.Getenv("COUCHBASE_BUCKET"),
	})
	if err != nil {
		t.Fatalf("failed to create template: %v", err)
	}
	t.Cleanup(func() { _ = tmpl.Close() })
	return tmpl
}

func sampleRatingSystem(id string) testmodels.RatingSystem {
	now := strfmt.DateTime(time.Now())
	name := "Oakville Table Tennis Ranking System (test)"
	desc := "This is a test rating system for Oakville Table Tennis Club"
	return testmodels.RatingSystem{
		ID:          &id,
		Name:        &name,
		Description: &desc,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
}

func TestTemplateSaveFindRemove(t *testing.T) {
	tmpl := getTestTemplate(t)
	ctx := context.Background()

	rs := sampleRatingSystem("TTOakville")
	if err := tmpl.Save(ctx, rs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var got testmodels.RatingSystem
	found, err := tmpl.FindByID(ctx, "rs::TTOakville", &got)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !found {
		t.Fatal("saved document should be found")
	}
	if got.Name == nil || *got.Name != *rs.Name {
		t.Errorf("retrieved document mismatch: %+v", got)
	}

	exists, err := tmpl.Exists(ctx, "rs::TTOakville")
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v; want true, nil", exists, err)
	}

	if err := tmpl.Remove(ctx, "rs::TTOakville"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	found, err = tmpl.FindByID(ctx, "rs::TTOakville", &got)
	if err != nil {
		t.Fatalf("FindByID after remove failed: %v", err)
	}
	if found {
		t.Error("removed document should not be found")
	}
}

func TestTemplateInsertUpdateSemantics(t *testing.T) {
	tmpl := getTestTemplate(t)
	ctx := context.Background()

	rs := sampleRatingSystem("TTInsert")
	defer tmpl.Remove(ctx, "rs::TTInsert")

	if err := tmpl.Insert(ctx, rs); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	if err := tmpl.Insert(ctx, rs); !errors.IsAlreadyExists(err) {
		t.Errorf("second Insert should report already exists, got %v", err)
	}

	if err := tmpl.Update(ctx, rs); err != nil {
		t.Errorf("Update of existing document failed: %v", err)
	}

	missing := sampleRatingSystem("TTNeverStored")
	if err := tmpl.Update(ctx, missing); !errors.IsNotFound(err) {
		t.Errorf("Update of missing document should report not found, got %v", err)
	}
}

func TestTemplateDurableWrite(t *testing.T) {
	tmpl := getTestTemplate(t)
	ctx := context.Background()

	rs := sampleRatingSystem("TTDurable")
	defer tmpl.Remove(ctx, "rs::TTDurable")

	// PersistTo 1 is satisfiable on a single-node test cluster.
	err := tmpl.Save(ctx, rs, storagemodels.WithDurability(1, 0))
	if err != nil {
		t.Fatalf("durable Save failed: %v", err)
	}
}

func TestTypedDataStoreRoundTrip(t *testing.T) {
	tmpl := getTestTemplate(t)
	ctx := context.Background()

	store := NewDataStore[testmodels.RatingSystem](tmpl)

	rs := sampleRatingSystem("TTTyped")
	defer store.Remove(ctx, "rs::TTTyped")

	if err := store.Save(ctx, rs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.FindByID(ctx, "rs::TTTyped")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got == nil || got.ID == nil || *got.ID != "TTTyped" {
		t.Errorf("unexpected result: %+v", got)
	}

	absent, err := store.FindByID(ctx, "rs::TTNoSuchKey")
	if err != nil {
		t.Fatalf("FindByID for absent key failed: %v", err)
	}
	if absent != nil {
		t.Error("absent key should yield a nil entity")
	}
}

func TestFindByN1QLRequiresMetadata(t *testing.T) {
	tmpl := getTestTemplate(t)
	ctx := context.Background()

	rs := sampleRatingSystem("TTQuery")
	defer tmpl.Remove(ctx, "rs::TTQuery")
	if err := tmpl.Save(ctx, rs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	bucket := tmpl.Bucket().Name()

	full := storagemodels.NewN1QLQuery(
		"SELECT b.*, META(b).id AS _ID, META(b).cas AS _CAS FROM `"+bucket+"` b WHERE b.`_type` = $1", "RatingSystem")
	full.Consistency = storagemodels.QueryConsistencyRequestPlus

	rows, err := FindByN1QL[testmodels.RatingSystem](ctx, tmpl, full)
	if err != nil {
		t.Fatalf("FindByN1QL failed: %v", err)
	}
	if len(rows) == 0 {
		t.Error("expected at least one mapped entity")
	}

	bare := storagemodels.NewN1QLQuery(
		"SELECT b.* FROM `"+bucket+"` b WHERE b.`_type` = $1", "RatingSystem")
	bare.Consistency = storagemodels.QueryConsistencyRequestPlus

	if _, err := FindByN1QL[testmodels.RatingSystem](ctx, tmpl, bare); !errors.IsQueryExecution(err) {
		t.Errorf("metadata-less statement should fail with a query execution error, got %v", err)
	}

	type nameFragment struct {
		Name string `json:"Name"`
	}
	frags, err := FindByN1QLProjection[nameFragment](ctx, tmpl,
		storagemodels.NewN1QLQuery("SELECT b.Name FROM `"+bucket+"` b WHERE b.`_type` = $1", "RatingSystem"))
	if err != nil {
		t.Fatalf("FindByN1QLProjection failed: %v", err)
	}
	if len(frags) == 0 {
		t.Error("expected at least one fragment")
	}
}

func TestClusterInfo(t *testing.T) {
	tmpl := getTestTemplate(t)

	info, err := tmpl.ClusterInfo(context.Background())
	if err != nil {
		t.Fatalf("ClusterInfo failed: %v", err)
	}
	if len(info.Services) == 0 {
		t.Error("expected at least one service in the ping report")
	}
	t.Logf("cluster info: %+v", info)
}
