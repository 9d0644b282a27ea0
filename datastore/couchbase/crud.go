/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchbase

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/couchbase/gocb/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/storagemodels"
)

// Save stores the entity under its derived key, creating the document or
// overwriting it unconditionally.
func (t *Template) Save(ctx context.Context, entity any, opts ...storagemodels.WriteOption) error {
	o := storagemodels.ApplyWriteOptions(opts...)

	id, payload, err := t.converter.Encode(entity)
	if err != nil {
		return err
	}

	// The converter already produced the final document body, type attribute
	// included; RawMessage keeps the SDK transcoder from re-encoding it.
	_, err = t.collection.Upsert(id, json.RawMessage(payload), &gocb.UpsertOptions{
		Context:     ctx,
		Expiry:      o.Expiry,
		PersistTo:   o.PersistTo,
		ReplicateTo: o.ReplicateTo,
	})
	if err != nil {
		return errors.Translate("save", docTypeOf(entity), id, err)
	}

	t.log.Debug("saved document", zap.String("key", id))
	return nil
}

// SaveAll stores each entity of the batch. Failing documents do not stop the
// batch; all per-document errors are aggregated into the returned error.
func (t *Template) SaveAll(ctx context.Context, batch []any, opts ...storagemodels.WriteOption) error {
	var errs error
	for _, entity := range batch {
		errs = multierr.Append(errs, t.Save(ctx, entity, opts...))
	}
	return errs
}

// Insert stores the entity under its derived key. The write fails with an
// AlreadyExistsError when the key is taken.
func (t *Template) Insert(ctx context.Context, entity any, opts ...storagemodels.WriteOption) error {
	o := storagemodels.ApplyWriteOptions(opts...)

	id, payload, err := t.converter.Encode(entity)
	if err != nil {
		return err
	}

	_, err = t.collection.Insert(id, json.RawMessage(payload), &gocb.InsertOptions{
		Context:     ctx,
		Expiry:      o.Expiry,
		PersistTo:   o.PersistTo,
		ReplicateTo: o.ReplicateTo,
	})
	if err != nil {
		return errors.Translate("insert", docTypeOf(entity), id, err)
	}

	t.log.Debug("inserted document", zap.String("key", id))
	return nil
}

// InsertAll stores each entity of the batch, aggregating per-document errors.
func (t *Template) InsertAll(ctx context.Context, batch []any, opts ...storagemodels.WriteOption) error {
	var errs error
	for _, entity := range batch {
		errs = multierr.Append(errs, t.Insert(ctx, entity, opts...))
	}
	return errs
}

// Update replaces the document under the entity's derived key. The write
// fails with a NotFoundError when the document does not exist; it never
// creates one.
func (t *Template) Update(ctx context.Context, entity any, opts ...storagemodels.WriteOption) error {
	o := storagemodels.ApplyWriteOptions(opts...)

	id, payload, err := t.converter.Encode(entity)
	if err != nil {
		return err
	}

	_, err = t.collection.Replace(id, json.RawMessage(payload), &gocb.ReplaceOptions{
		Context:     ctx,
		Expiry:      o.Expiry,
		PersistTo:   o.PersistTo,
		ReplicateTo: o.ReplicateTo,
	})
	if err != nil {
		return errors.Translate("update", docTypeOf(entity), id, err)
	}

	t.log.Debug("updated document", zap.String("key", id))
	return nil
}

// UpdateAll replaces each entity of the batch, aggregating per-document errors.
func (t *Template) UpdateAll(ctx context.Context, batch []any, opts ...storagemodels.WriteOption) error {
	var errs error
	for _, entity := range batch {
		errs = multierr.Append(errs, t.Update(ctx, entity, opts...))
	}
	return errs
}

// FindByID looks up a document by key and decodes it into entityPtr.
// An absent key is not an error: it returns (false, nil) and leaves
// entityPtr untouched.
func (t *Template) FindByID(ctx context.Context, key string, entityPtr any) (bool, error) {
	res, err := t.collection.Get(key, &gocb.GetOptions{
		Context:    ctx,
		Transcoder: gocb.NewRawJSONTranscoder(),
	})
	if err != nil {
		if stderrors.Is(err, gocb.ErrDocumentNotFound) {
			return false, nil
		}
		return false, errors.Translate("find", "document", key, err)
	}

	var raw []byte
	if err := res.Content(&raw); err != nil {
		return false, errors.Translate("find", "document", key, err)
	}
	if err := t.decodeDocument(raw, entityPtr, key); err != nil {
		return false, err
	}
	return true, nil
}

// Exists checks whether a document with the given key exists.
func (t *Template) Exists(ctx context.Context, key string) (bool, error) {
	res, err := t.collection.Exists(key, &gocb.ExistsOptions{Context: ctx})
	if err != nil {
		return false, errors.Translate("exists", "document", key, err)
	}
	return res.Exists(), nil
}

// Remove deletes a document. A string argument is used as the document key
// directly; any other value has its key derived from the registered key map.
func (t *Template) Remove(ctx context.Context, objectOrKey any, opts ...storagemodels.WriteOption) error {
	o := storagemodels.ApplyWriteOptions(opts...)

	key, docType, err := t.removalKey(objectOrKey)
	if err != nil {
		return err
	}

	_, err = t.collection.Remove(key, &gocb.RemoveOptions{
		Context:     ctx,
		PersistTo:   o.PersistTo,
		ReplicateTo: o.ReplicateTo,
	})
	if err != nil {
		return errors.Translate("remove", docType, key, err)
	}

	t.log.Debug("removed document", zap.String("key", key))
	return nil
}

// RemoveAll deletes each document of the batch, aggregating per-document errors.
func (t *Template) RemoveAll(ctx context.Context, batch []any, opts ...storagemodels.WriteOption) error {
	var errs error
	for _, objectOrKey := range batch {
		errs = multierr.Append(errs, t.Remove(ctx, objectOrKey, opts...))
	}
	return errs
}

func (t *Template) removalKey(objectOrKey any) (key, docType string, err error) {
	if s, ok := objectOrKey.(string); ok {
		if s == "" {
			return "", "", errors.NewValidationError("key", "document key must not be empty")
		}
		return s, "document", nil
	}

	key, err = t.converter.Key(objectOrKey)
	if err != nil {
		return "", "", err
	}
	return key, docTypeOf(objectOrKey), nil
}
