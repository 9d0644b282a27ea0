/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/registry"
)

// Metadata field names that N1QL statements must select for full entity
// mapping, via "META(b).id AS _ID" and "META(b).cas AS _CAS".
const (
	SelectID  = "_ID"
	SelectCAS = "_CAS"
)

// TypeAttribute is the document field carrying the registered document type.
// It is injected on encode and used to pick an unmarshal function when
// decoding heterogeneous query results.
const TypeAttribute = "_type"

// Converter translates between domain entities and the JSON documents
// stored in the bucket. Implementations derive document keys from
// registered key maps and decode query rows and fragments.
type Converter interface {
	// Key derives the document key for an entity from its registered key map.
	Key(entity any) (string, error)

	// Encode marshals an entity into its document body, injecting the type
	// attribute, and returns the derived document key alongside.
	Encode(entity any) (id string, payload []byte, err error)

	// Decode unmarshals a document body into the given entity pointer.
	Decode(payload []byte, entityPtr any) error

	// DecodeFragment unmarshals a single query-selected field into a
	// fragment pointer. No metadata is involved.
	DecodeFragment(raw json.RawMessage, fragmentPtr any) error

	// DecodeRow maps a full N1QL row onto an entity. The row must carry the
	// document metadata under SelectID and SelectCAS; a QueryExecutionError
	// is returned when either is missing.
	DecodeRow(raw json.RawMessage, entityPtr any) (id string, cas uint64, err error)
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// jsonConverter is the default Converter, backed by encoding/json.
// JSON is the wire representation the SDK's own transcoder uses, so no
// separate mapping layer is needed.
type jsonConverter struct{}

// NewJSONConverter returns the default JSON-based Converter.
func NewJSONConverter() Converter {
	return jsonConverter{}
}

// entityFields marshals an entity and decodes it back into a flat field map.
// Numbers are kept as json.Number so key macros never render in exponent form.
func entityFields(entity any) (map[string]interface{}, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	fields := make(map[string]interface{})
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("entity does not marshal to a JSON object: %w", err)
	}
	return fields, nil
}

// expandMacros replaces {Field} macros in a key template with the string
// form of the corresponding entity field.
func expandMacros(template string, fields map[string]interface{}) (string, error) {
	var expandErr error

	expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
		field := strings.Trim(macro, "{}")

		val, ok := fields[field]
		if !ok || val == nil {
			expandErr = errors.NewValidationError(field, "no value for key macro")
			return ""
		}

		switch tv := val.(type) {
		case string:
			if tv == "" {
				expandErr = errors.NewValidationError(field, "empty value for key macro")
			}
			return tv
		case json.Number:
			return tv.String()
		case bool:
			return strconv.FormatBool(tv)
		default:
			// Objects and arrays cannot form part of a document key.
			expandErr = errors.NewValidationError(field, fmt.Sprintf("unsupported key macro type %T", val))
			return ""
		}
	})

	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}

func (jsonConverter) Key(entity any) (string, error) {
	km, ok := registry.GetKeyMapOf(entity)
	if !ok {
		return "", fmt.Errorf("%w: %T", errors.ErrNoKeyMap, entity)
	}

	fields, err := entityFields(entity)
	if err != nil {
		return "", err
	}

	return expandMacros(km.Key, fields)
}

func (c jsonConverter) Encode(entity any) (string, []byte, error) {
	km, ok := registry.GetKeyMapOf(entity)
	if !ok {
		return "", nil, fmt.Errorf("%w: %T", errors.ErrNoKeyMap, entity)
	}

	fields, err := entityFields(entity)
	if err != nil {
		return "", nil, err
	}

	id, err := expandMacros(km.Key, fields)
	if err != nil {
		return "", nil, err
	}

	if km.DocType != "" {
		fields[TypeAttribute] = km.DocType
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return id, payload, nil
}

func (jsonConverter) Decode(payload []byte, entityPtr any) error {
	if err := json.Unmarshal(payload, entityPtr); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return nil
}

func (jsonConverter) DecodeFragment(raw json.RawMessage, fragmentPtr any) error {
	if err := json.Unmarshal(raw, fragmentPtr); err != nil {
		return fmt.Errorf("failed to decode fragment: %w", err)
	}
	return nil
}

func (jsonConverter) DecodeRow(raw json.RawMessage, entityPtr any) (string, uint64, error) {
	var row map[string]json.RawMessage
	if err := json.Unmarshal(raw, &row); err != nil {
		return "", 0, errors.NewQueryExecutionError("", fmt.Sprintf("row is not a JSON object: %v", err))
	}

	idRaw, okID := row[SelectID]
	casRaw, okCAS := row[SelectCAS]
	if !okID || !okCAS {
		return "", 0, errors.NewQueryExecutionError("",
			fmt.Sprintf("query did not select %s and %s document metadata", SelectID, SelectCAS))
	}

	var id string
	if err := json.Unmarshal(idRaw, &id); err != nil {
		return "", 0, errors.NewQueryExecutionError("", fmt.Sprintf("invalid %s field: %v", SelectID, err))
	}

	// CAS values exceed 2^53, so they must not pass through float64.
	var casNum json.Number
	if err := json.Unmarshal(casRaw, &casNum); err != nil {
		return "", 0, errors.NewQueryExecutionError("", fmt.Sprintf("invalid %s field: %v", SelectCAS, err))
	}
	cas, err := strconv.ParseUint(casNum.String(), 10, 64)
	if err != nil {
		return "", 0, errors.NewQueryExecutionError("", fmt.Sprintf("invalid %s field: %v", SelectCAS, err))
	}

	delete(row, SelectID)
	delete(row, SelectCAS)

	body, err := json.Marshal(row)
	if err != nil {
		return "", 0, fmt.Errorf("failed to re-marshal row body: %w", err)
	}
	if err := json.Unmarshal(body, entityPtr); err != nil {
		return "", 0, fmt.Errorf("failed to unmarshal row into entity: %w", err)
	}
	return id, cas, nil
}
