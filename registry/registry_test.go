/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"encoding/json"
	"testing"
)

type regUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type regOrder struct {
	OrderID string `json:"orderId"`
}

func TestRegisterAndGetKeyMap(t *testing.T) {
	RegisterKeyMap[regUser](KeyMap{DocType: "RegUser", Key: "reguser::{id}"})

	km, ok := GetKeyMap[regUser]()
	if !ok {
		t.Fatal("expected a key map for regUser")
	}
	if km.DocType != "RegUser" || km.Key != "reguser::{id}" {
		t.Errorf("unexpected key map: %+v", km)
	}

	if _, ok := GetKeyMap[regOrder](); ok {
		t.Error("regOrder should not have a key map yet")
	}
}

func TestGetKeyMapOfResolvesPointers(t *testing.T) {
	RegisterKeyMap[regOrder](KeyMap{DocType: "RegOrder", Key: "regorder::{orderId}"})

	km, ok := GetKeyMapOf(&regOrder{OrderID: "9"})
	if !ok {
		t.Fatal("expected pointer lookup to resolve to the element type")
	}
	if km.DocType != "RegOrder" {
		t.Errorf("unexpected key map: %+v", km)
	}

	if _, ok := GetKeyMapOf("just a string"); ok {
		t.Error("strings should not resolve to a key map")
	}
}

func TestTypeRegistry(t *testing.T) {
	RegisterTypeFor[regUser]("RegUserType")

	fn, err := GetUnmarshalFunc("RegUserType")
	if err != nil {
		t.Fatalf("GetUnmarshalFunc failed: %v", err)
	}

	obj, err := fn(json.RawMessage(`{"id":"1","name":"Ada"}`))
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	user, ok := obj.(*regUser)
	if !ok {
		t.Fatalf("expected *regUser, got %T", obj)
	}
	if user.Name != "Ada" {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := GetUnmarshalFunc("NeverRegistered"); err == nil {
		t.Error("expected an error for an unregistered type")
	}
}

func TestRegisterTypeTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	RegisterType("DupType", func(raw json.RawMessage) (interface{}, error) { return nil, nil })
	RegisterType("DupType", func(raw json.RawMessage) (interface{}, error) { return nil, nil })
}
