package model_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"BoatraceAPI/internal/model"
)

func TestRawMapUnmarshalKeepsOrder(t *testing.T) {
	data := []byte(`{"12": {"b": 1, "a": [1, "x", null]}, "3": true, "1": "one"}`)

	var raw model.RawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	var keys []any
	for _, e := range raw {
		keys = append(keys, e.Key)
	}
	if want := []any{"12", "3", "1"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}

	inner, ok := raw[0].Value.(model.RawMap)
	if !ok {
		t.Fatalf("inner type = %T, want model.RawMap", raw[0].Value)
	}
	if inner[0].Key != "b" || inner[1].Key != "a" {
		t.Errorf("inner keys = %v, %v", inner[0].Key, inner[1].Key)
	}
	if n, ok := inner[0].Value.(json.Number); !ok || n.String() != "1" {
		t.Errorf("number value = %#v, want json.Number(\"1\")", inner[0].Value)
	}
	if arr, ok := inner[1].Value.([]any); !ok || len(arr) != 3 || arr[2] != nil {
		t.Errorf("array value = %#v", inner[1].Value)
	}
	if raw[1].Value != true {
		t.Errorf("bool value = %#v", raw[1].Value)
	}
}

func TestRawMapUnmarshalTopLevel(t *testing.T) {
	var raw model.RawMap
	if err := json.Unmarshal([]byte(`null`), &raw); err != nil {
		t.Fatalf("null error = %v", err)
	}
	if raw != nil {
		t.Errorf("null raw = %v, want nil", raw)
	}

	if err := json.Unmarshal([]byte(`[1, 2]`), &raw); err == nil {
		t.Error("array top level should fail")
	}
	if err := json.Unmarshal([]byte(`{}`), &raw); err != nil || raw == nil || len(raw) != 0 {
		t.Errorf("empty object = (%v, %v), want empty non-nil map", raw, err)
	}
}

func TestRawMapField(t *testing.T) {
	raw := model.RawMap{
		{Key: 1, Value: "numeric"},
		{Key: "results", Value: nil},
		{Key: "results", Value: "second"},
	}

	v, ok := raw.Field("results")
	if !ok || v != nil {
		t.Errorf("Field(results) = (%v, %v), want first occurrence (nil, true)", v, ok)
	}
	if _, ok := raw.Field("1"); ok {
		t.Error("Field must not match non-string keys")
	}
	if _, ok := raw.Field("missing"); ok {
		t.Error("Field(missing) should report absent")
	}
}
