package surveys

import (
	"encoding/json"
	"testing"
)

func TestSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewSchemaValidator()
	schema := map[string]any{
		"type":     "object",
		"required": []string{"slug"},
		"properties": map[string]any{
			"slug": map[string]any{"type": "string", "minLength": 1},
		},
	}
	if err := validator.Validate("slug_required", schema, map[string]any{"slug": "region"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if err := validator.Validate("slug_required", schema, map[string]any{}); err == nil {
		t.Fatalf("expected validation error for missing slug")
	}
	if err := validator.Validate("slug_required", schema, json.RawMessage(`{"slug": ""}`)); err == nil {
		t.Fatalf("expected validation error for empty slug in raw JSON")
	}
}

func TestSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewSchemaValidator()
	schema := map[string]any{"type": "object"}
	if err := validator.Validate("cached", schema, nil); err == nil {
		t.Fatalf("expected null payload to fail an object schema")
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate("cached", schema, map[string]any{}); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to remain 1 entry, got %d", len(validator.compiled))
	}
}

func TestSchemaValidatorRejectsMalformedRawJSON(t *testing.T) {
	validator := NewSchemaValidator()
	if err := validator.Validate("raw", map[string]any{"type": "object"}, []byte("{not json")); err == nil {
		t.Fatalf("expected normalize error for malformed JSON")
	}
}
