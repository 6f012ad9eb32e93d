package surveys

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FieldType is the schema-form field kind. Unknown values are kept verbatim.
type FieldType string

const (
	FieldSingleLineText        FieldType = "SingleLineText"
	FieldMultiLineText         FieldType = "MultiLineText"
	FieldSingleCheckbox        FieldType = "SingleCheckbox"
	FieldSingleSelect          FieldType = "SingleSelect"
	FieldMultiSelect           FieldType = "MultiSelect"
	FieldRadioMatrix           FieldType = "RadioMatrix"
	FieldDimensionSingleSelect FieldType = "DimensionSingleSelect"
	FieldDimensionMultiSelect  FieldType = "DimensionMultiSelect"
	FieldFileUpload            FieldType = "FileUpload"
	FieldDivider               FieldType = "Divider"
	FieldStaticText            FieldType = "StaticText"
	FieldSpacer                FieldType = "Spacer"
	FieldNumber                FieldType = "NumberField"
	FieldDecimal               FieldType = "DecimalField"
	FieldDate                  FieldType = "DateField"
	FieldDateTime              FieldType = "DateTimeField"
	FieldTime                  FieldType = "TimeField"
)

// Presentational reports whether the field collects no answers.
func (t FieldType) Presentational() bool {
	switch t {
	case FieldDivider, FieldStaticText, FieldSpacer:
		return true
	}
	return false
}

// Choice is one option of a select or one column of a matrix.
type Choice struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Field is one element of a survey's schema form.
type Field struct {
	Slug      string    `json:"slug"`
	Type      FieldType `json:"type"`
	Title     string    `json:"title,omitempty"`
	HelpText  string    `json:"helpText,omitempty"`
	Required  bool      `json:"required,omitempty"`
	Choices   []Choice  `json:"choices,omitempty"`
	Questions []Choice  `json:"questions,omitempty"`
}

// ChoiceTitle returns the title of the choice with slug, or the slug itself.
func (f Field) ChoiceTitle(slug string) string {
	return lookupTitle(f.Choices, slug)
}

// QuestionTitle returns the title of the matrix row with slug, or the slug itself.
func (f Field) QuestionTitle(slug string) string {
	return lookupTitle(f.Questions, slug)
}

func lookupTitle(choices []Choice, slug string) string {
	for _, choice := range choices {
		if choice.Slug == slug && choice.Title != "" {
			return choice.Title
		}
	}
	return slug
}

var choiceSchema = map[string]any{
	"type":     "object",
	"required": []string{"slug"},
	"properties": map[string]any{
		"slug":  map[string]any{"type": "string"},
		"title": map[string]any{"type": "string"},
	},
}

var fieldsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"slug", "type"},
		"properties": map[string]any{
			"slug":      map[string]any{"type": "string", "minLength": 1},
			"type":      map[string]any{"type": "string", "minLength": 1},
			"title":     map[string]any{"type": []string{"string", "null"}},
			"helpText":  map[string]any{"type": []string{"string", "null"}},
			"required":  map[string]any{"type": []string{"boolean", "null"}},
			"choices":   map[string]any{"type": []string{"array", "null"}, "items": choiceSchema},
			"questions": map[string]any{"type": []string{"array", "null"}, "items": choiceSchema},
		},
	},
}

// ValidateFields checks the raw field list shape. A null or missing list is
// treated as empty.
func ValidateFields(raw json.RawMessage) error {
	if isNullJSON(raw) {
		return nil
	}
	if err := defaultValidator.Validate("survey_fields", fieldsSchema, raw); err != nil {
		return errors.Join(ErrInvalidFields, err)
	}
	return nil
}

// DecodeFields validates and decodes the raw field list.
func DecodeFields(raw json.RawMessage) ([]Field, error) {
	if err := ValidateFields(raw); err != nil {
		return nil, err
	}
	if isNullJSON(raw) {
		return []Field{}, nil
	}
	var fields []Field
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	return fields, nil
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
