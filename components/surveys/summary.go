package surveys

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// FieldSummary is the aggregated answer data of one field. The set of
// implementations is closed: TextFieldSummary, OptionFieldSummary,
// MatrixFieldSummary, FileUploadFieldSummary and UnknownFieldSummary.
type FieldSummary interface {
	FieldType() FieldType
	// Counts returns the responses that answered the field and those that did
	// not. The two are independent and need not sum to the survey total.
	Counts() (countResponses, countMissingResponses int)
	fieldSummary()
}

// SurveySummary maps field slugs to their summaries.
type SurveySummary map[string]FieldSummary

// SummaryCounts is embedded in every variant.
type SummaryCounts struct {
	CountResponses        int
	CountMissingResponses int
}

// Counts implements FieldSummary.
func (c SummaryCounts) Counts() (int, int) {
	return c.CountResponses, c.CountMissingResponses
}

// TextFieldSummary lists free-form answers.
type TextFieldSummary struct {
	SummaryCounts
	Type   FieldType
	Values []string
}

// OptionFieldSummary counts answers per choice slug.
type OptionFieldSummary struct {
	SummaryCounts
	Type    FieldType
	Choices map[string]int
}

// MatrixFieldSummary counts answers per question slug, then per choice slug.
type MatrixFieldSummary struct {
	SummaryCounts
	Type FieldType
	Rows map[string]map[string]int
}

// FileUploadFieldSummary lists uploaded file URLs.
type FileUploadFieldSummary struct {
	SummaryCounts
	URLs []string
}

// UnknownFieldSummary keeps a summary of a type this package cannot render.
type UnknownFieldSummary struct {
	SummaryCounts
	Type FieldType
	Raw  json.RawMessage
}

func (s TextFieldSummary) FieldType() FieldType       { return s.Type }
func (s OptionFieldSummary) FieldType() FieldType     { return s.Type }
func (s MatrixFieldSummary) FieldType() FieldType     { return s.Type }
func (s FileUploadFieldSummary) FieldType() FieldType { return FieldFileUpload }
func (s UnknownFieldSummary) FieldType() FieldType    { return s.Type }

func (TextFieldSummary) fieldSummary()       {}
func (OptionFieldSummary) fieldSummary()     {}
func (MatrixFieldSummary) fieldSummary()     {}
func (FileUploadFieldSummary) fieldSummary() {}
func (UnknownFieldSummary) fieldSummary()    {}

// OptionTotal sums the per-choice counts.
func (s OptionFieldSummary) OptionTotal() int {
	total := 0
	for _, count := range s.Choices {
		total += count
	}
	return total
}

// summaryKind groups field types by the shape of their summary payload.
type summaryKind int

const (
	summaryUnknown summaryKind = iota
	summaryText
	summaryOption
	summaryMatrix
	summaryFileUpload
)

func summaryKindOf(fieldType FieldType) summaryKind {
	switch fieldType {
	case FieldSingleLineText, FieldMultiLineText, FieldNumber, FieldDecimal, FieldDate, FieldDateTime, FieldTime:
		return summaryText
	case FieldSingleCheckbox, FieldSingleSelect, FieldMultiSelect, FieldDimensionSingleSelect, FieldDimensionMultiSelect:
		return summaryOption
	case FieldRadioMatrix:
		return summaryMatrix
	case FieldFileUpload:
		return summaryFileUpload
	}
	return summaryUnknown
}

type wireFieldSummary struct {
	Type                  FieldType       `json:"type"`
	Summary               json.RawMessage `json:"summary"`
	CountResponses        int             `json:"countResponses"`
	CountMissingResponses int             `json:"countMissingResponses"`
}

var countSchema = map[string]any{"type": "integer", "minimum": 0}

var summarySchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type":     "object",
		"required": []string{"type", "summary", "countResponses", "countMissingResponses"},
		"properties": map[string]any{
			"type":                  map[string]any{"type": "string", "minLength": 1},
			"countResponses":        countSchema,
			"countMissingResponses": countSchema,
		},
	},
}

// ValidateSummary checks the raw summary map shape.
func ValidateSummary(raw json.RawMessage) error {
	if isNullJSON(raw) {
		return fmt.Errorf("%w: summary is null", ErrInvalidSummary)
	}
	if err := defaultValidator.Validate("survey_summary", summarySchema, raw); err != nil {
		return errors.Join(ErrInvalidSummary, err)
	}
	return nil
}

// DecodeSummary validates the raw summary and decodes each entry into its
// variant. Entries whose payload does not match their declared type fail the
// whole decode; entries of unrecognized types become UnknownFieldSummary.
func DecodeSummary(raw json.RawMessage) (SurveySummary, error) {
	if err := ValidateSummary(raw); err != nil {
		return nil, err
	}
	var wire map[string]wireFieldSummary
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}
	out := make(SurveySummary, len(wire))
	for _, slug := range sortedKeys(wire) {
		decoded, err := decodeFieldSummary(wire[slug])
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidSummary, slug, err)
		}
		out[slug] = decoded
	}
	return out, nil
}

func decodeFieldSummary(w wireFieldSummary) (FieldSummary, error) {
	counts := SummaryCounts{CountResponses: w.CountResponses, CountMissingResponses: w.CountMissingResponses}
	payload := w.Summary
	if isNullJSON(payload) {
		payload = nil
	}
	switch summaryKindOf(w.Type) {
	case summaryText:
		var values []string
		if err := unmarshalOptional(payload, &values); err != nil {
			return nil, err
		}
		return TextFieldSummary{SummaryCounts: counts, Type: w.Type, Values: values}, nil
	case summaryOption:
		choices := map[string]int{}
		if err := unmarshalOptional(payload, &choices); err != nil {
			return nil, err
		}
		return OptionFieldSummary{SummaryCounts: counts, Type: w.Type, Choices: choices}, nil
	case summaryMatrix:
		rows := map[string]map[string]int{}
		if err := unmarshalOptional(payload, &rows); err != nil {
			return nil, err
		}
		return MatrixFieldSummary{SummaryCounts: counts, Type: w.Type, Rows: rows}, nil
	case summaryFileUpload:
		var urls []string
		if err := unmarshalOptional(payload, &urls); err != nil {
			return nil, err
		}
		return FileUploadFieldSummary{SummaryCounts: counts, URLs: urls}, nil
	}
	return UnknownFieldSummary{SummaryCounts: counts, Type: w.Type, Raw: w.Summary}, nil
}

func unmarshalOptional(payload json.RawMessage, target any) error {
	if payload == nil {
		return nil
	}
	return json.Unmarshal(payload, target)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
