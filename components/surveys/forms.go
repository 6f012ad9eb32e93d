package surveys

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ettle/strcase"
)

// Form field names shared by the modal templates and the decoders.
const (
	FormFieldSlug                = "slug"
	FormFieldTitleFi             = "title.fi"
	FormFieldTitleEn             = "title.en"
	FormFieldIsKeyDimension      = "isKeyDimension"
	FormFieldIsMultiValue        = "isMultiValue"
	FormFieldIsShownToRespondent = "isShownToRespondent"
	FormFieldColor               = "color"
	FormFieldConfirm             = "confirm"
)

// DimensionForm is the payload of the create/update dimension modals.
type DimensionForm struct {
	Slug                string `json:"slug"`
	TitleFi             string `json:"titleFi"`
	TitleEn             string `json:"titleEn"`
	IsKeyDimension      bool   `json:"isKeyDimension"`
	IsMultiValue        bool   `json:"isMultiValue"`
	IsShownToRespondent bool   `json:"isShownToRespondent"`
}

// ValueForm is the payload of the create/update value modals.
type ValueForm struct {
	Slug    string `json:"slug"`
	TitleFi string `json:"titleFi"`
	TitleEn string `json:"titleEn"`
	Color   string `json:"color"`
}

var slugSchema = map[string]any{
	"type":      "string",
	"minLength": 1,
	"maxLength": 255,
	"pattern":   "^[a-z0-9-]+$",
}

const colorPattern = "^(#[0-9a-fA-F]{6})?$"

var titleSchema = map[string]any{"type": "string", "maxLength": 255}

var dimensionFormSchema = map[string]any{
	"type":     "object",
	"required": []string{"slug"},
	"properties": map[string]any{
		"slug":                slugSchema,
		"titleFi":             titleSchema,
		"titleEn":             titleSchema,
		"isKeyDimension":      map[string]any{"type": "boolean"},
		"isMultiValue":        map[string]any{"type": "boolean"},
		"isShownToRespondent": map[string]any{"type": "boolean"},
	},
}

var valueFormSchema = map[string]any{
	"type":     "object",
	"required": []string{"slug"},
	"properties": map[string]any{
		"slug":    slugSchema,
		"titleFi": titleSchema,
		"titleEn": titleSchema,
		"color":   map[string]any{"type": "string", "pattern": colorPattern},
	},
}

// DecodeDimensionForm reads a submitted dimension form. An empty slug is
// derived from the English title, then the Finnish one.
func DecodeDimensionForm(values url.Values) (DimensionForm, error) {
	form := DimensionForm{
		Slug:                strings.TrimSpace(values.Get(FormFieldSlug)),
		TitleFi:             strings.TrimSpace(values.Get(FormFieldTitleFi)),
		TitleEn:             strings.TrimSpace(values.Get(FormFieldTitleEn)),
		IsKeyDimension:      checkboxValue(values, FormFieldIsKeyDimension),
		IsMultiValue:        checkboxValue(values, FormFieldIsMultiValue),
		IsShownToRespondent: checkboxValue(values, FormFieldIsShownToRespondent),
	}
	if form.Slug == "" {
		form.Slug = SuggestSlug(form.TitleEn, form.TitleFi)
	}
	if err := defaultValidator.Validate("dimension_form", dimensionFormSchema, form); err != nil {
		return DimensionForm{}, errors.Join(ErrInvalidForm, err)
	}
	return form, nil
}

// DecodeValueForm reads a submitted value form.
func DecodeValueForm(values url.Values) (ValueForm, error) {
	form := ValueForm{
		Slug:    strings.TrimSpace(values.Get(FormFieldSlug)),
		TitleFi: strings.TrimSpace(values.Get(FormFieldTitleFi)),
		TitleEn: strings.TrimSpace(values.Get(FormFieldTitleEn)),
		Color:   strings.TrimSpace(values.Get(FormFieldColor)),
	}
	if form.Slug == "" {
		form.Slug = SuggestSlug(form.TitleEn, form.TitleFi)
	}
	if err := defaultValidator.Validate("value_form", valueFormSchema, form); err != nil {
		return ValueForm{}, errors.Join(ErrInvalidForm, err)
	}
	return form, nil
}

// SuggestSlug kebab-cases the first non-empty title into a slug candidate.
func SuggestSlug(titles ...string) string {
	for _, title := range titles {
		if slug := strcase.ToKebab(strings.TrimSpace(title)); slug != "" {
			return slug
		}
	}
	return ""
}

func checkboxValue(values url.Values, name string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(name))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// FormFieldView describes one input rendered inside a modal form. Pattern and
// Placeholder apply to text inputs only.
type FormFieldView struct {
	Name        string
	ID          string
	Label       string
	Type        string
	Value       string
	Checked     bool
	Required    bool
	Pattern     string
	Placeholder string
}

// DimensionFormFields builds the dimension modal inputs, prefilled from dimension when editing.
func DimensionFormFields(messages Messages, idPrefix string, dimension *Dimension) []FormFieldView {
	var current Dimension
	if dimension != nil {
		current = *dimension
	}
	return []FormFieldView{
		textField(idPrefix, FormFieldSlug, messages.Get("survey.attributes.slug"), current.Slug, true),
		textField(idPrefix, FormFieldTitleFi, messages.Get("survey.attributes.title_fi"), current.TitleFi, false),
		textField(idPrefix, FormFieldTitleEn, messages.Get("survey.attributes.title_en"), current.TitleEn, false),
		checkboxField(idPrefix, FormFieldIsKeyDimension, messages.Get("survey.attributes.is_key_dimension"), current.IsKeyDimension),
		checkboxField(idPrefix, FormFieldIsMultiValue, messages.Get("survey.attributes.is_multi_value"), current.IsMultiValue),
		checkboxField(idPrefix, FormFieldIsShownToRespondent, messages.Get("survey.attributes.is_shown_to_respondent"), current.IsShownToRespondent),
	}
}

// ValueFormFields builds the value modal inputs, prefilled from value when editing.
func ValueFormFields(messages Messages, idPrefix string, value *DimensionValue) []FormFieldView {
	var current DimensionValue
	if value != nil {
		current = *value
	}
	// Plain text so the color can be cleared.
	color := textField(idPrefix, FormFieldColor, messages.Get("survey.attributes.color"), current.Color, false)
	color.Pattern = "#[0-9a-fA-F]{6}"
	color.Placeholder = "#rrggbb"
	return []FormFieldView{
		textField(idPrefix, FormFieldSlug, messages.Get("survey.attributes.slug"), current.Slug, true),
		textField(idPrefix, FormFieldTitleFi, messages.Get("survey.attributes.title_fi"), current.TitleFi, false),
		textField(idPrefix, FormFieldTitleEn, messages.Get("survey.attributes.title_en"), current.TitleEn, false),
		color,
	}
}

func textField(prefix, name, label, value string, required bool) FormFieldView {
	return FormFieldView{
		Name:     name,
		ID:       fieldID(prefix, name),
		Label:    label,
		Type:     "text",
		Value:    value,
		Required: required,
	}
}

func checkboxField(prefix, name, label string, checked bool) FormFieldView {
	return FormFieldView{
		Name:    name,
		ID:      fieldID(prefix, name),
		Label:   label,
		Type:    "checkbox",
		Checked: checked,
	}
}

func fieldID(prefix, name string) string {
	return fmt.Sprintf("%s-%s", prefix, strcase.ToKebab(name))
}
