package graphql

import (
	"context"

	"github.com/goliatone/go-survey-admin/components/surveys"
)

var (
	_ surveys.Backend         = (*Client)(nil)
	_ surveys.MutationBackend = (*Client)(nil)
)

// DimensionsList implements surveys.Backend.
func (c *Client) DimensionsList(ctx context.Context, input surveys.DimensionsListInput) (surveys.DimensionsListResult, error) {
	var result surveys.DimensionsListResult
	err := c.Do(ctx, Request{
		Query:         dimensionsListQuery,
		OperationName: "DimensionsList",
		Variables: map[string]any{
			"eventSlug":  input.EventSlug,
			"surveySlug": input.SurveySlug,
			"locale":     input.Locale,
		},
	}, &result)
	return result, err
}

// SurveySummary implements surveys.Backend.
func (c *Client) SurveySummary(ctx context.Context, input surveys.SurveySummaryInput) (surveys.SurveySummaryResult, error) {
	filters := input.Filters
	if filters == nil {
		filters = []surveys.DimensionFilter{}
	}
	var result surveys.SurveySummaryResult
	err := c.Do(ctx, Request{
		Query:         surveySummaryQuery,
		OperationName: "SurveySummary",
		Variables: map[string]any{
			"eventSlug":  input.EventSlug,
			"surveySlug": input.SurveySlug,
			"locale":     input.Locale,
			"filters":    filters,
		},
	}, &result)
	return result, err
}

// dimensionFormData is the formData payload of the dimension mutations, keyed
// like the submitted modal form.
func dimensionFormData(form surveys.DimensionForm) map[string]any {
	return map[string]any{
		surveys.FormFieldSlug:                form.Slug,
		surveys.FormFieldTitleFi:             form.TitleFi,
		surveys.FormFieldTitleEn:             form.TitleEn,
		surveys.FormFieldIsKeyDimension:      form.IsKeyDimension,
		surveys.FormFieldIsMultiValue:        form.IsMultiValue,
		surveys.FormFieldIsShownToRespondent: form.IsShownToRespondent,
	}
}

func valueFormData(form surveys.ValueForm) map[string]any {
	return map[string]any{
		surveys.FormFieldSlug:    form.Slug,
		surveys.FormFieldTitleFi: form.TitleFi,
		surveys.FormFieldTitleEn: form.TitleEn,
		surveys.FormFieldColor:   form.Color,
	}
}

func scopeInput(scope surveys.SurveyScope) map[string]any {
	return map[string]any{
		"eventSlug":  scope.EventSlug,
		"surveySlug": scope.SurveySlug,
	}
}

func (c *Client) mutate(ctx context.Context, operation, query string, input map[string]any) error {
	return c.Do(ctx, Request{
		Query:         query,
		OperationName: operation,
		Variables:     map[string]any{"input": input},
	}, nil)
}

// CreateDimension implements surveys.MutationBackend. A put without an existing
// dimension slug creates.
func (c *Client) CreateDimension(ctx context.Context, scope surveys.SurveyScope, form surveys.DimensionForm) error {
	input := scopeInput(scope)
	input["formData"] = dimensionFormData(form)
	return c.mutate(ctx, "PutSurveyDimension", putDimensionMutation, input)
}

// UpdateDimension implements surveys.MutationBackend.
func (c *Client) UpdateDimension(ctx context.Context, scope surveys.SurveyScope, dimensionSlug string, form surveys.DimensionForm) error {
	input := scopeInput(scope)
	input["dimensionSlug"] = dimensionSlug
	input["formData"] = dimensionFormData(form)
	return c.mutate(ctx, "PutSurveyDimension", putDimensionMutation, input)
}

// DeleteDimension implements surveys.MutationBackend.
func (c *Client) DeleteDimension(ctx context.Context, scope surveys.SurveyScope, dimensionSlug string) error {
	input := scopeInput(scope)
	input["dimensionSlug"] = dimensionSlug
	return c.mutate(ctx, "DeleteSurveyDimension", deleteDimensionMutation, input)
}

// CreateDimensionValue implements surveys.MutationBackend.
func (c *Client) CreateDimensionValue(ctx context.Context, scope surveys.SurveyScope, dimensionSlug string, form surveys.ValueForm) error {
	input := scopeInput(scope)
	input["dimensionSlug"] = dimensionSlug
	input["formData"] = valueFormData(form)
	return c.mutate(ctx, "PutSurveyDimensionValue", putDimensionValueMutation, input)
}

// UpdateDimensionValue implements surveys.MutationBackend.
func (c *Client) UpdateDimensionValue(ctx context.Context, scope surveys.SurveyScope, dimensionSlug, valueSlug string, form surveys.ValueForm) error {
	input := scopeInput(scope)
	input["dimensionSlug"] = dimensionSlug
	input["valueSlug"] = valueSlug
	input["formData"] = valueFormData(form)
	return c.mutate(ctx, "PutSurveyDimensionValue", putDimensionValueMutation, input)
}

// DeleteDimensionValue implements surveys.MutationBackend.
func (c *Client) DeleteDimensionValue(ctx context.Context, scope surveys.SurveyScope, dimensionSlug, valueSlug string) error {
	input := scopeInput(scope)
	input["dimensionSlug"] = dimensionSlug
	input["valueSlug"] = valueSlug
	return c.mutate(ctx, "DeleteSurveyDimensionValue", deleteDimensionValueMutation, input)
}
