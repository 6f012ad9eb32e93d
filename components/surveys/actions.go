package surveys

import (
	"fmt"
	"net/url"
	"strings"
)

// ActionKind names one of the six dimension mutations.
type ActionKind string

const (
	ActionCreateDimension      ActionKind = "create_dimension"
	ActionUpdateDimension      ActionKind = "update_dimension"
	ActionDeleteDimension      ActionKind = "delete_dimension"
	ActionCreateDimensionValue ActionKind = "create_dimension_value"
	ActionUpdateDimensionValue ActionKind = "update_dimension_value"
	ActionDeleteDimensionValue ActionKind = "delete_dimension_value"
)

// ActionKinds lists every kind in a stable order.
func ActionKinds() []ActionKind {
	return []ActionKind{
		ActionCreateDimension,
		ActionUpdateDimension,
		ActionDeleteDimension,
		ActionCreateDimensionValue,
		ActionUpdateDimensionValue,
		ActionDeleteDimensionValue,
	}
}

// BoundAction is a mutation with its leading identifiers already captured.
// Rows build one per control so modal buttons never re-derive slugs.
type BoundAction struct {
	Kind          ActionKind
	Scope         SurveyScope
	DimensionSlug string
	ValueSlug     string
}

// CreateDimensionAction binds createDimension(eventSlug, surveySlug).
func CreateDimensionAction(scope SurveyScope) BoundAction {
	return BoundAction{Kind: ActionCreateDimension, Scope: scope}
}

// UpdateDimensionAction binds updateDimension(eventSlug, surveySlug, dimensionSlug).
func UpdateDimensionAction(scope SurveyScope, dimensionSlug string) BoundAction {
	return BoundAction{Kind: ActionUpdateDimension, Scope: scope, DimensionSlug: dimensionSlug}
}

// DeleteDimensionAction binds deleteDimension(eventSlug, surveySlug, dimensionSlug).
func DeleteDimensionAction(scope SurveyScope, dimensionSlug string) BoundAction {
	return BoundAction{Kind: ActionDeleteDimension, Scope: scope, DimensionSlug: dimensionSlug}
}

// CreateDimensionValueAction binds createDimensionValue(eventSlug, surveySlug, dimensionSlug).
func CreateDimensionValueAction(scope SurveyScope, dimensionSlug string) BoundAction {
	return BoundAction{Kind: ActionCreateDimensionValue, Scope: scope, DimensionSlug: dimensionSlug}
}

// UpdateDimensionValueAction binds updateDimensionValue(eventSlug, surveySlug, dimensionSlug, valueSlug).
func UpdateDimensionValueAction(scope SurveyScope, dimensionSlug, valueSlug string) BoundAction {
	return BoundAction{Kind: ActionUpdateDimensionValue, Scope: scope, DimensionSlug: dimensionSlug, ValueSlug: valueSlug}
}

// DeleteDimensionValueAction binds deleteDimensionValue(eventSlug, surveySlug, dimensionSlug, valueSlug).
func DeleteDimensionValueAction(scope SurveyScope, dimensionSlug, valueSlug string) BoundAction {
	return BoundAction{Kind: ActionDeleteDimensionValue, Scope: scope, DimensionSlug: dimensionSlug, ValueSlug: valueSlug}
}

// Destructive reports whether the action deletes server state.
func (a BoundAction) Destructive() bool {
	return a.Kind == ActionDeleteDimension || a.Kind == ActionDeleteDimensionValue
}

// Validate checks that every identifier the kind needs was captured.
func (a BoundAction) Validate() error {
	if a.Scope.EventSlug == "" || a.Scope.SurveySlug == "" {
		return fmt.Errorf("surveys: %s requires event and survey slugs", a.Kind)
	}
	switch a.Kind {
	case ActionCreateDimension:
		return nil
	case ActionUpdateDimension, ActionDeleteDimension, ActionCreateDimensionValue:
		if a.DimensionSlug == "" {
			return fmt.Errorf("surveys: %s requires a dimension slug", a.Kind)
		}
		return nil
	case ActionUpdateDimensionValue, ActionDeleteDimensionValue:
		if a.DimensionSlug == "" || a.ValueSlug == "" {
			return fmt.Errorf("surveys: %s requires dimension and value slugs", a.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
}

// Path returns the form POST target for the action under basePath.
func (a BoundAction) Path(basePath, locale string) string {
	prefix := DimensionsPath(basePath, locale, a.Scope)
	dimension := url.PathEscape(a.DimensionSlug)
	value := url.PathEscape(a.ValueSlug)
	switch a.Kind {
	case ActionCreateDimension:
		return prefix
	case ActionUpdateDimension:
		return prefix + "/" + dimension
	case ActionDeleteDimension:
		return prefix + "/" + dimension + "/delete"
	case ActionCreateDimensionValue:
		return prefix + "/" + dimension + "/values"
	case ActionUpdateDimensionValue:
		return prefix + "/" + dimension + "/values/" + value
	case ActionDeleteDimensionValue:
		return prefix + "/" + dimension + "/values/" + value + "/delete"
	}
	return prefix
}

// SurveyPath is the survey root under basePath.
func SurveyPath(basePath, locale string, scope SurveyScope) string {
	parts := []string{
		strings.TrimRight(basePath, "/"),
		url.PathEscape(locale),
		"events", url.PathEscape(scope.EventSlug),
		"surveys", url.PathEscape(scope.SurveySlug),
	}
	return strings.Join(parts, "/")
}

// DimensionsPath is the dimensions editor page.
func DimensionsPath(basePath, locale string, scope SurveyScope) string {
	return SurveyPath(basePath, locale, scope) + "/dimensions"
}

// SummaryPath is the response summary page.
func SummaryPath(basePath, locale string, scope SurveyScope) string {
	return SurveyPath(basePath, locale, scope) + "/summary"
}

// SurveyListPath is the event's survey list, owned by another part of the application.
func SurveyListPath(basePath, locale string, scope SurveyScope) string {
	return strings.Join([]string{strings.TrimRight(basePath, "/"), url.PathEscape(locale), "events", url.PathEscape(scope.EventSlug), "surveys"}, "/")
}

// Route parameter names used by the transports.
const (
	RouteParamLocale    = "locale"
	RouteParamEvent     = "event"
	RouteParamSurvey    = "survey"
	RouteParamDimension = "dimension"
	RouteParamValue     = "value"
)

// ActionRoute is the POST path of one action kind, relative to the dimensions page.
type ActionRoute struct {
	Kind ActionKind
	Path string
}

// ActionRoutes lists the action paths; param renders a path parameter in the
// router's syntax, e.g. ":dimension" or "{dimension}".
func ActionRoutes(param func(name string) string) []ActionRoute {
	dimension := "/" + param(RouteParamDimension)
	value := dimension + "/values/" + param(RouteParamValue)
	return []ActionRoute{
		{Kind: ActionCreateDimension, Path: ""},
		{Kind: ActionUpdateDimension, Path: dimension},
		{Kind: ActionDeleteDimension, Path: dimension + "/delete"},
		{Kind: ActionCreateDimensionValue, Path: dimension + "/values"},
		{Kind: ActionUpdateDimensionValue, Path: value},
		{Kind: ActionDeleteDimensionValue, Path: value + "/delete"},
	}
}

// BindAction rebuilds the bound action of a submitted route.
func BindAction(kind ActionKind, scope SurveyScope, dimensionSlug, valueSlug string) BoundAction {
	action := BoundAction{Kind: kind, Scope: scope}
	switch kind {
	case ActionUpdateDimension, ActionDeleteDimension, ActionCreateDimensionValue:
		action.DimensionSlug = dimensionSlug
	case ActionUpdateDimensionValue, ActionDeleteDimensionValue:
		action.DimensionSlug = dimensionSlug
		action.ValueSlug = valueSlug
	}
	return action
}
