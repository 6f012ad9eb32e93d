package surveys

import (
	"context"
	"encoding/json"
)

// Backend runs the read queries the pages depend on. Implementations talk to
// the GraphQL API; the pages never cache or patch the returned snapshot.
type Backend interface {
	DimensionsList(ctx context.Context, input DimensionsListInput) (DimensionsListResult, error)
	SurveySummary(ctx context.Context, input SurveySummaryInput) (SurveySummaryResult, error)
}

// MutationBackend performs the server-side dimension mutations.
type MutationBackend interface {
	CreateDimension(ctx context.Context, scope SurveyScope, form DimensionForm) error
	UpdateDimension(ctx context.Context, scope SurveyScope, dimensionSlug string, form DimensionForm) error
	DeleteDimension(ctx context.Context, scope SurveyScope, dimensionSlug string) error
	CreateDimensionValue(ctx context.Context, scope SurveyScope, dimensionSlug string, form ValueForm) error
	UpdateDimensionValue(ctx context.Context, scope SurveyScope, dimensionSlug, valueSlug string, form ValueForm) error
	DeleteDimensionValue(ctx context.Context, scope SurveyScope, dimensionSlug, valueSlug string) error
}

// SurveyScope identifies a survey by its owning event.
type SurveyScope struct {
	EventSlug  string `json:"eventSlug"`
	SurveySlug string `json:"surveySlug"`
}

// DimensionsListInput carries the DimensionsList query variables.
type DimensionsListInput struct {
	EventSlug  string `json:"eventSlug"`
	SurveySlug string `json:"surveySlug"`
	Locale     string `json:"locale"`
}

// SurveySummaryInput carries the SurveySummary query variables.
type SurveySummaryInput struct {
	EventSlug  string            `json:"eventSlug"`
	SurveySlug string            `json:"surveySlug"`
	Locale     string            `json:"locale"`
	Filters    []DimensionFilter `json:"filters"`
}

// DimensionsListResult mirrors the DimensionsList response shape. Nil pointers
// and nil slices mean the backend returned null for that node.
type DimensionsListResult struct {
	Event *EventData `json:"event"`
}

// SurveySummaryResult mirrors the SurveySummary response shape.
type SurveySummaryResult struct {
	Event *EventData `json:"event"`
}

// EventData is the event node shared by both queries.
type EventData struct {
	Name  string     `json:"name"`
	Forms *FormsData `json:"forms"`
}

// FormsData wraps the survey lookup.
type FormsData struct {
	Survey *SurveyData `json:"survey"`
}

// SurveyData holds every survey attribute either query may select. Fields and
// Summary are kept raw so their shape can be validated before decoding.
type SurveyData struct {
	Title                  string          `json:"title"`
	Fields                 json.RawMessage `json:"fields,omitempty"`
	Summary                json.RawMessage `json:"summary,omitempty"`
	CountResponses         int             `json:"countResponses"`
	CountFilteredResponses int             `json:"countFilteredResponses"`
	Dimensions             []Dimension     `json:"dimensions"`
}

// Survey returns the survey node or nil when any ancestor is missing.
func (r DimensionsListResult) Survey() *SurveyData {
	return surveyOf(r.Event)
}

// Survey returns the survey node or nil when any ancestor is missing.
func (r SurveySummaryResult) Survey() *SurveyData {
	return surveyOf(r.Event)
}

func surveyOf(event *EventData) *SurveyData {
	if event == nil || event.Forms == nil {
		return nil
	}
	return event.Forms.Survey
}

// Dimension is a tagging axis attachable to survey responses.
type Dimension struct {
	Slug                string           `json:"slug"`
	Title               string           `json:"title"`
	TitleFi             string           `json:"titleFi"`
	TitleEn             string           `json:"titleEn"`
	IsKeyDimension      bool             `json:"isKeyDimension"`
	IsMultiValue        bool             `json:"isMultiValue"`
	IsShownToRespondent bool             `json:"isShownToRespondent"`
	CanRemove           bool             `json:"canRemove"`
	Values              []DimensionValue `json:"values"`
}

// DisplayTitle falls back to the slug when no localized title exists.
func (d Dimension) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Slug
}

// DimensionValue is one selectable tag within a Dimension.
type DimensionValue struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	TitleFi   string `json:"titleFi"`
	TitleEn   string `json:"titleEn"`
	Color     string `json:"color"`
	CanRemove bool   `json:"canRemove"`
}

// DisplayTitle falls back to the slug when no localized title exists.
func (v DimensionValue) DisplayTitle() string {
	if v.Title != "" {
		return v.Title
	}
	return v.Slug
}

// CountValues sums the values across dimensions.
func CountValues(dimensions []Dimension) int {
	total := 0
	for _, dimension := range dimensions {
		total += len(dimension.Values)
	}
	return total
}
