package surveys

import (
	"context"
	"encoding/json"
	"testing"
)

func testMessages(t *testing.T, locale string) Messages {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewMessages(context.Background(), catalog, locale)
}

var testScope = SurveyScope{EventSlug: "tracon2025", SurveySlug: "feedback"}

func regionDimension() Dimension {
	return Dimension{
		Slug:      "region",
		Title:     "Region",
		TitleFi:   "Alue",
		TitleEn:   "Region",
		CanRemove: true,
		Values: []DimensionValue{
			{Slug: "north", Title: "North", TitleFi: "Pohjoinen", TitleEn: "North", Color: "#ff0000", CanRemove: true},
			{Slug: "south", Title: "South", TitleFi: "Etelä", TitleEn: "South", Color: "#00ff00", CanRemove: false},
		},
	}
}

type stubBackend struct {
	dimensions     DimensionsListResult
	summary        SurveySummaryResult
	err            error
	dimensionCalls []DimensionsListInput
	summaryCalls   []SurveySummaryInput
}

func (b *stubBackend) DimensionsList(_ context.Context, input DimensionsListInput) (DimensionsListResult, error) {
	b.dimensionCalls = append(b.dimensionCalls, input)
	return b.dimensions, b.err
}

func (b *stubBackend) SurveySummary(_ context.Context, input SurveySummaryInput) (SurveySummaryResult, error) {
	b.summaryCalls = append(b.summaryCalls, input)
	return b.summary, b.err
}

func (b *stubBackend) calls() int {
	return len(b.dimensionCalls) + len(b.summaryCalls)
}

func signedIn() SessionResolver {
	return SessionResolverFunc(func(context.Context, Credentials) (*Session, error) {
		return &Session{UserID: "user-1", AccessToken: "token"}, nil
	})
}

func anonymous() SessionResolver {
	return SessionResolverFunc(func(context.Context, Credentials) (*Session, error) {
		return nil, nil
	})
}

type recordedEvent struct {
	name    string
	payload map[string]any
}

type stubTelemetry struct {
	events []recordedEvent
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.events = append(s.events, recordedEvent{name: event, payload: payload})
}

func (s *stubTelemetry) names() []string {
	out := make([]string, len(s.events))
	for i, evt := range s.events {
		out[i] = evt.name
	}
	return out
}

const testFieldsJSON = `[
	{"slug": "intro", "type": "StaticText", "helpText": "Thanks for **attending**!"},
	{"slug": "name", "type": "SingleLineText", "title": "Name"},
	{"slug": "rating", "type": "SingleSelect", "title": "Rating", "choices": [
		{"slug": "good", "title": "Good"},
		{"slug": "bad", "title": "Bad"}
	]},
	{"slug": "grid", "type": "RadioMatrix", "title": "Grid",
		"choices": [{"slug": "yes", "title": "Yes"}, {"slug": "no", "title": "No"}],
		"questions": [{"slug": "food", "title": "Food"}, {"slug": "music", "title": "Music"}]
	},
	{"slug": "photos", "type": "FileUpload", "title": "Photos"},
	{"slug": "unanswered", "type": "SingleLineText", "title": "Unanswered"}
]`

const testSummaryJSON = `{
	"name": {"type": "SingleLineText", "summary": ["Alice", "", "Bob"], "countResponses": 2, "countMissingResponses": 1},
	"rating": {"type": "SingleSelect", "summary": {"good": 3, "bad": 1, "other": 1}, "countResponses": 4, "countMissingResponses": 0},
	"grid": {"type": "RadioMatrix", "summary": {"food": {"yes": 2, "no": 1}, "music": {"yes": 1}}, "countResponses": 3, "countMissingResponses": 1},
	"photos": {"type": "FileUpload", "summary": ["https://cdn.example.com/uploads/cat%20photo.jpg"], "countResponses": 1, "countMissingResponses": 3},
	"mystery": {"type": "Hologram", "summary": {"x": 1}, "countResponses": 1, "countMissingResponses": 0}
}`

func summaryResult(summary string) SurveySummaryResult {
	survey := &SurveyData{
		Title:                  "Feedback",
		Fields:                 json.RawMessage(testFieldsJSON),
		CountResponses:         10,
		CountFilteredResponses: 4,
		Dimensions:             []Dimension{regionDimension()},
	}
	if summary != "" {
		survey.Summary = json.RawMessage(summary)
	}
	return SurveySummaryResult{Event: &EventData{Name: "Tracon 2025", Forms: &FormsData{Survey: survey}}}
}

func dimensionsResult(dimensions ...Dimension) DimensionsListResult {
	if dimensions == nil {
		dimensions = []Dimension{}
	}
	return DimensionsListResult{Event: &EventData{
		Name:  "Tracon 2025",
		Forms: &FormsData{Survey: &SurveyData{Title: "Feedback", Dimensions: dimensions}},
	}}
}

func newTestPageService(t *testing.T, backend Backend, sessions SessionResolver, telemetry Telemetry) *PageService {
	t.Helper()
	svc, err := NewPageService(PageServiceOptions{
		Backend:   backend,
		Sessions:  sessions,
		Charts:    NewChartRenderer(WithChartCache(nil)),
		Telemetry: telemetry,
		BasePath:  "/admin/",
		SignInURL: "/login",
	})
	if err != nil {
		t.Fatalf("new page service: %v", err)
	}
	return svc
}

func testRequest(locale string) PageRequest {
	return PageRequest{Locale: locale, EventSlug: testScope.EventSlug, SurveySlug: testScope.SurveySlug}
}
