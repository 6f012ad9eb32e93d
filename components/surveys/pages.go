package surveys

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Template names rendered by the transports.
const (
	TemplateDimensions     = "surveys/dimensions"
	TemplateSummary        = "surveys/summary"
	TemplateSignInRequired = "surveys/sign_in_required"
	TemplateNotFound       = "surveys/not_found"
	TemplateError          = "surveys/error"
)

// PageServiceOptions wires the collaborators of a PageService.
type PageServiceOptions struct {
	Backend       Backend
	Sessions      SessionResolver
	Translations  TranslationService
	Charts        *ChartRenderer
	Telemetry     Telemetry
	BasePath      string
	DefaultLocale string
	// SignInURL is linked from the sign-in-required surface when set.
	SignInURL string
}

// PageService runs the session guard, the single backend fetch and the view
// model construction of both survey pages.
type PageService struct {
	opts PageServiceOptions
}

// NewPageService validates options and applies defaults.
func NewPageService(opts PageServiceOptions) (*PageService, error) {
	if opts.Backend == nil {
		return nil, errMissingBackend
	}
	if opts.Sessions == nil {
		return nil, errMissingSessions
	}
	if opts.Translations == nil {
		catalog, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		opts.Translations = catalog
	}
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = DefaultLocale
	}
	opts.BasePath = strings.TrimRight(opts.BasePath, "/")
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &PageService{opts: opts}, nil
}

// BasePath returns the normalized mount prefix.
func (s *PageService) BasePath() string {
	return s.opts.BasePath
}

// Translations returns the translation service in use.
func (s *PageService) Translations() TranslationService {
	return s.opts.Translations
}

// PageRequest carries the route parameters and credentials of one request.
type PageRequest struct {
	Locale      string
	EventSlug   string
	SurveySlug  string
	Query       url.Values
	Credentials Credentials
}

// Scope returns the survey addressed by the request.
func (r PageRequest) Scope() SurveyScope {
	return SurveyScope{EventSlug: r.EventSlug, SurveySlug: r.SurveySlug}
}

// PageMetadata is the document metadata of a page.
type PageMetadata struct {
	Title          string `json:"title"`
	SignInRequired bool   `json:"signInRequired,omitempty"`
}

// Page is a rendered-ready page: a template name plus its payload.
type Page struct {
	Template       string
	Title          string
	Locale         string
	SignInRequired bool
	SignIn         *SignInView
	Dimensions     *DimensionsView
	Summary        *SummaryView
	// Extras are merged into the template payload as top-level keys.
	Extras map[string]any
}

// TemplateData flattens the page into the template payload.
func (p Page) TemplateData() map[string]any {
	data := make(map[string]any, len(p.Extras)+3)
	for key, value := range p.Extras {
		data[key] = value
	}
	data["title"] = p.Title
	data["locale"] = p.Locale
	if p.SignIn != nil {
		data["sign_in"] = p.SignIn
	}
	if p.Dimensions != nil {
		data["page"] = p.Dimensions
	}
	if p.Summary != nil {
		data["page"] = p.Summary
	}
	return data
}

// SignInView is the sign-in-required surface.
type SignInView struct {
	Title       string
	Message     string
	SignInLabel string
}

// DimensionsView is the dimensions editor page.
type DimensionsView struct {
	EventName   string
	SurveyTitle string
	Heading     string
	ReturnURL   string
	ReturnLabel string
	Table       DimensionTable
}

// SummaryView is the response summary page.
type SummaryView struct {
	EventName              string
	SurveyTitle            string
	Heading                string
	ReturnURL              string
	ReturnLabel            string
	ExportURL              string
	ExportLabel            string
	SummaryOf              string
	CountResponses         int
	CountFilteredResponses int
	Filters                []DimensionFilter
	FilterBar              FilterBar
	Fields                 []FieldSummaryView
}

type guardResult struct {
	ctx      context.Context
	locale   string
	messages Messages
	session  *Session
}

// guard resolves the session; a nil session means the viewer must sign in and
// no backend call may follow.
func (s *PageService) guard(ctx context.Context, req PageRequest) (guardResult, error) {
	locale := normalizeLocale(req.Locale)
	if locale == "" {
		locale = s.opts.DefaultLocale
	}
	result := guardResult{
		ctx:      ctx,
		locale:   locale,
		messages: NewMessages(ctx, s.opts.Translations, locale),
	}
	session := SessionFromContext(ctx)
	if session == nil {
		resolved, err := s.opts.Sessions.ResolveSession(ctx, req.Credentials)
		if err != nil {
			return result, fmt.Errorf("surveys: resolve session: %w", err)
		}
		session = resolved
	}
	if session != nil {
		result.session = session
		result.ctx = ContextWithSession(ctx, session)
	}
	return result, nil
}

func (s *PageService) signInRequired(g guardResult, page string) Page {
	s.opts.Telemetry.Record(g.ctx, "surveys.page.sign_in_required", map[string]any{"page": page})
	return Page{
		Template:       TemplateSignInRequired,
		Title:          PageTitle(g.messages, g.messages.Get("sign_in_required.title")),
		Locale:         g.locale,
		SignInRequired: true,
		SignIn: &SignInView{
			Title:       g.messages.Get("sign_in_required.title"),
			Message:     g.messages.Get("sign_in_required.message"),
			SignInLabel: g.messages.Get("sign_in_required.sign_in"),
		},
		Extras: map[string]any{"sign_in_url": s.opts.SignInURL},
	}
}

// SignInRequiredMetadata returns the sign-in page title for locale.
func (s *PageService) SignInRequiredMetadata(ctx context.Context, locale string) PageMetadata {
	messages := NewMessages(ctx, s.opts.Translations, locale)
	return PageMetadata{Title: PageTitle(messages, messages.Get("sign_in_required.title")), SignInRequired: true}
}

// NotFoundPage returns the not-found surface for locale.
func (s *PageService) NotFoundPage(ctx context.Context, locale string) Page {
	messages := NewMessages(ctx, s.opts.Translations, locale)
	return Page{
		Template: TemplateNotFound,
		Title:    PageTitle(messages, messages.Get("not_found.title")),
		Locale:   messages.Locale(),
		Extras: map[string]any{
			"heading": messages.Get("not_found.title"),
			"message": messages.Get("not_found.message"),
		},
	}
}

// ErrorPage returns the generic error surface for locale. The error text is
// not shown to the viewer.
func (s *PageService) ErrorPage(ctx context.Context, locale string) Page {
	messages := NewMessages(ctx, s.opts.Translations, locale)
	return Page{
		Template: TemplateError,
		Title:    PageTitle(messages, messages.Get("error.title")),
		Locale:   messages.Locale(),
		Extras: map[string]any{
			"heading": messages.Get("error.title"),
			"message": messages.Get("error.message"),
		},
	}
}

func (s *PageService) fetchDimensions(g guardResult, req PageRequest) (DimensionsListResult, error) {
	result, err := s.opts.Backend.DimensionsList(g.ctx, DimensionsListInput{
		EventSlug:  req.EventSlug,
		SurveySlug: req.SurveySlug,
		Locale:     g.locale,
	})
	if err != nil {
		return DimensionsListResult{}, fmt.Errorf("surveys: dimensions list: %w", err)
	}
	return result, nil
}

func (s *PageService) fetchSummary(g guardResult, req PageRequest, filters []DimensionFilter) (SurveySummaryResult, error) {
	result, err := s.opts.Backend.SurveySummary(g.ctx, SurveySummaryInput{
		EventSlug:  req.EventSlug,
		SurveySlug: req.SurveySlug,
		Locale:     g.locale,
		Filters:    filters,
	})
	if err != nil {
		return SurveySummaryResult{}, fmt.Errorf("surveys: survey summary: %w", err)
	}
	return result, nil
}

// DimensionsMetadata computes the dimensions page title.
func (s *PageService) DimensionsMetadata(ctx context.Context, req PageRequest) (PageMetadata, error) {
	g, err := s.guard(ctx, req)
	if err != nil {
		return PageMetadata{}, err
	}
	if g.session == nil {
		return s.SignInRequiredMetadata(ctx, g.locale), nil
	}
	result, err := s.fetchDimensions(g, req)
	if err != nil {
		return PageMetadata{}, err
	}
	survey := result.Survey()
	if survey == nil {
		return PageMetadata{}, s.notFound(g, "dimensions", req)
	}
	return PageMetadata{Title: s.dimensionsTitle(g.messages, result.Event, survey)}, nil
}

// DimensionsPage builds the dimensions editor page.
func (s *PageService) DimensionsPage(ctx context.Context, req PageRequest) (Page, error) {
	g, err := s.guard(ctx, req)
	if err != nil {
		return Page{}, err
	}
	if g.session == nil {
		return s.signInRequired(g, "dimensions"), nil
	}
	result, err := s.fetchDimensions(g, req)
	if err != nil {
		return Page{}, err
	}
	survey := result.Survey()
	if survey == nil || survey.Dimensions == nil {
		return Page{}, s.notFound(g, "dimensions", req)
	}

	t := g.messages
	scope := req.Scope()
	view := &DimensionsView{
		EventName:   result.Event.Name,
		SurveyTitle: survey.Title,
		Heading:     t.Get("survey.attributes.dimensions"),
		ReturnURL:   SurveyListPath(s.opts.BasePath, g.locale, scope),
		ReturnLabel: t.Get("survey.actions.return_to_survey_list"),
		Table: BuildDimensionTable(survey.Dimensions, DimensionTableOptions{
			Scope:    scope,
			BasePath: s.opts.BasePath,
			Messages: t,
		}),
	}
	s.opts.Telemetry.Record(g.ctx, "surveys.page.render", map[string]any{
		"page":       "dimensions",
		"event":      req.EventSlug,
		"survey":     req.SurveySlug,
		"dimensions": view.Table.CountDimensions,
		"values":     view.Table.CountValues,
	})
	return Page{
		Template:   TemplateDimensions,
		Title:      s.dimensionsTitle(t, result.Event, survey),
		Locale:     g.locale,
		Dimensions: view,
	}, nil
}

// SummaryMetadata computes the summary page title.
func (s *PageService) SummaryMetadata(ctx context.Context, req PageRequest) (PageMetadata, error) {
	g, err := s.guard(ctx, req)
	if err != nil {
		return PageMetadata{}, err
	}
	if g.session == nil {
		return s.SignInRequiredMetadata(ctx, g.locale), nil
	}
	result, err := s.fetchSummary(g, req, BuildDimensionFilters(req.Query))
	if err != nil {
		return PageMetadata{}, err
	}
	survey := result.Survey()
	if survey == nil {
		return PageMetadata{}, s.notFound(g, "summary", req)
	}
	return PageMetadata{Title: s.summaryTitle(g.messages, result.Event, survey)}, nil
}

// SummaryPage builds the response summary page.
func (s *PageService) SummaryPage(ctx context.Context, req PageRequest) (Page, error) {
	g, err := s.guard(ctx, req)
	if err != nil {
		return Page{}, err
	}
	if g.session == nil {
		return s.signInRequired(g, "summary"), nil
	}
	filters := BuildDimensionFilters(req.Query)
	data, err := s.loadSummary(g, req, filters)
	if err != nil {
		return Page{}, err
	}

	t := g.messages
	scope := req.Scope()
	pagePath := SummaryPath(s.opts.BasePath, g.locale, scope)
	dispatcher := SummaryDispatcher{Messages: t, Charts: s.opts.Charts}
	fieldViews, err := dispatcher.DispatchFieldSummaries(data.fields, data.summary)
	if err != nil {
		return Page{}, err
	}

	exportURL := pagePath + ".xlsx"
	if query := FilterQuery(filters); len(query) > 0 {
		exportURL += "?" + query.Encode()
	}
	survey := data.survey
	view := &SummaryView{
		EventName:              data.event.Name,
		SurveyTitle:            survey.Title,
		Heading:                t.Get("survey.summary_title"),
		ReturnURL:              SurveyPath(s.opts.BasePath, g.locale, scope) + "/responses",
		ReturnLabel:            t.Get("survey.actions.return_to_responses"),
		ExportURL:              exportURL,
		ExportLabel:            t.Get("survey.actions.export_summary"),
		CountResponses:         survey.CountResponses,
		CountFilteredResponses: survey.CountFilteredResponses,
		SummaryOf: t.Format("survey.summary_of", map[string]any{
			"filtered": survey.CountFilteredResponses,
			"total":    survey.CountResponses,
		}),
		Filters:   filters,
		FilterBar: BuildFilterBar(t, pagePath, survey.Dimensions, filters),
		Fields:    fieldViews,
	}
	s.opts.Telemetry.Record(g.ctx, "surveys.page.render", map[string]any{
		"page":    "summary",
		"event":   req.EventSlug,
		"survey":  req.SurveySlug,
		"fields":  len(fieldViews),
		"filters": len(filters),
	})
	return Page{
		Template: TemplateSummary,
		Title:    s.summaryTitle(t, data.event, survey),
		Locale:   g.locale,
		Summary:  view,
		Extras: map[string]any{
			"no_uploaded_files": t.Get("schema_form.no_uploaded_files"),
			"matrix_question":   t.Get("survey.matrix.question"),
		},
	}, nil
}

// SummaryData is the validated payload of the summary query.
type SummaryData struct {
	Event   EventData
	Survey  SurveyData
	Fields  []Field
	Summary SurveySummary
	Filters []DimensionFilter
}

// SummaryExport fetches and validates the summary for a spreadsheet export.
// It returns ErrSignInRequired for anonymous viewers.
func (s *PageService) SummaryExport(ctx context.Context, req PageRequest) (SummaryData, error) {
	g, err := s.guard(ctx, req)
	if err != nil {
		return SummaryData{}, err
	}
	if g.session == nil {
		return SummaryData{}, ErrSignInRequired
	}
	filters := BuildDimensionFilters(req.Query)
	data, err := s.loadSummary(g, req, filters)
	if err != nil {
		return SummaryData{}, err
	}
	s.opts.Telemetry.Record(g.ctx, "surveys.summary.export", map[string]any{
		"event":   req.EventSlug,
		"survey":  req.SurveySlug,
		"filters": len(filters),
	})
	return SummaryData{
		Event:   *data.event,
		Survey:  *data.survey,
		Fields:  data.fields,
		Summary: data.summary,
		Filters: filters,
	}, nil
}

type loadedSummary struct {
	event   *EventData
	survey  *SurveyData
	fields  []Field
	summary SurveySummary
}

func (s *PageService) loadSummary(g guardResult, req PageRequest, filters []DimensionFilter) (loadedSummary, error) {
	result, err := s.fetchSummary(g, req, filters)
	if err != nil {
		return loadedSummary{}, err
	}
	survey := result.Survey()
	if survey == nil || isNullJSON(survey.Summary) {
		return loadedSummary{}, s.notFound(g, "summary", req)
	}
	fields, err := DecodeFields(survey.Fields)
	if err != nil {
		return loadedSummary{}, err
	}
	summary, err := DecodeSummary(survey.Summary)
	if err != nil {
		return loadedSummary{}, err
	}
	return loadedSummary{event: result.Event, survey: survey, fields: fields, summary: summary}, nil
}

func (s *PageService) notFound(g guardResult, page string, req PageRequest) error {
	s.opts.Telemetry.Record(g.ctx, "surveys.page.not_found", map[string]any{
		"page":   page,
		"event":  req.EventSlug,
		"survey": req.SurveySlug,
	})
	return ErrNotFound
}

func (s *PageService) dimensionsTitle(t Messages, event *EventData, survey *SurveyData) string {
	return PageTitle(t, t.Get("survey.attributes.dimensions"), survey.Title, eventName(event))
}

func (s *PageService) summaryTitle(t Messages, event *EventData, survey *SurveyData) string {
	return PageTitle(t, t.Get("survey.summary_title"), survey.Title, eventName(event))
}

func eventName(event *EventData) string {
	if event == nil {
		return ""
	}
	return event.Name
}

// IsNotFound reports whether err should render the not-found surface.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError reports whether err stems from invalid user input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidForm) || errors.Is(err, ErrConfirmationRequired) || errors.Is(err, ErrUnknownAction)
}
