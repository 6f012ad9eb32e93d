package surveys

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	gocommand "github.com/goliatone/go-command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		s.lastPayload = payload
	}
	if s.err != nil {
		return "", s.err
	}
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", nil
}

type recordingCommand struct {
	inputs []ActionInput
	err    error
}

func (c *recordingCommand) Execute(_ context.Context, input ActionInput) error {
	c.inputs = append(c.inputs, input)
	return c.err
}

func newTestDispatcher(t *testing.T, sessions SessionResolver, command *recordingCommand) *ActionDispatcher {
	t.Helper()
	commands := make(map[ActionKind]gocommand.Commander[ActionInput], len(ActionKinds()))
	for _, kind := range ActionKinds() {
		commands[kind] = command
	}
	dispatcher, err := NewActionDispatcher(ActionDispatcherOptions{
		Sessions: sessions,
		Commands: commands,
		BasePath: "/admin",
	})
	require.NoError(t, err)
	return dispatcher
}

func newTestController(t *testing.T, backend Backend, sessions SessionResolver, renderer Renderer, command *recordingCommand) *Controller {
	t.Helper()
	controller, err := NewController(ControllerOptions{
		Pages:    newTestPageService(t, backend, sessions, nil),
		Actions:  newTestDispatcher(t, sessions, command),
		Renderer: renderer,
	})
	require.NoError(t, err)
	return controller
}

func TestControllerRendersDimensionsPage(t *testing.T) {
	renderer := &stubRenderer{}
	controller := newTestController(t, &stubBackend{dimensions: dimensionsResult(regionDimension())}, signedIn(), renderer, &recordingCommand{})

	resp := controller.DimensionsPage(context.Background(), testRequest("en"))

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, contentTypeHTML, resp.ContentType)
	assert.Equal(t, "<html></html>", string(resp.Body))
	assert.Equal(t, TemplateDimensions, renderer.lastTemplate)
	require.NotNil(t, renderer.lastPayload)
	assert.IsType(t, &DimensionsView{}, renderer.lastPayload["page"])
}

func TestControllerSignInRequiredIsNotAnError(t *testing.T) {
	renderer := &stubRenderer{}
	controller := newTestController(t, &stubBackend{}, anonymous(), renderer, &recordingCommand{})

	resp := controller.SummaryPage(context.Background(), testRequest("en"))

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, TemplateSignInRequired, renderer.lastTemplate)
}

func TestControllerMapsErrorsToSurfaces(t *testing.T) {
	renderer := &stubRenderer{}
	controller := newTestController(t, &stubBackend{dimensions: DimensionsListResult{}}, signedIn(), renderer, &recordingCommand{})
	resp := controller.DimensionsPage(context.Background(), testRequest("en"))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, TemplateNotFound, renderer.lastTemplate)

	renderer = &stubRenderer{}
	controller = newTestController(t, &stubBackend{err: errors.New("boom")}, signedIn(), renderer, &recordingCommand{})
	resp = controller.SummaryPage(context.Background(), testRequest("en"))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, TemplateError, renderer.lastTemplate)
	assert.Equal(t, "The page could not be loaded. Please try again later.", renderer.lastPayload["message"])
}

func TestControllerRenderFailure(t *testing.T) {
	renderer := &stubRenderer{err: errors.New("template missing")}
	controller := newTestController(t, &stubBackend{dimensions: dimensionsResult()}, signedIn(), renderer, &recordingCommand{})

	resp := controller.DimensionsPage(context.Background(), testRequest("en"))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Internal Server Error", string(resp.Body))
}

func TestControllerMetadata(t *testing.T) {
	controller := newTestController(t, &stubBackend{summary: summaryResult(testSummaryJSON)}, signedIn(), &stubRenderer{}, &recordingCommand{})
	meta, status := controller.SummaryMetadata(context.Background(), testRequest("en"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Summary – Feedback – Tracon 2025 – Kompassi", meta.Title)

	controller = newTestController(t, &stubBackend{}, signedIn(), &stubRenderer{}, &recordingCommand{})
	meta, status = controller.DimensionsMetadata(context.Background(), testRequest("en"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Page not found – Kompassi", meta.Title)
}

func TestControllerActRedirectsToEditor(t *testing.T) {
	command := &recordingCommand{}
	controller := newTestController(t, &stubBackend{}, signedIn(), &stubRenderer{}, command)

	resp := controller.Act(context.Background(), ActionRequest{
		Locale: "fi",
		Action: CreateDimensionValueAction(testScope, "region"),
		Form:   url.Values{FormFieldTitleEn: {"West Coast"}, FormFieldColor: {"#0000ff"}},
	})

	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/admin/fi/events/tracon2025/surveys/feedback/dimensions", resp.Location)
	require.Len(t, command.inputs, 1)
	require.NotNil(t, command.inputs[0].Value)
	assert.Equal(t, "west-coast", command.inputs[0].Value.Slug)
	require.NotNil(t, command.inputs[0].Session)
	assert.Equal(t, "user-1", command.inputs[0].Session.UserID)
}

func TestControllerActErrors(t *testing.T) {
	command := &recordingCommand{}
	renderer := &stubRenderer{}
	controller := newTestController(t, &stubBackend{}, signedIn(), renderer, command)

	resp := controller.Act(context.Background(), ActionRequest{
		Locale: "en",
		Action: DeleteDimensionAction(testScope, "region"),
		Form:   url.Values{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, TemplateError, renderer.lastTemplate)
	assert.Empty(t, command.inputs)

	anon := newTestController(t, &stubBackend{}, anonymous(), renderer, command)
	resp = anon.Act(context.Background(), ActionRequest{
		Locale: "en",
		Action: DeleteDimensionAction(testScope, "region"),
		Form:   url.Values{FormFieldConfirm: {"yes"}},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, TemplateSignInRequired, renderer.lastTemplate)
	assert.Empty(t, command.inputs)

	failing := newTestController(t, &stubBackend{}, signedIn(), renderer, &recordingCommand{err: errors.New("graphql: in use")})
	resp = failing.Act(context.Background(), ActionRequest{
		Locale: "en",
		Action: DeleteDimensionAction(testScope, "region"),
		Form:   url.Values{FormFieldConfirm: {"yes"}},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestControllerExportSummary(t *testing.T) {
	controller := newTestController(t, &stubBackend{summary: summaryResult(testSummaryJSON)}, signedIn(), &stubRenderer{}, &recordingCommand{})

	resp := controller.ExportSummary(context.Background(), testRequest("en"))
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, contentTypeXLSX, resp.ContentType)
	assert.Equal(t, "tracon2025-feedback-summary.xlsx", resp.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(resp.Body))
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tracon 2025", value)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusForError(nil))
	assert.Equal(t, http.StatusNotFound, StatusForError(ErrNotFound))
	assert.Equal(t, http.StatusUnauthorized, StatusForError(ErrSignInRequired))
	assert.Equal(t, http.StatusBadRequest, StatusForError(ErrInvalidForm))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(errors.New("boom")))
}

func TestNewControllerRequiresCollaborators(t *testing.T) {
	_, err := NewController(ControllerOptions{Renderer: &stubRenderer{}})
	assert.Error(t, err)
	_, err = NewController(ControllerOptions{Pages: newTestPageService(t, &stubBackend{}, signedIn(), nil)})
	assert.Error(t, err)
}
