package surveys

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// Response is a transport-neutral HTTP response.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	Location    string
	// Filename marks the body as an attachment.
	Filename string
}

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ControllerOptions wires a Controller.
type ControllerOptions struct {
	Pages    *PageService
	Actions  *ActionDispatcher
	Renderer Renderer
	Logger   *slog.Logger
}

// Controller turns page, action and export requests into responses. Transports
// only translate requests in and responses out.
type Controller struct {
	pages    *PageService
	actions  *ActionDispatcher
	renderer Renderer
	logger   *slog.Logger
}

// NewController wires the collaborators into a controller.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Pages == nil {
		return nil, errors.New("surveys: controller requires a page service")
	}
	if opts.Renderer == nil {
		return nil, errors.New("surveys: controller requires a renderer")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		pages:    opts.Pages,
		actions:  opts.Actions,
		renderer: opts.Renderer,
		logger:   logger,
	}, nil
}

// BasePath returns the mount prefix shared with the page service.
func (c *Controller) BasePath() string {
	return c.pages.BasePath()
}

// DimensionsPage renders the dimensions editor.
func (c *Controller) DimensionsPage(ctx context.Context, req PageRequest) Response {
	page, err := c.pages.DimensionsPage(ctx, req)
	if err != nil {
		return c.errorResponse(ctx, req.Locale, err)
	}
	return c.renderPage(ctx, http.StatusOK, page)
}

// SummaryPage renders the response summary.
func (c *Controller) SummaryPage(ctx context.Context, req PageRequest) Response {
	page, err := c.pages.SummaryPage(ctx, req)
	if err != nil {
		return c.errorResponse(ctx, req.Locale, err)
	}
	return c.renderPage(ctx, http.StatusOK, page)
}

// DimensionsMetadata returns the dimensions page title and its status code.
func (c *Controller) DimensionsMetadata(ctx context.Context, req PageRequest) (PageMetadata, int) {
	meta, err := c.pages.DimensionsMetadata(ctx, req)
	return c.metadataResult(ctx, req, meta, err)
}

// SummaryMetadata returns the summary page title and its status code.
func (c *Controller) SummaryMetadata(ctx context.Context, req PageRequest) (PageMetadata, int) {
	meta, err := c.pages.SummaryMetadata(ctx, req)
	return c.metadataResult(ctx, req, meta, err)
}

func (c *Controller) metadataResult(ctx context.Context, req PageRequest, meta PageMetadata, err error) (PageMetadata, int) {
	if err == nil {
		return meta, http.StatusOK
	}
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		c.logger.ErrorContext(ctx, "surveys metadata failed", "event", req.EventSlug, "survey", req.SurveySlug, "error", err)
	}
	var page Page
	if status == http.StatusNotFound {
		page = c.pages.NotFoundPage(ctx, req.Locale)
	} else {
		page = c.pages.ErrorPage(ctx, req.Locale)
	}
	return PageMetadata{Title: page.Title}, status
}

// Act dispatches a submitted modal form and redirects back to the editor.
func (c *Controller) Act(ctx context.Context, req ActionRequest) Response {
	if c.actions == nil {
		return c.errorResponse(ctx, req.Locale, errors.New("surveys: actions are not configured"))
	}
	location, err := c.actions.Dispatch(ctx, req)
	if err != nil {
		return c.errorResponse(ctx, req.Locale, err)
	}
	return Response{Status: http.StatusSeeOther, Location: location}
}

// ExportSummary renders the summary spreadsheet.
func (c *Controller) ExportSummary(ctx context.Context, req PageRequest) Response {
	data, err := c.pages.SummaryExport(ctx, req)
	if err != nil {
		return c.errorResponse(ctx, req.Locale, err)
	}
	var buf bytes.Buffer
	messages := NewMessages(ctx, c.pages.Translations(), req.Locale)
	if err := WriteSummaryWorkbook(&buf, messages, data); err != nil {
		return c.errorResponse(ctx, req.Locale, err)
	}
	return Response{
		Status:      http.StatusOK,
		ContentType: contentTypeXLSX,
		Body:        buf.Bytes(),
		Filename:    ExportFilename(req.Scope()),
	}
}

func (c *Controller) renderPage(ctx context.Context, status int, page Page) Response {
	var buf bytes.Buffer
	if _, err := c.renderer.Render(page.Template, page.TemplateData(), &buf); err != nil {
		c.logger.ErrorContext(ctx, "surveys render failed", "template", page.Template, "error", err)
		return Response{
			Status:      http.StatusInternalServerError,
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(http.StatusText(http.StatusInternalServerError)),
		}
	}
	return Response{Status: status, ContentType: contentTypeHTML, Body: buf.Bytes()}
}

func (c *Controller) errorResponse(ctx context.Context, locale string, err error) Response {
	status := StatusForError(err)
	switch {
	case status == http.StatusNotFound:
		return c.renderPage(ctx, status, c.pages.NotFoundPage(ctx, locale))
	case errors.Is(err, ErrSignInRequired):
		page := c.pages.signInRequired(guardResult{
			ctx:      ctx,
			locale:   normalizeLocale(locale),
			messages: NewMessages(ctx, c.pages.Translations(), locale),
		}, "action")
		return c.renderPage(ctx, status, page)
	case status == http.StatusBadRequest:
		c.logger.WarnContext(ctx, "surveys request rejected", "error", err)
		page := c.pages.ErrorPage(ctx, locale)
		page.Extras["message"] = err.Error()
		return c.renderPage(ctx, status, page)
	}
	c.logger.ErrorContext(ctx, "surveys request failed", "error", err)
	return c.renderPage(ctx, status, c.pages.ErrorPage(ctx, locale))
}

// StatusForError maps package errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSignInRequired):
		return http.StatusUnauthorized
	case IsClientError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
