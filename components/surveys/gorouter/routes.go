package gorouter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	router "github.com/goliatone/go-router"
	"github.com/google/uuid"

	"github.com/goliatone/go-survey-admin/components/surveys"
)

// SessionResolver lets the host application supply a session it already
// authenticated, e.g. from its own middleware. Returning nil falls back to
// the configured surveys.SessionResolver.
type SessionResolver func(router.Context) *surveys.Session

// Config wires go-router with the survey admin controller.
type Config[T any] struct {
	Router          router.Router[T]
	Controller      *surveys.Controller
	SessionResolver SessionResolver
	Logger          *slog.Logger
	Routes          RouteConfig
}

// RouteConfig customizes the relative paths of the survey endpoints. Survey
// is mounted below the controller base path; the others below Survey.
type RouteConfig struct {
	Survey         string
	Dimensions     string
	DimensionsMeta string
	Summary        string
	SummaryMeta    string
	SummaryExport  string
}

// Register mounts the survey pages, metadata, actions and export on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	resolver := cfg.SessionResolver
	if resolver == nil {
		resolver = defaultSessionResolver
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	controller := cfg.Controller
	group := cfg.Router.Group(controller.BasePath() + routes.Survey)

	group.Get(routes.Dimensions, logged(logger, "dimensions", func(ctx router.Context) (int, error) {
		return writeResponse(ctx, controller.DimensionsPage(requestContext(ctx, resolver), pageRequest(ctx)))
	}))
	group.Get(routes.DimensionsMeta, logged(logger, "dimensions_meta", func(ctx router.Context) (int, error) {
		meta, status := controller.DimensionsMetadata(requestContext(ctx, resolver), pageRequest(ctx))
		return status, ctx.JSON(status, meta)
	}))
	group.Get(routes.Summary, logged(logger, "summary", func(ctx router.Context) (int, error) {
		return writeResponse(ctx, controller.SummaryPage(requestContext(ctx, resolver), pageRequest(ctx)))
	}))
	group.Get(routes.SummaryMeta, logged(logger, "summary_meta", func(ctx router.Context) (int, error) {
		meta, status := controller.SummaryMetadata(requestContext(ctx, resolver), pageRequest(ctx))
		return status, ctx.JSON(status, meta)
	}))
	group.Get(routes.SummaryExport, logged(logger, "summary_export", func(ctx router.Context) (int, error) {
		return writeResponse(ctx, controller.ExportSummary(requestContext(ctx, resolver), pageRequest(ctx)))
	}))

	for _, route := range surveys.ActionRoutes(colonParam) {
		kind := route.Kind
		group.Post(routes.Dimensions+route.Path, logged(logger, string(kind), func(ctx router.Context) (int, error) {
			form, err := url.ParseQuery(string(ctx.Body()))
			if err != nil {
				return http.StatusBadRequest, respondError(ctx, http.StatusBadRequest, err)
			}
			req := pageRequest(ctx)
			action := surveys.BindAction(kind, req.Scope(), ctx.Param(surveys.RouteParamDimension), ctx.Param(surveys.RouteParamValue))
			return writeResponse(ctx, controller.Act(requestContext(ctx, resolver), surveys.ActionRequest{
				Locale:      req.Locale,
				Action:      action,
				Form:        form,
				Credentials: req.Credentials,
			}))
		}))
	}
	return nil
}

func colonParam(name string) string {
	return ":" + name
}

func pageRequest(ctx router.Context) surveys.PageRequest {
	return surveys.PageRequest{
		Locale:     inferLocale(ctx),
		EventSlug:  ctx.Param(surveys.RouteParamEvent),
		SurveySlug: ctx.Param(surveys.RouteParamSurvey),
		Query:      queryValues(ctx.Queries()),
		Credentials: surveys.Credentials{
			Cookie:        ctx.Header("Cookie"),
			Authorization: ctx.Header("Authorization"),
		},
	}
}

func requestContext(ctx router.Context, resolver SessionResolver) context.Context {
	base := ctx.Context()
	if session := resolver(ctx); session != nil {
		return surveys.ContextWithSession(base, session)
	}
	return base
}

func defaultSessionResolver(ctx router.Context) *surveys.Session {
	if session, ok := ctx.Locals("session").(*surveys.Session); ok {
		return session
	}
	return nil
}

func inferLocale(ctx router.Context) string {
	if locale := strings.TrimSpace(ctx.Param(surveys.RouteParamLocale)); locale != "" {
		return strings.ToLower(locale)
	}
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		return parseAcceptLanguage(header)
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token = strings.TrimSpace(token); token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

// queryValues adapts the single-valued query map; repeated filter values
// arrive comma separated.
func queryValues(raw map[string]string) url.Values {
	values := make(url.Values, len(raw))
	for key, value := range raw {
		values.Set(key, value)
	}
	return values
}

// logged tags the request with an id and logs its outcome.
func logged(logger *slog.Logger, route string, handler func(router.Context) (int, error)) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		start := time.Now()
		requestID := uuid.NewString()
		ctx.SetHeader("X-Request-ID", requestID)
		status, err := handler(ctx)
		attrs := []any{
			"route", route,
			"request_id", requestID,
			"status", status,
			"duration", time.Since(start),
		}
		if err != nil {
			logger.ErrorContext(ctx.Context(), "surveys request failed", append(attrs, "error", err)...)
			return err
		}
		logger.InfoContext(ctx.Context(), "surveys request", attrs...)
		return nil
	})
}

func writeResponse(ctx router.Context, resp surveys.Response) (int, error) {
	if resp.Location != "" {
		ctx.SetHeader("Location", resp.Location)
	}
	if resp.ContentType != "" {
		ctx.SetHeader("Content-Type", resp.ContentType)
	}
	if resp.Filename != "" {
		ctx.SetHeader("Content-Disposition", contentDisposition(resp.Filename))
	}
	ctx.Status(resp.Status)
	return resp.Status, ctx.Send(resp.Body)
}

func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Survey == "" {
		routes.Survey = "/:locale/events/:event/surveys/:survey"
	}
	if routes.Dimensions == "" {
		routes.Dimensions = "/dimensions"
	}
	if routes.DimensionsMeta == "" {
		routes.DimensionsMeta = routes.Dimensions + "/_meta"
	}
	if routes.Summary == "" {
		routes.Summary = "/summary"
	}
	if routes.SummaryMeta == "" {
		routes.SummaryMeta = routes.Summary + "/_meta"
	}
	if routes.SummaryExport == "" {
		routes.SummaryExport = routes.Summary + ".xlsx"
	}
	return routes
}
