package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/goliatone/go-survey-admin/components/surveys"
)

// maxFormBytes caps modal form submissions.
const maxFormBytes = 64 << 10

// Handlers exposes the survey admin controller over net/http.
type Handlers struct {
	Controller *surveys.Controller
	Logger     *slog.Logger
}

// Router builds a chi router serving every survey endpoint under the
// controller base path.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Logger))
	r.Route(h.Controller.BasePath()+"/{locale}/events/{event}/surveys/{survey}", func(r chi.Router) {
		r.Get("/dimensions", h.HandleDimensions)
		r.Get("/dimensions/_meta", h.HandleDimensionsMeta)
		r.Get("/summary", h.HandleSummary)
		r.Get("/summary/_meta", h.HandleSummaryMeta)
		r.Get("/summary.xlsx", h.HandleSummaryExport)
		for _, route := range surveys.ActionRoutes(braceParam) {
			r.Post("/dimensions"+route.Path, h.actionHandler(route.Kind))
		}
	})
	return r
}

func (h *Handlers) HandleDimensions(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.Controller.DimensionsPage(r.Context(), pageRequest(r)))
}

func (h *Handlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.Controller.SummaryPage(r.Context(), pageRequest(r)))
}

func (h *Handlers) HandleSummaryExport(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.Controller.ExportSummary(r.Context(), pageRequest(r)))
}

func (h *Handlers) HandleDimensionsMeta(w http.ResponseWriter, r *http.Request) {
	meta, status := h.Controller.DimensionsMetadata(r.Context(), pageRequest(r))
	writeJSON(w, status, meta)
}

func (h *Handlers) HandleSummaryMeta(w http.ResponseWriter, r *http.Request) {
	meta, status := h.Controller.SummaryMetadata(r.Context(), pageRequest(r))
	writeJSON(w, status, meta)
}

func (h *Handlers) actionHandler(kind surveys.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req := pageRequest(r)
		action := surveys.BindAction(kind, req.Scope(), chi.URLParam(r, surveys.RouteParamDimension), chi.URLParam(r, surveys.RouteParamValue))
		writeResponse(w, h.Controller.Act(r.Context(), surveys.ActionRequest{
			Locale:      req.Locale,
			Action:      action,
			Form:        r.PostForm,
			Credentials: req.Credentials,
		}))
	}
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			w.Header().Set("X-Request-ID", requestID)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "surveys request",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", requestID,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

func braceParam(name string) string {
	return "{" + name + "}"
}

func pageRequest(r *http.Request) surveys.PageRequest {
	return surveys.PageRequest{
		Locale:     chi.URLParam(r, surveys.RouteParamLocale),
		EventSlug:  chi.URLParam(r, surveys.RouteParamEvent),
		SurveySlug: chi.URLParam(r, surveys.RouteParamSurvey),
		Query:      r.URL.Query(),
		Credentials: surveys.Credentials{
			Cookie:        r.Header.Get("Cookie"),
			Authorization: r.Header.Get("Authorization"),
		},
	}
}

func writeResponse(w http.ResponseWriter, resp surveys.Response) {
	if resp.Location != "" {
		w.Header().Set("Location", resp.Location)
	}
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	if resp.Filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Filename))
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
