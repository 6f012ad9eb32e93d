package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-survey-admin/components/surveys"
)

// SurveySummaryQuery runs the SurveySummary backend query.
type SurveySummaryQuery struct {
	backend surveys.Backend
}

// NewSurveySummaryQuery builds the query.
func NewSurveySummaryQuery(backend surveys.Backend) *SurveySummaryQuery {
	return &SurveySummaryQuery{backend: backend}
}

var _ gocommand.Querier[surveys.SurveySummaryInput, surveys.SurveySummaryResult] = (*SurveySummaryQuery)(nil)

// Query fetches the filtered survey summary.
func (q *SurveySummaryQuery) Query(ctx context.Context, input surveys.SurveySummaryInput) (surveys.SurveySummaryResult, error) {
	if q.backend == nil {
		return surveys.SurveySummaryResult{}, errors.New("summary query requires backend")
	}
	return q.backend.SurveySummary(ctx, input)
}

// QueryBackend adapts the two queriers back into a surveys.Backend so the page
// service can run through the same query objects as the CLI.
type QueryBackend struct {
	Dimensions gocommand.Querier[surveys.DimensionsListInput, surveys.DimensionsListResult]
	Summary    gocommand.Querier[surveys.SurveySummaryInput, surveys.SurveySummaryResult]
}

// NewQueryBackend wraps backend in both queriers.
func NewQueryBackend(backend surveys.Backend) QueryBackend {
	return QueryBackend{
		Dimensions: NewDimensionsListQuery(backend),
		Summary:    NewSurveySummaryQuery(backend),
	}
}

var _ surveys.Backend = QueryBackend{}

// DimensionsList implements surveys.Backend.
func (b QueryBackend) DimensionsList(ctx context.Context, input surveys.DimensionsListInput) (surveys.DimensionsListResult, error) {
	return b.Dimensions.Query(ctx, input)
}

// SurveySummary implements surveys.Backend.
func (b QueryBackend) SurveySummary(ctx context.Context, input surveys.SurveySummaryInput) (surveys.SurveySummaryResult, error) {
	return b.Summary.Query(ctx, input)
}
