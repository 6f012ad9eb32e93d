package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-survey-admin/components/surveys"
)

// DimensionsListQuery runs the DimensionsList backend query.
type DimensionsListQuery struct {
	backend surveys.Backend
}

// NewDimensionsListQuery builds the query.
func NewDimensionsListQuery(backend surveys.Backend) *DimensionsListQuery {
	return &DimensionsListQuery{backend: backend}
}

var _ gocommand.Querier[surveys.DimensionsListInput, surveys.DimensionsListResult] = (*DimensionsListQuery)(nil)

// Query fetches the survey dimensions.
func (q *DimensionsListQuery) Query(ctx context.Context, input surveys.DimensionsListInput) (surveys.DimensionsListResult, error) {
	if q.backend == nil {
		return surveys.DimensionsListResult{}, errors.New("dimensions query requires backend")
	}
	return q.backend.DimensionsList(ctx, input)
}
