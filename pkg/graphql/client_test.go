package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-survey-admin/components/surveys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler func(t *testing.T, req Request, w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		handler(t, req, w, r)
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{Endpoint: server.URL, UserAgent: "survey-admin-test"})
	require.NoError(t, err)
	return client
}

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestClientDimensionsListForwardsTokenAndVariables(t *testing.T) {
	client := newTestServer(t, func(t *testing.T, req Request, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "survey-admin-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "DimensionsList", req.OperationName)
		assert.Equal(t, "tracon2025", req.Variables["eventSlug"])
		assert.Equal(t, "fi", req.Variables["locale"])
		_, _ = w.Write([]byte(`{"data":{"event":{"name":"Tracon 2025","forms":{"survey":{"title":"Palaute","dimensions":[
			{"slug":"region","canRemove":true,"titleFi":"Alue","values":[{"slug":"north","color":"#ff0000","canRemove":false}]}
		]}}}}}`))
	})

	ctx := surveys.ContextWithSession(context.Background(), &surveys.Session{UserID: "u", AccessToken: "token-1"})
	result, err := client.DimensionsList(ctx, surveys.DimensionsListInput{EventSlug: "tracon2025", SurveySlug: "feedback", Locale: "fi"})
	require.NoError(t, err)

	survey := result.Survey()
	require.NotNil(t, survey)
	require.Len(t, survey.Dimensions, 1)
	assert.Equal(t, "Alue", survey.Dimensions[0].TitleFi)
	require.Len(t, survey.Dimensions[0].Values, 1)
	assert.False(t, survey.Dimensions[0].Values[0].CanRemove)
}

func TestClientSurveySummaryKeepsRawSummary(t *testing.T) {
	client := newTestServer(t, func(t *testing.T, req Request, w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		filters, ok := req.Variables["filters"].([]any)
		assert.True(t, ok, "filters should be a list, got %T", req.Variables["filters"])
		assert.Empty(t, filters)
		_, _ = w.Write([]byte(`{"data":{"event":{"name":"Tracon","forms":{"survey":{
			"title":"Feedback","fields":[{"slug":"q","type":"SingleLineText"}],
			"summary":{"q":{"type":"SingleLineText","summary":["a"],"countResponses":1,"countMissingResponses":0}},
			"countResponses":3,"countFilteredResponses":1,"dimensions":[]}}}}}`))
	})

	result, err := client.SurveySummary(context.Background(), surveys.SurveySummaryInput{EventSlug: "tracon", SurveySlug: "feedback"})
	require.NoError(t, err)
	survey := result.Survey()
	require.NotNil(t, survey)
	assert.Equal(t, 3, survey.CountResponses)
	assert.Equal(t, 1, survey.CountFilteredResponses)
	summary, err := surveys.DecodeSummary(survey.Summary)
	require.NoError(t, err)
	assert.Contains(t, summary, "q")
}

func TestClientNullSurveyDecodesToNil(t *testing.T) {
	client := newTestServer(t, func(t *testing.T, req Request, w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"event":{"name":"Tracon","forms":{"survey":null}}}}`))
	})
	result, err := client.DimensionsList(context.Background(), surveys.DimensionsListInput{})
	require.NoError(t, err)
	assert.Nil(t, result.Survey())
}

func TestClientSurfacesGraphQLErrors(t *testing.T) {
	client := newTestServer(t, func(t *testing.T, req Request, w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Permission denied","path":["event"]}]}`))
	})
	_, err := client.SurveySummary(context.Background(), surveys.SurveySummaryInput{})
	require.Error(t, err)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "SurveySummary", respErr.Operation)
	assert.Equal(t, "graphql: SurveySummary: Permission denied", err.Error())
}

func TestClientSurfacesHTTPStatus(t *testing.T) {
	client := newTestServer(t, func(t *testing.T, req Request, w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	err := client.DeleteDimension(context.Background(), surveys.SurveyScope{EventSlug: "e", SurveySlug: "s"}, "region")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestClientMutationsSendInput(t *testing.T) {
	var got []Request
	client := newTestServer(t, func(t *testing.T, req Request, w http.ResponseWriter, r *http.Request) {
		got = append(got, req)
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	ctx := context.Background()
	scope := surveys.SurveyScope{EventSlug: "tracon", SurveySlug: "feedback"}

	require.NoError(t, client.CreateDimension(ctx, scope, surveys.DimensionForm{Slug: "region", IsKeyDimension: true}))
	require.NoError(t, client.UpdateDimensionValue(ctx, scope, "region", "north", surveys.ValueForm{Slug: "north", Color: "#ff0000"}))
	require.NoError(t, client.DeleteDimensionValue(ctx, scope, "region", "north"))
	require.Len(t, got, 3)

	create := got[0].Variables["input"].(map[string]any)
	assert.Equal(t, "PutSurveyDimension", got[0].OperationName)
	assert.Nil(t, create["dimensionSlug"])
	formData := create["formData"].(map[string]any)
	assert.Equal(t, "region", formData["slug"])
	assert.Equal(t, true, formData["isKeyDimension"])

	update := got[1].Variables["input"].(map[string]any)
	assert.Equal(t, "PutSurveyDimensionValue", got[1].OperationName)
	assert.Equal(t, "region", update["dimensionSlug"])
	assert.Equal(t, "north", update["valueSlug"])
	assert.Equal(t, "#ff0000", update["formData"].(map[string]any)["color"])

	remove := got[2].Variables["input"].(map[string]any)
	assert.Equal(t, "DeleteSurveyDimensionValue", got[2].OperationName)
	assert.Nil(t, remove["formData"])
}
