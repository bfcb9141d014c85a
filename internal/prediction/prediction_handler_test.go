package prediction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iamami1990/rh-platform/internal/features"
	"github.com/iamami1990/rh-platform/internal/prediction"
	predictionerrors "github.com/iamami1990/rh-platform/internal/prediction/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	predictSentimentFn func(ctx context.Context, employee features.Record) (prediction.SentimentResponse, error)
	predictTurnoverFn  func(ctx context.Context, employee features.Record) (prediction.TurnoverResponse, error)
	predictBatchFn     func(ctx context.Context, employees []features.Record) (prediction.BatchResponse, error)
}

func (f *fakeService) PredictSentiment(ctx context.Context, employee features.Record) (prediction.SentimentResponse, error) {
	return f.predictSentimentFn(ctx, employee)
}
func (f *fakeService) PredictTurnover(ctx context.Context, employee features.Record) (prediction.TurnoverResponse, error) {
	return f.predictTurnoverFn(ctx, employee)
}
func (f *fakeService) PredictBatch(ctx context.Context, employees []features.Record) (prediction.BatchResponse, error) {
	return f.predictBatchFn(ctx, employees)
}

func postJSON(t *testing.T, h gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestHandler_PredictSentiment(t *testing.T) {
	svc := &fakeService{
		predictSentimentFn: func(ctx context.Context, employee features.Record) (prediction.SentimentResponse, error) {
			assert.Equal(t, 3000.0, employee["salary_brut"])
			return prediction.SentimentResponse{
				Success:        true,
				SentimentScore: 3.85,
				RiskLevel:      prediction.RiskModerate,
				Message:        "Employee moderately satisfied",
				FeaturesUsed:   features.Names,
			}, nil
		},
	}
	h := prediction.NewHandler(svc)

	w := postJSON(t, h.PredictSentiment, "/predict/sentiment", `{"employee":{"salary_brut":3000}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp prediction.SentimentResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3.85, resp.SentimentScore)
	assert.Len(t, resp.FeaturesUsed, features.Count)
}

func TestHandler_PredictSentiment_ModelUnavailable(t *testing.T) {
	svc := &fakeService{
		predictSentimentFn: func(ctx context.Context, employee features.Record) (prediction.SentimentResponse, error) {
			return prediction.SentimentResponse{}, predictionerrors.ErrSentimentModelUnavailable
		},
	}
	h := prediction.NewHandler(svc)

	w := postJSON(t, h.PredictSentiment, "/predict/sentiment", `{"employee":{}}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
	assert.Contains(t, w.Body.String(), "MODEL_UNAVAILABLE")
}

func TestHandler_PredictSentiment_MalformedBody(t *testing.T) {
	h := prediction.NewHandler(&fakeService{})

	w := postJSON(t, h.PredictSentiment, "/predict/sentiment", `{"employee": "nope"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestHandler_PredictTurnover(t *testing.T) {
	svc := &fakeService{
		predictTurnoverFn: func(ctx context.Context, employee features.Record) (prediction.TurnoverResponse, error) {
			return prediction.TurnoverResponse{
				Success:             true,
				TurnoverProbability: 0.82,
				TurnoverPercentage:  82.0,
				RiskLevel:           prediction.RiskHigh,
			}, nil
		},
	}
	h := prediction.NewHandler(svc)

	w := postJSON(t, h.PredictTurnover, "/predict/turnover", `{"employee":{}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp prediction.TurnoverResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.82, resp.TurnoverProbability)
	assert.Equal(t, 82.0, resp.TurnoverPercentage)
}

func TestHandler_PredictBatch(t *testing.T) {
	svc := &fakeService{
		predictBatchFn: func(ctx context.Context, employees []features.Record) (prediction.BatchResponse, error) {
			assert.Len(t, employees, 2)
			score := 3.5
			proba := 0.2
			return prediction.BatchResponse{
				Success: true,
				Count:   2,
				Predictions: []prediction.BatchPrediction{
					{EmployeeID: "emp-1", SentimentScore: &score, TurnoverProbability: &proba},
					{EmployeeID: "emp-2", Error: "invalid salary_brut"},
				},
			}, nil
		},
	}
	h := prediction.NewHandler(svc)

	w := postJSON(t, h.PredictBatch, "/predict/batch", `{"employees":[{"employee_id":"emp-1"},{"employee_id":"emp-2"}]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), "emp-2")
}

func TestHandler_PredictBatch_StructurallyInvalid(t *testing.T) {
	h := prediction.NewHandler(&fakeService{})

	w := postJSON(t, h.PredictBatch, "/predict/batch", `{"employees":"all of them"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
