package prediction

import "github.com/iamami1990/rh-platform/internal/features"

type PredictRequest struct {
	Employee features.Record `json:"employee"`
}

type BatchRequest struct {
	Employees []features.Record `json:"employees"`
}

type SentimentResponse struct {
	Success        bool     `json:"success"`
	SentimentScore float64  `json:"sentiment_score"`
	RiskLevel      string   `json:"risk_level"`
	Message        string   `json:"message"`
	FeaturesUsed   []string `json:"features_used"`
	Timestamp      string   `json:"timestamp"`
}

type TurnoverResponse struct {
	Success             bool    `json:"success"`
	TurnoverProbability float64 `json:"turnover_probability"`
	TurnoverPercentage  float64 `json:"turnover_percentage"`
	RiskLevel           string  `json:"risk_level"`
	Message             string  `json:"message"`
	Timestamp           string  `json:"timestamp"`
}

// BatchPrediction is one batch result slot. A record whose derivation or
// inference fails keeps its position with Error set and the scores empty.
type BatchPrediction struct {
	EmployeeID          any      `json:"employee_id"`
	SentimentScore      *float64 `json:"sentiment_score,omitempty"`
	TurnoverProbability *float64 `json:"turnover_probability,omitempty"`
	Error               string   `json:"error,omitempty"`
}

type BatchResponse struct {
	Success     bool              `json:"success"`
	Count       int               `json:"count"`
	Predictions []BatchPrediction `json:"predictions"`
	Timestamp   string            `json:"timestamp"`
}
