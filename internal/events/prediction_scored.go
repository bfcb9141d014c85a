package events

import "time"

const PredictionScoredTopic = "hr.ml.prediction.scored.v1"

type PredictionScoredEvent struct {
	EventType      string    `json:"event_type"`
	EventID        string    `json:"event_id"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id,omitempty"`
	PredictionType string    `json:"prediction_type"`
	Score          float64   `json:"score"`
	RiskLevel      string    `json:"risk_level"`
	OccurredAt     time.Time `json:"occurred_at"`
}
