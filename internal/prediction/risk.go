package prediction

import "math"

const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// Threshold tables must match the scales the models were trained against.
// Classification always receives the unrounded score; rounding is applied
// only when building the response.

func classifySentiment(score float64) (level, message string) {
	switch {
	case score >= 4.0:
		return RiskLow, "Employee satisfied and engaged"
	case score >= 3.0:
		return RiskModerate, "Employee moderately satisfied"
	default:
		return RiskHigh, "Employee at risk - attention required"
	}
}

func classifyTurnover(probability float64) (level, message string) {
	switch {
	case probability >= 0.7:
		return RiskHigh, "High risk of departure - immediate action recommended"
	case probability >= 0.4:
		return RiskModerate, "Moderate risk - monitoring advised"
	default:
		return RiskLow, "Low risk of departure"
	}
}

func round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
