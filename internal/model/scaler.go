package model

import "fmt"

// StandardScaler replays (x - mean) / scale per feature, as fit during
// training. A zero scale entry passes the raw value through, matching how
// the training side handles zero-variance columns.
type StandardScaler struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(s.Mean) != len(features) || len(s.Scale) != len(features) {
		return nil, fmt.Errorf("scaler fit on %d features, got %d", len(s.Mean), len(features))
	}
	out := make([]float64, len(features))
	for i, x := range features {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (x - s.Mean[i]) / scale
	}
	return out, nil
}
