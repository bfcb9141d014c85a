package model

// Capability interfaces over the pretrained artifacts. Implementations are
// loaded from JSON exports at startup; tests substitute stubs.

// Regressor produces a scalar score, used by the sentiment model.
type Regressor interface {
	Predict(features []float64) (float64, error)
}

// Classifier produces a two-class probability distribution, used by the
// turnover model. Index 1 carries the departure class.
type Classifier interface {
	PredictProba(features []float64) ([]float64, error)
}

// Scaler replays the standardization fit during training.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}
