package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iamami1990/rh-platform/internal/features"

	"go.uber.org/zap"
)

const (
	SentimentModelFile = "sentiment_model.json"
	TurnoverModelFile  = "turnover_model.json"
	ScalerFile         = "scaler.json"
)

// Registry holds the three artifacts for the lifetime of the process. A nil
// field means the artifact failed to load; downstream operations check for
// that instead of assuming presence. The registry is read-only after Load,
// so concurrent request handlers share it without locking.
type Registry struct {
	Sentiment Regressor
	Turnover  Classifier
	Scaler    Scaler
}

// Loaded reports whether both models are available. The scaler is optional:
// serving degrades to raw features without it.
func (r *Registry) Loaded() bool {
	return r.Sentiment != nil && r.Turnover != nil
}

// Load reads all artifacts from dir. Individual load failures are logged
// and leave the slot empty; Load itself never fails so the service can come
// up degraded rather than crash.
func Load(dir string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := &Registry{}

	var sentiment GradientBoostedRegressor
	if err := loadJSON(filepath.Join(dir, SentimentModelFile), &sentiment); err != nil {
		logger.Warn("⚠️ sentiment model not loaded", zap.Error(err))
	} else {
		reg.Sentiment = &sentiment
		logger.Info("✅ sentiment model loaded",
			zap.String("version", sentiment.Version),
			zap.Int("trees", len(sentiment.Trees)),
		)
	}

	var turnover GradientBoostedClassifier
	if err := loadJSON(filepath.Join(dir, TurnoverModelFile), &turnover); err != nil {
		logger.Warn("⚠️ turnover model not loaded", zap.Error(err))
	} else {
		reg.Turnover = &turnover
		logger.Info("✅ turnover model loaded",
			zap.String("version", turnover.Version),
			zap.Int("trees", len(turnover.Trees)),
		)
	}

	var scaler StandardScaler
	if err := loadScaler(filepath.Join(dir, ScalerFile), &scaler); err != nil {
		logger.Warn("⚠️ scaler not loaded, serving on raw features", zap.Error(err))
	} else {
		reg.Scaler = &scaler
		logger.Info("✅ feature scaler loaded")
	}

	return reg
}

func loadScaler(path string, scaler *StandardScaler) error {
	if err := loadJSON(path, scaler); err != nil {
		return err
	}
	// The exported feature_names pin the training contract; refuse a scaler
	// fit on a different schema rather than silently corrupt predictions.
	if len(scaler.FeatureNames) > 0 {
		if len(scaler.FeatureNames) != features.Count {
			return fmt.Errorf("scaler fit on %d features, serving contract has %d", len(scaler.FeatureNames), features.Count)
		}
		for i, name := range scaler.FeatureNames {
			if name != features.Names[i] {
				return fmt.Errorf("scaler feature %d is %q, serving contract expects %q", i, name, features.Names[i])
			}
		}
	}
	return nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
