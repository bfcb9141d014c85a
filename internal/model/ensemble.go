package model

import (
	"errors"
	"fmt"
	"math"
)

// TreeNode is one node of a regression tree. Left == -1 marks a leaf, in
// which case Value holds the output. Internal nodes route to Left when
// x[Feature] <= Threshold.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t Tree) eval(x []float64) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, errors.New("empty tree")
	}
	idx := 0
	for range t.Nodes {
		node := t.Nodes[idx]
		if node.Left < 0 {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(x) {
			return 0, fmt.Errorf("tree references feature %d outside vector of size %d", node.Feature, len(x))
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("tree child index %d out of range", idx)
		}
	}
	return 0, errors.New("tree traversal did not reach a leaf")
}

// GradientBoostedRegressor sums tree outputs on top of a base score.
type GradientBoostedRegressor struct {
	Version     string  `json:"model_version"`
	NumFeatures int     `json:"num_features"`
	BaseScore   float64 `json:"base_score"`
	Trees       []Tree  `json:"trees"`
}

func (m *GradientBoostedRegressor) Predict(features []float64) (float64, error) {
	if err := checkWidth(m.NumFeatures, len(features)); err != nil {
		return 0, err
	}
	score := m.BaseScore
	for _, t := range m.Trees {
		out, err := t.eval(features)
		if err != nil {
			return 0, err
		}
		score += out
	}
	return score, nil
}

// GradientBoostedClassifier accumulates a raw margin the same way and maps
// it through a sigmoid into the positive-class probability.
type GradientBoostedClassifier struct {
	Version     string  `json:"model_version"`
	NumFeatures int     `json:"num_features"`
	BaseScore   float64 `json:"base_score"`
	Trees       []Tree  `json:"trees"`
}

func (m *GradientBoostedClassifier) PredictProba(features []float64) ([]float64, error) {
	if err := checkWidth(m.NumFeatures, len(features)); err != nil {
		return nil, err
	}
	margin := m.BaseScore
	for _, t := range m.Trees {
		out, err := t.eval(features)
		if err != nil {
			return nil, err
		}
		margin += out
	}
	p := sigmoid(margin)
	return []float64{1 - p, p}, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func checkWidth(want, got int) error {
	if want > 0 && want != got {
		return fmt.Errorf("model expects %d features, got %d", want, got)
	}
	return nil
}
