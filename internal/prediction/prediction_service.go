package prediction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/iamami1990/rh-platform/internal/events"
	"github.com/iamami1990/rh-platform/internal/features"
	"github.com/iamami1990/rh-platform/internal/model"
	predictionerrors "github.com/iamami1990/rh-platform/internal/prediction/errors"
	"github.com/iamami1990/rh-platform/internal/shared/apperror"
	"github.com/iamami1990/rh-platform/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Service interface {
	PredictSentiment(ctx context.Context, employee features.Record) (SentimentResponse, error)
	PredictTurnover(ctx context.Context, employee features.Record) (TurnoverResponse, error)
	PredictBatch(ctx context.Context, employees []features.Record) (BatchResponse, error)
}

type service struct {
	registry  *model.Registry
	publisher EventPublisher
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(registry *model.Registry, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithPublisher(registry, nil, rdb, logger...)
}

func NewServiceWithPublisher(
	registry *model.Registry,
	publisher EventPublisher,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &service{
		registry:  registry,
		publisher: publisher,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) PredictSentiment(ctx context.Context, employee features.Record) (SentimentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if s.registry.Sentiment == nil {
		s.logger.Warn("sentiment prediction requested without model", zap.String("request_id", rid))
		return SentimentResponse{}, predictionerrors.ErrSentimentModelUnavailable
	}

	key := cacheKey("sentiment", employee)
	if cached, ok := cacheGet[SentimentResponse](ctx, s.rdb, key); ok {
		return cached, nil
	}

	v, err := s.doOnce(key, func() (interface{}, error) {
		score, err := s.scoreSentiment(employee)
		if err != nil {
			s.logger.Warn("sentiment prediction failed", zap.String("request_id", rid), zap.Error(err))
			return nil, err
		}

		level, message := classifySentiment(score)
		resp := SentimentResponse{
			Success:        true,
			SentimentScore: round(score, 2),
			RiskLevel:      level,
			Message:        message,
			FeaturesUsed:   features.Names,
			Timestamp:      s.now().UTC().Format(time.RFC3339),
		}

		s.cacheSet(ctx, key, resp)
		s.publishScored(ctx, employee, "sentiment", score, level)

		s.logger.Info("sentiment prediction scored",
			zap.String("request_id", rid),
			zap.Float64("score", resp.SentimentScore),
			zap.String("risk_level", level),
		)
		return resp, nil
	})
	if err != nil {
		return SentimentResponse{}, err
	}
	return v.(SentimentResponse), nil
}

func (s *service) PredictTurnover(ctx context.Context, employee features.Record) (TurnoverResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if s.registry.Turnover == nil {
		s.logger.Warn("turnover prediction requested without model", zap.String("request_id", rid))
		return TurnoverResponse{}, predictionerrors.ErrTurnoverModelUnavailable
	}

	key := cacheKey("turnover", employee)
	if cached, ok := cacheGet[TurnoverResponse](ctx, s.rdb, key); ok {
		return cached, nil
	}

	v, err := s.doOnce(key, func() (interface{}, error) {
		probability, err := s.scoreTurnover(employee)
		if err != nil {
			s.logger.Warn("turnover prediction failed", zap.String("request_id", rid), zap.Error(err))
			return nil, err
		}

		level, message := classifyTurnover(probability)
		resp := TurnoverResponse{
			Success:             true,
			TurnoverProbability: round(probability, 3),
			TurnoverPercentage:  round(probability*100, 1),
			RiskLevel:           level,
			Message:             message,
			Timestamp:           s.now().UTC().Format(time.RFC3339),
		}

		s.cacheSet(ctx, key, resp)
		s.publishScored(ctx, employee, "turnover", probability, level)

		s.logger.Info("turnover prediction scored",
			zap.String("request_id", rid),
			zap.Float64("probability", resp.TurnoverProbability),
			zap.String("risk_level", level),
		)
		return resp, nil
	})
	if err != nil {
		return TurnoverResponse{}, err
	}
	return v.(TurnoverResponse), nil
}

func (s *service) PredictBatch(ctx context.Context, employees []features.Record) (BatchResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !s.registry.Loaded() {
		s.logger.Warn("batch prediction requested without models", zap.String("request_id", rid))
		return BatchResponse{}, predictionerrors.ErrModelsUnavailable
	}

	predictions := make([]BatchPrediction, 0, len(employees))
	failed := 0
	for _, employee := range employees {
		item := BatchPrediction{EmployeeID: employee.EmployeeID()}

		sentiment, probability, err := s.scoreBoth(employee)
		if err != nil {
			// One bad record never fails the batch: it keeps its slot with
			// the cause attached while the rest still score.
			item.Error = err.Error()
			failed++
		} else {
			score := round(sentiment, 2)
			proba := round(probability, 3)
			item.SentimentScore = &score
			item.TurnoverProbability = &proba
		}
		predictions = append(predictions, item)
	}

	s.logger.Info("batch prediction completed",
		zap.String("request_id", rid),
		zap.Int("count", len(predictions)),
		zap.Int("failed", failed),
	)

	return BatchResponse{
		Success:     true,
		Count:       len(predictions),
		Predictions: predictions,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
	}, nil
}

// doOnce collapses concurrent identical requests behind one computation.
func (s *service) doOnce(key string, fn func() (interface{}, error)) (interface{}, error) {
	if key == "" {
		return fn()
	}
	v, err, _ := s.sf.Do(key, fn)
	return v, err
}

// deriveScaled derives the feature vector and applies the scaler when one is
// loaded. Serving continues on raw features without it.
func (s *service) deriveScaled(employee features.Record) ([]float64, error) {
	vec, err := features.Derive(employee, s.now())
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	}
	x := vec.Values()
	if s.registry.Scaler == nil {
		return x, nil
	}
	scaled, err := s.registry.Scaler.Transform(x)
	if err != nil {
		return nil, err
	}
	return scaled, nil
}

func (s *service) scoreSentiment(employee features.Record) (float64, error) {
	x, err := s.deriveScaled(employee)
	if err != nil {
		return 0, err
	}
	return s.registry.Sentiment.Predict(x)
}

func (s *service) scoreTurnover(employee features.Record) (float64, error) {
	x, err := s.deriveScaled(employee)
	if err != nil {
		return 0, err
	}
	proba, err := s.registry.Turnover.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if len(proba) < 2 {
		return 0, errors.New("turnover model returned a malformed distribution")
	}
	return proba[1], nil
}

func (s *service) scoreBoth(employee features.Record) (sentiment, turnover float64, err error) {
	x, err := s.deriveScaled(employee)
	if err != nil {
		return 0, 0, err
	}
	sentiment, err = s.registry.Sentiment.Predict(x)
	if err != nil {
		return 0, 0, err
	}
	proba, err := s.registry.Turnover.PredictProba(x)
	if err != nil {
		return 0, 0, err
	}
	if len(proba) < 2 {
		return 0, 0, errors.New("turnover model returned a malformed distribution")
	}
	return sentiment, proba[1], nil
}

func (s *service) publishScored(
	ctx context.Context,
	employee features.Record,
	predictionType string,
	score float64,
	level string,
) {
	event := events.PredictionScoredEvent{
		EventType:      "prediction_scored",
		EventID:        uuid.NewString(),
		RequestID:      contextutil.GetRequestID(ctx),
		EmployeeID:     employeeIDString(employee),
		PredictionType: predictionType,
		Score:          score,
		RiskLevel:      level,
		OccurredAt:     s.now().UTC(),
	}
	if err := s.publisher.PublishPredictionScored(ctx, event); err != nil {
		s.logger.Warn("publish prediction scored failed",
			zap.String("prediction_type", predictionType),
			zap.Error(err),
		)
	}
}
