package app

import (
	"os"
	"strings"

	"github.com/iamami1990/rh-platform/internal/model"
	"github.com/iamami1990/rh-platform/internal/prediction"
	"github.com/iamami1990/rh-platform/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultServiceName = "Olympia ML Service"

func BuildApp(router *gin.Engine) error {
	logger := zap.L()

	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = "models"
	}
	registry := model.Load(modelDir, logger)
	if !registry.Loaded() {
		logger.Warn("serving degraded: one or more models missing", zap.String("model_dir", modelDir))
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		rdb = client
	}

	var publisher prediction.EventPublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		writer := &kafkago.Writer{
			Addr:     kafkago.TCP(strings.Split(brokers, ",")...),
			Balancer: &kafkago.LeastBytes{},
		}
		publisher = prediction.NewKafkaEventPublisher(writer)
		logger.Info("prediction event publishing enabled", zap.String("brokers", brokers))
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	return registerModules(router, registry, rdb, publisher, serviceName)
}
