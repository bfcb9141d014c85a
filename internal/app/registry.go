package app

import (
	"github.com/iamami1990/rh-platform/internal/health"
	"github.com/iamami1990/rh-platform/internal/middleware"
	"github.com/iamami1990/rh-platform/internal/model"
	"github.com/iamami1990/rh-platform/internal/prediction"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func registerModules(
	router *gin.Engine,
	registry *model.Registry,
	rdb *redis.Client,
	publisher prediction.EventPublisher,
	serviceName string,
) error {
	router.Use(middleware.RequestID())

	// --- Services ---
	predictionService := prediction.NewServiceWithPublisher(registry, publisher, rdb)

	// --- Handlers ---
	predictionHandler := prediction.NewHandler(predictionService)
	healthHandler := health.NewHandler(registry, serviceName)

	// --- Routes Registration ---
	health.RegisterRoutes(router, healthHandler)
	prediction.RegisterRoutes(router, predictionHandler)

	return nil
}
