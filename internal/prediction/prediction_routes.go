package prediction

import (
	"github.com/iamami1990/rh-platform/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.Engine, h *Handler) {
	predict := r.Group("/predict")
	predict.Use(middleware.RateLimitByIP(rate.Limit(50), 100))
	{
		predict.POST("/sentiment", h.PredictSentiment)
		predict.POST("/turnover", h.PredictTurnover)
		predict.POST("/batch", h.PredictBatch)
	}
}
