package health

import (
	"net/http"
	"time"

	"github.com/iamami1990/rh-platform/internal/model"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Models    string `json:"models"`
	Timestamp string `json:"timestamp"`
}

type Handler struct {
	registry    *model.Registry
	serviceName string
}

func NewHandler(registry *model.Registry, serviceName string) *Handler {
	return &Handler{registry: registry, serviceName: serviceName}
}

func (h *Handler) Check(c *gin.Context) {
	models := "not loaded"
	if h.registry.Loaded() {
		models = "loaded"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Service:   h.serviceName,
		Models:    models,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Check)
}
