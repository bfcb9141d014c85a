package predictionerrors

import (
	"net/http"

	"github.com/iamami1990/rh-platform/internal/shared/apperror"
)

var (
	ErrSentimentModelUnavailable = apperror.New(
		apperror.CodeModelUnavailable,
		"Sentiment model not loaded",
		http.StatusServiceUnavailable,
	)
	ErrTurnoverModelUnavailable = apperror.New(
		apperror.CodeModelUnavailable,
		"Turnover model not loaded",
		http.StatusServiceUnavailable,
	)
	ErrModelsUnavailable = apperror.New(
		apperror.CodeModelUnavailable,
		"Models not loaded",
		http.StatusServiceUnavailable,
	)
)
