package api

import (
	"errors"
	"net/http"

	"SentiDash/internal/domain/models"
	"SentiDash/internal/usecase"
	xhttp "SentiDash/pkg/http"
	xlogger "SentiDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictionsEchoHandler exposes the prediction orchestration layer over
// HTTP. The dashboard frontend renders whatever comes back; per-symbol
// failures are serialized, never turned into request-level errors.
type PredictionsEchoHandler struct {
	logger    *xlogger.Logger
	predictor *usecase.Predictor
}

func NewPredictionsEchoHandler(logger *xlogger.Logger, predictor *usecase.Predictor) *PredictionsEchoHandler {
	return &PredictionsEchoHandler{logger: logger, predictor: predictor}
}

func (h *PredictionsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.GET("/predict/:symbol", h.Predict)
	g.POST("/compare", h.Compare)
	g.GET("/model/info", h.ModelInfo)
	g.DELETE("/cache", h.ClearCache)
}

func (h *PredictionsEchoHandler) Health(c echo.Context) error {
	req := &models.HealthParams{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	health := h.predictor.Health(c.Request().Context(), req.BaseURL)
	return xhttp.SuccessResponse(c, health)
}

func (h *PredictionsEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictParams{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictor.Predict(c.Request().Context(), req.BaseURL, req.Symbol, req.Refresh)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) Compare(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	batch, err := h.predictor.Compare(c.Request().Context(), req.BaseURL, req.Symbols)
	if err != nil {
		return h.errorResponse(c, err)
	}
	// All-failed batches are still 200: the frontend decides how to
	// render them.
	return xhttp.SuccessResponse(c, batch)
}

func (h *PredictionsEchoHandler) ModelInfo(c echo.Context) error {
	req := &models.HealthParams{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	info, fail := h.predictor.ModelInfo(c.Request().Context(), req.BaseURL)
	if fail != nil {
		return h.errorResponse(c, fail)
	}
	return xhttp.SuccessResponse(c, info)
}

func (h *PredictionsEchoHandler) ClearCache(c echo.Context) error {
	req := &models.ClearCacheParams{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.predictor.ClearCache(c.Request().Context(), req.BaseURL); err != nil {
		h.logger.Error("cache clear error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("cache clear failed").WithError(err))
	}
	return xhttp.NoContentResponse(c)
}

// errorResponse maps orchestration errors onto HTTP statuses: caller
// mistakes are 400, upstream trouble is 502 with the failure record
// attached for display.
func (h *PredictionsEchoHandler) errorResponse(c echo.Context, err error) error {
	var invalid *models.InvalidRequestError
	if errors.As(err, &invalid) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(invalid.Message))
	}

	var fail *models.FailureRecord
	if errors.As(err, &fail) {
		return xhttp.DataResponse(c, http.StatusBadGateway, fail)
	}

	h.logger.Error("predictor error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
