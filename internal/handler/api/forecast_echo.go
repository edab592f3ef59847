package api

import (
	"errors"

	"MacroSim/internal/domain/models"
	"MacroSim/internal/services/predict"
	"MacroSim/internal/usecase"
	xhttp "MacroSim/pkg/http"
	xlogger "MacroSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler implements Echo-based HTTP handlers for the
// forecast API.
type ForecastEchoHandler struct {
	logger *xlogger.Logger
	fc     *usecase.Forecaster
}

func NewForecastEchoHandler(logger *xlogger.Logger, fc *usecase.Forecaster) *ForecastEchoHandler {
	return &ForecastEchoHandler{logger: logger, fc: fc}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/forecast", h.Forecast)
	g.GET("/lagstate", h.LagState)
	g.GET("/health", h.Health)
}

// Forecast serves one bounded next-period forecast per target for the
// posted lending rate.
func (h *ForecastEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.fc.Forecast(c.Request().Context(), *req.LendingRate)
	if err != nil {
		return h.forecastError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) forecastError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, predict.ErrInvalidLever):
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("ERR_INVALID_LEVER", "lending_rate", err.Error(), 400).WithError(err))
	case errors.Is(err, predict.ErrModelNotLoaded):
		h.logger.Error("forecast without loaded models", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("models not loaded").WithError(err))
	default:
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

// LagState exposes the last complete master row backing every forecast.
func (h *ForecastEchoHandler) LagState(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.fc.LagState())
}

// Health reports serving readiness.
func (h *ForecastEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.HealthResponse{
		Status:       "ok",
		ModelsLoaded: len(models.Targets()),
		LagYear:      h.fc.LagState().Year,
	})
}
