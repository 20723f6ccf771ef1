package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/usecase"
	xhttp "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/http"
	xlogger "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
)

// PredictionHandler serves the forecast API. Response shapes are flat and
// fixed: consumers depend on the exact field set of both the success payload
// and the error envelope.
type PredictionHandler struct {
	logger  *xlogger.Logger
	service *usecase.PredictionService
	tickers []string
}

func NewPredictionHandler(logger *xlogger.Logger, service *usecase.PredictionService, tickers []string) *PredictionHandler {
	return &PredictionHandler{logger: logger, service: service, tickers: tickers}
}

func (h *PredictionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/prediction/:ticker", h.Prediction)
	g.GET("/stocks", h.Stocks)
	e.GET("/healthz", h.Health)
}

// PredictionRequest binds the ticker path parameter.
type PredictionRequest struct {
	Ticker string `param:"ticker" validate:"required,max=32"`
}

func (h *PredictionHandler) Prediction(c echo.Context) error {
	req := &PredictionRequest{}
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:  verrs[0].Message,
			Status: "error",
		})
	}

	entry, err := h.service.Predict(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("prediction failed",
			xlogger.String("ticker", req.Ticker),
			xlogger.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:  err.Error(),
			Status: "error",
		})
	}

	return c.JSON(http.StatusOK, entry)
}

// Stocks returns the fixed ticker universe as a bare JSON array.
func (h *PredictionHandler) Stocks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tickers)
}

func (h *PredictionHandler) Health(c echo.Context) error {
	status := "ok"
	if !h.service.Available() {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    status,
		"available": h.service.Available(),
	})
}
