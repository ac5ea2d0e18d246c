package api

import (
	"errors"
	"net/http"

	"RetailPrice/internal/domain/models"
	domsvc "RetailPrice/internal/domain/service"
	xhttp "RetailPrice/pkg/http"
	"RetailPrice/pkg/http/middleware"
	xlogger "RetailPrice/pkg/logger"

	"github.com/labstack/echo/v4"
)

var serviceInfo = xhttp.ServiceInfo{
	Title:       "Retail Price Predictor API",
	Description: "Predicts retail product prices from store, demand and market features.",
	Version:     "1.0.0",
}

// PriceEchoHandler serves the prediction endpoint and service metadata.
type PriceEchoHandler struct {
	logger    *xlogger.Logger
	predictor domsvc.PricePredictor
	info      models.ArtifactInfo
}

func NewPriceEchoHandler(logger *xlogger.Logger, predictor domsvc.PricePredictor, info models.ArtifactInfo) *PriceEchoHandler {
	return &PriceEchoHandler{logger: logger, predictor: predictor, info: info}
}

func (h *PriceEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Info)
	e.GET("/health", h.Health)
	e.GET("/model", h.Model)
	e.POST("/predict_price", h.PredictPrice)
}

// PredictPrice validates the body, runs inference and returns the rounded price.
// Rejected bodies never reach the predictor.
func (h *PriceEchoHandler) PredictPrice(c echo.Context) error {
	req := &models.PriceQueryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	res, err := h.predictor.PredictPrice(c.Request().Context(), req.Query())
	if err != nil {
		l := h.logger.With(xlogger.String("request_id", middleware.GetRequestID(c)))
		l.Error("prediction failed", xlogger.Error(err))
		var ie *models.InferenceError
		if errors.As(err, &ie) {
			return xhttp.InternalServerErrorResponse(c, ie.Error())
		}
		return xhttp.InternalServerErrorResponse(c, models.NewInferenceError(models.StagePredict, err).Error())
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PriceEchoHandler) Info(c echo.Context) error {
	return xhttp.SuccessResponse(c, serviceInfo)
}

func (h *PriceEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PriceEchoHandler) Model(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.info)
}

var _ xhttp.Handler = (*PriceEchoHandler)(nil)
