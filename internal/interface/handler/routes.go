package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the API and operational endpoints on e
func RegisterRoutes(e *echo.Echo, h *FlightHandler, metricsHandler http.Handler) {
	e.GET("/health", Health)
	e.GET("/metrics", echo.WrapHandler(metricsHandler))

	e.GET("/providers", h.ListProviders)
	e.POST("/unified", h.UnifyMany)
	e.POST("/unified/:provider", h.UnifyProvider)
	e.GET("/flights/:baseFlightId/offers", h.GetOffers)
}
