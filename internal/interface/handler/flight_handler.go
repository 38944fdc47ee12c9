package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/usecase"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/logger"
)

// FlightService is what the HTTP layer needs from the unification service
type FlightService interface {
	Unify(ctx context.Context, provider string, payload map[string]interface{}) (*usecase.UnifyResult, error)
	UnifyAll(ctx context.Context, payloads map[string]map[string]interface{}) ([]*usecase.UnifyResult, error)
	Offers(ctx context.Context, baseFlightID string) ([]entity.OfferSummary, error)
}

// ProviderInfo describes one supported provider
type ProviderInfo struct {
	Name        entity.Provider `json:"name"`
	DisplayName string          `json:"display_name"`
	Path        string          `json:"path"`
}

// FlightHandler serves the unification API. Responses only ever carry
// records that passed the validity filter.
type FlightHandler struct {
	service   FlightService
	providers []entity.Provider
	logger    logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(service FlightService, providers []entity.Provider, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		service:   service,
		providers: providers,
		logger:    logger,
	}
}

// UnifyProvider converts the raw provider response in the request body
func (h *FlightHandler) UnifyProvider(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Echo().JSONSerializer.Deserialize(c, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body must be a JSON object"})
	}

	res, err := h.service.Unify(c.Request().Context(), c.Param("provider"), payload)
	if err != nil {
		return h.unifyError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// UnifyMany converts several provider responses at once. The body maps
// provider names to their raw responses.
func (h *FlightHandler) UnifyMany(c echo.Context) error {
	var payloads map[string]map[string]interface{}
	if err := c.Echo().JSONSerializer.Deserialize(c, &payloads); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body must map provider names to JSON objects"})
	}
	if len(payloads) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no provider responses given"})
	}

	results, err := h.service.UnifyAll(c.Request().Context(), payloads)
	if err != nil {
		return h.unifyError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// GetOffers lists every provider's offer for one physical flight
func (h *FlightHandler) GetOffers(c echo.Context) error {
	baseFlightID := c.Param("baseFlightId")
	offers, err := h.service.Offers(c.Request().Context(), baseFlightID)
	if err != nil {
		h.logger.Error("Failed to list offers", "baseFlightID", baseFlightID, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"base_flight_id": baseFlightID,
		"offers":         offers,
	})
}

// ListProviders returns the supported providers and their unify endpoints
func (h *FlightHandler) ListProviders(c echo.Context) error {
	items := make([]ProviderInfo, 0, len(h.providers))
	for _, p := range h.providers {
		items = append(items, ProviderInfo{
			Name:        p,
			DisplayName: p.DisplayName(),
			Path:        "/unified/" + p.String(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Health is the liveness probe
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *FlightHandler) unifyError(c echo.Context, err error) error {
	if errors.Is(err, converter.ErrUnknownProvider) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	if errors.Is(err, usecase.ErrDuplicateProvider) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	h.logger.Error("Failed to unify flights", "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store flights"})
}
