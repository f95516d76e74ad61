// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strings"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/app/middleware"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
	"github.com/gofiber/fiber/v3"
)

// TrackingHandlerInterface defines the contract for public tracking handlers
type TrackingHandlerInterface interface {
	Search(c fiber.Ctx) error
}

// TrackingHandler handles the public cargo lookup endpoint
type TrackingHandler struct {
	searchFlow businessflow.TrackingSearchFlow
}

// NewTrackingHandler creates a new public tracking handler
func NewTrackingHandler(searchFlow businessflow.TrackingSearchFlow) *TrackingHandler {
	return &TrackingHandler{searchFlow: searchFlow}
}

func (h *TrackingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *TrackingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Search handles the public cargo lookup
// @Summary Track cargo
// @Description Look up shipments by tracking number or shipping mark. Multiple terms may be comma-separated.
// @Tags Tracking
// @Produce json
// @Param term path string true "Tracking number or shipping mark (comma-separated for multiple)"
// @Success 200 {object} dto.APIResponse{data=dto.TrackingSearchResponse} "Matching records"
// @Failure 400 {object} dto.APIResponse "Invalid search term"
// @Failure 404 {object} dto.APIResponse "No matching records"
// @Failure 503 {object} dto.APIResponse "Search temporarily unavailable"
// @Router /api/v1/tracking/{term} [get]
func (h *TrackingHandler) Search(c fiber.Ctx) error {
	term := c.Params("term")

	result, err := h.searchFlow.Search(createRequestContext(c, "/api/v1/tracking/:term"), term, clientMetadata(c))
	if err != nil {
		if businessflow.IsSearchTermRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Search term is required", "SEARCH_TERM_REQUIRED", nil)
		}
		if businessflow.IsSearchTermTooLong(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Search term is too long", "SEARCH_TERM_TOO_LONG", nil)
		}
		if businessflow.IsTooManySearchTerms(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Too many search terms", "TOO_MANY_SEARCH_TERMS", nil)
		}
		if businessflow.IsSearchUnavailable(err) {
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Search is temporarily unavailable, please retry", "SEARCH_UNAVAILABLE", nil)
		}

		log.Println("Tracking search failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Search failed", "SEARCH_FAILED", nil)
	}

	// The query may hold several comma-separated terms, each with its own
	// classification, so the counters are bumped per term.
	for _, piece := range strings.Split(term, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		middleware.RecordSearch(businessflow.ClassifySearchTerm(piece), result.Found)
	}

	if !result.Found {
		return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
			Success: false,
			Message: result.Message,
			Data:    result,
		})
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
