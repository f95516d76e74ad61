// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/gofiber/fiber/v3"
)

// SearchLogAdminHandlerInterface defines the contract for search analytics handlers
type SearchLogAdminHandlerInterface interface {
	Logs(c fiber.Ctx) error
	Heatmap(c fiber.Ctx) error
	Stats(c fiber.Ctx) error
}

// SearchLogAdminHandler exposes the search audit trail and aggregates to staff
type SearchLogAdminHandler struct {
	analyticsFlow businessflow.SearchAnalyticsFlow
}

// NewSearchLogAdminHandler creates a new search analytics handler
func NewSearchLogAdminHandler(analyticsFlow businessflow.SearchAnalyticsFlow) *SearchLogAdminHandler {
	return &SearchLogAdminHandler{analyticsFlow: analyticsFlow}
}

func (h *SearchLogAdminHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *SearchLogAdminHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Logs lists search log entries, newest first
// @Summary List search logs
// @Description List visitor search log entries with optional type and outcome filters
// @Tags Search Analytics
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param type query string false "Search type filter" Enums(tracking_number, shipping_mark)
// @Param success query bool false "Outcome filter"
// @Success 200 {object} dto.APIResponse{data=dto.SearchLogListResponse} "One page of log entries"
// @Failure 400 {object} dto.APIResponse "Invalid parameters"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/search-logs [get]
func (h *SearchLogAdminHandler) Logs(c fiber.Ctx) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	filter := models.SearchLogFilter{}
	switch searchType := c.Query("type"); searchType {
	case "":
	case models.SearchTypeTrackingNumber, models.SearchTypeShippingMark:
		filter.SearchType = &searchType
	default:
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Unknown search type filter", "INVALID_SEARCH_TYPE", nil)
	}
	switch c.Query("success") {
	case "":
	case "true":
		t := true
		filter.Success = &t
	case "false":
		f := false
		filter.Success = &f
	default:
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Success filter must be true or false", "INVALID_SUCCESS_FILTER", nil)
	}

	result, err := h.analyticsFlow.ListLogs(createRequestContext(c, "/api/v1/admin/search-logs"), filter, page, limit)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}

		log.Println("Search log listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list search logs", "SEARCH_LOGS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Search logs retrieved", result)
}

// Heatmap returns per-day search volumes over a trailing window
// @Summary Search volume heatmap
// @Description Per-day search counts over the trailing N days, zero-filled for quiet days
// @Tags Search Analytics
// @Produce json
// @Param days query int false "Window size in days" default(30) maximum(365)
// @Success 200 {object} dto.APIResponse{data=dto.SearchHeatmapResponse} "Per-day series"
// @Failure 400 {object} dto.APIResponse "Invalid window"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/search-heatmap [get]
func (h *SearchLogAdminHandler) Heatmap(c fiber.Ctx) error {
	days := queryInt(c, "days", 0)

	result, err := h.analyticsFlow.Heatmap(createRequestContext(c, "/api/v1/admin/search-heatmap"), days)
	if err != nil {
		if businessflow.IsInvalidDateRange(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid heatmap window", "INVALID_DATE_RANGE", nil)
		}

		log.Println("Search heatmap failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build search heatmap", "SEARCH_HEATMAP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Search heatmap retrieved", result)
}

// Stats returns all-time search totals
// @Summary Search statistics
// @Description All-time totals across the daily search aggregates
// @Tags Search Analytics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SearchStatsResponse} "Aggregate totals"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/search-stats [get]
func (h *SearchLogAdminHandler) Stats(c fiber.Ctx) error {
	result, err := h.analyticsFlow.Stats(createRequestContext(c, "/api/v1/admin/search-stats"))
	if err != nil {
		log.Println("Search stats failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load search statistics", "SEARCH_STATS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Search statistics retrieved", result)
}
