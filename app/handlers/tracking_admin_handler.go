// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"io"
	"log"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// TrackingAdminHandlerInterface defines the contract for staff tracking handlers
type TrackingAdminHandlerInterface interface {
	List(c fiber.Ctx) error
	Search(c fiber.Ctx) error
	Upload(c fiber.Ctx) error
	UploadFile(c fiber.Ctx) error
	Export(c fiber.Ctx) error
	BulkDelete(c fiber.Ctx) error
	Cleanup(c fiber.Ctx) error
	Sync(c fiber.Ctx) error
	SyncStatus(c fiber.Ctx) error
}

// TrackingAdminHandler handles staff-facing tracking data management
type TrackingAdminHandler struct {
	adminFlow     businessflow.TrackingAdminFlow
	syncFlow      businessflow.TrackingSyncFlow
	retentionFlow businessflow.RetentionFlow
	validator     *validator.Validate
}

// NewTrackingAdminHandler creates a new tracking admin handler
func NewTrackingAdminHandler(
	adminFlow businessflow.TrackingAdminFlow,
	syncFlow businessflow.TrackingSyncFlow,
	retentionFlow businessflow.RetentionFlow,
) *TrackingAdminHandler {
	return &TrackingAdminHandler{
		adminFlow:     adminFlow,
		syncFlow:      syncFlow,
		retentionFlow: retentionFlow,
		validator:     validator.New(),
	}
}

func (h *TrackingAdminHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *TrackingAdminHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List returns one page of the full dataset
// @Summary List tracking records
// @Description List all tracking records, newest first
// @Tags Tracking Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.TrackingListResponse} "One page of records"
// @Failure 400 {object} dto.APIResponse "Invalid pagination"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking [get]
func (h *TrackingAdminHandler) List(c fiber.Ctx) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	result, err := h.adminFlow.List(createRequestContext(c, "/api/v1/admin/tracking"), page, limit)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}

		log.Println("Tracking list failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list tracking records", "LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tracking records retrieved", result)
}

// Search runs the unwindowed staff search
// @Summary Search tracking records (staff)
// @Description Substring search over tracking numbers and shipping marks without the public visibility window
// @Tags Tracking Admin
// @Produce json
// @Param term path string true "Search term"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.AdminTrackingSearchResponse} "Matching records"
// @Failure 400 {object} dto.APIResponse "Invalid parameters"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking/search/{term} [get]
func (h *TrackingAdminHandler) Search(c fiber.Ctx) error {
	term := c.Params("term")
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	result, err := h.adminFlow.Search(createRequestContext(c, "/api/v1/admin/tracking/search/:term"), term, page, limit)
	if err != nil {
		if businessflow.IsSearchTermRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Search term is required", "SEARCH_TERM_REQUIRED", nil)
		}
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}

		log.Println("Admin tracking search failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Search failed", "SEARCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Search completed", result)
}

// Upload appends pre-parsed rows to the dataset
// @Summary Upload tracking rows
// @Description Append a batch of pre-parsed spreadsheet rows. Dates are normalized and ETAs derived on ingest.
// @Tags Tracking Admin
// @Accept json
// @Produce json
// @Param request body dto.UploadTrackingRequest true "Rows to append"
// @Success 200 {object} dto.APIResponse{data=dto.UploadTrackingResponse} "Upload accepted"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking/upload [post]
func (h *TrackingAdminHandler) Upload(c fiber.Ctx) error {
	var req dto.UploadTrackingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.adminFlow.Upload(createRequestContext(c, "/api/v1/admin/tracking/upload"), &req)
	if err != nil {
		if businessflow.IsNoTrackingRows(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No usable rows in upload", "NO_USABLE_ROWS", nil)
		}

		log.Println("Tracking upload failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Upload failed", "UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UploadFile appends rows parsed from a raw .xlsx workbook
// @Summary Upload tracking spreadsheet
// @Description Append rows from a multipart .xlsx file. Headers are matched fuzzily in English or Chinese.
// @Tags Tracking Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file (.xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.UploadTrackingResponse} "Upload accepted"
// @Failure 400 {object} dto.APIResponse "Unreadable or empty spreadsheet"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking/upload-file [post]
func (h *TrackingAdminHandler) UploadFile(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Spreadsheet file is required", "FILE_REQUIRED", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Spreadsheet file could not be opened", "FILE_UNREADABLE", nil)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Spreadsheet file could not be read", "FILE_UNREADABLE", nil)
	}

	result, err := h.adminFlow.UploadFile(createRequestContext(c, "/api/v1/admin/tracking/upload-file"), data)
	if err != nil {
		if businessflow.IsSpreadsheetUnreadable(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Spreadsheet file could not be parsed", "FILE_UNREADABLE", nil)
		}
		if businessflow.IsSpreadsheetEmpty(err) || businessflow.IsNoTrackingRows(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Spreadsheet contains no usable rows", "NO_USABLE_ROWS", nil)
		}

		log.Println("Tracking file upload failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Upload failed", "UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Export downloads the full dataset as a workbook
// @Summary Export tracking records
// @Description Download every tracking record as a single-sheet .xlsx workbook
// @Tags Tracking Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Workbook download"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking/export [get]
func (h *TrackingAdminHandler) Export(c fiber.Ctx) error {
	filename, data, err := h.adminFlow.Export(createRequestContextWithTimeout(c, "/api/v1/admin/tracking/export", exportTimeout))
	if err != nil {
		log.Println("Tracking export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Export failed", "EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// BulkDelete removes the named records
// @Summary Bulk delete tracking records
// @Description Remove tracking records by ID list
// @Tags Tracking Admin
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "Record IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BulkDeleteResponse} "Records removed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking/bulk-delete [delete]
func (h *TrackingAdminHandler) BulkDelete(c fiber.Ctx) error {
	var req dto.BulkDeleteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.adminFlow.BulkDelete(createRequestContext(c, "/api/v1/admin/tracking/bulk-delete"), &req)
	if err != nil {
		if businessflow.IsNoRecordIDs(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No record IDs supplied", "NO_RECORD_IDS", nil)
		}

		log.Println("Bulk delete failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Bulk delete failed", "BULK_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Cleanup runs the retention sweep immediately
// @Summary Run retention sweep
// @Description Delete records whose ETA is more than the retention window in the past
// @Tags Tracking Admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CleanupResponse} "Sweep completed"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking/cleanup [post]
func (h *TrackingAdminHandler) Cleanup(c fiber.Ctx) error {
	result, err := h.retentionFlow.Cleanup(createRequestContext(c, "/api/v1/admin/tracking/cleanup"))
	if err != nil {
		log.Println("Retention cleanup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Cleanup failed", "CLEANUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Sync runs a sheet sync immediately
// @Summary Trigger sheet sync
// @Description Fetch every configured spreadsheet source and replace the dataset
// @Tags Tracking Admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SyncResponse} "Sync completed"
// @Failure 400 {object} dto.APIResponse "Sync not configured"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 409 {object} dto.APIResponse "Sync already running"
// @Failure 502 {object} dto.APIResponse "Source fetch failed"
// @Router /api/v1/admin/tracking/sync [post]
func (h *TrackingAdminHandler) Sync(c fiber.Ctx) error {
	result, err := h.syncFlow.SyncNow(createRequestContextWithTimeout(c, "/api/v1/admin/tracking/sync", syncTimeout))
	if err != nil {
		if businessflow.IsSyncNotConfigured(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Sheet sync is not configured", "SYNC_NOT_CONFIGURED", nil)
		}
		if businessflow.IsSyncAlreadyRunning(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A sync is already in progress", "SYNC_ALREADY_RUNNING", nil)
		}
		if businessflow.IsSyncSourceEmpty(err) {
			return h.ErrorResponse(c, fiber.StatusBadGateway, "Sync source returned no usable rows", "SYNC_SOURCE_EMPTY", nil)
		}

		log.Println("Manual sync failed", err)
		return h.ErrorResponse(c, fiber.StatusBadGateway, "Sync failed", "SYNC_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// SyncStatus reports the most recent sync outcome
// @Summary Sheet sync status
// @Description Report the most recent sync run, its outcome, and the live record count
// @Tags Tracking Admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SyncStatusResponse} "Sync status"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/tracking/sync-status [get]
func (h *TrackingAdminHandler) SyncStatus(c fiber.Ctx) error {
	result, err := h.syncFlow.Status(createRequestContext(c, "/api/v1/admin/tracking/sync-status"))
	if err != nil {
		log.Println("Sync status failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load sync status", "SYNC_STATUS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Sync status retrieved", result)
}
