// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// VesselHandlerInterface defines the contract for vessel handlers
type VesselHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// VesselHandler handles the vessel catalog, public reads and staff writes
type VesselHandler struct {
	vesselFlow businessflow.VesselFlow
	validator  *validator.Validate
}

// NewVesselHandler creates a new vessel handler
func NewVesselHandler(vesselFlow businessflow.VesselFlow) *VesselHandler {
	return &VesselHandler{
		vesselFlow: vesselFlow,
		validator:  validator.New(),
	}
}

func (h *VesselHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *VesselHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *VesselHandler) vesselID(c fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// List returns the vessel catalog
// @Summary List vessels
// @Description List all tracked vessels, ordered by name
// @Tags Vessels
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.VesselListResponse} "Vessel catalog"
// @Router /api/v1/vessels [get]
func (h *VesselHandler) List(c fiber.Ctx) error {
	result, err := h.vesselFlow.List(createRequestContext(c, "/api/v1/vessels"))
	if err != nil {
		log.Println("Vessel listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list vessels", "VESSEL_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Vessels retrieved", result)
}

// Get returns a single vessel
// @Summary Get vessel
// @Description Fetch one vessel by ID
// @Tags Vessels
// @Produce json
// @Param id path int true "Vessel ID"
// @Success 200 {object} dto.APIResponse{data=dto.VesselDTO} "Vessel"
// @Failure 400 {object} dto.APIResponse "Invalid ID"
// @Failure 404 {object} dto.APIResponse "Vessel not found"
// @Router /api/v1/vessels/{id} [get]
func (h *VesselHandler) Get(c fiber.Ctx) error {
	id, ok := h.vesselID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid vessel ID", "INVALID_VESSEL_ID", nil)
	}

	result, err := h.vesselFlow.Get(createRequestContext(c, "/api/v1/vessels/:id"), id)
	if err != nil {
		if businessflow.IsVesselNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Vessel not found", "VESSEL_NOT_FOUND", nil)
		}

		log.Println("Vessel fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch vessel", "VESSEL_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Vessel retrieved", result)
}

// Create adds a vessel to the catalog
// @Summary Create vessel
// @Description Add a vessel to the public catalog
// @Tags Vessels
// @Accept json
// @Produce json
// @Param request body dto.CreateVesselRequest true "Vessel details"
// @Success 201 {object} dto.APIResponse{data=dto.VesselDTO} "Vessel created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/vessels [post]
func (h *VesselHandler) Create(c fiber.Ctx) error {
	var req dto.CreateVesselRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.vesselFlow.Create(createRequestContext(c, "/api/v1/admin/vessels"), &req)
	if err != nil {
		if businessflow.IsVesselNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Vessel name is required", "VESSEL_NAME_REQUIRED", nil)
		}

		log.Println("Vessel creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create vessel", "VESSEL_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Vessel created", result)
}

// Update edits a vessel in the catalog
// @Summary Update vessel
// @Description Update a vessel's details
// @Tags Vessels
// @Accept json
// @Produce json
// @Param id path int true "Vessel ID"
// @Param request body dto.UpdateVesselRequest true "Vessel details"
// @Success 200 {object} dto.APIResponse{data=dto.VesselDTO} "Vessel updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Vessel not found"
// @Router /api/v1/admin/vessels/{id} [put]
func (h *VesselHandler) Update(c fiber.Ctx) error {
	id, ok := h.vesselID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid vessel ID", "INVALID_VESSEL_ID", nil)
	}

	var req dto.UpdateVesselRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.vesselFlow.Update(createRequestContext(c, "/api/v1/admin/vessels/:id"), id, &req)
	if err != nil {
		if businessflow.IsVesselNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Vessel not found", "VESSEL_NOT_FOUND", nil)
		}
		if businessflow.IsVesselNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Vessel name is required", "VESSEL_NAME_REQUIRED", nil)
		}

		log.Println("Vessel update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update vessel", "VESSEL_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Vessel updated", result)
}

// Delete removes a vessel from the catalog
// @Summary Delete vessel
// @Description Remove a vessel from the public catalog
// @Tags Vessels
// @Produce json
// @Param id path int true "Vessel ID"
// @Success 200 {object} dto.APIResponse "Vessel deleted"
// @Failure 400 {object} dto.APIResponse "Invalid ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Vessel not found"
// @Router /api/v1/admin/vessels/{id} [delete]
func (h *VesselHandler) Delete(c fiber.Ctx) error {
	id, ok := h.vesselID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid vessel ID", "INVALID_VESSEL_ID", nil)
	}

	if err := h.vesselFlow.Delete(createRequestContext(c, "/api/v1/admin/vessels/:id"), id); err != nil {
		if businessflow.IsVesselNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Vessel not found", "VESSEL_NOT_FOUND", nil)
		}

		log.Println("Vessel deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete vessel", "VESSEL_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Vessel deleted", nil)
}
