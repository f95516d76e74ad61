// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
)

// VesselFlow manages the vessel reference data shown on the tracking pages
type VesselFlow interface {
	List(ctx context.Context) (*dto.VesselListResponse, error)
	Get(ctx context.Context, id uint) (*dto.VesselDTO, error)
	Create(ctx context.Context, request *dto.CreateVesselRequest) (*dto.VesselDTO, error)
	Update(ctx context.Context, id uint, request *dto.UpdateVesselRequest) (*dto.VesselDTO, error)
	Delete(ctx context.Context, id uint) error
}

// VesselFlowImpl implements the vessel CRUD business flow
type VesselFlowImpl struct {
	vesselRepo repository.VesselRepository
}

// NewVesselFlow creates a new vessel flow instance
func NewVesselFlow(vesselRepo repository.VesselRepository) VesselFlow {
	return &VesselFlowImpl{vesselRepo: vesselRepo}
}

// List returns every vessel ordered by name
func (f *VesselFlowImpl) List(ctx context.Context) (*dto.VesselListResponse, error) {
	vessels, err := f.vesselRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("VESSEL_LIST_FAILED", "Failed to list vessels", err)
	}

	out := make([]dto.VesselDTO, 0, len(vessels))
	for _, v := range vessels {
		if v == nil {
			continue
		}
		out = append(out, ToVesselDTO(*v))
	}

	return &dto.VesselListResponse{Vessels: out}, nil
}

// Get returns one vessel by ID
func (f *VesselFlowImpl) Get(ctx context.Context, id uint) (*dto.VesselDTO, error) {
	vessel, err := f.vesselRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("VESSEL_GET_FAILED", "Failed to load vessel", err)
	}
	if vessel == nil {
		return nil, NewBusinessError("VESSEL_NOT_FOUND", "Vessel not found", ErrVesselNotFound)
	}

	result := ToVesselDTO(*vessel)
	return &result, nil
}

// Create stores a new vessel
func (f *VesselFlowImpl) Create(ctx context.Context, request *dto.CreateVesselRequest) (*dto.VesselDTO, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, NewBusinessError("VESSEL_VALIDATION_FAILED", "Vessel validation failed", ErrVesselNameRequired)
	}

	vessel := &models.Vessel{
		Name:         strings.TrimSpace(request.Name),
		IMO:          strings.TrimSpace(request.IMO),
		MMSI:         strings.TrimSpace(request.MMSI),
		TrackingURL:  strings.TrimSpace(request.TrackingURL),
		ThumbnailURL: strings.TrimSpace(request.ThumbnailURL),
	}
	if err := f.vesselRepo.Save(ctx, vessel); err != nil {
		return nil, NewBusinessError("VESSEL_CREATE_FAILED", "Failed to create vessel", err)
	}

	result := ToVesselDTO(*vessel)
	return &result, nil
}

// Update replaces the mutable fields of an existing vessel
func (f *VesselFlowImpl) Update(ctx context.Context, id uint, request *dto.UpdateVesselRequest) (*dto.VesselDTO, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, NewBusinessError("VESSEL_VALIDATION_FAILED", "Vessel validation failed", ErrVesselNameRequired)
	}

	vessel, err := f.vesselRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("VESSEL_GET_FAILED", "Failed to load vessel", err)
	}
	if vessel == nil {
		return nil, NewBusinessError("VESSEL_NOT_FOUND", "Vessel not found", ErrVesselNotFound)
	}

	vessel.Name = strings.TrimSpace(request.Name)
	vessel.IMO = strings.TrimSpace(request.IMO)
	vessel.MMSI = strings.TrimSpace(request.MMSI)
	vessel.TrackingURL = strings.TrimSpace(request.TrackingURL)
	vessel.ThumbnailURL = strings.TrimSpace(request.ThumbnailURL)

	if err := f.vesselRepo.Update(ctx, vessel); err != nil {
		return nil, NewBusinessError("VESSEL_UPDATE_FAILED", "Failed to update vessel", err)
	}

	result := ToVesselDTO(*vessel)
	return &result, nil
}

// Delete removes a vessel
func (f *VesselFlowImpl) Delete(ctx context.Context, id uint) error {
	affected, err := f.vesselRepo.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("VESSEL_DELETE_FAILED", "Failed to delete vessel", err)
	}
	if affected == 0 {
		return NewBusinessError("VESSEL_NOT_FOUND", "Vessel not found", ErrVesselNotFound)
	}
	return nil
}
