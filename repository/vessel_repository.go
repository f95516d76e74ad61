// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"gorm.io/gorm"
)

// VesselRepositoryImpl implements VesselRepository interface
type VesselRepositoryImpl struct {
	*BaseRepository[models.Vessel, models.VesselFilter]
}

// NewVesselRepository creates a new vessel repository
func NewVesselRepository(db *gorm.DB) VesselRepository {
	return &VesselRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Vessel, models.VesselFilter](db),
	}
}

// ListAll retrieves every vessel ordered by name
func (r *VesselRepositoryImpl) ListAll(ctx context.Context) ([]*models.Vessel, error) {
	db := r.getDB(ctx)

	var vessels []*models.Vessel
	err := db.Order("name ASC").Find(&vessels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vessels: %w", err)
	}

	return vessels, nil
}

// Update persists all mutable fields of an existing vessel
func (r *VesselRepositoryImpl) Update(ctx context.Context, vessel *models.Vessel) error {
	db := r.getDB(ctx)

	err := db.Model(&models.Vessel{}).
		Where("id = ?", vessel.ID).
		Updates(map[string]any{
			"name":          vessel.Name,
			"imo":           vessel.IMO,
			"mmsi":          vessel.MMSI,
			"tracking_url":  vessel.TrackingURL,
			"thumbnail_url": vessel.ThumbnailURL,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update vessel %d: %w", vessel.ID, err)
	}

	return nil
}

// Delete removes a vessel and reports whether a row matched
func (r *VesselRepositoryImpl) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.getDB(ctx)

	result := db.Where("id = ?", id).Delete(&models.Vessel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete vessel %d: %w", id, result.Error)
	}

	return result.RowsAffected, nil
}
