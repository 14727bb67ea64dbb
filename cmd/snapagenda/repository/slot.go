package repository

import (
	"context"
	"errors"
	"snapagenda-backend/cmd/snapagenda/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotRepo struct {
	db *gorm.DB
}

func NewSlotRepo(db *gorm.DB) *SlotRepo {
	return &SlotRepo{
		db: db,
	}
}

// GetSlot reads the payload of a named slot. A missing slot is not an error;
// it reports found=false.
func (r *SlotRepo) GetSlot(ctx context.Context, name string) (string, bool, error) {

	var slot model.Slot

	result := r.db.
		WithContext(ctx).
		Model(&model.Slot{}).
		Where("name = ?", name).
		First(&slot)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}

	if result.Error != nil {
		return "", false, result.Error
	}

	return slot.Payload, true, nil
}

// SetSlot overwrites the named slot with the given payload, creating the row
// on first write.
func (r *SlotRepo) SetSlot(ctx context.Context, name string, payload string) error {

	slot := model.Slot{
		Name:       name,
		Payload:    payload,
		UpdateDate: time.Now(),
	}

	result := r.db.
		WithContext(ctx).
		Model(&model.Slot{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "update_date"}),
		}).
		Create(&slot)

	if result.Error != nil {
		return result.Error
	}

	return nil

}
