package repository

import (
	"context"
	"errors"

	"charity-events-backend/cmd/charity-events/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistrationRepo struct {
	db *gorm.DB
}

func NewRegistrationRepo(db *gorm.DB) *RegistrationRepo {
	return &RegistrationRepo{
		db: db,
	}
}

// Register creates one registration and increments the event's
// participant counter, or fails with no effect at all.
//
// The whole sequence runs in a single transaction holding a row lock
// on the event, so the capacity and duplicate checks stay valid until
// the writes commit; concurrent attempts serialize on the lock. The
// unique index on (event_id, participant_phone) backs the duplicate
// check at the storage level.
func (r *RegistrationRepo) Register(ctx context.Context, eventID int64, reg model.Registration) (int64, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var event model.Event
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrEventNotFound
			}
			return err
		}

		if event.MaxParticipants != nil && event.CurrentParticipants >= *event.MaxParticipants {
			return model.ErrEventFull
		}

		var existing int64
		if err := tx.
			Model(&model.Registration{}).
			Where("event_id = ? AND participant_phone = ?", eventID, reg.ParticipantPhone).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return model.ErrAlreadyRegistered
		}

		reg.EventID = eventID
		if err := tx.Create(&reg).Error; err != nil {
			return err
		}

		return tx.
			Model(&model.Event{}).
			Where("id = ?", eventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + ?", 1)).Error
	})

	if err != nil {
		return 0, err
	}

	return reg.ID, nil
}

// ListByEvent returns an event's registrations for the admin export.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error) {

	var regs []model.Registration

	result := r.db.
		WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&regs)

	if result.Error != nil {
		return nil, result.Error
	}

	return regs, nil
}
