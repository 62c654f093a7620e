package repository

import (
	"context"
	"errors"

	"charity-events-backend/cmd/charity-events/model"

	"gorm.io/gorm"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

// ListActive returns the home listing: upcoming and ongoing events by date.
func (r *EventRepo) ListActive(ctx context.Context) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Where("status = ? OR status = ?", model.StatusUpcoming, model.StatusOngoing).
		Order("date ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// ListUpcoming returns at most limit upcoming events dated today or later.
func (r *EventRepo) ListUpcoming(ctx context.Context, limit int) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Where("date >= CURRENT_DATE AND status = ?", model.StatusUpcoming).
		Order("date ASC").
		Limit(limit).
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// Search filters on exact date, location substring, and exact category.
// Empty filters are ignored.
func (r *EventRepo) Search(ctx context.Context, date, location, category string) ([]model.Event, error) {

	query := r.db.WithContext(ctx).Model(&model.Event{})

	if date != "" {
		query = query.Where("date = ?", date)
	}
	if location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var events []model.Event
	result := query.Order("date ASC").Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (model.Event, error) {

	var event model.Event

	result := r.db.
		WithContext(ctx).
		First(&event, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Event{}, model.ErrEventNotFound
		}
		return model.Event{}, result.Error
	}

	return event, nil
}

func (r *EventRepo) Categories(ctx context.Context) ([]string, error) {

	var categories []string

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories)

	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// ListAll is the admin view, newest date first.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Order("date DESC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// Statistics computes the four dashboard aggregates. Any failing
// aggregate fails the whole call; partial data is never returned.
func (r *EventRepo) Statistics(ctx context.Context) (model.Statistics, error) {

	var stats model.Statistics
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Event{}).
		Count(&stats.TotalEvents).Error; err != nil {
		return model.Statistics{}, err
	}

	if err := db.Model(&model.Event{}).
		Where("date >= CURRENT_DATE AND status = ?", model.StatusUpcoming).
		Count(&stats.UpcomingEvents).Error; err != nil {
		return model.Statistics{}, err
	}

	if err := db.Model(&model.Event{}).
		Select("COALESCE(SUM(current_participants), 0)").
		Scan(&stats.TotalParticipants).Error; err != nil {
		return model.Statistics{}, err
	}

	if err := db.Model(&model.Event{}).
		Where("status = ?", model.StatusCompleted).
		Count(&stats.CompletedEvents).Error; err != nil {
		return model.Statistics{}, err
	}

	return stats, nil
}

func (r *EventRepo) CreateEvent(ctx context.Context, event model.Event) (int64, error) {

	result := r.db.
		WithContext(ctx).
		Create(&event)

	if result.Error != nil {
		return 0, result.Error
	}

	return event.ID, nil
}

// UpdateEvent replaces all mutable fields of the addressed event.
// current_participants is deliberately not touched.
func (r *EventRepo) UpdateEvent(ctx context.Context, id int64, event model.Event) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":             event.Name,
			"category":         event.Category,
			"date":             event.Date,
			"time":             event.Time,
			"location":         event.Location,
			"organizer":        event.Organizer,
			"max_participants": event.MaxParticipants,
			"registration_fee": event.RegistrationFee,
			"contact_info":     event.ContactInfo,
			"status":           event.Status,
			"description":      event.Description,
			"image_url":        event.ImageURL,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrEventNotFound
	}

	return nil
}

// DeleteEvent removes the event and its registrations in one
// transaction. An unknown id rolls back the registration deletes too.
func (r *EventRepo) DeleteEvent(ctx context.Context, id int64) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("event_id = ?", id).
			Delete(&model.Registration{}).Error; err != nil {
			return err
		}

		result := tx.
			Where("id = ?", id).
			Delete(&model.Event{})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return model.ErrEventNotFound
		}

		return nil
	})
}
