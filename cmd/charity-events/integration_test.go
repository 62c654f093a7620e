package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"charity-events-backend/cmd/charity-events/model"
	"charity-events-backend/cmd/charity-events/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testDBHost     = "localhost"
	testDBPort     = 5432
	testDBUser     = "postgres"
	testDBPassword = "mypassword"
	testDBName     = "postgres"
)

func setupTestDB(t *testing.T) *gorm.DB {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=1 to run.")
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		testDBHost, testDBPort, testDBUser, testDBPassword, testDBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(&model.Event{}, &model.Registration{})
	require.NoError(t, err, "Failed to migrate test database")

	db.Exec("TRUNCATE TABLE event_registrations CASCADE")
	db.Exec("TRUNCATE TABLE events CASCADE")

	return db
}

func teardownTestDB(t *testing.T, db *gorm.DB) {
	db.Exec("TRUNCATE TABLE event_registrations CASCADE")
	db.Exec("TRUNCATE TABLE events CASCADE")

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func createTestEvent(t *testing.T, db *gorm.DB, maxParticipants *int) model.Event {
	event := model.Event{
		Name:            "Integration Test Event",
		Category:        "community",
		Date:            "2030-01-01",
		Location:        "Test Hall",
		MaxParticipants: maxParticipants,
		Status:          model.StatusUpcoming,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func TestIntegration_RegistrationFlow(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	capacity := 1
	event := createTestEvent(t, db, &capacity)

	regRepo := repository.NewRegistrationRepo(db)
	eventRepo := repository.NewEventRepo(db)
	ctx := context.Background()

	// First registration succeeds and bumps the counter.
	id, err := regRepo.Register(ctx, event.ID, model.Registration{
		ParticipantName:  "A",
		ParticipantPhone: "111",
	})
	assert.NoError(t, err)
	assert.NotZero(t, id)

	fresh, err := eventRepo.GetByID(ctx, event.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, fresh.CurrentParticipants)

	// The event is now full; a different participant is rejected and
	// the counter stays put.
	_, err = regRepo.Register(ctx, event.ID, model.Registration{
		ParticipantName:  "B",
		ParticipantPhone: "222",
	})
	assert.ErrorIs(t, err, model.ErrEventFull)

	fresh, err = eventRepo.GetByID(ctx, event.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, fresh.CurrentParticipants)
}

func TestIntegration_DuplicatePhone(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	event := createTestEvent(t, db, nil)

	regRepo := repository.NewRegistrationRepo(db)
	ctx := context.Background()

	_, err := regRepo.Register(ctx, event.ID, model.Registration{
		ParticipantName:  "A",
		ParticipantPhone: "111",
	})
	assert.NoError(t, err)

	_, err = regRepo.Register(ctx, event.ID, model.Registration{
		ParticipantName:  "A",
		ParticipantPhone: "111",
	})
	assert.ErrorIs(t, err, model.ErrAlreadyRegistered)

	var count int64
	db.Model(&model.Registration{}).
		Where("event_id = ? AND participant_phone = ?", event.ID, "111").
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIntegration_RegisterUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	regRepo := repository.NewRegistrationRepo(db)
	ctx := context.Background()

	_, err := regRepo.Register(ctx, 999999, model.Registration{
		ParticipantName:  "A",
		ParticipantPhone: "111",
	})
	assert.ErrorIs(t, err, model.ErrEventNotFound)

	var count int64
	db.Model(&model.Registration{}).Count(&count)
	assert.Zero(t, count)
}

// TestIntegration_ConcurrentRegistrations drives far more attempts at
// an event than it has spots; the row lock must let exactly capacity
// attempts through.
func TestIntegration_ConcurrentRegistrations(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	capacity := 5
	event := createTestEvent(t, db, &capacity)

	regRepo := repository.NewRegistrationRepo(db)
	ctx := context.Background()

	numRequests := 100
	var successCount, fullCount, errorCount int32

	var wg sync.WaitGroup
	wg.Add(numRequests)

	for i := 0; i < numRequests; i++ {
		go func(n int) {
			defer wg.Done()

			_, err := regRepo.Register(ctx, event.ID, model.Registration{
				ParticipantName:  fmt.Sprintf("Participant %d", n),
				ParticipantPhone: fmt.Sprintf("0400%06d", n),
			})
			switch {
			case err == nil:
				atomic.AddInt32(&successCount, 1)
			case err == model.ErrEventFull:
				atomic.AddInt32(&fullCount, 1)
			default:
				t.Logf("Unexpected error for attempt %d: %v", n, err)
				atomic.AddInt32(&errorCount, 1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(capacity), successCount)
	assert.Equal(t, int32(numRequests-capacity), fullCount)
	assert.Zero(t, errorCount)

	eventRepo := repository.NewEventRepo(db)
	fresh, err := eventRepo.GetByID(ctx, event.ID)
	assert.NoError(t, err)
	assert.Equal(t, capacity, fresh.CurrentParticipants)

	var regCount int64
	db.Model(&model.Registration{}).Where("event_id = ?", event.ID).Count(&regCount)
	assert.Equal(t, int64(capacity), regCount)
}

// TestIntegration_ConcurrentSamePhone submits one identity many times
// at once; the duplicate check must admit exactly one row.
func TestIntegration_ConcurrentSamePhone(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	event := createTestEvent(t, db, nil)

	regRepo := repository.NewRegistrationRepo(db)
	ctx := context.Background()

	numRequests := 20
	var successCount int32

	var wg sync.WaitGroup
	wg.Add(numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			defer wg.Done()

			_, err := regRepo.Register(ctx, event.ID, model.Registration{
				ParticipantName:  "A",
				ParticipantPhone: "111",
			})
			if err == nil {
				atomic.AddInt32(&successCount, 1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), successCount)

	var count int64
	db.Model(&model.Registration{}).
		Where("event_id = ? AND participant_phone = ?", event.ID, "111").
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIntegration_DeleteCascadesRegistrations(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	event := createTestEvent(t, db, nil)
	other := createTestEvent(t, db, nil)

	regRepo := repository.NewRegistrationRepo(db)
	eventRepo := repository.NewEventRepo(db)
	ctx := context.Background()

	_, err := regRepo.Register(ctx, event.ID, model.Registration{
		ParticipantName:  "A",
		ParticipantPhone: "111",
	})
	require.NoError(t, err)
	_, err = regRepo.Register(ctx, other.ID, model.Registration{
		ParticipantName:  "B",
		ParticipantPhone: "222",
	})
	require.NoError(t, err)

	err = eventRepo.DeleteEvent(ctx, event.ID)
	assert.NoError(t, err)

	var count int64
	db.Model(&model.Registration{}).Where("event_id = ?", event.ID).Count(&count)
	assert.Zero(t, count)

	// Unrelated data untouched.
	db.Model(&model.Registration{}).Where("event_id = ?", other.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	err = eventRepo.DeleteEvent(ctx, event.ID)
	assert.ErrorIs(t, err, model.ErrEventNotFound)
}
