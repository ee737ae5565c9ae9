package services

import (
	"testing"

	"flexitrip-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Trip{},
		&models.Booking{},
		&models.ChatMessage{},
		&models.AnalyticsEvent{},
		&models.Destination{},
	))
	return db
}

func TestSaveTripAndRetrieve(t *testing.T) {
	db := newTestDB(t)
	svc := NewTripService(db, nil)

	id, err := svc.SaveTrip(TripInput{
		Destination:   "Jaipur",
		Duration:      3,
		Budget:        20000,
		Interests:     []string{"culture", "food"},
		TravelStyle:   "mid-range",
		TripPlan:      "Day 1: Amber Fort...",
		EstimatedCost: 17000,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	trips, err := svc.GetAllTrips()
	require.NoError(t, err)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, "Jaipur Adventure", trip.Title)
	assert.Equal(t, "Jaipur", trip.Destination)
	assert.Equal(t, 2, trip.GroupSize)
	assert.Equal(t, models.TripStatusPlanned, trip.BookingStatus)
	assert.Equal(t, []string{"culture", "food"}, trip.InterestList())
}

func TestSaveTripValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTripService(db, nil)

	_, err := svc.SaveTrip(TripInput{Destination: "", Duration: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	_, err = svc.SaveTrip(TripInput{Destination: "Goa", Duration: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestSaveEnhancedTripStoresItemsAndLocations(t *testing.T) {
	db := newTestDB(t)
	analytics := NewAnalyticsService(db)
	svc := NewTripService(db, analytics)

	locations := []models.MapLocation{
		{Name: "Goa Heritage Hotel", Lat: 15.3, Lng: 74.1, Type: models.ItemTypeHotel, Cost: 8000},
		{Name: "Goa City Center", Lat: 15.29, Lng: 74.12, Type: "attraction"},
	}
	items := []models.BookableItem{
		{Type: models.ItemTypeHotel, Name: "Goa Heritage Hotel", Cost: 8000, Nights: 4},
	}

	id, err := svc.SaveEnhancedTrip(TripInput{
		Destination:   "Goa",
		Duration:      4,
		Budget:        25000,
		EstimatedCost: 21250,
	}, locations, items)
	require.NoError(t, err)

	view, err := svc.GetTripWithBooking(id)
	require.NoError(t, err)
	assert.Equal(t, locations, view.MapLocationList())
	assert.Equal(t, items, view.ItemList())
	assert.Equal(t, 21250.0, view.TotalCost)

	// trip_created logged
	var count int64
	require.NoError(t, db.Model(&models.AnalyticsEvent{}).Where("event_type = ?", "trip_created").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetTripWithBookingNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewTripService(db, nil)

	_, err := svc.GetTripWithBooking(42)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestGetTripWithBookingLeftJoin(t *testing.T) {
	db := newTestDB(t)
	svc := NewTripService(db, nil)

	id, err := svc.SaveTrip(TripInput{Destination: "Kerala", Duration: 5, Budget: 30000})
	require.NoError(t, err)

	// no booking yet: booking fields stay nil
	view, err := svc.GetTripWithBooking(id)
	require.NoError(t, err)
	assert.Nil(t, view.BookingConfirmation)
	assert.Nil(t, view.PaymentStatus)
	assert.Nil(t, view.PaidAmount)
}

func TestSaveBookingConfirmsTrip(t *testing.T) {
	db := newTestDB(t)
	tripSvc := NewTripService(db, nil)
	bookingSvc := NewBookingService(nil)

	tripID, err := tripSvc.SaveTrip(TripInput{Destination: "Jaipur", Duration: 3, Budget: 20000})
	require.NoError(t, err)

	trip := models.TripSummary{TripID: tripID, Destination: "Jaipur", Duration: 3, Budget: 20000}
	session, err := bookingSvc.InitiateBooking(trip, sampleItems())
	require.NoError(t, err)

	result, err := bookingSvc.ProcessPayment(session.BookingID, PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
	require.NoError(t, err)

	require.NoError(t, tripSvc.SaveBooking(result.Session))

	view, err := tripSvc.GetTripWithBooking(tripID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusConfirmed, view.BookingStatus)
	assert.Equal(t, result.ConfirmationNumber, view.ConfirmationNumber)
	require.NotNil(t, view.BookingConfirmation)
	assert.Equal(t, result.ConfirmationNumber, *view.BookingConfirmation)
	require.NotNil(t, view.PaymentStatus)
	assert.Equal(t, models.PaymentStatusCompleted, *view.PaymentStatus)
	require.NotNil(t, view.PaidAmount)
	assert.Equal(t, 20000.0, *view.PaidAmount)
}

func TestSaveBookingWithoutTrip(t *testing.T) {
	db := newTestDB(t)
	tripSvc := NewTripService(db, nil)
	bookingSvc := NewBookingService(nil)

	session, err := bookingSvc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	require.NoError(t, tripSvc.SaveBooking(session))

	var booking models.Booking
	require.NoError(t, db.Where("booking_id = ?", session.BookingID).First(&booking).Error)
	assert.Nil(t, booking.TripID)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.NotEmpty(t, booking.BookingData)
}
