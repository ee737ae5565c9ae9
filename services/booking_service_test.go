package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"flexitrip-backend/models"
	"flexitrip-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrip() models.TripSummary {
	return models.TripSummary{
		Destination: "Jaipur",
		Duration:    3,
		Budget:      20000,
		Interests:   []string{"culture", "food"},
		TravelStyle: "mid-range",
		GroupSize:   2,
	}
}

func sampleItems() []models.BookableItem {
	return []models.BookableItem{
		{Type: models.ItemTypeHotel, Name: "Jaipur Heritage Hotel", Cost: 8000, Nights: 3},
		{Type: models.ItemTypeActivity, Name: "Cultural Experience Package", Cost: 6000, Duration: "3 days"},
		{Type: models.ItemTypeRestaurant, Name: "Local Cuisine Tour", Cost: 4000, Meal: "multiple"},
		{Type: models.ItemTypeTransport, Name: "Complete Transport Package", Cost: 2000, Service: "door-to-door"},
	}
}

func TestInitiateBooking(t *testing.T) {
	svc := NewBookingService(nil)

	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	assert.True(t, utils.IsValidBookingIDFormat(session.BookingID))
	assert.Equal(t, 20000.0, session.TotalCost)
	assert.Equal(t, models.BookingStatusPending, session.Status)
	assert.Equal(t, models.PaymentStatusPending, session.PaymentStatus)
	assert.Empty(t, session.ConfirmationNumber)

	got, ok := svc.GetSession(session.BookingID)
	require.True(t, ok)
	assert.Equal(t, session, got)
}

func TestInitiateBookingEmptyItems(t *testing.T) {
	svc := NewBookingService(nil)

	session, err := svc.InitiateBooking(sampleTrip(), nil)
	require.NoError(t, err)
	assert.Zero(t, session.TotalCost)
	assert.Empty(t, session.Items)
}

func TestInitiateBookingUniqueIDs(t *testing.T) {
	svc := NewBookingService(nil)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		session, err := svc.InitiateBooking(sampleTrip(), nil)
		require.NoError(t, err)
		_, dup := seen[session.BookingID]
		require.False(t, dup, "duplicate booking id %q", session.BookingID)
		seen[session.BookingID] = struct{}{}
	}
}

func TestCostBreakdown(t *testing.T) {
	svc := NewBookingService(nil)

	breakdown := svc.CostBreakdown(sampleItems())
	assert.Equal(t, 8000.0, breakdown[models.ItemTypeHotel])
	assert.Equal(t, 6000.0, breakdown[models.ItemTypeActivity])
	assert.Equal(t, 4000.0, breakdown[models.ItemTypeRestaurant])
	assert.Equal(t, 2000.0, breakdown[models.ItemTypeTransport])
	assert.Equal(t, 20000.0, breakdown["total"])
	assert.NotContains(t, breakdown, "other")
}

func TestCostBreakdownUnknownType(t *testing.T) {
	svc := NewBookingService(nil)

	items := append(sampleItems(), models.BookableItem{Type: "spa", Name: "Ayurveda Session", Cost: 1500})
	breakdown := svc.CostBreakdown(items)
	assert.Equal(t, 1500.0, breakdown["other"])
	assert.Equal(t, 21500.0, breakdown["total"])
}

func TestValidatePayment(t *testing.T) {
	svc := NewBookingService(nil)

	cases := []struct {
		name    string
		method  string
		data    map[string]string
		wantErr string
	}{
		{
			name:   "card ok",
			method: PaymentMethodCard,
			data:   map[string]string{"card_number": "4111111111111111", "expiry": "12/27", "cvv": "123"},
		},
		{
			name:    "card missing cvv",
			method:  PaymentMethodCard,
			data:    map[string]string{"card_number": "4111111111111111", "expiry": "12/27"},
			wantErr: "cvv required",
		},
		{
			name:    "card blank expiry",
			method:  PaymentMethodCard,
			data:    map[string]string{"card_number": "4111111111111111", "expiry": "  ", "cvv": "123"},
			wantErr: "expiry required",
		},
		{
			name:   "upi ok",
			method: PaymentMethodUPI,
			data:   map[string]string{"upi_id": "traveller@upi"},
		},
		{
			name:    "upi missing id",
			method:  PaymentMethodUPI,
			data:    map[string]string{},
			wantErr: "UPI ID required",
		},
		{
			name:    "net banking missing bank",
			method:  PaymentMethodNetBanking,
			data:    map[string]string{},
			wantErr: "bank required",
		},
		{
			name:    "wallet missing wallet",
			method:  PaymentMethodWallet,
			data:    map[string]string{},
			wantErr: "wallet required",
		},
		{
			name:    "unknown method",
			method:  "Bitcoin",
			data:    map[string]string{},
			wantErr: ErrInvalidMethod.Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ValidatePayment(tc.method, tc.data)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestProcessPayment(t *testing.T) {
	svc := NewBookingService(nil)
	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	result, err := svc.ProcessPayment(session.BookingID, PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
	require.NoError(t, err)

	assert.Equal(t, "FT"+session.BookingID, result.ConfirmationNumber)
	assert.Equal(t, models.BookingStatusConfirmed, result.Session.Status)
	assert.Equal(t, models.PaymentStatusCompleted, result.Session.PaymentStatus)
	assert.Equal(t, PaymentMethodUPI, result.Session.PaymentMethod)
	require.NotNil(t, result.Session.CompletedAt)

	// stored session mutated in place
	stored, ok := svc.GetSession(session.BookingID)
	require.True(t, ok)
	assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
}

func TestProcessPaymentUnknownBooking(t *testing.T) {
	svc := NewBookingService(nil)

	_, err := svc.ProcessPayment("ZZZZ9999", PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestProcessPaymentDoubleConfirm(t *testing.T) {
	svc := NewBookingService(nil)
	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	_, err = svc.ProcessPayment(session.BookingID, PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
	require.NoError(t, err)

	_, err = svc.ProcessPayment(session.BookingID, PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestProcessPaymentInvalidDataLeavesSessionPending(t *testing.T) {
	svc := NewBookingService(nil)
	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	_, err = svc.ProcessPayment(session.BookingID, PaymentMethodCard, map[string]string{"card_number": "4111111111111111"})
	require.Error(t, err)

	stored, ok := svc.GetSession(session.BookingID)
	require.True(t, ok)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
}

func TestGetSessionReturnsSnapshot(t *testing.T) {
	svc := NewBookingService(nil)
	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	before, ok := svc.GetSession(session.BookingID)
	require.True(t, ok)

	_, err = svc.ProcessPayment(session.BookingID, PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
	require.NoError(t, err)

	// the earlier snapshot is unaffected; a fresh lookup sees the confirm
	assert.Equal(t, models.PaymentStatusPending, before.PaymentStatus)
	assert.Empty(t, before.ConfirmationNumber)

	after, ok := svc.GetSession(session.BookingID)
	require.True(t, ok)
	assert.Equal(t, models.PaymentStatusCompleted, after.PaymentStatus)
	assert.Equal(t, "FT"+session.BookingID, after.ConfirmationNumber)
}

func TestLookupDuringConfirm(t *testing.T) {
	// marshals session snapshots while a payment confirm mutates the
	// stored record; run with -race to check the lookups stay off the
	// live session
	svc := NewBookingService(nil)
	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	lookupErrs := make(chan error, 1)
	go func() {
		defer close(lookupErrs)
		for i := 0; i < 500; i++ {
			snap, ok := svc.GetSession(session.BookingID)
			if !ok {
				continue
			}
			if _, err := json.Marshal(snap); err != nil {
				lookupErrs <- err
				return
			}
		}
	}()

	_, err = svc.ProcessPayment(session.BookingID, PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
	require.NoError(t, err)

	for err := range lookupErrs {
		require.NoError(t, err)
	}
}

func TestProcessPaymentConcurrentConfirm(t *testing.T) {
	svc := NewBookingService(nil)
	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ProcessPayment(session.BookingID, PaymentMethodUPI, map[string]string{"upi_id": "traveller@upi"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var confirmed, rejected int
	for err := range errs {
		if err == nil {
			confirmed++
			continue
		}
		require.ErrorIs(t, err, ErrAlreadyConfirmed)
		rejected++
	}
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, workers-1, rejected)
}

func TestSummary(t *testing.T) {
	svc := NewBookingService(nil)
	session, err := svc.InitiateBooking(sampleTrip(), sampleItems())
	require.NoError(t, err)

	summary := svc.Summary(session)
	assert.Equal(t, session.BookingID, summary.BookingID)
	assert.Equal(t, "Jaipur", summary.Destination)
	assert.Equal(t, 20000.0, summary.TotalCost)
	assert.Equal(t, 4, summary.ItemsCount)
	assert.Equal(t, models.BookingStatusPending, summary.Status)
}

func TestGetItemDetailsFallback(t *testing.T) {
	svc := NewBookingService(nil)

	details := svc.GetItemDetails(context.Background(), models.BookableItem{Type: models.ItemTypeHotel, Name: "Jaipur Heritage Hotel"}, "")
	assert.Equal(t, "Jaipur Heritage Hotel", details.Name)
	assert.Contains(t, details.Description, "Hotel")
	assert.NotEmpty(t, details.Features)

	details = svc.GetItemDetails(context.Background(), models.BookableItem{Type: models.ItemTypeTransport}, "")
	assert.Equal(t, "Service", details.Name)
}
