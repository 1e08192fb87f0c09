package get_slots

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func defaultParams() overlayParams {
	return overlayParams{
		Capacity:     10,
		TypeCapacity: 10,
		SlotLength:   30 * time.Minute,
	}
}

func makeSlots(t *testing.T, starts ...string) []generatedSlot {
	t.Helper()
	slots := make([]generatedSlot, 0, len(starts))
	for _, s := range starts {
		parsed, err := time.Parse("15:04", s)
		require.NoError(t, err)
		slots = append(slots, generatedSlot{
			Start: time.Date(2025, 6, 15, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC),
		})
	}
	return slots
}

func activeBooking(id int64, start time.Time, players, slotCount int) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BookingTypeID: 1,
		StartsAt:      start,
		SlotCount:     slotCount,
		PlayerCount:   players,
		Status:        domain.StatusConfirmed,
	}
}

func TestOverlayBookings_AllAvailable(t *testing.T) {
	slots := makeSlots(t, "10:00", "10:30", "11:00")

	m := overlayBookings(slots, nil, defaultParams())

	require.Equal(t, 3, m.Len())
	for _, key := range m.Keys() {
		entry, _ := m.Get(key)
		assert.Equal(t, domain.SlotAvailable, entry.Status)
		assert.Equal(t, 10, entry.AvailableSpots)
	}
}

func TestOverlayBookings_PartialFill(t *testing.T) {
	slots := makeSlots(t, "10:00", "10:30")
	bookings := []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 4, 1),
	}

	m := overlayBookings(slots, bookings, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotPartiallyFilled, entry.Status)
	assert.Equal(t, 6, entry.AvailableSpots)

	untouched, _ := m.Get("10:30")
	assert.Equal(t, domain.SlotAvailable, untouched.Status)
	assert.Equal(t, 10, untouched.AvailableSpots)
}

func TestOverlayBookings_FilledWhenNoSpotsLeft(t *testing.T) {
	slots := makeSlots(t, "10:00")
	bookings := []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 6, 1),
		activeBooking(2, at(t, 10, 0), 4, 1),
	}

	m := overlayBookings(slots, bookings, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotFilled, entry.Status)
	assert.Equal(t, 0, entry.AvailableSpots)
}

func TestOverlayBookings_OverbookedClampedToZero(t *testing.T) {
	slots := makeSlots(t, "10:00")
	bookings := []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 8, 1),
		activeBooking(2, at(t, 10, 0), 8, 1),
	}

	m := overlayBookings(slots, bookings, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotFilled, entry.Status)
	assert.Equal(t, 0, entry.AvailableSpots)
}

func TestOverlayBookings_LockedBookingFillsSlot(t *testing.T) {
	slots := makeSlots(t, "10:00")
	booking := activeBooking(1, at(t, 10, 0), 2, 1)
	booking.Locked = true

	m := overlayBookings(slots, []*domain.Booking{booking}, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotFilled, entry.Status)
}

func TestOverlayBookings_LocksWholeSlotParam(t *testing.T) {
	slots := makeSlots(t, "10:00")
	params := defaultParams()
	params.LocksWholeSlot = true

	m := overlayBookings(slots, []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 1, 1),
	}, params)

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotFilled, entry.Status)
}

func TestOverlayBookings_MultiSlotBooking(t *testing.T) {
	slots := makeSlots(t, "10:00", "10:30", "11:00")

	m := overlayBookings(slots, []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 3, 2),
	}, defaultParams())

	for _, key := range []string{"10:00", "10:30"} {
		entry, _ := m.Get(key)
		assert.Equal(t, domain.SlotPartiallyFilled, entry.Status, key)
		assert.Equal(t, 7, entry.AvailableSpots, key)
	}

	last, _ := m.Get("11:00")
	assert.Equal(t, domain.SlotAvailable, last.Status)
}

func TestOverlayBookings_BookingOutsideOpenHoursIgnored(t *testing.T) {
	slots := makeSlots(t, "10:00")

	// бронь на 22:00 не задевает ни одного открытого слота
	m := overlayBookings(slots, []*domain.Booking{
		activeBooking(1, at(t, 22, 0), 5, 1),
	}, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotAvailable, entry.Status)
	assert.Equal(t, 10, entry.AvailableSpots)
}

func TestOverlayBookings_InactiveBookingsSkipped(t *testing.T) {
	slots := makeSlots(t, "10:00")

	cancelled := activeBooking(1, at(t, 10, 0), 5, 1)
	cancelled.Status = domain.StatusCancelled
	noShow := activeBooking(2, at(t, 10, 0), 5, 1)
	noShow.Status = domain.StatusNoShow

	m := overlayBookings(slots, []*domain.Booking{cancelled, noShow}, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotAvailable, entry.Status)
	assert.Equal(t, 10, entry.AvailableSpots)
}

func TestOverlayBookings_OnCallSlot(t *testing.T) {
	slots := []generatedSlot{
		{Start: at(t, 10, 0), OnCall: true},
	}

	m := overlayBookings(slots, nil, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotOnCall, entry.Status)
	assert.Equal(t, 10, entry.AvailableSpots)
}

func TestOverlayBookings_OnCallAsNormal(t *testing.T) {
	slots := []generatedSlot{
		{Start: at(t, 10, 0), OnCall: true},
	}
	params := defaultParams()
	params.OnCallAsNormal = true

	m := overlayBookings(slots, nil, params)

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotAvailable, entry.Status)
}

func TestOverlayBookings_OnCallUpgradesToPartiallyFilled(t *testing.T) {
	slots := []generatedSlot{
		{Start: at(t, 10, 0), OnCall: true},
	}

	m := overlayBookings(slots, []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 3, 1),
	}, defaultParams())

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotPartiallyFilled, entry.Status)
	assert.Equal(t, 7, entry.AvailableSpots)
}

func TestOverlayBookings_DayClosed(t *testing.T) {
	slots := makeSlots(t, "10:00", "10:30")
	params := defaultParams()
	params.DayClosed = true

	m := overlayBookings(slots, []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 3, 1),
	}, params)

	for _, key := range m.Keys() {
		entry, _ := m.Get(key)
		assert.Equal(t, domain.SlotClosed, entry.Status, key)
		assert.Equal(t, 0, entry.AvailableSpots, key)
	}
}

func TestOverlayBookings_PastSlotShownClosed(t *testing.T) {
	slots := makeSlots(t, "10:00", "10:30", "11:00")
	now := at(t, 10, 30)
	params := defaultParams()
	params.IncludePast = true
	params.Now = &now

	m := overlayBookings(slots, nil, params)

	past, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotClosed, past.Status)
	assert.Equal(t, 0, past.AvailableSpots)

	// слот с началом ровно в now тоже прошедший
	boundary, _ := m.Get("10:30")
	assert.Equal(t, domain.SlotClosed, boundary.Status)

	future, _ := m.Get("11:00")
	assert.Equal(t, domain.SlotAvailable, future.Status)
	assert.Equal(t, 10, future.AvailableSpots)
}

func TestOverlayBookings_IncludeBookings(t *testing.T) {
	slots := makeSlots(t, "10:00")
	params := defaultParams()
	params.IncludeBookings = true

	m := overlayBookings(slots, []*domain.Booking{
		activeBooking(2, at(t, 10, 0), 3, 1),
		activeBooking(1, at(t, 10, 0), 2, 1),
	}, params)

	entry, _ := m.Get("10:00")
	require.Len(t, entry.Bookings, 2)
	// брони отсортированы по ID независимо от порядка во входе
	assert.Equal(t, int64(1), entry.Bookings[0].ID)
	assert.Equal(t, int64(2), entry.Bookings[1].ID)
}

func TestOverlayBookings_SubTypeCapacityOverride(t *testing.T) {
	// вместимость подтипа меньше базовой: порог partially_filled остаётся
	// базовым, поэтому слот с остатком ниже базовой вместимости уже partially_filled
	slots := makeSlots(t, "10:00")
	params := defaultParams()
	params.Capacity = 4

	m := overlayBookings(slots, []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 4, 1),
	}, params)

	entry, _ := m.Get("10:00")
	assert.Equal(t, domain.SlotFilled, entry.Status)
	assert.Equal(t, 0, entry.AvailableSpots)
}

func TestOverlayBookings_OrderIndependent(t *testing.T) {
	slots := makeSlots(t, "10:00", "10:30", "11:00", "11:30")

	locked := activeBooking(4, at(t, 11, 0), 1, 1)
	locked.Locked = true

	bookings := []*domain.Booking{
		activeBooking(1, at(t, 10, 0), 6, 2),
		activeBooking(2, at(t, 10, 0), 4, 1),
		activeBooking(3, at(t, 10, 30), 2, 1),
		locked,
	}

	params := defaultParams()
	params.IncludeBookings = true

	expected := overlayBookings(slots, bookings, params)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*domain.Booking, len(bookings))
		copy(shuffled, bookings)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := overlayBookings(slots, shuffled, params)

		require.Equal(t, expected.Keys(), got.Keys())
		for _, key := range expected.Keys() {
			want, _ := expected.Get(key)
			have, _ := got.Get(key)
			assert.Equal(t, want, have, "slot %s must not depend on booking order", key)
		}
	}
}
