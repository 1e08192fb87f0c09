package get_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// overlayParams параметры наложения броней на сгенерированные слоты
type overlayParams struct {
	// Capacity эффективная вместимость слота (с учётом override подтипа)
	Capacity int
	// TypeCapacity базовая вместимость типа игры (порог для partially_filled)
	TypeCapacity int
	// SlotLength длина слота
	SlotLength time.Duration
	// LocksWholeSlot любая бронь подтипа целиком блокирует слот
	LocksWholeSlot bool
	// OnCallAsNormal on-call слоты считаются обычными
	OnCallAsNormal bool
	// DayClosed день закрыт - все слоты получают статус closed
	DayClosed bool

	IncludeBookings bool
	IncludePast     bool
	Now             *time.Time
}

// overlayBookings накладывает существующие брони на слоты и строит итоговую карту.
//
// Каждый слот сначала получает базовый статус (closed / on_call / available),
// затем каждая бронь вычитает своих игроков из всех занимаемых ею слотов.
// Статусы растут только в сторону ограничения (см. SlotEntry.Upgrade), поэтому
// результат не зависит от порядка броней во входном списке.
func overlayBookings(slots []generatedSlot, bookings []*domain.Booking, p overlayParams) *domain.SlotMap {
	m := domain.NewSlotMap()

	// Шаг 1: базовые статусы
	for _, slot := range slots {
		entry := &domain.SlotEntry{
			Status:         domain.SlotAvailable,
			AvailableSpots: p.Capacity,
		}

		switch {
		case p.DayClosed:
			entry.Status = domain.SlotClosed
			entry.AvailableSpots = 0
		case p.IncludePast && p.Now != nil && !slot.Start.After(*p.Now):
			// прошедший слот показывается, но бронировать его нельзя
			entry.Status = domain.SlotClosed
			entry.AvailableSpots = 0
		case slot.OnCall && !p.OnCallAsNormal:
			entry.Status = domain.SlotOnCall
		}

		m.Set(types.NewTimeString(slot.Start).String(), entry)
	}

	// Шаг 2: вычитаем брони
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		for _, slotStart := range booking.FilledSlots(p.SlotLength) {
			entry, ok := m.Get(types.NewTimeString(slotStart).String())
			if !ok {
				// бронь задевает слот вне открытых часов - игнорируем
				continue
			}

			entry.AvailableSpots -= booking.PlayerCount
			if p.IncludeBookings {
				entry.Bookings = append(entry.Bookings, domain.NewBookingRef(booking))
			}

			// Шаг 3: пересчёт статуса, приоритет у более ограничивающего
			switch {
			case booking.Locked || p.LocksWholeSlot || entry.AvailableSpots < 1:
				entry.Upgrade(domain.SlotFilled)
			case entry.AvailableSpots < p.TypeCapacity:
				entry.Upgrade(domain.SlotPartiallyFilled)
			}
		}
	}

	// Нормализация: остаток мест не бывает отрицательным, брони в детерминированном порядке
	for _, key := range m.Keys() {
		entry, _ := m.Get(key)
		if entry.AvailableSpots < 0 {
			entry.AvailableSpots = 0
		}
		entry.SortBookings()
	}

	return m
}
