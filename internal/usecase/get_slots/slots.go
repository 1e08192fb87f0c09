package get_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// generatedSlot слот, полученный квантованием открытых интервалов
type generatedSlot struct {
	Start time.Time
	// OnCall слот лежит в on-call интервале
	OnCall bool
}

// generateSlots квантует открытые интервалы дня в слоты фиксированной длины.
//
// Все слоты дня выравниваются по одной сетке с началом отсчёта в начале ПЕРВОГО
// интервала (global origin): для каждого следующего интервала курсор двигается
// от origin шагами slotLength до начала интервала. Интервал, начавшийся не по
// сетке (например 10:15 при origin 10:00 и шаге 30 минут), получает первый слот
// на ближайшей границе сетки (10:30), а не в 10:15.
//
// Слот генерируется, пока его начало строго раньше конца интервала.
// При includePast=false слоты с началом <= now отбрасываются.
func generateSlots(intervals []domain.TimeInterval, slotLength time.Duration, now *time.Time, includePast bool) []generatedSlot {
	if len(intervals) == 0 || slotLength <= 0 {
		return nil
	}

	origin := intervals[0].Start
	slots := make([]generatedSlot, 0)

	for _, interval := range intervals {
		cursor := origin

		// Подводим курсор к началу интервала, не сходя с сетки
		if interval.Start.After(origin) {
			offset := interval.Start.Sub(origin)
			steps := offset / slotLength
			cursor = origin.Add(steps * slotLength)
			if cursor.Before(interval.Start) {
				cursor = cursor.Add(slotLength)
			}
		}

		for cursor.Before(interval.End) {
			if includePast || now == nil || cursor.After(*now) {
				slots = append(slots, generatedSlot{
					Start:  cursor,
					OnCall: interval.IsOnCall(),
				})
			}
			cursor = cursor.Add(slotLength)
		}
	}

	return slots
}
