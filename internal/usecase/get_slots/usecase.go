package get_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/rediscache"
	bookingTypeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/bookingtype"
	getOpenHours "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_open_hours"
)

// slotsCacheTTL срок жизни кеша карты слотов
const slotsCacheTTL = 24 * time.Hour

// UseCase use case получения карты слотов: фасад над разрешением часов работы,
// генерацией слотов и наложением броней
type UseCase struct {
	bookingRepo     BookingRepository
	bookingTypeRepo BookingTypeRepository
	openHours       OpenHoursProvider
	cache           Cache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bookingTypeRepo BookingTypeRepository,
	openHours OpenHoursProvider,
	cache Cache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		bookingTypeRepo: bookingTypeRepo,
		openHours:       openHours,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения карты слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: type=%d, date=%s, includePast=%t, includeClosedTimes=%t, includeBookings=%t",
		req.BookingTypeID, req.Date.Format(domain.DateFormat), req.IncludePast, req.IncludeClosedTimes, req.IncludeBookings)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время (переопределяется запросом для "what-if" сценариев)
	now := uc.timeProvider.Now()
	if req.Now != nil {
		now = *req.Now
	}

	// 3. Тип игры
	bookingType, err := uc.bookingTypeRepo.GetByID(ctx, req.BookingTypeID)
	if err != nil {
		if errors.Is(err, bookingTypeRepo.ErrTypeNotFound) {
			uc.logger.Warn("GetSlots: booking type id=%d not found", req.BookingTypeID)
			return nil, ErrBookingTypeNotFound
		}
		uc.logger.Error("GetSlots: failed to get booking type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: failed to get booking type: %v", ErrInternal, err)
	}

	// 4. Подтип (опционально), override-поля резолвятся один раз здесь
	var subType *domain.BookingSubType
	if req.SubTypeID != nil {
		subType, err = uc.bookingTypeRepo.GetSubTypeByID(ctx, *req.SubTypeID)
		if err != nil {
			if errors.Is(err, bookingTypeRepo.ErrSubTypeNotFound) {
				uc.logger.Warn("GetSlots: sub type id=%d not found", *req.SubTypeID)
				return nil, ErrSubTypeNotFound
			}
			uc.logger.Error("GetSlots: failed to get sub type id=%d: %v", *req.SubTypeID, err)
			return nil, fmt.Errorf("%w: failed to get sub type: %v", ErrInternal, err)
		}
		if subType.BookingTypeID != bookingType.ID {
			uc.logger.Warn("GetSlots: sub type id=%d does not belong to type id=%d", subType.ID, bookingType.ID)
			return nil, ErrSubTypeMismatch
		}
	}

	produce := func(ctx context.Context) (any, error) {
		return uc.compute(ctx, req, bookingType, subType, now)
	}

	// 5. Кеш только для запросов с реальным временем - результат для
	// переопределённого now специфичен для момента запроса
	if req.Now != nil || req.NoCache || uc.cache == nil {
		resp, err := uc.compute(ctx, req, bookingType, subType, now)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	var resp Response
	err = uc.cache.Load(ctx, cacheKey(req), rediscache.Options{
		TTL:  slotsCacheTTL,
		Tags: cacheTags(req),
	}, &resp, produce)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// compute строит карту слотов без кеша
func (uc *UseCase) compute(
	ctx context.Context,
	req *Request,
	bookingType *domain.BookingType,
	subType *domain.BookingSubType,
	now time.Time,
) (*Response, error) {
	resp := &Response{
		BookingTypeID: bookingType.ID,
		ArenaID:       bookingType.ArenaID,
		Date:          req.Date,
		Slots:         domain.NewSlotMap(),
	}

	// 1. Эффективные часы работы
	hours, err := uc.openHours.Execute(ctx, &getOpenHours.Request{
		ArenaID:       bookingType.ArenaID,
		BookingTypeID: &bookingType.ID,
		Date:          req.Date,
		NoCache:       false,
	})
	if err != nil {
		uc.logger.Error("GetSlots: failed to resolve open hours for type=%d: %v", bookingType.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve open hours: %v", ErrInternal, err)
	}

	intervals := hours.Intervals
	dayClosed := len(intervals) == 0

	if dayClosed {
		if !req.IncludeClosedTimes {
			uc.logger.Info("GetSlots: arena=%d closed on %s, returning empty slot map",
				bookingType.ArenaID, req.Date.Format(domain.DateFormat))
			return resp, nil
		}

		// Визуализация закрытого дня: берём еженедельное расписание
		// с подавленными особыми часами и помечаем все слоты закрытыми
		fallback, err := uc.openHours.Execute(ctx, &getOpenHours.Request{
			ArenaID:       bookingType.ArenaID,
			BookingTypeID: &bookingType.ID,
			Date:          req.Date,
			IgnoreSpecial: true,
		})
		if err != nil {
			uc.logger.Error("GetSlots: failed to resolve fallback hours for type=%d: %v", bookingType.ID, err)
			return nil, fmt.Errorf("%w: failed to resolve fallback hours: %v", ErrInternal, err)
		}
		intervals = fallback.Intervals
	}

	// 2. Генерация слотов
	slots := generateSlots(intervals, bookingType.SlotLength(), &now, req.IncludePast)

	// 3. Активные брони на дату
	bookings, err := uc.bookingRepo.GetActiveForTypeAndDate(ctx, bookingType.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get bookings for type=%d: %v", bookingType.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Наложение броней
	params := overlayParams{
		Capacity:        subType.CapacityFor(bookingType),
		TypeCapacity:    bookingType.SlotCapacity,
		SlotLength:      bookingType.SlotLength(),
		DayClosed:       dayClosed,
		IncludeBookings: req.IncludeBookings,
		IncludePast:     req.IncludePast,
		Now:             &now,
	}
	if subType != nil {
		params.LocksWholeSlot = subType.LocksWholeSlot
		params.OnCallAsNormal = subType.UsesOnCallHours
	}

	resp.Slots = overlayBookings(slots, bookings, params)

	uc.logger.Info("GetSlots: built %d slots for type=%d, date=%s (bookings=%d)",
		resp.Slots.Len(), bookingType.ID, req.Date.Format(domain.DateFormat), len(bookings))

	return resp, nil
}

// cacheKey ключ кеша карты слотов
func cacheKey(req *Request) string {
	subPart := "-"
	if req.SubTypeID != nil {
		subPart = fmt.Sprintf("%d", *req.SubTypeID)
	}
	return fmt.Sprintf("times:%d:%s:%s:%t:%t:%t",
		req.BookingTypeID,
		subPart,
		req.Date.Format(domain.DateFormat),
		req.IncludeBookings,
		req.IncludePast,
		req.IncludeClosedTimes,
	)
}

// cacheTags теги для групповой инвалидации кеша слотов
func cacheTags(req *Request) []string {
	return []string{
		"booking",
		"times",
		fmt.Sprintf("times/%d", req.BookingTypeID),
		fmt.Sprintf("times/%s", req.Date.Format(domain.DateFormat)),
	}
}
