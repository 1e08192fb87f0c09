package get_open_hours

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/rediscache"
)

// openHoursCacheTTL срок жизни кеша часов работы
const openHoursCacheTTL = 7 * 24 * time.Hour

// UseCase use case для получения эффективных часов работы арены на дату
//
// Порядок разрешения источников:
// 1. Особые часы на дату для типа игры, при их отсутствии - общие для арены.
//    Запись closed=true закрывает день целиком.
// 2. Иначе еженедельное расписание на день недели с тем же fallback по типу.
// 3. Ничего не найдено - пустой список (арена закрыта).
type UseCase struct {
	openHoursRepo OpenHoursRepository
	cache         Cache
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(openHoursRepo OpenHoursRepository, cache Cache, logger Logger) *UseCase {
	return &UseCase{
		openHoursRepo: openHoursRepo,
		cache:         cache,
		logger:        logger,
	}
}

// Execute выполняет use case получения часов работы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOpenHours: validation failed: %v", err)
		return nil, err
	}

	produce := func(ctx context.Context) (any, error) {
		return uc.resolve(ctx, req)
	}

	// Разрешение с подавленными особыми часами не кешируем:
	// ключ совпал бы с обычным разрешением на ту же дату
	if req.NoCache || req.IgnoreSpecial || uc.cache == nil {
		resp, err := uc.resolve(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	var resp Response
	err := uc.cache.Load(ctx, cacheKey(req), rediscache.Options{
		TTL:  openHoursCacheTTL,
		Tags: cacheTags(req),
	}, &resp, produce)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// resolve вычисляет эффективные часы работы без кеша
func (uc *UseCase) resolve(ctx context.Context, req *Request) (*Response, error) {
	resp := &Response{
		ArenaID:       req.ArenaID,
		BookingTypeID: req.BookingTypeID,
		Date:          req.Date,
		Intervals:     []domain.TimeInterval{},
	}

	if !req.IgnoreSpecial {
		intervals, closed, found, err := uc.resolveSpecial(ctx, req)
		if err != nil {
			return nil, err
		}
		if closed {
			// closed=true перекрывает любые другие записи на эту дату
			uc.logger.Info("GetOpenHours: arena=%d closed on %s by special hours",
				req.ArenaID, req.Date.Format(domain.DateFormat))
			return resp, nil
		}
		if found {
			resp.Intervals = domain.MergeTimes(intervals)
			return resp, nil
		}
	}

	intervals, err := uc.resolveWeekly(ctx, req)
	if err != nil {
		return nil, err
	}

	resp.Intervals = domain.MergeTimes(intervals)
	return resp, nil
}

// resolveSpecial ищет особые часы на дату: сначала для типа игры, затем общие для арены
func (uc *UseCase) resolveSpecial(ctx context.Context, req *Request) (intervals []domain.TimeInterval, closed, found bool, err error) {
	records, err := uc.openHoursRepo.FindSpecial(ctx, req.ArenaID, req.BookingTypeID, req.Date)
	if err != nil {
		uc.logger.Error("GetOpenHours: failed to find special hours for arena=%d: %v", req.ArenaID, err)
		return nil, false, false, fmt.Errorf("%w: failed to find special hours: %v", ErrInternal, err)
	}

	// Fallback на общие записи арены, если для типа ничего нет
	if len(records) == 0 && req.BookingTypeID != nil {
		records, err = uc.openHoursRepo.FindSpecial(ctx, req.ArenaID, nil, req.Date)
		if err != nil {
			uc.logger.Error("GetOpenHours: failed to find arena-wide special hours for arena=%d: %v", req.ArenaID, err)
			return nil, false, false, fmt.Errorf("%w: failed to find special hours: %v", ErrInternal, err)
		}
	}

	if len(records) == 0 {
		return nil, false, false, nil
	}

	for _, record := range records {
		if record.Closed {
			return nil, true, true, nil
		}
	}

	intervals = make([]domain.TimeInterval, 0, len(records)*2)
	for _, record := range records {
		intervals = appendNonEmpty(intervals, record.NormalInterval(req.Date), record.OnCallInterval(req.Date))
	}
	return intervals, false, true, nil
}

// resolveWeekly ищет еженедельное расписание: сначала для типа игры, затем общее для арены
func (uc *UseCase) resolveWeekly(ctx context.Context, req *Request) ([]domain.TimeInterval, error) {
	weekday := req.Date.Weekday()

	records, err := uc.openHoursRepo.FindWeekly(ctx, req.ArenaID, req.BookingTypeID, weekday)
	if err != nil {
		uc.logger.Error("GetOpenHours: failed to find weekly hours for arena=%d: %v", req.ArenaID, err)
		return nil, fmt.Errorf("%w: failed to find weekly hours: %v", ErrInternal, err)
	}

	if len(records) == 0 && req.BookingTypeID != nil {
		records, err = uc.openHoursRepo.FindWeekly(ctx, req.ArenaID, nil, weekday)
		if err != nil {
			uc.logger.Error("GetOpenHours: failed to find arena-wide weekly hours for arena=%d: %v", req.ArenaID, err)
			return nil, fmt.Errorf("%w: failed to find weekly hours: %v", ErrInternal, err)
		}
	}

	intervals := make([]domain.TimeInterval, 0, len(records)*2)
	for _, record := range records {
		intervals = appendNonEmpty(intervals, record.NormalInterval(req.Date), record.OnCallInterval(req.Date))
	}
	return intervals, nil
}

// appendNonEmpty добавляет только непустые интервалы
func appendNonEmpty(dst []domain.TimeInterval, intervals ...domain.TimeInterval) []domain.TimeInterval {
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			dst = append(dst, iv)
		}
	}
	return dst
}

// cacheKey ключ кеша часов работы
func cacheKey(req *Request) string {
	typePart := "all"
	if req.BookingTypeID != nil {
		typePart = fmt.Sprintf("%d", *req.BookingTypeID)
	}
	return fmt.Sprintf("open_hours:%d:%s:%s", req.ArenaID, typePart, req.Date.Format(domain.DateFormat))
}

// cacheTags теги для групповой инвалидации кеша часов работы
func cacheTags(req *Request) []string {
	tags := []string{
		"booking",
		"open_hours",
		fmt.Sprintf("open_hours/%d", req.ArenaID),
		fmt.Sprintf("open_hours/%s", req.Date.Format(domain.DateFormat)),
	}
	if req.BookingTypeID != nil {
		tags = append(tags, fmt.Sprintf("open_hours/type/%d", *req.BookingTypeID))
	}
	return tags
}
