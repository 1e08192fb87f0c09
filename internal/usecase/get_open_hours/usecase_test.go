package get_open_hours

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/rediscache"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// --- mocks ---

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

// mockOpenHoursRepo отдаёт записи по ключу (typeID или nil) и считает вызовы
type mockOpenHoursRepo struct {
	weeklyByType map[string][]*domain.WeeklyHours
	specByType   map[string][]*domain.SpecialHours
	weeklyErr    error
	specialErr   error

	weeklyCalls  []*int64
	specialCalls []*int64
}

// key ключ мапы записей: "all" для общих записей арены, иначе ID типа
func key(typeID *int64) string {
	if typeID == nil {
		return "all"
	}
	return strconv.FormatInt(*typeID, 10)
}

func (m *mockOpenHoursRepo) FindWeekly(_ context.Context, _ int64, typeID *int64, _ time.Weekday) ([]*domain.WeeklyHours, error) {
	m.weeklyCalls = append(m.weeklyCalls, typeID)
	if m.weeklyErr != nil {
		return nil, m.weeklyErr
	}
	return m.weeklyByType[key(typeID)], nil
}

func (m *mockOpenHoursRepo) FindSpecial(_ context.Context, _ int64, typeID *int64, _ time.Time) ([]*domain.SpecialHours, error) {
	m.specialCalls = append(m.specialCalls, typeID)
	if m.specialErr != nil {
		return nil, m.specialErr
	}
	return m.specByType[key(typeID)], nil
}

type mockCache struct {
	loads   int
	lastKey string
	tags    []string
}

func (m *mockCache) Load(ctx context.Context, cacheKey string, opts rediscache.Options, dest any, produce func(ctx context.Context) (any, error)) error {
	m.loads++
	m.lastKey = cacheKey
	m.tags = opts.Tags

	value, err := produce(ctx)
	if err != nil {
		return err
	}
	*dest.(*Response) = *value.(*Response)
	return nil
}

// --- fixtures ---

func ts(s string) *types.TimeString {
	return ptr.Ptr(types.TimeString(s))
}

func testDate(t *testing.T) time.Time {
	t.Helper()
	// воскресенье
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2025, 6, 15, hour, min, 0, 0, time.UTC)
}

// --- tests ---

func TestUseCase_Execute_WeeklyOnly(t *testing.T) {
	repo := &mockOpenHoursRepo{
		weeklyByType: map[string][]*domain.WeeklyHours{
			"1": {{
				ArenaID:        42,
				BookingTypeID:  ptr.Ptr(int64(1)),
				Weekday:        time.Sunday,
				OpensAt:        ts("10:00"),
				ClosesAt:       ts("22:00"),
				OnCallOpensAt:  ts("09:00"),
				OnCallClosesAt: ts("23:00"),
			}},
		},
	}

	uc := NewUseCase(repo, nil, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ArenaID:       42,
		BookingTypeID: ptr.Ptr(int64(1)),
		Date:          testDate(t),
	})
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 3)
	assert.Equal(t, domain.NewOnCallInterval(at(t, 9, 0), at(t, 10, 0)), resp.Intervals[0])
	assert.Equal(t, domain.NewInterval(at(t, 10, 0), at(t, 22, 0)), resp.Intervals[1])
	assert.Equal(t, domain.NewOnCallInterval(at(t, 22, 0), at(t, 23, 0)), resp.Intervals[2])
}

func TestUseCase_Execute_SpecialOverridesWeekly(t *testing.T) {
	repo := &mockOpenHoursRepo{
		weeklyByType: map[string][]*domain.WeeklyHours{
			"1": {{OpensAt: ts("10:00"), ClosesAt: ts("22:00")}},
		},
		specByType: map[string][]*domain.SpecialHours{
			"1": {{OpensAt: ts("12:00"), ClosesAt: ts("16:00")}},
		},
	}

	uc := NewUseCase(repo, nil, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ArenaID:       42,
		BookingTypeID: ptr.Ptr(int64(1)),
		Date:          testDate(t),
	})
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 1)
	assert.Equal(t, domain.NewInterval(at(t, 12, 0), at(t, 16, 0)), resp.Intervals[0])
	// до еженедельного расписания дело не дошло
	assert.Empty(t, repo.weeklyCalls)
}

func TestUseCase_Execute_ClosedSpecialDay(t *testing.T) {
	repo := &mockOpenHoursRepo{
		weeklyByType: map[string][]*domain.WeeklyHours{
			"1": {{OpensAt: ts("10:00"), ClosesAt: ts("22:00")}},
		},
		specByType: map[string][]*domain.SpecialHours{
			"1": {
				{OpensAt: ts("12:00"), ClosesAt: ts("16:00")},
				{Closed: true},
			},
		},
	}

	uc := NewUseCase(repo, nil, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ArenaID:       42,
		BookingTypeID: ptr.Ptr(int64(1)),
		Date:          testDate(t),
	})
	require.NoError(t, err)

	// closed=true побеждает любые другие записи на дату
	assert.Empty(t, resp.Intervals)
}

func TestUseCase_Execute_TypeFallsBackToArenaWide(t *testing.T) {
	repo := &mockOpenHoursRepo{
		weeklyByType: map[string][]*domain.WeeklyHours{
			"all": {{OpensAt: ts("11:00"), ClosesAt: ts("20:00")}},
		},
	}

	uc := NewUseCase(repo, nil, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ArenaID:       42,
		BookingTypeID: ptr.Ptr(int64(7)),
		Date:          testDate(t),
	})
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 1)
	assert.Equal(t, domain.NewInterval(at(t, 11, 0), at(t, 20, 0)), resp.Intervals[0])

	// сначала запись для типа, затем общая для арены
	require.Len(t, repo.weeklyCalls, 2)
	require.NotNil(t, repo.weeklyCalls[0])
	assert.Equal(t, int64(7), *repo.weeklyCalls[0])
	assert.Nil(t, repo.weeklyCalls[1])
}

func TestUseCase_Execute_NoScheduleMeansClosed(t *testing.T) {
	uc := NewUseCase(&mockOpenHoursRepo{}, nil, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ArenaID: 42,
		Date:    testDate(t),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Intervals)
}

func TestUseCase_Execute_IgnoreSpecial(t *testing.T) {
	repo := &mockOpenHoursRepo{
		weeklyByType: map[string][]*domain.WeeklyHours{
			"all": {{OpensAt: ts("10:00"), ClosesAt: ts("18:00")}},
		},
		specByType: map[string][]*domain.SpecialHours{
			"all": {{Closed: true}},
		},
	}

	uc := NewUseCase(repo, nil, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ArenaID:       42,
		Date:          testDate(t),
		IgnoreSpecial: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 1)
	assert.Equal(t, domain.NewInterval(at(t, 10, 0), at(t, 18, 0)), resp.Intervals[0])
	assert.Empty(t, repo.specialCalls)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(&mockOpenHoursRepo{}, nil, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{ArenaID: 0, Date: testDate(t)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ArenaID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_RepoErrorWrapped(t *testing.T) {
	repo := &mockOpenHoursRepo{specialErr: errors.New("connection refused")}

	uc := NewUseCase(repo, nil, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{ArenaID: 42, Date: testDate(t)})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_UsesCache(t *testing.T) {
	cache := &mockCache{}
	repo := &mockOpenHoursRepo{
		weeklyByType: map[string][]*domain.WeeklyHours{
			"all": {{OpensAt: ts("10:00"), ClosesAt: ts("18:00")}},
		},
	}

	uc := NewUseCase(repo, cache, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ArenaID: 42, Date: testDate(t)})
	require.NoError(t, err)

	assert.Equal(t, 1, cache.loads)
	assert.Equal(t, "open_hours:42:all:2025-06-15", cache.lastKey)
	assert.Contains(t, cache.tags, "open_hours/42")
	assert.Contains(t, cache.tags, "open_hours/2025-06-15")
	require.Len(t, resp.Intervals, 1)
}

func TestUseCase_Execute_IgnoreSpecialBypassesCache(t *testing.T) {
	cache := &mockCache{}
	repo := &mockOpenHoursRepo{
		weeklyByType: map[string][]*domain.WeeklyHours{
			"all": {{OpensAt: ts("10:00"), ClosesAt: ts("18:00")}},
		},
	}

	uc := NewUseCase(repo, cache, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ArenaID:       42,
		Date:          testDate(t),
		IgnoreSpecial: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cache.loads)
}
