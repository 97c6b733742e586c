package assistant

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parkjy76/haruplan/internal/profile"
	"github.com/parkjy76/haruplan/store"
	"github.com/parkjy76/haruplan/store/db/sqlite"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()

	p := &profile.Profile{
		Mode:     "dev",
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "haruplan.db"),
		Location: time.UTC,
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	require.NoError(t, driver.Migrate(context.Background()))
	t.Cleanup(func() { _ = driver.Close() })

	svc := NewService(store.New(driver, p), time.UTC, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAskSchedule(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))

	result, err := svc.Ask(ctx, "20일 9시 면접, 1시 시험 있어")
	require.NoError(t, err)
	require.Equal(t, IntentSchedule, result.Intent)
	require.Len(t, result.Events, 2)
	require.Equal(t, "면접", result.Events[0].Title)
	require.Equal(t, time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC).Unix(), result.Events[0].EventTs)
	require.Equal(t, "시험", result.Events[1].Title)
	require.Equal(t, time.Date(2026, 3, 20, 13, 0, 0, 0, time.UTC).Unix(), result.Events[1].EventTs)
}

func TestAskResubmitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))

	first, err := svc.Ask(ctx, "20일 9시 면접")
	require.NoError(t, err)
	require.Len(t, first.Events, 1)

	second, err := svc.Ask(ctx, "20일 9시 면접")
	require.NoError(t, err)
	require.Len(t, second.Events, 1)
	require.Equal(t, first.Events[0].ID, second.Events[0].ID)

	all, err := svc.ListEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestAskUnknown(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))

	result, err := svc.Ask(ctx, "안녕하세요")
	require.NoError(t, err)
	require.Equal(t, IntentUnknown, result.Intent)
	require.Empty(t, result.Events)
}

func TestAskDaysLeft(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))

	result, err := svc.Ask(ctx, "3월 20일까지 며칠 남았어?")
	require.NoError(t, err)
	require.Equal(t, IntentDaysLeft, result.Intent)
	require.Equal(t, "2026-03-20까지 10일 남았어요. (D-10)", result.Reply)
	require.Empty(t, result.Events)
}

func TestAskMemoryCarriesAcrossTurns(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	// First turn establishes the exam date, subjects, and hours.
	first, err := svc.Ask(ctx, "수학 40 영어 60, 9월 10일 시험까지 하루 2시간 배분해줘")
	require.NoError(t, err)
	require.Equal(t, IntentExamPlan, first.Intent)
	require.Len(t, first.Events, 4)

	memory := svc.Memory(ctx)
	require.NotNil(t, memory.ExamDate)
	require.Equal(t, []string{"수학", "영어"}, memory.Subjects)

	// An elliptical follow-up resolves from memory.
	second, err := svc.Ask(ctx, "시험까지 배분해줘")
	require.NoError(t, err)
	require.Equal(t, IntentExamPlan, second.Intent)
	require.NotEqual(t, "시험까지 배분해줘", second.Merged)
	require.Len(t, second.Events, 4)
	require.Contains(t, second.Events[0].Title, "수학")
	require.Contains(t, second.Events[0].Title, "영어")
}

func TestResetMemoryClearsEverything(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))

	_, err := svc.Ask(ctx, "20일 9시 면접")
	require.NoError(t, err)

	require.NoError(t, svc.ResetMemory(ctx))

	require.True(t, svc.Memory(ctx).IsEmpty())
	events, err := svc.ListEvents(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestRemoveEvent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))

	result, err := svc.Ask(ctx, "20일 9시 면접")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)

	require.NoError(t, svc.RemoveEvent(ctx, result.Events[0].ID))

	events, err := svc.ListEvents(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, events)
}
