package service

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/repository"
	"github.com/alexanderramin/habitquest/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Friday, 13 June 2025.
var testNow = time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)

var utc = domain.Calendar{Location: time.UTC}

type harness struct {
	db        *sql.DB
	uow       db.UnitOfWork
	habits    *repository.SQLiteHabitRepo
	sets      *repository.SQLiteQuestSetRepo
	templates *repository.SQLiteQuestTemplateRepo
	rooms     *repository.SQLiteRoomRepo
	now       time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &harness{
		db:        database,
		uow:       testutil.NewTestUoW(database),
		habits:    repository.NewSQLiteHabitRepo(database),
		sets:      repository.NewSQLiteQuestSetRepo(database),
		templates: repository.NewSQLiteQuestTemplateRepoFromDB(database),
		rooms:     repository.NewSQLiteRoomRepo(database),
		now:       testNow,
	}
}

func (h *harness) config() EngineConfig {
	return EngineConfig{
		Calendar: utc,
		Now:      func() time.Time { return h.now },
		Rand:     rand.New(rand.NewPCG(7, 11)),
	}
}

func (h *harness) progressService(uow db.UnitOfWork, observers ...UseCaseObserver) ProgressService {
	if uow == nil {
		uow = h.uow
	}
	return NewProgressService(h.habits, uow, h.config(), observers...)
}

func (h *harness) habitService() HabitService {
	return NewHabitService(h.habits, h.uow, h.config())
}

func (h *harness) questService() QuestService {
	return NewQuestService(h.sets, h.templates, h.uow, h.config())
}

// seedHabit stores a habit created two weeks before testNow.
func (h *harness) seedHabit(t *testing.T, opts ...testutil.HabitOption) *domain.Habit {
	t.Helper()
	opts = append([]testutil.HabitOption{testutil.WithCreatedAt(testNow.AddDate(0, 0, -14))}, opts...)
	habit := testutil.NewTestHabit("Focus", opts...)
	require.NoError(t, h.habits.Create(context.Background(), habit))
	return habit
}

// seedSet assigns templates to u1 for testNow's day.
func (h *harness) seedSet(t *testing.T, templates ...domain.QuestTemplate) *domain.DailyQuestSet {
	t.Helper()
	set := testutil.NewTestQuestSet("u1", utc.Key(testNow), templates...)
	require.NoError(t, h.sets.Create(context.Background(), set))
	return set
}

func (h *harness) coins(t *testing.T, userID string) int {
	t.Helper()
	room, err := h.rooms.Get(context.Background(), userID)
	if err != nil {
		require.ErrorIs(t, err, repository.ErrNotFound)
		return 0
	}
	return room.Coins
}

// conflictingUoW simulates a concurrent writer for the first Conflicts
// transactions: the habit's version is bumped inside the transaction before
// the first write, so the service's versioned update goes stale.
type conflictingUoW struct {
	inner     db.UnitOfWork
	habitID   string
	Conflicts int32
	attempts  atomic.Int32
}

func (u *conflictingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	n := u.attempts.Add(1)
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if n > u.Conflicts {
			return fn(ctx, tx)
		}
		return fn(ctx, &bumpBeforeWrite{DBTX: tx, habitID: u.habitID})
	})
}

type bumpBeforeWrite struct {
	db.DBTX
	habitID string
	bumped  bool
}

func (b *bumpBeforeWrite) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !b.bumped {
		b.bumped = true
		if _, err := b.DBTX.ExecContext(ctx, `UPDATE habits SET version = version + 1 WHERE id = ?`, b.habitID); err != nil {
			return nil, err
		}
	}
	return b.DBTX.ExecContext(ctx, query, args...)
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}
