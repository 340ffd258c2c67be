package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/contract"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/repository"
	"github.com/alexanderramin/habitquest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestService_TodayAssignsOncePerDay(t *testing.T) {
	h := newHarness(t)
	svc := h.questService()
	ctx := context.Background()

	set, err := svc.Today(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, set.Slots, DefaultQuestsPerDay)
	assert.Equal(t, utc.Key(testNow), set.Day)

	seen := map[string]bool{}
	for i, slot := range set.Slots {
		assert.Equal(t, i, slot.Position)
		assert.False(t, seen[slot.Template.ID], "templates are drawn without replacement")
		seen[slot.Template.ID] = true
		assert.True(t, slot.Template.Active)
	}

	again, err := svc.Today(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, set.ID, again.ID)

	other, err := svc.Today(ctx, "u2")
	require.NoError(t, err)
	assert.NotEqual(t, set.ID, other.ID, "sets are per user")

	h.now = testNow.AddDate(0, 0, 1)
	tomorrow, err := h.questService().Today(ctx, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, set.ID, tomorrow.ID)
	assert.Equal(t, domain.DayKey("2025-06-14"), tomorrow.Day)
}

func TestQuestService_TodayCapsAtCatalogSize(t *testing.T) {
	h := newHarness(t)
	cfg := h.config()
	cfg.QuestsPerDay = 20
	svc := NewQuestService(h.sets, h.templates, h.uow, cfg)

	set, err := svc.Today(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, set.Slots, 7)
}

func TestQuestService_TodaySkipsRetiredTemplates(t *testing.T) {
	h := newHarness(t)
	_, err := h.db.Exec(`UPDATE quest_templates SET active = 0 WHERE id <> 'checks-3'`)
	require.NoError(t, err)

	set, err := h.questService().Today(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, set.Slots, 1)
	assert.Equal(t, "checks-3", set.Slots[0].Template.ID)
}

func TestQuestService_TodayWithoutCatalog(t *testing.T) {
	h := newHarness(t)
	_, err := h.db.Exec(`UPDATE quest_templates SET active = 0`)
	require.NoError(t, err)

	_, err = h.questService().Today(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, app.ErrDependencyUnavailable, app.CodeOf(err))
}

func TestQuestService_ClaimBonus(t *testing.T) {
	h := newHarness(t)
	habit := h.seedHabit(t)
	h.seedSet(t, testutil.Focus30, testutil.Finish1)
	svc := h.questService()
	ctx := context.Background()

	_, err := h.progressService(nil).Complete(ctx, contract.NewProgressRequest(habit.ID, "u1", "30"))
	require.NoError(t, err)
	require.Equal(t, 15, h.coins(t, "u1"))

	res, err := svc.ClaimBonus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, DefaultSetBonus, res.Bonus)
	assert.True(t, res.Set.BonusClaimed)
	assert.Equal(t, 65, res.Room.Coins)
	assert.Equal(t, 65, h.coins(t, "u1"))

	_, err = svc.ClaimBonus(ctx, "u1")
	require.Error(t, err)
	assert.Equal(t, app.ErrInvalidInput, app.CodeOf(err))
	assert.Contains(t, err.Error(), "already claimed")
	assert.Equal(t, 65, h.coins(t, "u1"))

	history, err := h.rooms.History(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.LedgerSetBonus, history[0].Reason)
	assert.Equal(t, res.Set.ID, history[0].SourceID)
}

func TestQuestService_ClaimBonusRequiresCompleteSet(t *testing.T) {
	h := newHarness(t)
	habit := h.seedHabit(t)
	svc := h.questService()
	ctx := context.Background()

	_, err := svc.ClaimBonus(ctx, "u1")
	assert.Equal(t, app.ErrInvalidInput, app.CodeOf(err), "no set assigned yet")

	h.seedSet(t, testutil.Checks3, testutil.Finish1)
	_, err = h.progressService(nil).Complete(ctx, contract.NewProgressRequest(habit.ID, "u1", "30"))
	require.NoError(t, err)

	_, err = svc.ClaimBonus(ctx, "u1")
	require.Error(t, err)
	assert.Equal(t, app.ErrInvalidInput, app.CodeOf(err))
	assert.Contains(t, err.Error(), "1/2")
	assert.Equal(t, 5, h.coins(t, "u1"))
}

func TestQuestService_ClaimBonusRollsBackOnCreditFailure(t *testing.T) {
	h := newHarness(t)
	set := testutil.NewTestQuestSet("u1", utc.Key(testNow), testutil.Finish1)
	set.Slots[0].Progress = 1
	set.Slots[0].IsComplete = true
	set.IsComplete = true
	require.NoError(t, h.sets.Create(context.Background(), set))

	// Save issues the set update plus one per slot; the room upsert follows.
	uow := &testutil.FailOnNthExecUoW{DB: h.db, FailOn: 3, Err: fmt.Errorf("disk full")}
	svc := NewQuestService(h.sets, h.templates, uow, h.config())

	_, err := svc.ClaimBonus(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, app.ErrDependencyUnavailable, app.CodeOf(err))

	stored, err := h.sets.GetForDay(context.Background(), "u1", set.Day)
	require.NoError(t, err)
	assert.False(t, stored.BonusClaimed)
	assert.Zero(t, h.coins(t, "u1"))
}

func TestQuestService_ReportsAssignAndClaimEvents(t *testing.T) {
	h := newHarness(t)
	obs := &recordingObserver{}
	svc := NewQuestService(h.sets, h.templates, h.uow, h.config(), obs)
	ctx := context.Background()

	_, err := svc.Today(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.Today(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.ClaimBonus(ctx, "u1")
	require.Error(t, err)

	require.Len(t, obs.events, 2, "reading an existing set is not reported")
	assert.Equal(t, "assign-quests", obs.events[0].Name)
	assert.Equal(t, DefaultQuestsPerDay, obs.events[0].Fields["slots"])
	assert.Equal(t, "claim-bonus", obs.events[1].Name)
	assert.False(t, obs.events[1].Success())
}

func TestQuestService_TemplatesIncludesRetired(t *testing.T) {
	h := newHarness(t)
	_, err := h.db.Exec(`UPDATE quest_templates SET active = 0 WHERE id = 'deep-180'`)
	require.NoError(t, err)

	all, err := h.questService().Templates(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestQuestService_TemplateLooksUpByID(t *testing.T) {
	h := newHarness(t)
	svc := h.questService()
	ctx := context.Background()
	_, err := h.db.Exec(`UPDATE quest_templates SET active = 0 WHERE id = 'deep-180'`)
	require.NoError(t, err)

	tpl, err := svc.Template(ctx, " focus-90 ")
	require.NoError(t, err)
	assert.Equal(t, "Log 90 focused minutes", tpl.Name)
	assert.Equal(t, 90, tpl.Target)
	assert.Equal(t, domain.RelatedTimed, tpl.RelatedHabitType)

	retired, err := svc.Template(ctx, "deep-180")
	require.NoError(t, err)
	assert.False(t, retired.Active)

	_, err = svc.Template(ctx, "nope")
	assert.Equal(t, app.ErrNotFound, app.CodeOf(err))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Template(ctx, "")
	assert.Equal(t, app.ErrInvalidInput, app.CodeOf(err))
}
