package handlers_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastelandrpg/wasteland/internal/game/character"
	"github.com/wastelandrpg/wasteland/internal/game/combat"
	"github.com/wastelandrpg/wasteland/internal/game/dice"
	"github.com/wastelandrpg/wasteland/internal/game/handlers"
	"github.com/wastelandrpg/wasteland/internal/game/special"
	"github.com/wastelandrpg/wasteland/internal/game/state"
)

// fixedSource returns a predetermined sequence of values, cycling when
// exhausted.
type fixedSource struct {
	values []int
	idx    int
}

func (f *fixedSource) Intn(n int) int {
	v := f.values[f.idx%len(f.values)]
	f.idx++
	if v >= n {
		v = n - 1
	}
	return v
}

func newHandler(src dice.Source) *handlers.Handler {
	return handlers.New(dice.NewLoggedRoller(src, nil), nil)
}

func newState(t *testing.T) *state.GameState {
	t.Helper()
	c, err := character.New("Hero", special.Default())
	require.NoError(t, err)
	return state.New(*c)
}

func TestAttackEnemy(t *testing.T) {
	t.Run("refused outside combat", func(t *testing.T) {
		h := newHandler(dice.NewCryptoSource())
		_, err := h.AttackEnemy(newState(t), 0)
		assert.True(t, errors.Is(err, handlers.ErrNotInCombat))
	})

	t.Run("hit deals damage", func(t *testing.T) {
		// d20 roll 15 plus small-guns skill beats radroach AC 8;
		// damage die 6 -> 1d10+2 = 8.
		h := newHandler(&fixedSource{values: []int{14, 5}})
		g := newState(t)
		require.NoError(t, h.StartEncounter(g, []combat.Enemy{combat.Radroach(1)}))

		apBefore := g.Character.AP
		report, err := h.AttackEnemy(g, 0)
		require.NoError(t, err)
		assert.True(t, report.Hit)
		assert.False(t, report.Critical)
		assert.Equal(t, 8, report.Damage, "1d10+2 with die 6")
		assert.Equal(t, apBefore-4, g.Character.AP, "pistol costs 4 AP")
	})

	t.Run("natural 20 crits for double damage", func(t *testing.T) {
		h := newHandler(&fixedSource{values: []int{19, 5}})
		g := newState(t)
		require.NoError(t, h.StartEncounter(g, []combat.Enemy{combat.Deathclaw(10)}))

		report, err := h.AttackEnemy(g, 0)
		require.NoError(t, err)
		assert.True(t, report.Hit)
		assert.True(t, report.Critical)
		assert.Equal(t, 16, report.Damage, "(6+2) doubled")
	})

	t.Run("insufficient ap refuses without spending", func(t *testing.T) {
		h := newHandler(dice.NewCryptoSource())
		g := newState(t)
		require.NoError(t, h.StartEncounter(g, []combat.Enemy{combat.Raider(1)}))
		g.Character.AP = 3

		_, err := h.AttackEnemy(g, 0)
		assert.True(t, errors.Is(err, handlers.ErrInsufficientAP))
		assert.Equal(t, 3, g.Character.AP)
	})

	t.Run("bad target index", func(t *testing.T) {
		h := newHandler(dice.NewCryptoSource())
		g := newState(t)
		require.NoError(t, h.StartEncounter(g, []combat.Enemy{combat.Raider(1)}))

		_, err := h.AttackEnemy(g, 5)
		assert.True(t, errors.Is(err, handlers.ErrNoSuchEnemy))
	})

	t.Run("victory ends combat and awards xp", func(t *testing.T) {
		h := newHandler(&fixedSource{values: []int{14, 9}})
		g := newState(t)
		roach := combat.Radroach(1)
		roach.CurrentHP = 1
		require.NoError(t, h.StartEncounter(g, []combat.Enemy{roach}))

		report, err := h.AttackEnemy(g, 0)
		require.NoError(t, err)
		assert.True(t, report.TargetDown)
		assert.True(t, report.Victory)
		assert.Equal(t, roach.XPReward, report.XPAwarded)
		assert.Equal(t, roach.XPReward, g.Character.Experience)
		assert.False(t, g.Combat.Active)
		assert.Empty(t, g.Combat.Enemies)
	})
}

func TestEnemyPhase(t *testing.T) {
	t.Run("refused outside combat", func(t *testing.T) {
		h := newHandler(dice.NewCryptoSource())
		_, err := h.EnemyPhase(newState(t))
		assert.True(t, errors.Is(err, handlers.ErrNotInCombat))
	})

	t.Run("living enemies attack and round advances", func(t *testing.T) {
		// Raider rolls 10 (hits: 11 + skill 48 >= player AC 5), damage die 3.
		h := newHandler(&fixedSource{values: []int{10, 2}})
		g := newState(t)
		require.NoError(t, h.StartEncounter(g, []combat.Enemy{combat.Raider(1)}))
		hpBefore := g.Character.HP

		attacks, err := h.EnemyPhase(g)
		require.NoError(t, err)
		require.Len(t, attacks, 1)
		assert.True(t, attacks[0].Hit)
		assert.Greater(t, attacks[0].Damage, 0)
		assert.Less(t, g.Character.HP, hpBefore)
		assert.Equal(t, 2, g.Combat.Round)
	})

	t.Run("dead enemies do not act", func(t *testing.T) {
		h := newHandler(dice.NewCryptoSource())
		g := newState(t)
		roach := combat.Radroach(1)
		roach.CurrentHP = 0
		raider := combat.Raider(1)
		require.NoError(t, h.StartEncounter(g, []combat.Enemy{roach, raider}))

		attacks, err := h.EnemyPhase(g)
		require.NoError(t, err)
		require.Len(t, attacks, 1)
		assert.Equal(t, "Raider", attacks[0].EnemyName)
	})
}

func TestUseConsumable(t *testing.T) {
	h := newHandler(dice.NewCryptoSource())
	g := newState(t)
	g.Character.TakeDamage(20)

	msg, err := h.UseConsumable(g, "stimpak")
	require.NoError(t, err)
	assert.Contains(t, msg, "30 HP")

	_, err = h.UseConsumable(g, "baseball_bat")
	assert.Error(t, err)
}

func TestRest(t *testing.T) {
	h := newHandler(dice.NewCryptoSource())
	g := newState(t)
	g.Character.TakeDamage(15)
	g.Character.AP = 0

	require.NoError(t, h.Rest(g))
	assert.Equal(t, 2, g.Day)
	assert.Equal(t, g.Character.MaxAP, g.Character.AP)
	assert.Greater(t, g.Character.HP, g.Character.MaxHP-15)

	require.NoError(t, g.Combat.StartCombat([]combat.Enemy{combat.Raider(1)}))
	assert.True(t, errors.Is(h.Rest(g), handlers.ErrInCombat))
}

func TestTravel(t *testing.T) {
	h := newHandler(dice.NewCryptoSource())
	g := newState(t)

	require.NoError(t, h.Travel(g, "wasteland_outskirts"))
	assert.Equal(t, "wasteland_outskirts", g.Location)

	found := false
	for _, id := range eventIDs(g) {
		ev, _ := g.Worldbook.Event(id)
		if ev.Day == g.Day && len(ev.Participants) == 1 && ev.Participants[0] == "Hero" {
			found = true
		}
	}
	assert.True(t, found, "travel must be recorded as a worldbook event")

	assert.True(t, errors.Is(h.Travel(g, "atlantis"), handlers.ErrUnknownDestination))

	require.NoError(t, g.Combat.StartCombat([]combat.Enemy{combat.Raider(1)}))
	assert.True(t, errors.Is(h.Travel(g, "vault_13"), handlers.ErrInCombat))
}

func eventIDs(g *state.GameState) []string {
	ids := make([]string, 0, len(g.Worldbook.Events))
	for id := range g.Worldbook.Events {
		ids = append(ids, id)
	}
	return ids
}
