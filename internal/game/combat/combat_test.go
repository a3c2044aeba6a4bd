package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/wastelandrpg/wasteland/internal/game/combat"
	"github.com/wastelandrpg/wasteland/internal/game/dice"
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

func TestEnemyTemplates(t *testing.T) {
	t.Run("raider", func(t *testing.T) {
		r := combat.Raider(1)
		assert.Equal(t, 1, r.Level)
		assert.True(t, r.IsAlive())
		assert.Equal(t, 48, r.Skill)
		assert.Equal(t, 6, r.Strength)
		assert.Equal(t, r.MaxHP, r.CurrentHP)
	})

	t.Run("radroach", func(t *testing.T) {
		r := combat.Radroach(1)
		assert.Equal(t, 13, r.MaxHP)
		assert.Equal(t, 20, r.Skill)
		assert.Equal(t, 2, r.Strength)
		assert.Equal(t, "1d4", r.Damage)
	})

	t.Run("super mutant", func(t *testing.T) {
		sm := combat.SuperMutant(1)
		assert.Equal(t, 3, sm.Level, "fights two levels above nominal")
		assert.Equal(t, 55, sm.MaxHP)
		assert.Equal(t, 16, sm.AC)
		assert.Equal(t, 65, sm.Skill)
		assert.Equal(t, "1d8+2", sm.Damage)
		assert.Equal(t, 11, sm.Strength)
	})

	t.Run("super mutant outclasses raider", func(t *testing.T) {
		sm := combat.SuperMutant(1)
		r := combat.Raider(1)
		assert.Greater(t, sm.MaxHP, r.MaxHP)
		assert.Greater(t, sm.Skill, r.Skill)
		assert.Greater(t, sm.Strength, r.Strength)
	})

	t.Run("deathclaw outclasses super mutant", func(t *testing.T) {
		dc := combat.Deathclaw(5)
		sm := combat.SuperMutant(5)
		assert.Greater(t, dc.MaxHP, sm.MaxHP)
		assert.Greater(t, dc.AC, sm.AC)
	})

	t.Run("level floor", func(t *testing.T) {
		r := combat.Raider(0)
		assert.Equal(t, 1, r.Level)
	})
}

func TestEnemyScaling_Monotonic(t *testing.T) {
	templates := map[string]func(int) combat.Enemy{
		"generic":      func(l int) combat.Enemy { return combat.NewEnemy("Generic", l) },
		"radroach":     combat.Radroach,
		"raider":       combat.Raider,
		"super_mutant": combat.SuperMutant,
		"deathclaw":    combat.Deathclaw,
	}
	for name, tmpl := range templates {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				l1 := rapid.IntRange(1, 20).Draw(t, "l1")
				l2 := rapid.IntRange(l1, 20).Draw(t, "l2")

				e1, e2 := tmpl(l1), tmpl(l2)
				assert.GreaterOrEqual(t, e2.MaxHP, e1.MaxHP)
				assert.GreaterOrEqual(t, e2.Skill, e1.Skill)
				assert.NoError(t, e1.Validate())
				assert.NoError(t, e2.Validate())
			})
		})
	}
}

func TestRaiderScenario(t *testing.T) {
	l1, l5 := combat.Raider(1), combat.Raider(5)
	assert.Greater(t, l5.MaxHP, l1.MaxHP)
	assert.GreaterOrEqual(t, l5.Skill, l1.Skill)
}

func TestEnemyTakeDamage(t *testing.T) {
	r := combat.Radroach(1)
	r.TakeDamage(5)
	assert.Equal(t, 8, r.CurrentHP)

	r.TakeDamage(100)
	assert.Equal(t, 0, r.CurrentHP)
	assert.False(t, r.IsAlive())
}

func TestEnemyValidate_UnparseableDamage(t *testing.T) {
	r := combat.Radroach(1)
	r.Damage = "1d"
	assert.Error(t, r.Validate())
}

func TestEncounterLifecycle(t *testing.T) {
	enc := combat.NewEncounter()
	assert.False(t, enc.Active)
	assert.NoError(t, enc.Validate())

	t.Run("start with no enemies fails", func(t *testing.T) {
		assert.Error(t, enc.StartCombat(nil))
		assert.False(t, enc.Active)
	})

	t.Run("start", func(t *testing.T) {
		require.NoError(t, enc.StartCombat([]combat.Enemy{combat.Raider(1), combat.Radroach(1)}))
		assert.True(t, enc.Active)
		assert.Equal(t, 1, enc.Round)
		assert.Equal(t, 0, enc.Turn)
		assert.NotEmpty(t, enc.ID)
		assert.NoError(t, enc.Validate())
	})

	t.Run("double start fails", func(t *testing.T) {
		assert.Error(t, enc.StartCombat([]combat.Enemy{combat.Raider(1)}))
	})

	t.Run("rounds advance", func(t *testing.T) {
		enc.NextRound()
		assert.Equal(t, 2, enc.Round)
	})

	t.Run("defeat tracking", func(t *testing.T) {
		assert.False(t, enc.AllDefeated())
		assert.Len(t, enc.LivingEnemies(), 2)

		for i := range enc.Enemies {
			enc.Enemies[i].TakeDamage(1000)
		}
		assert.True(t, enc.AllDefeated())
		assert.Empty(t, enc.LivingEnemies())
	})

	t.Run("xp reward", func(t *testing.T) {
		assert.Equal(t, combat.Raider(1).XPReward+combat.Radroach(1).XPReward, enc.TotalXPReward())
	})

	t.Run("end", func(t *testing.T) {
		enc.EndCombat()
		assert.False(t, enc.Active)
		assert.Empty(t, enc.Enemies)
		assert.Equal(t, 0, enc.Round)
		assert.NoError(t, enc.Validate())
	})
}

func TestEncounterValidate_ActiveWithoutEnemies(t *testing.T) {
	enc := combat.Encounter{Active: true, Round: 1}
	assert.Error(t, enc.Validate())

	enc = combat.Encounter{Active: false, Enemies: []combat.Enemy{combat.Raider(1)}}
	assert.Error(t, enc.Validate())
}

func TestAttackRoll(t *testing.T) {
	t.Run("natural 20 always hits", func(t *testing.T) {
		hit, crit := combat.AttackRoll(0, 1000, &fixedSource{values: []int{19}}) // Intn returns 19 -> roll 20
		assert.True(t, hit)
		assert.True(t, crit)
	})

	t.Run("skill plus roll beats ac", func(t *testing.T) {
		hit, crit := combat.AttackRoll(40, 45, &fixedSource{values: []int{4}}) // roll 5, total 45
		assert.True(t, hit)
		assert.False(t, crit)
	})

	t.Run("miss", func(t *testing.T) {
		hit, _ := combat.AttackRoll(5, 100, &fixedSource{values: []int{0}}) // roll 1, total 6
		assert.False(t, hit)
	})
}

func TestAttackRoll_Property_CritImpliesHit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		skill := rapid.IntRange(0, 100).Draw(t, "skill")
		ac := rapid.IntRange(1, 150).Draw(t, "ac")
		hit, crit := combat.AttackRoll(skill, ac, dice.NewCryptoSource())
		if crit {
			assert.True(t, hit)
		}
	})
}

func TestRollDamage(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		dmg, err := combat.RollDamage("1d10+2", 0, false, &fixedSource{values: []int{6}}) // die 7
		require.NoError(t, err)
		assert.Equal(t, 9, dmg)
	})

	t.Run("bonus and crit doubles", func(t *testing.T) {
		dmg, err := combat.RollDamage("1d6", 3, true, &fixedSource{values: []int{2}}) // die 3
		require.NoError(t, err)
		assert.Equal(t, 12, dmg)
	})

	t.Run("floor of 1", func(t *testing.T) {
		dmg, err := combat.RollDamage("1d4-10", 0, false, &fixedSource{values: []int{0}})
		require.NoError(t, err)
		assert.Equal(t, 1, dmg)
	})

	t.Run("bad expression", func(t *testing.T) {
		_, err := combat.RollDamage("garbage", 0, false, dice.NewCryptoSource())
		assert.Error(t, err)
	})
}
