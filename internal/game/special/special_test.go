package special_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/wastelandrpg/wasteland/internal/game/special"
)

func TestDefault(t *testing.T) {
	s := special.Default()
	assert.Equal(t, 5, s.Strength)
	assert.Equal(t, 5, s.Luck)
	assert.Equal(t, 35, s.TotalPoints())
	assert.NoError(t, s.Validate())
}

func TestValidate_Bounds(t *testing.T) {
	s := special.Default()
	s.Endurance = 11
	assert.Error(t, s.Validate())

	s = special.Default()
	s.Charisma = 0
	assert.Error(t, s.Validate())
}

func TestValidate_Budget(t *testing.T) {
	s := special.Special{
		Strength: 10, Perception: 10, Endurance: 10, Charisma: 10,
		Intelligence: 1, Agility: 1, Luck: 1,
	}
	// 43 points exceeds the 40-point budget.
	assert.Error(t, s.Validate())
}

func TestAllocator_StartsAtMinimum(t *testing.T) {
	a := special.NewAllocator()
	assert.Equal(t, 7, a.PointsSpent())
	for i := 0; i < special.StatCount; i++ {
		assert.Equal(t, special.MinStat, a.Stat(i))
	}
}

func TestAllocator_IncreaseDecrease(t *testing.T) {
	a := special.NewAllocator()
	require.True(t, a.Increase(0))
	assert.Equal(t, 2, a.Stat(0))
	assert.Equal(t, 8, a.PointsSpent())

	require.True(t, a.Decrease(0))
	assert.Equal(t, 1, a.Stat(0))
	assert.Equal(t, 7, a.PointsSpent())
}

func TestAllocator_RejectsDecreaseAtMinimum(t *testing.T) {
	a := special.NewAllocator()
	assert.False(t, a.Decrease(3))
	assert.Equal(t, 7, a.PointsSpent())
}

func TestAllocator_RejectsIncreaseAtMaximum(t *testing.T) {
	a := special.NewAllocator()
	for i := 0; i < 9; i++ {
		require.True(t, a.Increase(0))
	}
	assert.Equal(t, special.MaxStat, a.Stat(0))
	assert.False(t, a.Increase(0))
}

func TestAllocator_RejectsIncreaseWhenBudgetSpent(t *testing.T) {
	a := special.NewAllocator()
	// Raise the first four stats to 10 (36 points), then spend the last four.
	for stat := 0; stat < 4; stat++ {
		for i := 0; i < 9; i++ {
			require.True(t, a.Increase(stat))
		}
	}
	for i := 0; i < 4; i++ {
		require.True(t, a.Increase(4))
	}
	assert.Equal(t, special.PointBudget, a.PointsSpent())
	assert.Equal(t, 0, a.Remaining())
	assert.False(t, a.Increase(5))
}

func TestAllocator_Reset(t *testing.T) {
	a := special.NewAllocator()
	a.Increase(2)
	a.Increase(2)
	a.Reset()
	assert.Equal(t, 7, a.PointsSpent())
	assert.Equal(t, special.MinStat, a.Stat(2))
}

func TestAllocator_Property_SpentAlwaysEqualsSum(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := special.NewAllocator()
		ops := rapid.SliceOfN(rapid.IntRange(0, special.StatCount*2-1), 0, 200).Draw(rt, "ops")
		for _, op := range ops {
			if op < special.StatCount {
				a.Increase(op)
			} else {
				a.Decrease(op - special.StatCount)
			}
		}
		sum := 0
		for i := 0; i < special.StatCount; i++ {
			v := a.Stat(i)
			assert.GreaterOrEqual(rt, v, special.MinStat)
			assert.LessOrEqual(rt, v, special.MaxStat)
			sum += v
		}
		assert.Equal(rt, sum, a.PointsSpent())
		assert.LessOrEqual(rt, a.PointsSpent(), special.PointBudget)
	})
}

func TestAllocator_SpecialMaterialization(t *testing.T) {
	a := special.NewAllocator()
	a.Increase(0) // strength -> 2
	a.Increase(6) // luck -> 2
	s := a.Special()
	assert.Equal(t, 2, s.Strength)
	assert.Equal(t, 2, s.Luck)
	assert.Equal(t, 1, s.Agility)
	assert.Equal(t, a.PointsSpent(), s.TotalPoints())
}
