// Package combat models enemies, the encounter state machine, and attack
// resolution.
package combat

import (
	"fmt"

	"github.com/wastelandrpg/wasteland/internal/game/dice"
)

// Enemy is one combatant on the opposing side. All stats are frozen at
// construction except CurrentHP.
type Enemy struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	MaxHP     int    `json:"max_hp"`
	CurrentHP int    `json:"current_hp"`
	AC        int    `json:"armor_class"`
	Skill     int    `json:"skill"`
	Damage    string `json:"damage"` // dice expression
	AP        int    `json:"ap"`
	XPReward  int    `json:"xp_reward"`
	Strength  int    `json:"strength"`
}

// NewEnemy constructs a generic enemy at the given level using the baseline
// scaling curves. Levels below 1 are raised to 1.
//
// Postcondition: CurrentHP == MaxHP; all stats are monotonic in level.
func NewEnemy(name string, level int) Enemy {
	if level < 1 {
		level = 1
	}
	return Enemy{
		Name:      name,
		Level:     level,
		MaxHP:     20 + 10*level,
		CurrentHP: 20 + 10*level,
		AC:        10 + level,
		Skill:     30 + min(10*level, 70),
		Damage:    fmt.Sprintf("%dd6+%d", 1+level/3, level),
		AP:        5 + level/2,
		XPReward:  100 * level,
		Strength:  5,
	}
}

// Radroach builds a weak early-game enemy.
func Radroach(level int) Enemy {
	e := NewEnemy("Radroach", level)
	e.MaxHP = 10 + 3*e.Level
	e.CurrentHP = e.MaxHP
	e.AC = 8
	e.Skill = 20
	e.Damage = "1d4"
	e.Strength = 2
	return e
}

// Raider builds a human raider.
func Raider(level int) Enemy {
	e := NewEnemy("Raider", level)
	e.Skill = 40 + min(8*e.Level, 80)
	e.Strength = 5 + e.Level
	return e
}

// SuperMutant builds a super mutant. Its level field sits two above the
// requested level while its stats scale from the requested level.
func SuperMutant(level int) Enemy {
	if level < 1 {
		level = 1
	}
	e := NewEnemy("Super Mutant", level+2)
	e.MaxHP = 40 + 15*level
	e.CurrentHP = e.MaxHP
	e.AC = 15 + level
	e.Skill = 60 + min(5*level, 90)
	e.Damage = fmt.Sprintf("%dd8+%d", 1+level/2, 2*level)
	e.Strength = 10 + level
	return e
}

// Deathclaw builds the apex predator of the wastes.
func Deathclaw(level int) Enemy {
	e := NewEnemy("Deathclaw", level)
	e.MaxHP = 60 + 20*e.Level
	e.CurrentHP = e.MaxHP
	e.AC = 18 + e.Level
	e.Skill = 70 + min(3*e.Level, 25)
	e.Damage = fmt.Sprintf("%dd10+%d", 2+e.Level/2, 2*e.Level)
	e.Strength = 12 + e.Level
	e.XPReward = 300 * e.Level
	return e
}

// IsAlive reports whether the enemy has hit points remaining.
func (e *Enemy) IsAlive() bool { return e.CurrentHP > 0 }

// TakeDamage reduces CurrentHP by amount, clamped at 0.
//
// Precondition: amount >= 0.
func (e *Enemy) TakeDamage(amount int) {
	e.CurrentHP -= amount
	if e.CurrentHP < 0 {
		e.CurrentHP = 0
	}
}

// Validate checks the enemy's structural invariants.
func (e *Enemy) Validate() error {
	var errs []error
	if e.Name == "" {
		errs = append(errs, fmt.Errorf("enemy: name must be non-empty"))
	}
	if e.Level < 1 {
		errs = append(errs, fmt.Errorf("enemy %q: level must be >= 1, got %d", e.Name, e.Level))
	}
	if e.CurrentHP < 0 || e.CurrentHP > e.MaxHP {
		errs = append(errs, fmt.Errorf("enemy %q: hp %d outside [0, %d]", e.Name, e.CurrentHP, e.MaxHP))
	}
	if e.Damage == "" {
		errs = append(errs, fmt.Errorf("enemy %q: damage expression must be non-empty", e.Name))
	} else if _, err := dice.Parse(e.Damage); err != nil {
		errs = append(errs, fmt.Errorf("enemy %q: damage: %v", e.Name, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("enemy validation failed: %v", errs)
	}
	return nil
}
