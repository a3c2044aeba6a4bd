package combat

import (
	"fmt"

	"github.com/google/uuid"
)

// Encounter is the combat state machine. It is Idle (inactive, no enemies)
// or Active (active, at least one enemy); no other combination is legal.
type Encounter struct {
	ID      string  `json:"id"`
	Active  bool    `json:"active"`
	Round   int     `json:"round"`
	Turn    int     `json:"turn"`
	Enemies []Enemy `json:"enemies"`
}

// NewEncounter returns an idle encounter.
func NewEncounter() Encounter {
	return Encounter{}
}

// StartCombat transitions Idle -> Active with the given enemies.
//
// Postcondition: on success Round == 1, Turn == 0, and a fresh encounter ID
// is assigned. Fails without mutation when already active or enemies is
// empty.
func (e *Encounter) StartCombat(enemies []Enemy) error {
	if e.Active {
		return fmt.Errorf("combat: encounter already active")
	}
	if len(enemies) == 0 {
		return fmt.Errorf("combat: cannot start an encounter with no enemies")
	}
	e.ID = uuid.NewString()
	e.Active = true
	e.Round = 1
	e.Turn = 0
	e.Enemies = append([]Enemy(nil), enemies...)
	return nil
}

// EndCombat transitions Active -> Idle, clearing enemies and counters.
//
// Postcondition: Active == false, Enemies empty, Round == 0, Turn == 0.
func (e *Encounter) EndCombat() {
	e.ID = ""
	e.Active = false
	e.Round = 0
	e.Turn = 0
	e.Enemies = nil
}

// NextRound advances the round counter and resets the turn index.
//
// Precondition: the encounter is active.
func (e *Encounter) NextRound() {
	if !e.Active {
		return
	}
	e.Round++
	e.Turn = 0
}

// AllDefeated reports whether every enemy is at zero hit points.
func (e *Encounter) AllDefeated() bool {
	for i := range e.Enemies {
		if e.Enemies[i].IsAlive() {
			return false
		}
	}
	return true
}

// LivingEnemies returns indices of enemies still standing.
func (e *Encounter) LivingEnemies() []int {
	var alive []int
	for i := range e.Enemies {
		if e.Enemies[i].IsAlive() {
			alive = append(alive, i)
		}
	}
	return alive
}

// TotalXPReward sums the XP rewards of all enemies in the encounter.
func (e *Encounter) TotalXPReward() int {
	total := 0
	for i := range e.Enemies {
		total += e.Enemies[i].XPReward
	}
	return total
}

// Validate checks the state-machine invariant and each enemy.
//
// Postcondition: Returns nil if and only if active ⇔ enemies non-empty and
// every enemy is valid.
func (e *Encounter) Validate() error {
	var errs []error
	if e.Active && len(e.Enemies) == 0 {
		errs = append(errs, fmt.Errorf("combat: active encounter must have enemies"))
	}
	if !e.Active && len(e.Enemies) > 0 {
		errs = append(errs, fmt.Errorf("combat: idle encounter must have no enemies"))
	}
	if e.Active && e.Round < 1 {
		errs = append(errs, fmt.Errorf("combat: active encounter round must be >= 1, got %d", e.Round))
	}
	for i := range e.Enemies {
		if err := e.Enemies[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("encounter validation failed: %v", errs)
	}
	return nil
}
