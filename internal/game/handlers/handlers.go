// Package handlers implements the game actions that mutate a GameState:
// combat rounds, consumables, resting, and travel. Handlers translate rule
// refusals into errors and never write to the terminal themselves.
package handlers

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wastelandrpg/wasteland/internal/game/combat"
	"github.com/wastelandrpg/wasteland/internal/game/dice"
	"github.com/wastelandrpg/wasteland/internal/game/state"
	"github.com/wastelandrpg/wasteland/internal/game/worldbook"
)

// Rule refusals. These are expected in normal play and are not bugs.
var (
	// ErrNotInCombat is returned by combat actions outside an encounter.
	ErrNotInCombat = errors.New("not in combat")
	// ErrInCombat is returned by actions that are illegal mid-encounter.
	ErrInCombat = errors.New("action not allowed during combat")
	// ErrInsufficientAP is returned when an attack costs more AP than remains.
	ErrInsufficientAP = errors.New("insufficient action points")
	// ErrNoSuchEnemy is returned for an out-of-range or dead target.
	ErrNoSuchEnemy = errors.New("no such enemy")
	// ErrUnknownDestination is returned for travel to an unmapped location.
	ErrUnknownDestination = errors.New("unknown destination")
)

// Handler executes game actions against a single GameState. It is not safe
// for concurrent use; one session owns it.
type Handler struct {
	roller *dice.Roller
	logger *zap.Logger
}

// New creates a Handler rolling with roller and logging to logger.
//
// Precondition: roller is non-nil; a nil logger is replaced by a no-op
// logger.
func New(roller *dice.Roller, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{roller: roller, logger: logger}
}

// AttackReport describes the outcome of one player attack.
type AttackReport struct {
	TargetName string
	Hit        bool
	Critical   bool
	Damage     int
	TargetDown bool
	Victory    bool
	XPAwarded  int
	LevelsUp   int
}

// AttackEnemy spends the weapon's AP cost and resolves one attack against
// the enemy at index target. On a victory the encounter ends and XP is
// awarded.
//
// Postcondition: on ErrInsufficientAP the character's AP is unchanged.
func (h *Handler) AttackEnemy(g *state.GameState, target int) (*AttackReport, error) {
	if !g.Combat.Active {
		return nil, ErrNotInCombat
	}
	if target < 0 || target >= len(g.Combat.Enemies) {
		return nil, fmt.Errorf("%w: index %d", ErrNoSuchEnemy, target)
	}
	enemy := &g.Combat.Enemies[target]
	if !enemy.IsAlive() {
		return nil, fmt.Errorf("%w: %s is already down", ErrNoSuchEnemy, enemy.Name)
	}

	cost := g.Character.AttackAPCost()
	if !g.Character.UseAP(cost) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientAP, cost, g.Character.AP)
	}

	report := &AttackReport{TargetName: enemy.Name}
	hit, crit := combat.AttackRoll(g.Character.WeaponSkill(), enemy.AC, h.roller.Source())
	report.Hit, report.Critical = hit, crit

	if hit {
		dmg, err := combat.RollDamage(g.Character.EquippedDamage(), 0, crit, h.roller.Source())
		if err != nil {
			return nil, err
		}
		enemy.TakeDamage(dmg)
		report.Damage = dmg
		report.TargetDown = !enemy.IsAlive()
	}

	h.logger.Debug("player attack",
		zap.String("target", enemy.Name),
		zap.Bool("hit", hit),
		zap.Bool("critical", crit),
		zap.Int("damage", report.Damage),
	)

	if g.Combat.AllDefeated() {
		report.Victory = true
		report.XPAwarded = g.Combat.TotalXPReward()
		report.LevelsUp = g.Character.AddExperience(report.XPAwarded)
		g.Combat.EndCombat()
		h.logger.Info("encounter won",
			zap.Int("xp", report.XPAwarded),
			zap.Int("levels_gained", report.LevelsUp),
		)
	}
	return report, nil
}

// EnemyAttack describes one enemy's swing during the enemy phase.
type EnemyAttack struct {
	EnemyName string
	Hit       bool
	Critical  bool
	Damage    int
}

// EnemyPhase runs every living enemy's attack against the character, applies
// armor damage reduction, then advances the round and regenerates the
// character's AP. Chem durations tick down once per round.
func (h *Handler) EnemyPhase(g *state.GameState) ([]EnemyAttack, error) {
	if !g.Combat.Active {
		return nil, ErrNotInCombat
	}

	playerAC := 5 + g.Character.ArmorDR()/2
	var attacks []EnemyAttack
	for _, i := range g.Combat.LivingEnemies() {
		enemy := &g.Combat.Enemies[i]
		atk := EnemyAttack{EnemyName: enemy.Name}

		hit, crit := combat.AttackRoll(enemy.Skill, playerAC, h.roller.Source())
		atk.Hit, atk.Critical = hit, crit
		if hit {
			dmg, err := combat.RollDamage(enemy.Damage, enemy.Strength/2, crit, h.roller.Source())
			if err != nil {
				return nil, err
			}
			dmg -= g.Character.ArmorDR()
			if dmg < 1 {
				dmg = 1
			}
			g.Character.TakeDamage(dmg)
			atk.Damage = dmg
		}
		attacks = append(attacks, atk)

		if !g.Character.IsAlive() {
			break
		}
	}

	g.Combat.NextRound()
	g.Character.RegenAP(g.Character.MaxAP / 2)
	g.Character.TickChems()
	return attacks, nil
}

// StartEncounter begins combat against the given enemies.
func (h *Handler) StartEncounter(g *state.GameState, enemies []combat.Enemy) error {
	if err := g.Combat.StartCombat(enemies); err != nil {
		return err
	}
	h.logger.Info("encounter started", zap.Int("enemies", len(enemies)))
	return nil
}

// UseConsumable consumes the identified inventory item and applies its
// effect.
func (h *Handler) UseConsumable(g *state.GameState, id string) (string, error) {
	result, err := g.Character.UseConsumable(id)
	if err != nil {
		return "", err
	}
	h.logger.Debug("consumable used", zap.String("item", id))
	return result, nil
}

// Rest advances the day, refills AP, and heals endurance-scaled HP. Resting
// mid-combat is refused.
func (h *Handler) Rest(g *state.GameState) error {
	if g.Combat.Active {
		return ErrInCombat
	}
	g.Day++
	g.Character.RestoreAP()
	g.Character.Heal(5 + g.Character.Special.Endurance)
	h.logger.Debug("rested", zap.Int("day", g.Day))
	return nil
}

// Travel moves the character to a destination known to the worldbook and
// records the journey as a worldbook event. Travel mid-combat is refused.
func (h *Handler) Travel(g *state.GameState, destination string) error {
	if g.Combat.Active {
		return ErrInCombat
	}
	loc, ok := g.Worldbook.Location(destination)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDestination, destination)
	}

	g.Location = destination
	g.Worldbook.AddEvent("travel_"+uuid.NewString(), worldbook.Event{
		Day:          g.Day,
		Summary:      fmt.Sprintf("%s arrived at %s.", g.Character.Name, loc.Name),
		Participants: []string{g.Character.Name},
	})
	h.logger.Info("traveled", zap.String("destination", destination))
	return nil
}
