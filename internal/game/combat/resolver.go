package combat

import "github.com/wastelandrpg/wasteland/internal/game/dice"

// AttackRoll resolves a to-hit check: roll a d20, add the attacker's skill,
// and compare against the target's armor class. A natural 20 is a critical
// and always hits.
//
// Postcondition: crit implies hit.
func AttackRoll(skill, targetAC int, src dice.Source) (hit, crit bool) {
	roll := src.Intn(20) + 1
	crit = roll == 20
	hit = crit || roll+skill >= targetAC
	return hit, crit
}

// RollDamage evaluates a damage expression, adds a flat bonus, and applies
// the critical multiplier (double damage). Damage never goes below 1.
//
// Precondition: expr is a valid dice expression (stat tokens already
// resolved).
func RollDamage(expr string, bonus int, crit bool, src dice.Source) (int, error) {
	result, err := dice.RollExpr(expr, src)
	if err != nil {
		return 0, err
	}
	dmg := result.Total() + bonus
	if crit {
		dmg *= 2
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg, nil
}
