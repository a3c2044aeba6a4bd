package character

import "github.com/wastelandrpg/wasteland/internal/game/special"

// Skills holds the 18 derived skill percentages. Values are computed from
// SPECIAL attributes at creation and are not modified afterwards.
type Skills struct {
	SmallGuns     int `json:"small_guns"`
	BigGuns       int `json:"big_guns"`
	EnergyWeapons int `json:"energy_weapons"`
	Unarmed       int `json:"unarmed"`
	MeleeWeapons  int `json:"melee_weapons"`
	Throwing      int `json:"throwing"`
	FirstAid      int `json:"first_aid"`
	Doctor        int `json:"doctor"`
	Sneak         int `json:"sneak"`
	Lockpick      int `json:"lockpick"`
	Steal         int `json:"steal"`
	Traps         int `json:"traps"`
	Science       int `json:"science"`
	Repair        int `json:"repair"`
	Speech        int `json:"speech"`
	Barter        int `json:"barter"`
	Gambling      int `json:"gambling"`
	Outdoorsman   int `json:"outdoorsman"`
}

// SkillsFromSpecial derives the full skill block from SPECIAL attributes.
func SkillsFromSpecial(s special.Special) Skills {
	return Skills{
		SmallGuns:     5 + 4*s.Agility,
		BigGuns:       2 * s.Agility,
		EnergyWeapons: 2 * s.Agility,
		Unarmed:       30 + 2*(s.Agility+s.Strength),
		MeleeWeapons:  20 + 2*(s.Agility+s.Strength),
		Throwing:      4 * s.Agility,
		FirstAid:      2 * (s.Perception + s.Intelligence),
		Doctor:        5 + s.Perception + s.Intelligence,
		Sneak:         5 + 3*s.Agility,
		Lockpick:      10 + s.Perception + s.Agility,
		Steal:         3 * s.Agility,
		Traps:         10 + s.Perception + s.Agility,
		Science:       4 * s.Intelligence,
		Repair:        3 * s.Intelligence,
		Speech:        5 * s.Charisma,
		Barter:        4 * s.Charisma,
		Gambling:      5 * s.Luck,
		Outdoorsman:   s.Endurance + s.Intelligence,
	}
}
