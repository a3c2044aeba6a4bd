// Package item defines inventory items: weapons, armor, consumables, and
// miscellaneous goods, plus the tagged JSON codec that round-trips them.
package item

import (
	"fmt"

	"github.com/wastelandrpg/wasteland/internal/game/dice"
)

// Kind discriminates the item variants on the wire.
type Kind string

const (
	KindWeapon     Kind = "weapon"
	KindArmor      Kind = "armor"
	KindConsumable Kind = "consumable"
	KindMisc       Kind = "misc"
)

// DamageType classifies weapon damage for resistance purposes.
type DamageType string

const (
	DamageNormal    DamageType = "normal"
	DamageLaser     DamageType = "laser"
	DamagePlasma    DamageType = "plasma"
	DamageFire      DamageType = "fire"
	DamageExplosive DamageType = "explosive"
	DamageElectric  DamageType = "electric"
	DamagePoison    DamageType = "poison"
	DamageRadiation DamageType = "radiation"
)

// WeaponClass determines which character skill governs attacks with a weapon.
type WeaponClass string

const (
	ClassSmallGun     WeaponClass = "small_gun"
	ClassBigGun       WeaponClass = "big_gun"
	ClassEnergyWeapon WeaponClass = "energy_weapon"
	ClassMelee        WeaponClass = "melee"
	ClassUnarmed      WeaponClass = "unarmed"
	ClassThrowing     WeaponClass = "throwing"
	ClassExplosive    WeaponClass = "explosive"
)

// WeaponStats is the weapon-specific payload of an item.
type WeaponStats struct {
	Damage     string      `json:"damage"` // dice expression, may contain the STR token
	DamageType DamageType  `json:"damage_type"`
	Class      WeaponClass `json:"class"`
	APCost     int         `json:"ap_cost"`
}

// ArmorStats is the armor-specific payload of an item.
//
// Invariant: AC == 5 + DR/2, frozen at construction time.
type ArmorStats struct {
	DR int `json:"damage_resistance"`
	RR int `json:"radiation_resistance"`
	AC int `json:"armor_class"`
}

// EffectKind discriminates consumable effects on the wire.
type EffectKind string

const (
	EffectHealing EffectKind = "healing"
	EffectRadAway EffectKind = "radaway"
	EffectChem    EffectKind = "chem"
	EffectFood    EffectKind = "food"
)

// Effect is the consumable payload. Only the fields relevant to its Kind are
// meaningful; the rest stay zero.
type Effect struct {
	Kind EffectKind `json:"kind"`

	// healing
	Amount int `json:"amount,omitempty"`

	// radaway
	RadReduction int `json:"rad_reduction,omitempty"`

	// chem
	ChemName  string `json:"chem_name,omitempty"`
	Stat      string `json:"stat,omitempty"`
	Magnitude int    `json:"magnitude,omitempty"`
	Duration  int    `json:"duration,omitempty"`

	// food
	HP     int `json:"hp,omitempty"`
	Hunger int `json:"hunger,omitempty"`
}

// Item is a stackable inventory entry. Exactly one of Weapon, Armor, or
// Effect is set, according to Kind; for KindMisc all three stay nil.
type Item struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Weight      float64
	Value       int
	Quantity    int

	Weapon *WeaponStats
	Armor  *ArmorStats
	Effect *Effect
}

// ArmorClassFor derives armor class from damage resistance.
func ArmorClassFor(dr int) int { return 5 + dr/2 }

// NewWeapon constructs a weapon item with quantity 1.
func NewWeapon(id, name, description string, weight float64, value int, stats WeaponStats) Item {
	return Item{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        KindWeapon,
		Weight:      weight,
		Value:       value,
		Quantity:    1,
		Weapon:      &stats,
	}
}

// NewArmor constructs an armor item with quantity 1. Armor class is frozen
// from the damage resistance at construction.
func NewArmor(id, name, description string, weight float64, value, dr, rr int) Item {
	return Item{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        KindArmor,
		Weight:      weight,
		Value:       value,
		Quantity:    1,
		Armor:       &ArmorStats{DR: dr, RR: rr, AC: ArmorClassFor(dr)},
	}
}

// NewConsumable constructs a consumable item with quantity 1.
func NewConsumable(id, name, description string, weight float64, value int, effect Effect) Item {
	return Item{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        KindConsumable,
		Weight:      weight,
		Value:       value,
		Quantity:    1,
		Effect:      &effect,
	}
}

// NewMisc constructs a miscellaneous item with quantity 1.
func NewMisc(id, name, description string, weight float64, value int) Item {
	return Item{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        KindMisc,
		Weight:      weight,
		Value:       value,
		Quantity:    1,
	}
}

// Validate checks the item's structural invariants and returns all
// violations found.
//
// Postcondition: Returns nil if and only if the item is structurally valid.
func (i Item) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, fmt.Errorf("item: id must be non-empty"))
	}
	if i.Name == "" {
		errs = append(errs, fmt.Errorf("item %q: name must be non-empty", i.ID))
	}
	if i.Quantity < 1 {
		errs = append(errs, fmt.Errorf("item %q: quantity must be >= 1, got %d", i.ID, i.Quantity))
	}
	if i.Weight < 0 {
		errs = append(errs, fmt.Errorf("item %q: weight must be >= 0, got %f", i.ID, i.Weight))
	}

	switch i.Kind {
	case KindWeapon:
		if i.Weapon == nil {
			errs = append(errs, fmt.Errorf("item %q: weapon kind requires weapon stats", i.ID))
		} else {
			if i.Weapon.Damage == "" {
				errs = append(errs, fmt.Errorf("item %q: weapon damage expression must be non-empty", i.ID))
			} else if _, err := dice.Parse(dice.ResolveStatTokens(i.Weapon.Damage, 10)); err != nil {
				errs = append(errs, fmt.Errorf("item %q: weapon damage: %v", i.ID, err))
			}
			if i.Weapon.APCost <= 0 {
				errs = append(errs, fmt.Errorf("item %q: weapon ap cost must be > 0, got %d", i.ID, i.Weapon.APCost))
			}
			if !validWeaponClass(i.Weapon.Class) {
				errs = append(errs, fmt.Errorf("item %q: unknown weapon class %q", i.ID, i.Weapon.Class))
			}
			if !validDamageType(i.Weapon.DamageType) {
				errs = append(errs, fmt.Errorf("item %q: unknown damage type %q", i.ID, i.Weapon.DamageType))
			}
		}
	case KindArmor:
		if i.Armor == nil {
			errs = append(errs, fmt.Errorf("item %q: armor kind requires armor stats", i.ID))
		} else {
			if i.Armor.DR < 0 {
				errs = append(errs, fmt.Errorf("item %q: damage resistance must be >= 0, got %d", i.ID, i.Armor.DR))
			}
			if i.Armor.AC != ArmorClassFor(i.Armor.DR) {
				errs = append(errs, fmt.Errorf("item %q: armor class %d does not match resistance %d", i.ID, i.Armor.AC, i.Armor.DR))
			}
		}
	case KindConsumable:
		if i.Effect == nil {
			errs = append(errs, fmt.Errorf("item %q: consumable kind requires an effect", i.ID))
		} else if !validEffectKind(i.Effect.Kind) {
			errs = append(errs, fmt.Errorf("item %q: unknown effect kind %q", i.ID, i.Effect.Kind))
		}
	case KindMisc:
		// no payload
	default:
		errs = append(errs, fmt.Errorf("item %q: unknown kind %q", i.ID, i.Kind))
	}

	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

func validWeaponClass(c WeaponClass) bool {
	switch c {
	case ClassSmallGun, ClassBigGun, ClassEnergyWeapon, ClassMelee, ClassUnarmed, ClassThrowing, ClassExplosive:
		return true
	}
	return false
}

func validDamageType(d DamageType) bool {
	switch d {
	case DamageNormal, DamageLaser, DamagePlasma, DamageFire, DamageExplosive, DamageElectric, DamagePoison, DamageRadiation:
		return true
	}
	return false
}

func validEffectKind(k EffectKind) bool {
	switch k {
	case EffectHealing, EffectRadAway, EffectChem, EffectFood:
		return true
	}
	return false
}
