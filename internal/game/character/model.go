// Package character defines the player character: SPECIAL attributes, derived
// stats, skills, inventory, equipment, and progression.
package character

import (
	"fmt"

	"github.com/wastelandrpg/wasteland/internal/game/dice"
	"github.com/wastelandrpg/wasteland/internal/game/item"
	"github.com/wastelandrpg/wasteland/internal/game/special"
	"github.com/wastelandrpg/wasteland/internal/game/validation"
)

const (
	// StartingCaps is the bottle-cap balance for a fresh character.
	StartingCaps = 500
	// XPPerLevel scales the level threshold: a character levels up while
	// accumulated experience >= XPPerLevel * level.
	XPPerLevel = 1000
	// UnarmedAPCost applies when no weapon is equipped.
	UnarmedAPCost = 3
)

// ActiveChem is a temporary stat modifier from a consumed chem.
type ActiveChem struct {
	Name      string `json:"name"`
	Stat      string `json:"stat"`
	Magnitude int    `json:"magnitude"`
	Remaining int    `json:"remaining"` // rounds left
}

// Character is the player avatar. All mutation goes through methods so the
// HP/AP clamps and inventory invariants hold at every step.
type Character struct {
	Name       string          `json:"name"`
	Special    special.Special `json:"special"`
	Level      int             `json:"level"`
	Experience int             `json:"experience"`
	HP         int             `json:"hp"`
	MaxHP      int             `json:"max_hp"`
	AP         int             `json:"ap"`
	MaxAP      int             `json:"max_ap"`
	Rads       int             `json:"rads"`
	Hunger     int             `json:"hunger"`
	Caps       int             `json:"caps"`
	Skills     Skills          `json:"skills"`
	Inventory  []item.Item     `json:"inventory"`

	// Equipment slots reference item IDs in Inventory; nil means empty.
	EquippedWeapon *string      `json:"equipped_weapon,omitempty"`
	EquippedArmor  *string      `json:"equipped_armor,omitempty"`
	ActiveChems    []ActiveChem `json:"active_chems,omitempty"`
}

// MaxHPFor computes maximum hit points from SPECIAL at level 1.
func MaxHPFor(s special.Special) int { return 15 + s.Strength + 2*s.Endurance }

// MaxAPFor computes maximum action points from SPECIAL.
func MaxAPFor(s special.Special) int { return 5 + s.Agility/2 }

// New creates a level-1 character with full HP/AP, derived skills, starting
// caps, the starting kit, and the 10mm pistol equipped.
//
// Precondition: name passes validation.CharacterName; s passes s.Validate().
// Postcondition: HP == MaxHP, AP == MaxAP, Level == 1, Experience == 0.
func New(name string, s special.Special) (*Character, error) {
	if err := validation.CharacterName(name); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	maxHP := MaxHPFor(s)
	maxAP := MaxAPFor(s)
	c := &Character{
		Name:       name,
		Special:    s,
		Level:      1,
		Experience: 0,
		HP:         maxHP,
		MaxHP:      maxHP,
		AP:         maxAP,
		MaxAP:      maxAP,
		Caps:       StartingCaps,
		Skills:     SkillsFromSpecial(s),
		Inventory:  item.StartingItems(),
	}
	weapon := "10mm_pistol"
	c.EquippedWeapon = &weapon
	return c, nil
}

// IsAlive reports whether the character has hit points remaining.
func (c *Character) IsAlive() bool { return c.HP > 0 }

// TakeDamage reduces HP by amount, clamped at 0.
//
// Precondition: amount >= 0.
// Postcondition: 0 <= c.HP <= c.MaxHP.
func (c *Character) TakeDamage(amount int) {
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// Heal restores HP by amount, clamped at MaxHP.
//
// Precondition: amount >= 0.
// Postcondition: 0 <= c.HP <= c.MaxHP.
func (c *Character) Heal(amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// UseAP spends cost action points. It returns true and deducts the cost if
// and only if the character has at least cost AP; otherwise AP is unchanged.
//
// Postcondition: returns true implies AP decreased by exactly cost.
func (c *Character) UseAP(cost int) bool {
	if cost > c.AP {
		return false
	}
	c.AP -= cost
	return true
}

// RegenAP restores amount action points, clamped at MaxAP.
func (c *Character) RegenAP(amount int) {
	c.AP += amount
	if c.AP > c.MaxAP {
		c.AP = c.MaxAP
	}
}

// RestoreAP refills action points to maximum.
func (c *Character) RestoreAP() { c.AP = c.MaxAP }

// AddExperience grants xp and applies any level-ups. Each level gained raises
// MaxHP by 5 + endurance and refills HP. Returns the number of levels gained.
//
// Precondition: xp >= 0.
func (c *Character) AddExperience(xp int) int {
	c.Experience += xp
	gained := 0
	for c.Experience >= XPPerLevel*c.Level {
		c.Level++
		c.MaxHP += 5 + c.Special.Endurance
		c.HP = c.MaxHP
		gained++
	}
	return gained
}

// AddItem adds it to the inventory, merging quantities when an item with the
// same ID already exists.
//
// Precondition: it.Quantity >= 1.
func (c *Character) AddItem(it item.Item) {
	for i := range c.Inventory {
		if c.Inventory[i].ID == it.ID {
			c.Inventory[i].Quantity += it.Quantity
			return
		}
	}
	c.Inventory = append(c.Inventory, it)
}

// RemoveItem removes qty of the item with the given ID. The stack is deleted
// when its quantity reaches zero, and any equipment slot referencing the
// deleted item is cleared.
//
// Postcondition: Returns an error if the item is missing or qty exceeds the
// stack; the inventory is unchanged on error.
func (c *Character) RemoveItem(id string, qty int) error {
	for i := range c.Inventory {
		if c.Inventory[i].ID != id {
			continue
		}
		if qty > c.Inventory[i].Quantity {
			return fmt.Errorf("character: cannot remove %d of %q, only %d held", qty, id, c.Inventory[i].Quantity)
		}
		c.Inventory[i].Quantity -= qty
		if c.Inventory[i].Quantity == 0 {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			if c.EquippedWeapon != nil && *c.EquippedWeapon == id {
				c.EquippedWeapon = nil
			}
			if c.EquippedArmor != nil && *c.EquippedArmor == id {
				c.EquippedArmor = nil
			}
		}
		return nil
	}
	return fmt.Errorf("character: item %q not in inventory", id)
}

// FindItem returns a pointer into the inventory for the item with the given
// ID, or false when absent.
func (c *Character) FindItem(id string) (*item.Item, bool) {
	for i := range c.Inventory {
		if c.Inventory[i].ID == id {
			return &c.Inventory[i], true
		}
	}
	return nil, false
}

// EquipWeapon equips the inventory item with the given ID as the active
// weapon.
//
// Postcondition: Returns an error if the item is missing or not a weapon.
func (c *Character) EquipWeapon(id string) error {
	it, ok := c.FindItem(id)
	if !ok {
		return fmt.Errorf("character: weapon %q not in inventory", id)
	}
	if it.Kind != item.KindWeapon {
		return fmt.Errorf("character: item %q is not a weapon", id)
	}
	weaponID := it.ID
	c.EquippedWeapon = &weaponID
	return nil
}

// EquipArmor equips the inventory item with the given ID as the worn armor.
//
// Postcondition: Returns an error if the item is missing or not armor.
func (c *Character) EquipArmor(id string) error {
	it, ok := c.FindItem(id)
	if !ok {
		return fmt.Errorf("character: armor %q not in inventory", id)
	}
	if it.Kind != item.KindArmor {
		return fmt.Errorf("character: item %q is not armor", id)
	}
	armorID := it.ID
	c.EquippedArmor = &armorID
	return nil
}

// WeaponStats returns the equipped weapon's stats, or false when unarmed.
func (c *Character) WeaponStats() (item.WeaponStats, bool) {
	if c.EquippedWeapon == nil {
		return item.WeaponStats{}, false
	}
	it, ok := c.FindItem(*c.EquippedWeapon)
	if !ok || it.Weapon == nil {
		return item.WeaponStats{}, false
	}
	return *it.Weapon, true
}

// EquippedDamage returns the damage expression for the character's current
// attack, with the STR token resolved. Unarmed attacks deal 1d4 plus the
// melee damage bonus.
func (c *Character) EquippedDamage() string {
	stats, ok := c.WeaponStats()
	if !ok {
		return dice.ResolveStatTokens("1d4+STR", c.EffectiveStrength())
	}
	return dice.ResolveStatTokens(stats.Damage, c.EffectiveStrength())
}

// AttackAPCost returns the AP cost of one attack with the current weapon.
func (c *Character) AttackAPCost() int {
	stats, ok := c.WeaponStats()
	if !ok {
		return UnarmedAPCost
	}
	return stats.APCost
}

// WeaponSkill returns the skill percentage that governs the equipped weapon,
// or the unarmed skill when no weapon is equipped.
func (c *Character) WeaponSkill() int {
	stats, ok := c.WeaponStats()
	if !ok {
		return c.Skills.Unarmed
	}
	switch stats.Class {
	case item.ClassSmallGun:
		return c.Skills.SmallGuns
	case item.ClassBigGun:
		return c.Skills.BigGuns
	case item.ClassEnergyWeapon:
		return c.Skills.EnergyWeapons
	case item.ClassMelee:
		return c.Skills.MeleeWeapons
	case item.ClassUnarmed:
		return c.Skills.Unarmed
	case item.ClassThrowing, item.ClassExplosive:
		return c.Skills.Throwing
	default:
		return c.Skills.Unarmed
	}
}

// ArmorDR returns the damage resistance of the worn armor, or 0 when bare.
func (c *Character) ArmorDR() int {
	if c.EquippedArmor == nil {
		return 0
	}
	it, ok := c.FindItem(*c.EquippedArmor)
	if !ok || it.Armor == nil {
		return 0
	}
	return it.Armor.DR
}

// EffectiveStrength returns strength adjusted by active chems.
func (c *Character) EffectiveStrength() int {
	str := c.Special.Strength
	for _, chem := range c.ActiveChems {
		if chem.Stat == "strength" {
			str += chem.Magnitude
		}
	}
	return str
}

// UseConsumable consumes one unit of the identified item and applies its
// effect: healing restores HP, radaway reduces rads, chems start a timed stat
// boost, and food restores a little HP and hunger.
//
// Postcondition: Returns a description of what happened, or an error leaving
// the character unchanged.
func (c *Character) UseConsumable(id string) (string, error) {
	it, ok := c.FindItem(id)
	if !ok {
		return "", fmt.Errorf("character: item %q not in inventory", id)
	}
	if it.Kind != item.KindConsumable || it.Effect == nil {
		return "", fmt.Errorf("character: item %q is not consumable", id)
	}

	eff := *it.Effect
	name := it.Name
	if err := c.RemoveItem(id, 1); err != nil {
		return "", err
	}

	switch eff.Kind {
	case item.EffectHealing:
		c.Heal(eff.Amount)
		return fmt.Sprintf("%s restores %d HP", name, eff.Amount), nil
	case item.EffectRadAway:
		c.Rads -= eff.RadReduction
		if c.Rads < 0 {
			c.Rads = 0
		}
		return fmt.Sprintf("%s purges %d rads", name, eff.RadReduction), nil
	case item.EffectChem:
		c.ActiveChems = append(c.ActiveChems, ActiveChem{
			Name:      eff.ChemName,
			Stat:      eff.Stat,
			Magnitude: eff.Magnitude,
			Remaining: eff.Duration,
		})
		return fmt.Sprintf("%s boosts %s by %d for %d rounds", name, eff.Stat, eff.Magnitude, eff.Duration), nil
	case item.EffectFood:
		c.Heal(eff.HP)
		c.Hunger -= eff.Hunger
		if c.Hunger < 0 {
			c.Hunger = 0
		}
		return fmt.Sprintf("%s restores %d HP and sates %d hunger", name, eff.HP, eff.Hunger), nil
	default:
		return "", fmt.Errorf("character: unknown effect kind %q", eff.Kind)
	}
}

// TickChems decrements the remaining duration of every active chem and drops
// those that expire.
func (c *Character) TickChems() {
	kept := c.ActiveChems[:0]
	for _, chem := range c.ActiveChems {
		chem.Remaining--
		if chem.Remaining > 0 {
			kept = append(kept, chem)
		}
	}
	if len(kept) == 0 {
		c.ActiveChems = nil
	} else {
		c.ActiveChems = kept
	}
}

// Validate checks the character's structural invariants, collecting all
// violations.
//
// Postcondition: Returns nil if and only if every invariant holds.
func (c *Character) Validate() error {
	var errs []error
	if err := validation.CharacterName(c.Name); err != nil {
		errs = append(errs, err)
	}
	if err := c.Special.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Level < 1 {
		errs = append(errs, fmt.Errorf("character: level must be >= 1, got %d", c.Level))
	}
	if c.Experience < 0 {
		errs = append(errs, fmt.Errorf("character: experience must be >= 0, got %d", c.Experience))
	}
	if c.HP < 0 || c.HP > c.MaxHP {
		errs = append(errs, fmt.Errorf("character: hp %d outside [0, %d]", c.HP, c.MaxHP))
	}
	if c.AP < 0 || c.AP > c.MaxAP {
		errs = append(errs, fmt.Errorf("character: ap %d outside [0, %d]", c.AP, c.MaxAP))
	}
	if c.Caps < 0 {
		errs = append(errs, fmt.Errorf("character: caps must be >= 0, got %d", c.Caps))
	}
	for _, it := range c.Inventory {
		if err := it.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.EquippedWeapon != nil {
		if _, ok := c.FindItem(*c.EquippedWeapon); !ok {
			errs = append(errs, fmt.Errorf("character: equipped weapon %q not in inventory", *c.EquippedWeapon))
		}
	}
	if c.EquippedArmor != nil {
		if _, ok := c.FindItem(*c.EquippedArmor); !ok {
			errs = append(errs, fmt.Errorf("character: equipped armor %q not in inventory", *c.EquippedArmor))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("character validation failed: %v", errs)
	}
	return nil
}
