// Package content loads YAML content packs: extra enemy archetypes and item
// definitions that supplement the built-in set.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wastelandrpg/wasteland/internal/game/combat"
	"github.com/wastelandrpg/wasteland/internal/game/dice"
	"github.com/wastelandrpg/wasteland/internal/game/item"
)

// EnemyDef defines an enemy archetype loaded from YAML. Per-level scaling
// uses the same linear curves as the built-in templates.
type EnemyDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	BaseHP      int    `yaml:"base_hp"`
	HPPerLevel  int    `yaml:"hp_per_level"`
	BaseAC      int    `yaml:"base_ac"`
	ACPerLevel  int    `yaml:"ac_per_level"`
	BaseSkill   int    `yaml:"base_skill"`
	SkillPerLvl int    `yaml:"skill_per_level"`
	SkillCap    int    `yaml:"skill_cap"`
	Damage      string `yaml:"damage"`
	Strength    int    `yaml:"strength"`
	XPPerLevel  int    `yaml:"xp_per_level"`
}

// Validate checks that the definition satisfies basic invariants.
//
// Postcondition: Returns nil iff the definition can scale monotonically.
func (d *EnemyDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("enemy def: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("enemy def %q: name must not be empty", d.ID)
	}
	if d.BaseHP < 1 {
		return fmt.Errorf("enemy def %q: base_hp must be >= 1", d.ID)
	}
	if d.HPPerLevel < 0 || d.SkillPerLvl < 0 || d.ACPerLevel < 0 {
		return fmt.Errorf("enemy def %q: per-level scaling must not be negative", d.ID)
	}
	if d.Damage == "" {
		return fmt.Errorf("enemy def %q: damage must not be empty", d.ID)
	}
	if _, err := dice.Parse(d.Damage); err != nil {
		return fmt.Errorf("enemy def %q: damage: %w", d.ID, err)
	}
	if d.XPPerLevel < 1 {
		return fmt.Errorf("enemy def %q: xp_per_level must be >= 1", d.ID)
	}
	return nil
}

// Build constructs an Enemy at the given level from the definition.
//
// Postcondition: stats are monotonic in level; CurrentHP == MaxHP.
func (d *EnemyDef) Build(level int) combat.Enemy {
	if level < 1 {
		level = 1
	}
	skill := d.BaseSkill + d.SkillPerLvl*level
	if d.SkillCap > 0 && skill > d.BaseSkill+d.SkillCap {
		skill = d.BaseSkill + d.SkillCap
	}
	hp := d.BaseHP + d.HPPerLevel*level
	return combat.Enemy{
		Name:      d.Name,
		Level:     level,
		MaxHP:     hp,
		CurrentHP: hp,
		AC:        d.BaseAC + d.ACPerLevel*level,
		Skill:     skill,
		Damage:    d.Damage,
		AP:        5 + level/2,
		XPReward:  d.XPPerLevel * level,
		Strength:  d.Strength,
	}
}

// ItemDef defines an item loaded from YAML. Kind selects which stats block
// applies.
type ItemDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Kind        string  `yaml:"kind"`
	Weight      float64 `yaml:"weight"`
	Value       int     `yaml:"value"`

	Weapon *struct {
		Damage     string `yaml:"damage"`
		DamageType string `yaml:"damage_type"`
		Class      string `yaml:"class"`
		APCost     int    `yaml:"ap_cost"`
	} `yaml:"weapon"`

	Armor *struct {
		DR int `yaml:"damage_resistance"`
		RR int `yaml:"radiation_resistance"`
	} `yaml:"armor"`

	Effect *struct {
		Kind         string `yaml:"kind"`
		Amount       int    `yaml:"amount"`
		RadReduction int    `yaml:"rad_reduction"`
		ChemName     string `yaml:"chem_name"`
		Stat         string `yaml:"stat"`
		Magnitude    int    `yaml:"magnitude"`
		Duration     int    `yaml:"duration"`
		HP           int    `yaml:"hp"`
		Hunger       int    `yaml:"hunger"`
	} `yaml:"effect"`
}

// Build converts the definition into a validated Item.
func (d *ItemDef) Build() (item.Item, error) {
	var it item.Item
	switch item.Kind(d.Kind) {
	case item.KindWeapon:
		if d.Weapon == nil {
			return it, fmt.Errorf("item def %q: weapon block missing", d.ID)
		}
		it = item.NewWeapon(d.ID, d.Name, d.Description, d.Weight, d.Value, item.WeaponStats{
			Damage:     d.Weapon.Damage,
			DamageType: item.DamageType(d.Weapon.DamageType),
			Class:      item.WeaponClass(d.Weapon.Class),
			APCost:     d.Weapon.APCost,
		})
	case item.KindArmor:
		if d.Armor == nil {
			return it, fmt.Errorf("item def %q: armor block missing", d.ID)
		}
		it = item.NewArmor(d.ID, d.Name, d.Description, d.Weight, d.Value, d.Armor.DR, d.Armor.RR)
	case item.KindConsumable:
		if d.Effect == nil {
			return it, fmt.Errorf("item def %q: effect block missing", d.ID)
		}
		it = item.NewConsumable(d.ID, d.Name, d.Description, d.Weight, d.Value, item.Effect{
			Kind:         item.EffectKind(d.Effect.Kind),
			Amount:       d.Effect.Amount,
			RadReduction: d.Effect.RadReduction,
			ChemName:     d.Effect.ChemName,
			Stat:         d.Effect.Stat,
			Magnitude:    d.Effect.Magnitude,
			Duration:     d.Effect.Duration,
			HP:           d.Effect.HP,
			Hunger:       d.Effect.Hunger,
		})
	case item.KindMisc:
		it = item.NewMisc(d.ID, d.Name, d.Description, d.Weight, d.Value)
	default:
		return it, fmt.Errorf("item def %q: unknown kind %q", d.ID, d.Kind)
	}

	if err := it.Validate(); err != nil {
		return it, err
	}
	return it, nil
}

// LoadEnemyDefs reads all *.yaml files in dir and returns the parsed enemy
// definitions.
//
// Postcondition: Returns all definitions or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadEnemyDefs(dir string) ([]*EnemyDef, error) {
	var defs []*EnemyDef
	err := eachYAML(dir, func(path string, data []byte) error {
		var def EnemyDef
		if err := yaml.Unmarshal(data, &def); err != nil {
			return fmt.Errorf("parsing enemy def %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, &def)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadItems reads all *.yaml files in dir and returns the built items.
func LoadItems(dir string) ([]item.Item, error) {
	var items []item.Item
	err := eachYAML(dir, func(path string, data []byte) error {
		var def ItemDef
		if err := yaml.Unmarshal(data, &def); err != nil {
			return fmt.Errorf("parsing item def %q: %w", path, err)
		}
		it, err := def.Build()
		if err != nil {
			return fmt.Errorf("loading %q: %w", path, err)
		}
		items = append(items, it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func eachYAML(dir string, fn func(path string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading content dir %q: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		if err := fn(path, data); err != nil {
			return err
		}
	}
	return nil
}
