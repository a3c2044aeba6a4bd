package item

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireItem is the on-disk shape of an Item. The "type" tag selects which
// payload field is present.
type wireItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        Kind         `json:"type"`
	Weight      float64      `json:"weight"`
	Value       int          `json:"value"`
	Quantity    int          `json:"quantity"`
	Weapon      *WeaponStats `json:"weapon,omitempty"`
	Armor       *wireArmor   `json:"armor,omitempty"`
	Effect      *Effect      `json:"effect,omitempty"`
}

// wireArmor omits the derived armor class; it is recomputed on decode and
// compared against the stored value when present.
type wireArmor struct {
	DR int  `json:"damage_resistance"`
	RR int  `json:"radiation_resistance"`
	AC *int `json:"armor_class,omitempty"`
}

// MarshalJSON encodes the item with a "type" discriminator tag.
func (i Item) MarshalJSON() ([]byte, error) {
	w := wireItem{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Type:        i.Kind,
		Weight:      i.Weight,
		Value:       i.Value,
		Quantity:    i.Quantity,
		Weapon:      i.Weapon,
		Effect:      i.Effect,
	}
	if i.Armor != nil {
		ac := i.Armor.AC
		w.Armor = &wireArmor{DR: i.Armor.DR, RR: i.Armor.RR, AC: &ac}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a tagged item, rejecting unknown fields, unknown
// type tags, unknown effect kinds, and armor whose stored armor class
// disagrees with its damage resistance.
func (i *Item) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var w wireItem
	if err := dec.Decode(&w); err != nil {
		return fmt.Errorf("item: decode: %w", err)
	}

	out := Item{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Kind:        w.Type,
		Weight:      w.Weight,
		Value:       w.Value,
		Quantity:    w.Quantity,
	}

	switch w.Type {
	case KindWeapon:
		if w.Weapon == nil {
			return fmt.Errorf("item %q: weapon payload missing", w.ID)
		}
		stats := *w.Weapon
		out.Weapon = &stats
	case KindArmor:
		if w.Armor == nil {
			return fmt.Errorf("item %q: armor payload missing", w.ID)
		}
		ac := ArmorClassFor(w.Armor.DR)
		if w.Armor.AC != nil && *w.Armor.AC != ac {
			return fmt.Errorf("item %q: armor class %d inconsistent with damage resistance %d", w.ID, *w.Armor.AC, w.Armor.DR)
		}
		out.Armor = &ArmorStats{DR: w.Armor.DR, RR: w.Armor.RR, AC: ac}
	case KindConsumable:
		if w.Effect == nil {
			return fmt.Errorf("item %q: effect payload missing", w.ID)
		}
		if !validEffectKind(w.Effect.Kind) {
			return fmt.Errorf("item %q: unknown effect kind %q", w.ID, w.Effect.Kind)
		}
		eff := *w.Effect
		out.Effect = &eff
	case KindMisc:
		// no payload
	default:
		return fmt.Errorf("item %q: unknown item type %q", w.ID, w.Type)
	}

	*i = out
	return nil
}
