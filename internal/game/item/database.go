package item

// Canonical item constructors. IDs are stable and referenced by character
// equipment slots and content packs.

// TenMMPistol is the standard vault sidearm.
func TenMMPistol() Item {
	return NewWeapon("10mm_pistol", "10mm Pistol", "A reliable sidearm chambered in 10mm.", 3.0, 150, WeaponStats{
		Damage:     "1d10+2",
		DamageType: DamageNormal,
		Class:      ClassSmallGun,
		APCost:     4,
	})
}

// BaseballBat is a basic melee weapon whose damage scales with strength.
func BaseballBat() Item {
	return NewWeapon("baseball_bat", "Baseball Bat", "A wooden bat, pre-war sporting goods.", 3.0, 40, WeaponStats{
		Damage:     "1d8+STR",
		DamageType: DamageNormal,
		Class:      ClassMelee,
		APCost:     4,
	})
}

// LeatherArmor is entry-level protection.
func LeatherArmor() Item {
	return NewArmor("leather_armor", "Leather Armor", "Hardened leather plates stitched over a jumpsuit.", 8.0, 120, 4, 0)
}

// Stimpak restores hit points on use.
func Stimpak() Item {
	return NewConsumable("stimpak", "Stimpak", "An auto-injecting syringe of healing compounds.", 0.5, 75, Effect{
		Kind:   EffectHealing,
		Amount: 30,
	})
}

// RadAway purges accumulated radiation.
func RadAway() Item {
	return NewConsumable("radaway", "RadAway", "An IV bag of anti-radiation chelation fluid.", 1.0, 100, Effect{
		Kind:         EffectRadAway,
		RadReduction: 50,
	})
}

// Buffout is a combat chem that temporarily boosts strength.
func Buffout() Item {
	return NewConsumable("buffout", "Buffout", "Bottled muscle-building amphetamines.", 0.1, 120, Effect{
		Kind:      EffectChem,
		ChemName:  "buffout",
		Stat:      "strength",
		Magnitude: 2,
		Duration:  10,
	})
}

// IguanaOnAStick restores a little health and staves off hunger.
func IguanaOnAStick() Item {
	return NewConsumable("iguana_on_a_stick", "Iguana-on-a-Stick", "Grilled iguana meat of questionable provenance.", 0.3, 15, Effect{
		Kind:   EffectFood,
		HP:     5,
		Hunger: 25,
	})
}

// StartingItems returns the inventory every new character begins with.
func StartingItems() []Item {
	pistol := TenMMPistol()
	bat := BaseballBat()
	stim := Stimpak()
	stim.Quantity = 3
	rad := RadAway()
	rad.Quantity = 2
	return []Item{pistol, bat, stim, rad}
}
