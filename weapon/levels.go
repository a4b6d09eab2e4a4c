package weapon

// levelDeltas holds the transition into levels 2..5, indexed by level-2
var levelDeltas = map[Kind][]func(w *Weapon){
	Basic: {
		func(w *Weapon) { w.Range += 50 },
		func(w *Weapon) { w.UpgradeCooldown(0.8) },
		func(w *Weapon) { w.BaseDamage += 10 },
		func(w *Weapon) { w.BaseDamage += 5; w.UpgradeCooldown(0.8) },
	},
	Area: {
		func(w *Weapon) { w.Radius += 30 },
		func(w *Weapon) { w.BaseDamage += 5 },
		func(w *Weapon) { w.UpgradeCooldown(0.8) },
		func(w *Weapon) { w.Radius += 50; w.BaseDamage += 10 },
	},
	Spread: {
		func(w *Weapon) { w.ProjectileCount++ },
		func(w *Weapon) { w.BaseDamage += 10 },
		func(w *Weapon) { w.UpgradeCooldown(0.8) },
		func(w *Weapon) { w.ProjectileCount += 2; w.Spread += 15 },
	},
	Laser: {
		func(w *Weapon) { w.Range += 75 },
		func(w *Weapon) { w.BaseDamage += 8 },
		func(w *Weapon) { w.UpgradeCooldown(0.8) },
		func(w *Weapon) { w.BeamWidth += 5; w.BaseDamage += 10 },
	},
	Bomb: {
		func(w *Weapon) { w.BaseDamage += 15 },
		func(w *Weapon) { w.Radius += 50 },
		func(w *Weapon) { w.UpgradeCooldown(0.7) },
		func(w *Weapon) { w.BaseDamage += 10 },
	},
}
