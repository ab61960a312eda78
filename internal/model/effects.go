package model

// IsBuffed reports whether a buff is currently active.
func (u *Unit) IsBuffed() bool { return u.BuffDuration > 0 }

// IsDebuffed reports whether a debuff is currently active.
func (u *Unit) IsDebuffed() bool { return u.DebuffDuration > 0 }

// ApplyBuff добавляет attack к урону и defense к обеим защитам.
// Дельты накапливаются в BuffedDamage/BuffedDefense, длительность
// перезаписывается. Снятие вычитает ровно накопленные дельты.
func (u *Unit) ApplyBuff(attack, defense, duration int) {
	if duration <= 0 {
		return
	}
	u.Damage += attack
	u.PhysicalDefense += defense
	u.MagicalDefense += defense
	u.BuffedDamage += attack
	u.BuffedDefense += defense
	u.BuffDuration = duration
}

// ApplyDebuff снимает attack с урона и defense с обеих защит.
func (u *Unit) ApplyDebuff(attack, defense, duration int) {
	if duration <= 0 {
		return
	}
	u.Damage -= attack
	u.PhysicalDefense -= defense
	u.MagicalDefense -= defense
	u.DebuffedDamage += attack
	u.DebuffedDefense += defense
	u.DebuffDuration = duration
}

// TickEffects уменьшает длительность баффа и дебаффа на один ход.
// На ходу, когда длительность достигает нуля, дельты снимаются ровно один раз.
func (u *Unit) TickEffects() (buffExpired, debuffExpired bool) {
	if u.BuffDuration > 0 {
		u.BuffDuration--
		if u.BuffDuration == 0 {
			u.revertBuff()
			buffExpired = true
		}
	}
	if u.DebuffDuration > 0 {
		u.DebuffDuration--
		if u.DebuffDuration == 0 {
			u.revertDebuff()
			debuffExpired = true
		}
	}
	return buffExpired, debuffExpired
}

func (u *Unit) revertBuff() {
	u.Damage -= u.BuffedDamage
	u.PhysicalDefense -= u.BuffedDefense
	u.MagicalDefense -= u.BuffedDefense
	u.BuffedDamage = 0
	u.BuffedDefense = 0
}

func (u *Unit) revertDebuff() {
	u.Damage += u.DebuffedDamage
	u.PhysicalDefense += u.DebuffedDefense
	u.MagicalDefense += u.DebuffedDefense
	u.DebuffedDamage = 0
	u.DebuffedDefense = 0
}
