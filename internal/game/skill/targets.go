package skill

import "github.com/udisondev/skirmish/internal/model"

// Anchor returns the point an ability is centred on: the caster for
// supportive area abilities, the cursor otherwise.
func Anchor(a *model.Ability, caster *model.Unit, cursor model.Point) model.Point {
	if a.Area.IsArea() && a.Supportive() {
		return caster.Pos
	}
	return cursor
}

// Eligible reports whether target may be affected by a.
// Heals and buffs land on the caster's team, damage and debuffs on
// anyone the caster opposes.
func Eligible(a *model.Ability, caster, target *model.Unit) bool {
	if !target.Alive() {
		return false
	}
	if a.Supportive() {
		return target.Team == caster.Team
	}
	return caster.Opposes(target)
}

// InArea reports whether p lies within the ability's area around anchor.
func InArea(a *model.Ability, anchor, p model.Point) bool {
	r := a.AreaRadius()
	switch a.Area {
	case model.AreaDiamond:
		return anchor.Manhattan(p) <= r
	case model.AreaCircle:
		return anchor.Euclidean(p) <= float64(r)
	default:
		return anchor == p
	}
}

// Targets selects the units affected by a fired at anchor.
//
// Single-target abilities pick the eligible unit standing on the anchor,
// which may be the caster itself for a heal or buff. Area abilities pick
// every eligible unit in range except the caster.
func Targets(a *model.Ability, caster *model.Unit, anchor model.Point, units []*model.Unit) []*model.Unit {
	var out []*model.Unit
	for _, u := range units {
		if !Eligible(a, caster, u) {
			continue
		}
		if a.Area.IsArea() {
			if u == caster || !InArea(a, anchor, u.Pos) {
				continue
			}
		} else if u.Pos != anchor {
			continue
		}
		out = append(out, u)
		if !a.Area.IsArea() {
			break
		}
	}
	return out
}
