// Package logic implements Progress and the per-tier logic predicate
// (spec.md §4.8): a closed-form set of derived booleans over owned items,
// and a Logic value carrying up to five tier-specific predicates where a
// request at tier T is satisfied by any predicate at a tier <= T.
//
// Grounded directly on original_source/randomizer/src/filler/logic.rs: the
// Logic struct's five Option<fn(&Progress) -> bool> fields and its
// can_access cascading-tier match are carried over unchanged in meaning,
// and on original_source/modinfo/src/logic.rs's LogicMode for the Tier
// ordering (NoLogic treated specially: every edge satisfied).
package logic

import "github.com/rickfay/albw-randomizer/internal/item"

// Tier is a logic strictness level, in ascending order.
type Tier int

const (
	NoLogic Tier = iota
	Normal
	Hard
	Glitched
	AdvGlitched
	Hell
)

func (t Tier) String() string {
	switch t {
	case NoLogic:
		return "NoLogic"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	case Glitched:
		return "Glitched"
	case AdvGlitched:
		return "AdvGlitched"
	case Hell:
		return "Hell"
	default:
		return "Unknown"
	}
}

// Predicate decides whether a check or path is satisfied given progress.
type Predicate func(*Progress) bool

// Logic carries one predicate per tier (Normal..Hell); a nil predicate at a
// tier is never satisfied at that tier.
type Logic struct {
	Normal      Predicate
	Hard        Predicate
	Glitched    Predicate
	AdvGlitched Predicate
	Hell        Predicate
}

// Free returns a Logic satisfied unconditionally at every tier.
func Free() Logic {
	always := func(*Progress) bool { return true }
	return Logic{Normal: always, Hard: always, Glitched: always, AdvGlitched: always, Hell: always}
}

// CanAccess reports whether progress satisfies this Logic at the given
// tier: NoLogic always succeeds; otherwise any predicate at a tier <= t
// that accepts is enough.
func (l Logic) CanAccess(t Tier, progress *Progress) bool {
	if t == NoLogic {
		return true
	}
	var cascade []Predicate
	switch t {
	case Normal:
		cascade = []Predicate{l.Normal}
	case Hard:
		cascade = []Predicate{l.Normal, l.Hard}
	case Glitched:
		cascade = []Predicate{l.Normal, l.Hard, l.Glitched}
	case AdvGlitched:
		cascade = []Predicate{l.Normal, l.Hard, l.Glitched, l.AdvGlitched}
	case Hell:
		cascade = []Predicate{l.Normal, l.Hard, l.Glitched, l.AdvGlitched, l.Hell}
	}
	for _, p := range cascade {
		if p != nil && p(progress) {
			return true
		}
	}
	return false
}

// Progress records owned items (with multiplicity) and caches the derived
// booleans the logic declarations consume.
type Progress struct {
	tier   Tier
	counts map[item.Item]int

	hasSword        bool
	hasMasterSword  bool
	canMerge        bool
	canDamage       bool
	hasRangedAttack bool
	hasLamp         bool
	hasFlippers     bool
	hasBoots        bool
}

// New returns an empty Progress at the given logic tier.
func New(tier Tier) *Progress {
	return &Progress{tier: tier, counts: make(map[item.Item]int)}
}

// Tier returns the logic tier this Progress evaluates predicates against.
func (p *Progress) Tier() Tier { return p.tier }

// Count returns how many of it have been added.
func (p *Progress) Count(it item.Item) int { return p.counts[it] }

// Has reports whether at least one of it has been added.
func (p *Progress) Has(it item.Item) bool { return p.counts[it] > 0 }

// AddItem adds one of it to progress (with multiplicity) and recomputes the
// derived predicates.
func (p *Progress) AddItem(it item.Item) {
	p.counts[it]++
	p.recompute()
}

func (p *Progress) recompute() {
	swords := p.Count(item.Sword01) + p.Count(item.Sword02) + p.Count(item.Sword03) + p.Count(item.Sword04)
	p.hasSword = swords >= 1
	p.hasMasterSword = swords >= 2
	p.canMerge = p.Has(item.RaviosBracelet)
	p.hasLamp = p.Has(item.Lamp)
	p.hasFlippers = p.Has(item.Flippers)
	p.hasBoots = p.Has(item.PegasusBoots)
	p.hasRangedAttack = p.Has(item.Bow) || p.Has(item.Bombs) || p.Has(item.IceRod) ||
		p.Has(item.FireRod) || p.Has(item.Hookshot) || p.Has(item.SandRod)
	p.canDamage = p.hasSword || p.hasRangedAttack || p.Has(item.Hammer) || p.Has(item.Boomerang)
}

// HasSword reports whether Link has obtained at least the first sword.
func (p *Progress) HasSword() bool { return p.hasSword }

// HasMasterSword reports whether Link has upgraded the sword at least once.
func (p *Progress) HasMasterSword() bool { return p.hasMasterSword }

// CanMerge reports whether Link has Ravio's Bracelet.
func (p *Progress) CanMerge() bool { return p.canMerge }

// CanDamage reports whether Link owns any item capable of damaging enemies.
func (p *Progress) CanDamage() bool { return p.canDamage }

// HasRangedAttack reports whether Link owns an item usable from a distance.
func (p *Progress) HasRangedAttack() bool { return p.hasRangedAttack }

// HasLamp reports whether Link has the Lamp.
func (p *Progress) HasLamp() bool { return p.hasLamp }

// HasFlippers reports whether Link has the Flippers.
func (p *Progress) HasFlippers() bool { return p.hasFlippers }

// HasBoots reports whether Link has the Pegasus Boots.
func (p *Progress) HasBoots() bool { return p.hasBoots }
