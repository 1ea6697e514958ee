package logic

import (
	"testing"

	"github.com/rickfay/albw-randomizer/internal/item"
)

func TestNoLogicAlwaysSucceeds(t *testing.T) {
	l := Logic{} // no predicates set at all
	p := New(Normal)
	if !l.CanAccess(NoLogic, p) {
		t.Fatal("NoLogic must always succeed regardless of predicates")
	}
}

func TestCascadeAcceptsLowerTierPredicate(t *testing.T) {
	l := Logic{
		Normal: func(p *Progress) bool { return p.HasSword() },
	}
	p := New(Hard)
	if l.CanAccess(Hard, p) {
		t.Fatal("expected failure before sword is owned")
	}
	p.AddItem(item.Sword01)
	if !l.CanAccess(Hard, p) {
		t.Fatal("Hard tier should accept a Normal-tier predicate that now passes")
	}
}

func TestHigherTierPredicateNotConsultedAtLowerTier(t *testing.T) {
	l := Logic{
		Hard: func(*Progress) bool { return true },
	}
	p := New(Normal)
	if l.CanAccess(Normal, p) {
		t.Fatal("a Hard-only predicate must not satisfy a Normal-tier request")
	}
	if !l.CanAccess(Hard, p) {
		t.Fatal("a Hard-tier request should consult the Hard predicate")
	}
}

func TestDerivedPredicatesRecomputeOnAddItem(t *testing.T) {
	p := New(Normal)
	if p.HasSword() || p.CanMerge() || p.HasRangedAttack() {
		t.Fatal("fresh Progress should have no derived predicates true")
	}
	p.AddItem(item.RaviosBracelet)
	if !p.CanMerge() {
		t.Fatal("CanMerge should be true after adding Ravio's Bracelet")
	}
	p.AddItem(item.Bombs)
	if !p.HasRangedAttack() || !p.CanDamage() {
		t.Fatal("Bombs should grant ranged attack and damage capability")
	}
}

func TestMasterSwordRequiresTwoUpgrades(t *testing.T) {
	p := New(Normal)
	p.AddItem(item.Sword01)
	if p.HasMasterSword() {
		t.Fatal("one sword should not be enough for HasMasterSword")
	}
	p.AddItem(item.Sword01)
	if !p.HasMasterSword() {
		t.Fatal("two sword upgrades should satisfy HasMasterSword")
	}
}

func TestFreeLogicAlwaysAccessible(t *testing.T) {
	l := Free()
	p := New(Hell)
	for _, tier := range []Tier{Normal, Hard, Glitched, AdvGlitched, Hell} {
		if !l.CanAccess(tier, p) {
			t.Fatalf("Free() logic should accept tier %v", tier)
		}
	}
}
