package combat

import (
	"math"

	"github.com/cory-johannsen/dungeonstars/internal/game/dice"
	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
)

// MinDamage is the least damage a landed attack can deal.
const MinDamage = 3

const (
	// defenseMitigation is the fraction of defense subtracted from attack.
	defenseMitigation = 0.3
	// damageSpread is the exclusive upper bound of the random damage bonus.
	damageSpread = 4
)

// Source is the subset of dice.Source used by the engine.
type Source = dice.Source

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	// NewDefenderHP is the defender's hit points after the attack.
	NewDefenderHP int
	// DamageDealt is 0 when evaded, otherwise >= MinDamage.
	DamageDealt int
	WasCritical bool
	WasEvaded   bool
}

// ResolveAttack resolves one attack of attacker against defender, who has
// defenderHP hit points left. Three draws are taken from src in order: the
// evasion roll, the damage bonus, and the critical roll. An evaded attack
// consumes only the first.
//
// Precondition: src must be non-nil; defenderHP >= 0.
// Postcondition: NewDefenderHP == max(0, defenderHP-DamageDealt);
// WasEvaded implies DamageDealt == 0 and !WasCritical;
// !WasEvaded implies DamageDealt >= MinDamage.
func ResolveAttack(attacker, defender ruleset.StatProfile, defenderHP int, src Source) AttackResult {
	if dice.Percent(src) < float64(defender.Evade) {
		return AttackResult{NewDefenderHP: defenderHP, WasEvaded: true}
	}

	dmg := float64(attacker.Attack-roundHalfUp(float64(defender.Defense)*defenseMitigation)) +
		dice.Uniform(src, damageSpread)
	if dmg < MinDamage {
		dmg = MinDamage
	}

	crit := dice.Percent(src) < float64(attacker.CritChance)
	if crit {
		dmg = dmg * float64(attacker.CritDamage) / 100
	}
	dealt := roundHalfUp(dmg)

	return AttackResult{
		NewDefenderHP: max(0, defenderHP-dealt),
		DamageDealt:   dealt,
		WasCritical:   crit,
	}
}

// roundHalfUp rounds x to the nearest integer, halves toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
