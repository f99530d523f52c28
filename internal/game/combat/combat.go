// Package combat implements the Dungeon Stars duel engine: attack
// resolution, opponent selection, and the battle state machine.
package combat

import "github.com/cory-johannsen/dungeonstars/internal/game/ruleset"

// Outcome is the result of a finished battle from the player's perspective.
// The zero value (OutcomePending) means the battle has not ended.
type Outcome int

const (
	OutcomePending Outcome = iota // zero value; no outcome yet
	OutcomeWin
	OutcomeLose
	// OutcomeDraw cannot occur while the player always strikes first and the
	// opponent only retaliates when still standing.
	OutcomeDraw
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeDraw:
		return "draw"
	default:
		return "pending"
	}
}

// Combatant is one side of a duel: a class paired with its current hit points.
//
// Invariant: 0 <= CurrentHP <= MaxHP().
type Combatant struct {
	Name      string
	Class     ruleset.ClassKey
	Stats     ruleset.StatProfile
	CurrentHP int
}

func newCombatant(name string, class ruleset.ClassKey, stats ruleset.StatProfile) *Combatant {
	return &Combatant{Name: name, Class: class, Stats: stats, CurrentHP: stats.HitPoints}
}

// MaxHP returns the combatant's maximum hit points.
func (c *Combatant) MaxHP() int { return c.Stats.HitPoints }

// IsDefeated reports whether the combatant has no hit points left.
//
// Postcondition: Returns true iff CurrentHP <= 0.
func (c *Combatant) IsDefeated() bool { return c.CurrentHP <= 0 }

// applyHP sets CurrentHP to hp if hp is lower, flooring at zero.
// Hit points never rise within a battle.
func (c *Combatant) applyHP(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp < c.CurrentHP {
		c.CurrentHP = hp
	}
}

func (c *Combatant) reset() { c.CurrentHP = c.Stats.HitPoints }
