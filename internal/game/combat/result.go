package combat

import "github.com/cory-johannsen/dungeonstars/internal/game/ruleset"

// ResultView summarises a finished battle for display.
type ResultView struct {
	Outcome        Outcome
	PlayerClass    ruleset.ClassKey
	OpponentClass  ruleset.ClassKey
	PlayerHPLeft   int
	OpponentHPLeft int
	// Rounds is the number of completed rounds, never less than 1.
	Rounds int
	// CoinsChange and RatingChange are always zero: there is no economy yet.
	CoinsChange  int
	RatingChange int
}

// Result returns the summary of a finished battle.
//
// Postcondition: Returns (view, true) once Finished(), or (zero, false) otherwise.
func (b *Battle) Result() (ResultView, bool) {
	if !b.finished {
		return ResultView{}, false
	}
	return ResultView{
		Outcome:        b.outcome,
		PlayerClass:    b.player.Class,
		OpponentClass:  b.opponent.Class,
		PlayerHPLeft:   max(b.player.CurrentHP, 0),
		OpponentHPLeft: max(b.opponent.CurrentHP, 0),
		Rounds:         max(b.round-1, 1),
	}, true
}
