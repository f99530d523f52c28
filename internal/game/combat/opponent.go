package combat

import "github.com/cory-johannsen/dungeonstars/internal/game/ruleset"

// PickOpponentClass selects uniformly among the classes other than excluding.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a valid ClassKey != excluding.
func PickOpponentClass(excluding ruleset.ClassKey, src Source) ruleset.ClassKey {
	all := ruleset.AllClasses()
	available := make([]ruleset.ClassKey, 0, len(all)-1)
	for _, k := range all {
		if k != excluding {
			available = append(available, k)
		}
	}
	return available[src.Intn(len(available))]
}
