// Package dice provides the randomness abstraction used by the Dungeon Stars
// duel engine.
package dice

// Source is the randomness provider for combat draws.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a uniformly distributed float in [0, 1).
	Float64() float64
}

// Percent draws a uniform value in [0, 100) from src.
//
// Precondition: src must be non-nil.
// Postcondition: 0 <= result < 100.
func Percent(src Source) float64 {
	return src.Float64() * 100
}

// Uniform draws a uniform value in [0, upper) from src.
//
// Precondition: src must be non-nil; upper >= 0.
// Postcondition: 0 <= result < upper, or 0 when upper == 0.
func Uniform(src Source, upper float64) float64 {
	return src.Float64() * upper
}
