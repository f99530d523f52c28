// Package ruleset defines the fixed duel archetypes and their stat profiles.
package ruleset

import (
	"fmt"
	"strings"
)

// ClassKey identifies a combat archetype.
type ClassKey string

const (
	Mage   ClassKey = "mage"
	Archer ClassKey = "archer"
	Knight ClassKey = "knight"
	Rogue  ClassKey = "rogue"
)

var allClasses = []ClassKey{Mage, Archer, Knight, Rogue}

// AllClasses returns every ClassKey in canonical order.
//
// Postcondition: Returns a fresh slice of length 4.
func AllClasses() []ClassKey {
	out := make([]ClassKey, len(allClasses))
	copy(out, allClasses)
	return out
}

// Valid reports whether k is one of the four defined archetypes.
func (k ClassKey) Valid() bool {
	for _, c := range allClasses {
		if c == k {
			return true
		}
	}
	return false
}

// String returns the key as a lowercase string.
func (k ClassKey) String() string { return string(k) }

// ParseClassKey converts user or configuration input into a ClassKey.
// Matching is case-insensitive and ignores surrounding whitespace.
//
// Postcondition: Returns a valid ClassKey or a non-nil error.
func ParseClassKey(s string) (ClassKey, error) {
	k := ClassKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown class %q: must be one of %v", s, allClasses)
	}
	return k, nil
}

// StatProfile holds the fixed numeric combat attributes of a class.
//
// Invariant: every field >= 0; CritChance and Evade <= 100; CritDamage >= 100.
type StatProfile struct {
	HitPoints  int `yaml:"hit_points"`
	Attack     int `yaml:"attack"`
	Defense    int `yaml:"defense"`
	CritChance int `yaml:"crit_chance"` // percent
	CritDamage int `yaml:"crit_damage"` // percent multiplier
	Evade      int `yaml:"evade"`       // percent
}

// Validate checks the StatProfile invariants.
//
// Postcondition: Returns nil if valid, or an error describing every violation.
func (s StatProfile) Validate() error {
	var errs []string
	nonNegative := []struct {
		name string
		v    int
	}{
		{"hit_points", s.HitPoints},
		{"attack", s.Attack},
		{"defense", s.Defense},
		{"crit_chance", s.CritChance},
		{"crit_damage", s.CritDamage},
		{"evade", s.Evade},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0, got %d", f.name, f.v))
		}
	}
	if s.HitPoints < 1 {
		errs = append(errs, fmt.Sprintf("hit_points must be >= 1, got %d", s.HitPoints))
	}
	if s.CritChance > 100 {
		errs = append(errs, fmt.Sprintf("crit_chance must be <= 100, got %d", s.CritChance))
	}
	if s.Evade > 100 {
		errs = append(errs, fmt.Sprintf("evade must be <= 100, got %d", s.Evade))
	}
	if s.CritDamage < 100 {
		errs = append(errs, fmt.Sprintf("crit_damage must be >= 100, got %d", s.CritDamage))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Class pairs a ClassKey with its display metadata and stat profile.
type Class struct {
	Key   ClassKey    `yaml:"key"`
	Name  string      `yaml:"name"`
	Role  string      `yaml:"role"`
	Emoji string      `yaml:"emoji"`
	Stats StatProfile `yaml:"stats"`
}
