// Package character defines the player character's appearance and the pure
// creation logic behind the character creation screen.
package character

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
)

// Gender selects the character sprite variant.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// SkinTone selects the character's skin color.
type SkinTone string

const (
	Light  SkinTone = "light"
	Medium SkinTone = "medium"
	Dark   SkinTone = "dark"
)

// HairStyle selects the character's hair or hood.
type HairStyle string

const (
	HairShort  HairStyle = "short"
	HairMedium HairStyle = "medium"
	HairHood   HairStyle = "hood"
)

var (
	genders    = []Gender{Male, Female}
	skinTones  = []SkinTone{Light, Medium, Dark}
	hairStyles = []HairStyle{HairShort, HairMedium, HairHood}
)

// skinColors and hairColors are the swatches shown by the creation screen.
var (
	skinColors = map[SkinTone]string{Light: "#f5e2c0", Medium: "#d9b38c", Dark: "#8c5a3c"}
	hairColors = map[HairStyle]string{HairShort: "#3c2b20", HairMedium: "#2c1b40", HairHood: "#2b2240"}
)

// Appearance is the outcome of character creation.
type Appearance struct {
	Class     ruleset.ClassKey
	Gender    Gender
	SkinTone  SkinTone
	HairStyle HairStyle
}

// Default returns the preselected appearance of the creation screen.
func Default() Appearance {
	return Appearance{Class: ruleset.Mage, Gender: Male, SkinTone: Light, HairStyle: HairShort}
}

// Validate checks every field against its allowed options.
//
// Postcondition: Returns nil if valid, or an error describing every violation.
func (a Appearance) Validate() error {
	var errs []string
	if !a.Class.Valid() {
		errs = append(errs, fmt.Sprintf("class %q is not one of %v", a.Class, ruleset.AllClasses()))
	}
	if !contains(genders, a.Gender) {
		errs = append(errs, fmt.Sprintf("gender %q is not one of %v", a.Gender, genders))
	}
	if !contains(skinTones, a.SkinTone) {
		errs = append(errs, fmt.Sprintf("skin tone %q is not one of %v", a.SkinTone, skinTones))
	}
	if !contains(hairStyles, a.HairStyle) {
		errs = append(errs, fmt.Sprintf("hair style %q is not one of %v", a.HairStyle, hairStyles))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid appearance: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SkinColor returns the hex swatch for the appearance's skin tone, or "" if unknown.
func (a Appearance) SkinColor() string { return skinColors[a.SkinTone] }

// HairColor returns the hex swatch for the appearance's hair style, or "" if unknown.
func (a Appearance) HairColor() string { return hairColors[a.HairStyle] }

// OpponentAppearance returns the appearance given to a synthetic opponent of class k.
func OpponentAppearance(k ruleset.ClassKey) Appearance {
	a := Default()
	a.Class = k
	return a
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
