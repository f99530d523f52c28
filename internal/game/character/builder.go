package character

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
)

// Builder accumulates creation-screen choices, starting from Default.
// The first invalid choice is remembered and reported by Build.
type Builder struct {
	a   Appearance
	err error
}

// NewBuilder returns a Builder preloaded with Default().
func NewBuilder() *Builder {
	return &Builder{a: Default()}
}

// Class sets the class from user input.
func (b *Builder) Class(s string) *Builder {
	if b.err != nil {
		return b
	}
	k, err := ruleset.ParseClassKey(s)
	if err != nil {
		b.err = err
		return b
	}
	b.a.Class = k
	return b
}

// Gender sets the gender from user input.
func (b *Builder) Gender(s string) *Builder {
	return choose(b, s, "gender", genders, &b.a.Gender)
}

// SkinTone sets the skin tone from user input.
func (b *Builder) SkinTone(s string) *Builder {
	return choose(b, s, "skin tone", skinTones, &b.a.SkinTone)
}

// HairStyle sets the hair style from user input.
func (b *Builder) HairStyle(s string) *Builder {
	return choose(b, s, "hair style", hairStyles, &b.a.HairStyle)
}

// choose stores the option matching s in dst, or records an error on b.
func choose[T ~string](b *Builder, s, field string, options []T, dst *T) *Builder {
	if b.err != nil {
		return b
	}
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if !contains(options, v) {
		b.err = fmt.Errorf("unknown %s %q: must be one of %v", field, s, options)
		return b
	}
	*dst = v
	return b
}

// Build returns the finished appearance.
//
// Postcondition: Returns a valid Appearance, or the first input error.
func (b *Builder) Build() (Appearance, error) {
	if b.err != nil {
		return Appearance{}, b.err
	}
	if err := b.a.Validate(); err != nil {
		return Appearance{}, fmt.Errorf("building character: %w", err)
	}
	return b.a, nil
}
