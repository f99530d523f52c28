package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeonstars/internal/game/character"
	"github.com/cory-johannsen/dungeonstars/internal/game/combat"
	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
)

const hpBarWidth = 20

// critMarker prefixes the floating damage label of a critical hit.
const critMarker = "✦"

// DamageLabel returns the floating text shown over a combatant hit by r.
//
// Postcondition: Returns "miss" for an evaded attack, "✦-N" for a critical
// hit, and "-N" otherwise.
func DamageLabel(r combat.AttackResult) string {
	switch {
	case r.WasEvaded:
		return "miss"
	case r.WasCritical:
		return fmt.Sprintf("%s-%d", critMarker, r.DamageDealt)
	default:
		return fmt.Sprintf("-%d", r.DamageDealt)
	}
}

// hpBar draws a fixed-width bar for cur out of maxHP hit points.
func hpBar(cur, maxHP int) string {
	filled := 0
	if maxHP > 0 {
		filled = cur * hpBarWidth / maxHP
	}
	if cur > 0 && filled == 0 {
		filled = 1
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", hpBarWidth-filled) + "]"
}

// RenderIntro describes the player's freshly created character.
func RenderIntro(a character.Appearance, classes *ruleset.Registry, p Palette) string {
	c := classes.Class(a.Class)
	var b strings.Builder
	b.WriteString(p.Colorize(Bold+BrightYellow, "Dungeon Stars"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "You are %s %s: %s.\n", c.Emoji, p.Colorize(BrightCyan, c.Name), c.Role)
	fmt.Fprintf(&b, "%s, %s skin (%s), %s hair (%s)\n",
		a.Gender, a.SkinTone, a.SkinColor(), a.HairStyle, a.HairColor())
	return b.String()
}

func renderCombatant(c combat.Combatant, classes *ruleset.Registry, color string, p Palette) string {
	class := classes.Class(c.Class)
	return fmt.Sprintf("%s %-6s %-7s %s %3d/%d",
		class.Emoji,
		p.Colorize(color, c.Name),
		class.Name,
		hpBar(c.CurrentHP, c.MaxHP()),
		c.CurrentHP, c.MaxHP(),
	)
}

// RenderBattle formats the current battle screen: round, both combatants, and the log.
func RenderBattle(btl *combat.Battle, classes *ruleset.Registry, p Palette) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(p.Colorf(Bold+BrightYellow, "Round %d", btl.Round()))
	b.WriteString("\n")
	b.WriteString(renderCombatant(btl.Player(), classes, BrightGreen, p))
	b.WriteString("\n")
	b.WriteString(renderCombatant(btl.Opponent(), classes, BrightRed, p))
	b.WriteString("\n")

	b.WriteString(p.Colorize(Cyan, "Battle log"))
	b.WriteString("\n")
	log := btl.Log()
	if len(log) == 0 {
		b.WriteString(p.Colorize(Dim, "  No blows yet. Type attack to strike first."))
		b.WriteString("\n")
	}
	for _, e := range log {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTurn shows the floating damage labels produced by one turn.
func RenderTurn(rep combat.TurnReport, p Palette) string {
	var b strings.Builder
	b.WriteString(labelFor(combat.OpponentName, rep.PlayerAttack, p))
	if rep.OpponentAttack != nil {
		b.WriteString("  ")
		b.WriteString(labelFor(combat.PlayerName, *rep.OpponentAttack, p))
	}
	b.WriteString("\n")
	return b.String()
}

func labelFor(target string, r combat.AttackResult, p Palette) string {
	color := Red
	switch {
	case r.WasEvaded:
		color = Dim
	case r.WasCritical:
		color = Bold + BrightYellow
	}
	return target + " " + p.Colorize(color, DamageLabel(r))
}

// RenderResult formats the end-of-battle panel.
func RenderResult(v combat.ResultView, classes *ruleset.Registry, p Palette) string {
	var title, subtitle, color string
	switch v.Outcome {
	case combat.OutcomeWin:
		title, subtitle, color = "Victory!", "You have bested your opponent.", BrightGreen
	case combat.OutcomeLose:
		title, subtitle, color = "Defeat...", "Better luck next time.", BrightRed
	default:
		title, subtitle, color = "Draw", "The fighters were evenly matched.", BrightYellow
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.Colorize(Bold+color, title))
	b.WriteString("\n")
	b.WriteString(subtitle)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s (%s): %s\n", combat.PlayerName, classes.Class(v.PlayerClass).Name, hpLeft(v.PlayerHPLeft))
	fmt.Fprintf(&b, "  %s (%s): %s\n", combat.OpponentName, classes.Class(v.OpponentClass).Name, hpLeft(v.OpponentHPLeft))
	fmt.Fprintf(&b, "Rounds: %d\n", v.Rounds)
	fmt.Fprintf(&b, "Coins: %s  Rating: %s\n", signed(v.CoinsChange), signed(v.RatingChange))
	b.WriteString(p.Colorize(Dim, "Type restart to fight again or exit to leave."))
	b.WriteString("\n")
	return b.String()
}

func hpLeft(hp int) string {
	if hp > 0 {
		return fmt.Sprintf("%d HP left", hp)
	}
	return "fell in battle"
}

func signed(n int) string {
	return fmt.Sprintf("%+d", n)
}

// RenderHelp lists the commands the session understands.
func RenderHelp(p Palette) string {
	var b strings.Builder
	b.WriteString(p.Colorize(Cyan, "Commands"))
	b.WriteString("\n")
	for _, line := range [][2]string{
		{"attack, a, <enter>", "play one round"},
		{"restart, r", "start over against a new opponent"},
		{"help, h", "show this list"},
		{"exit, q", "leave the arena"},
	} {
		fmt.Fprintf(&b, "  %-20s %s\n", line[0], line[1])
	}
	return b.String()
}
