package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeonstars/internal/game/character"
	"github.com/cory-johannsen/dungeonstars/internal/game/combat"
	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
)

// Intent is a player command understood by the session.
type Intent int

const (
	IntentUnknown Intent = iota // zero value; unrecognised input
	IntentAttack
	IntentRestart
	IntentHelp
	IntentExit
)

// ParseIntent maps a typed line to an Intent. An empty line attacks.
//
// Postcondition: Returns IntentUnknown for unrecognised input.
func ParseIntent(line string) Intent {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "a", "attack", "hit":
		return IntentAttack
	case "r", "restart":
		return IntentRestart
	case "h", "help", "?":
		return IntentHelp
	case "q", "quit", "exit":
		return IntentExit
	default:
		return IntentUnknown
	}
}

// Session drives one player's duel screen over a line-oriented terminal.
// A Session is not safe for concurrent use.
type Session struct {
	battle     *combat.Battle
	classes    *ruleset.Registry
	appearance character.Appearance
	palette    Palette
	prompt     string
	logger     *zap.Logger
}

// NewSession creates a Session rendering battle for a player with appearance a.
//
// Precondition: battle and classes must be non-nil; prompt must be non-empty.
// A nil logger is replaced by a no-op logger.
func NewSession(battle *combat.Battle, classes *ruleset.Registry, a character.Appearance, palette Palette, prompt string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		battle:     battle,
		classes:    classes,
		appearance: a,
		palette:    palette,
		prompt:     prompt,
		logger:     logger,
	}
}

// Run renders the battle and processes commands from in until the player
// exits, in reaches EOF, or ctx is cancelled.
//
// Postcondition: Returns nil on a clean exit, or a non-nil error if writing to out fails.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	intro := RenderIntro(s.appearance, s.classes, s.palette) +
		RenderHelp(s.palette) +
		RenderBattle(s.battle, s.classes, s.palette)
	if err := s.write(out, intro); err != nil {
		return err
	}

	for {
		if err := s.write(out, s.prompt); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			s.logger.Info("console session cancelled")
			return nil
		case line, ok := <-lines:
			if !ok {
				s.logger.Info("console input closed")
				return nil
			}
			done, err := s.Handle(ParseIntent(line), out)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Handle applies one intent and writes the resulting screen to out.
//
// Postcondition: Returns done == true when the player asked to leave.
func (s *Session) Handle(intent Intent, out io.Writer) (bool, error) {
	switch intent {
	case IntentAttack:
		rep, err := s.battle.AdvanceTurn()
		if errors.Is(err, combat.ErrBattleFinished) {
			return false, s.write(out, s.palette.Colorize(Yellow, "The battle is over. Type restart to fight again.")+"\n")
		}
		if err != nil {
			return false, err
		}
		screen := RenderTurn(rep, s.palette) + RenderBattle(s.battle, s.classes, s.palette)
		if view, ok := s.battle.Result(); ok {
			screen += RenderResult(view, s.classes, s.palette)
		}
		return false, s.write(out, screen)

	case IntentRestart:
		s.battle.Restart()
		oa := character.OpponentAppearance(s.battle.Opponent().Class)
		opp := s.classes.Class(oa.Class)
		screen := fmt.Sprintf("A new challenger appears: %s %s (%s, %s skin)\n",
			opp.Emoji, s.palette.Colorize(BrightRed, opp.Name), oa.Gender, oa.SkinTone) +
			RenderBattle(s.battle, s.classes, s.palette)
		return false, s.write(out, screen)

	case IntentHelp:
		return false, s.write(out, RenderHelp(s.palette))

	case IntentExit:
		o, finished := s.battle.Outcome()
		s.logger.Info("player left the arena",
			zap.String("battle_id", s.battle.ID().String()),
			zap.Bool("finished", finished),
			zap.String("outcome", o.String()),
		)
		return true, s.write(out, "Farewell.\n")

	default:
		return false, s.write(out, "Unknown command. Type help for the list.\n")
	}
}

func (s *Session) write(out io.Writer, text string) error {
	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("writing to console: %w", err)
	}
	return nil
}
