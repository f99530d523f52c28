package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
)

// ErrBattleFinished is returned by AdvanceTurn once the battle has an outcome.
var ErrBattleFinished = errors.New("battle is already finished")

const (
	// PlayerName is the display name of the player's combatant.
	PlayerName = "Player"
	// OpponentName is the display name of the synthetic opponent.
	OpponentName = "Bot"
)

// TurnReport describes what one AdvanceTurn call resolved.
type TurnReport struct {
	// Round is the round in which the turn was resolved.
	Round int
	// PlayerAttack is the player's attack on the opponent.
	PlayerAttack AttackResult
	// OpponentAttack is nil when the opponent fell before retaliating.
	OpponentAttack *AttackResult
	Finished       bool
	Outcome        Outcome
}

// Battle drives one duel between the player and a synthetic opponent.
// A Battle is not safe for concurrent use.
type Battle struct {
	id       uuid.UUID
	classes  *ruleset.Registry
	src      Source
	logger   *zap.Logger
	player   *Combatant
	opponent *Combatant
	round    int
	log      battleLog
	finished bool
	outcome  Outcome
}

// NewBattle starts a battle for playerClass against a randomly chosen opponent
// of a different class.
//
// Precondition: playerClass must be valid; classes and src must be non-nil.
// A nil logger is replaced by a no-op logger.
// Postcondition: Returns a Battle in progress at round 1 with both combatants at full HP.
func NewBattle(playerClass ruleset.ClassKey, classes *ruleset.Registry, src Source, logger *zap.Logger) *Battle {
	b, err := NewBattleAgainst(playerClass, PickOpponentClass(playerClass, src), classes, src, logger)
	if err != nil {
		panic("combat: NewBattle: " + err.Error())
	}
	return b
}

// NewBattleAgainst starts a battle for playerClass against a fixed opponentClass.
//
// Precondition: classes and src must be non-nil.
// Postcondition: Returns an in-progress Battle, or an error if either class is
// invalid or both are the same.
func NewBattleAgainst(playerClass, opponentClass ruleset.ClassKey, classes *ruleset.Registry, src Source, logger *zap.Logger) (*Battle, error) {
	if !playerClass.Valid() {
		return nil, fmt.Errorf("invalid player class %q", playerClass)
	}
	if !opponentClass.Valid() {
		return nil, fmt.Errorf("invalid opponent class %q", opponentClass)
	}
	if playerClass == opponentClass {
		return nil, fmt.Errorf("opponent class must differ from player class %q", playerClass)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Battle{
		classes: classes,
		src:     src,
		logger:  logger,
		player:  newCombatant(PlayerName, playerClass, classes.StatsFor(playerClass)),
	}
	b.begin(opponentClass)
	return b, nil
}

func (b *Battle) begin(opponentClass ruleset.ClassKey) {
	b.id = uuid.New()
	b.opponent = newCombatant(OpponentName, opponentClass, b.classes.StatsFor(opponentClass))
	b.player.reset()
	b.round = 1
	b.log.clear()
	b.finished = false
	b.outcome = OutcomePending
	b.logger.Info("battle started",
		zap.String("battle_id", b.id.String()),
		zap.String("player_class", b.player.Class.String()),
		zap.String("opponent_class", b.opponent.Class.String()),
	)
}

// AdvanceTurn resolves one round: the player attacks, and if the opponent is
// still standing, the opponent retaliates.
//
// Precondition: none; calling on a finished battle is rejected.
// Postcondition: Returns ErrBattleFinished without mutating any state if the
// battle had already finished. Otherwise returns the resolved TurnReport; the
// round counter advances only when both combatants survive.
func (b *Battle) AdvanceTurn() (TurnReport, error) {
	if b.finished {
		b.logger.Debug("turn rejected on finished battle",
			zap.String("battle_id", b.id.String()),
		)
		return TurnReport{}, ErrBattleFinished
	}

	rep := TurnReport{Round: b.round}

	hit := b.strike(b.player, b.opponent)
	rep.PlayerAttack = hit
	playerText := describeAttack(b.player.Name, b.opponent.Name, hit)

	if b.opponent.IsDefeated() {
		b.finish(OutcomeWin)
		b.log.push(LogEntry{Round: b.round, Text: playerText + " " + b.opponent.Name + " is defeated."})
		rep.Finished, rep.Outcome = true, b.outcome
		return rep, nil
	}

	counter := b.strike(b.opponent, b.player)
	rep.OpponentAttack = &counter
	opponentText := describeAttack(b.opponent.Name, b.player.Name, counter)

	if b.player.IsDefeated() {
		b.finish(OutcomeLose)
		b.log.push(LogEntry{Round: b.round, Text: playerText + " " + opponentText + " " + b.player.Name + " has fallen."})
		rep.Finished, rep.Outcome = true, b.outcome
		return rep, nil
	}

	b.log.push(LogEntry{Round: b.round, Text: playerText + " " + opponentText})
	b.round++
	return rep, nil
}

// strike resolves attacker's attack on defender and applies the damage.
func (b *Battle) strike(attacker, defender *Combatant) AttackResult {
	r := ResolveAttack(attacker.Stats, defender.Stats, defender.CurrentHP, b.src)
	defender.applyHP(r.NewDefenderHP)
	b.logger.Debug("attack resolved",
		zap.String("battle_id", b.id.String()),
		zap.Int("round", b.round),
		zap.String("attacker", attacker.Name),
		zap.String("defender", defender.Name),
		zap.Int("damage", r.DamageDealt),
		zap.Bool("critical", r.WasCritical),
		zap.Bool("evaded", r.WasEvaded),
		zap.Int("defender_hp", defender.CurrentHP),
	)
	return r
}

func (b *Battle) finish(o Outcome) {
	b.finished = true
	b.outcome = o
	b.logger.Info("battle finished",
		zap.String("battle_id", b.id.String()),
		zap.String("outcome", o.String()),
		zap.Int("round", b.round),
		zap.Int("player_hp", b.player.CurrentHP),
		zap.Int("opponent_hp", b.opponent.CurrentHP),
	)
}

// Restart discards the current battle and begins a new one against a freshly
// rolled opponent. Valid in any state.
//
// Postcondition: Round() == 1; Log() is empty; both combatants at full HP;
// Finished() is false; the opponent class differs from the player's.
func (b *Battle) Restart() {
	b.logger.Info("battle restarted", zap.String("battle_id", b.id.String()))
	b.begin(PickOpponentClass(b.player.Class, b.src))
}

// ID returns the identifier of the current battle. Restart assigns a new one.
func (b *Battle) ID() uuid.UUID { return b.id }

// Round returns the current round number, starting at 1.
func (b *Battle) Round() int { return b.round }

// Player returns a copy of the player's combatant.
func (b *Battle) Player() Combatant { return *b.player }

// Opponent returns a copy of the opponent's combatant.
func (b *Battle) Opponent() Combatant { return *b.opponent }

// Log returns up to LogLimit entries, newest first.
func (b *Battle) Log() []LogEntry { return b.log.snapshot() }

// Finished reports whether the battle has an outcome.
func (b *Battle) Finished() bool { return b.finished }

// Outcome returns the battle outcome and true once finished, or
// OutcomePending and false while in progress.
func (b *Battle) Outcome() (Outcome, bool) { return b.outcome, b.finished }
