package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeonstars/internal/game/combat"
	"github.com/cory-johannsen/dungeonstars/internal/game/dice"
	"github.com/cory-johannsen/dungeonstars/internal/game/ruleset"
)

func newMidpointBattle(t *testing.T, player, opponent ruleset.ClassKey) *combat.Battle {
	t.Helper()
	b, err := combat.NewBattleAgainst(player, opponent, ruleset.Default(), constSource{v: 0.5}, nil)
	require.NoError(t, err)
	return b
}

func TestNewBattle_InitialState(t *testing.T) {
	b := combat.NewBattle(ruleset.Rogue, ruleset.Default(), constSource{v: 0.5}, zap.NewNop())
	assert.Equal(t, 1, b.Round())
	assert.False(t, b.Finished())
	assert.Empty(t, b.Log())
	assert.Equal(t, ruleset.Rogue, b.Player().Class)
	assert.Equal(t, 85, b.Player().CurrentHP)
	assert.NotEqual(t, ruleset.Rogue, b.Opponent().Class)
	assert.Equal(t, b.Opponent().MaxHP(), b.Opponent().CurrentHP)
	o, done := b.Outcome()
	assert.False(t, done)
	assert.Equal(t, combat.OutcomePending, o)
	_, ok := b.Result()
	assert.False(t, ok)
}

func TestNewBattleAgainst_Rejects(t *testing.T) {
	src := constSource{v: 0.5}
	_, err := combat.NewBattleAgainst(ruleset.Mage, ruleset.Mage, ruleset.Default(), src, nil)
	assert.Error(t, err)
	_, err = combat.NewBattleAgainst("bard", ruleset.Mage, ruleset.Default(), src, nil)
	assert.Error(t, err)
	_, err = combat.NewBattleAgainst(ruleset.Mage, "bard", ruleset.Default(), src, nil)
	assert.Error(t, err)
}

func TestBattle_KnightVsMage_FirstRound(t *testing.T) {
	b := newMidpointBattle(t, ruleset.Knight, ruleset.Mage)

	rep, err := b.AdvanceTurn()
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Round)
	assert.Equal(t, 15, rep.PlayerAttack.DamageDealt)
	require.NotNil(t, rep.OpponentAttack)
	assert.Equal(t, 21, rep.OpponentAttack.DamageDealt)
	assert.False(t, rep.Finished)

	assert.Equal(t, 65, b.Opponent().CurrentHP)
	assert.Equal(t, 99, b.Player().CurrentHP)
	assert.Equal(t, 2, b.Round())
	assert.False(t, b.Finished())
	assert.Equal(t, []combat.LogEntry{
		{Round: 1, Text: "Player hits Bot for 15 damage. Bot hits Player for 21 damage."},
	}, b.Log())
}

func TestBattle_KnightVsMage_PlayerWins(t *testing.T) {
	b := newMidpointBattle(t, ruleset.Knight, ruleset.Mage)

	var rep combat.TurnReport
	var err error
	for i := 0; i < 6; i++ {
		rep, err = b.AdvanceTurn()
		require.NoError(t, err)
	}

	assert.True(t, rep.Finished)
	assert.Equal(t, combat.OutcomeWin, rep.Outcome)
	assert.Nil(t, rep.OpponentAttack, "a defeated opponent does not retaliate")
	assert.Equal(t, 0, b.Opponent().CurrentHP)
	assert.Equal(t, 15, b.Player().CurrentHP) // 120 - 5*21
	assert.Equal(t, 6, b.Round())

	log := b.Log()
	require.Len(t, log, 6)
	assert.Equal(t, "Round 6: Player hits Bot for 15 damage. Bot is defeated.", log[0].String())
	assert.Equal(t, 1, log[5].Round)

	view, ok := b.Result()
	require.True(t, ok)
	assert.Equal(t, combat.ResultView{
		Outcome:        combat.OutcomeWin,
		PlayerClass:    ruleset.Knight,
		OpponentClass:  ruleset.Mage,
		PlayerHPLeft:   15,
		OpponentHPLeft: 0,
		Rounds:         5,
	}, view)
}

func TestBattle_ArcherVsKnight_PlayerLoses(t *testing.T) {
	// Archer deals 18-3+2=17 to 120 HP; knight deals 14-2+2=14 to 90 HP.
	b := newMidpointBattle(t, ruleset.Archer, ruleset.Knight)

	for !b.Finished() {
		_, err := b.AdvanceTurn()
		require.NoError(t, err)
	}

	o, done := b.Outcome()
	require.True(t, done)
	assert.Equal(t, combat.OutcomeLose, o)
	assert.Equal(t, 7, b.Round())
	assert.Equal(t, 0, b.Player().CurrentHP)
	assert.Equal(t, 1, b.Opponent().CurrentHP)
	assert.Equal(t,
		"Round 7: Player hits Bot for 17 damage. Bot hits Player for 14 damage. Player has fallen.",
		b.Log()[0].String())

	view, ok := b.Result()
	require.True(t, ok)
	assert.Equal(t, 6, view.Rounds)
}

func TestBattle_AdvanceTurnAfterFinishIsRejected(t *testing.T) {
	b := newMidpointBattle(t, ruleset.Knight, ruleset.Mage)
	for !b.Finished() {
		_, err := b.AdvanceTurn()
		require.NoError(t, err)
	}
	player, opponent, round, log := b.Player(), b.Opponent(), b.Round(), b.Log()

	for i := 0; i < 3; i++ {
		rep, err := b.AdvanceTurn()
		require.ErrorIs(t, err, combat.ErrBattleFinished)
		assert.Equal(t, combat.TurnReport{}, rep)
	}
	assert.Equal(t, player, b.Player())
	assert.Equal(t, opponent, b.Opponent())
	assert.Equal(t, round, b.Round())
	assert.Equal(t, log, b.Log())
	o, _ := b.Outcome()
	assert.Equal(t, combat.OutcomeWin, o)
}

func TestBattle_LogIsBounded(t *testing.T) {
	classes, err := ruleset.ParseRegistry([]byte(`
classes:
  - {key: mage, stats: {hit_points: 1000, attack: 0, crit_damage: 100}}
  - {key: archer, stats: {hit_points: 1000, attack: 0, crit_damage: 100}}
  - {key: knight, stats: {hit_points: 1000, attack: 0, crit_damage: 100}}
  - {key: rogue, stats: {hit_points: 1000, attack: 0, crit_damage: 100}}
`))
	require.NoError(t, err)
	b, err := combat.NewBattleAgainst(ruleset.Mage, ruleset.Rogue, classes, constSource{v: 0.1}, nil)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := b.AdvanceTurn()
		require.NoError(t, err)
	}

	log := b.Log()
	require.Len(t, log, combat.LogLimit)
	for i, e := range log {
		assert.Equal(t, 20-i, e.Round, "entries must be newest first")
	}
	assert.Equal(t, 1000-20*combat.MinDamage, b.Player().CurrentHP)
}

func TestBattle_LogSnapshotIsIsolated(t *testing.T) {
	b := newMidpointBattle(t, ruleset.Knight, ruleset.Mage)
	_, err := b.AdvanceTurn()
	require.NoError(t, err)
	log := b.Log()
	log[0].Text = "tampered"
	assert.NotEqual(t, "tampered", b.Log()[0].Text)
}

func TestBattle_EvadedTurnIsLogged(t *testing.T) {
	// Player's attack is evaded by the rogue (3 < 14); the rogue's hits with a 50 roll.
	src := &seqSource{vals: []float64{0.03, 0.5, 0.5, 0.5}}
	b, err := combat.NewBattleAgainst(ruleset.Knight, ruleset.Rogue, ruleset.Default(), src, nil)
	require.NoError(t, err)

	rep, err := b.AdvanceTurn()
	require.NoError(t, err)
	assert.True(t, rep.PlayerAttack.WasEvaded)
	assert.Equal(t, 85, b.Opponent().CurrentHP)
	assert.Contains(t, b.Log()[0].Text, "Bot dodged the attack!")
}

func TestBattle_Restart(t *testing.T) {
	b := newMidpointBattle(t, ruleset.Knight, ruleset.Mage)
	for !b.Finished() {
		_, err := b.AdvanceTurn()
		require.NoError(t, err)
	}
	oldID := b.ID()

	b.Restart()

	assert.Equal(t, 1, b.Round())
	assert.Empty(t, b.Log())
	assert.False(t, b.Finished())
	o, _ := b.Outcome()
	assert.Equal(t, combat.OutcomePending, o)
	assert.Equal(t, 120, b.Player().CurrentHP)
	assert.Equal(t, ruleset.Archer, b.Opponent().Class) // Intn(3) at 0.5
	assert.Equal(t, 90, b.Opponent().CurrentHP)
	assert.NotEqual(t, oldID, b.ID())

	_, err := b.AdvanceTurn()
	assert.NoError(t, err)
}

func TestBattle_Restart_MidBattle(t *testing.T) {
	b := newMidpointBattle(t, ruleset.Knight, ruleset.Mage)
	_, err := b.AdvanceTurn()
	require.NoError(t, err)

	b.Restart()
	assert.Equal(t, 1, b.Round())
	assert.Empty(t, b.Log())
	assert.Equal(t, b.Player().MaxHP(), b.Player().CurrentHP)
	assert.Equal(t, b.Opponent().MaxHP(), b.Opponent().CurrentHP)
}

func TestBattle_Property_RestartPicksDistinctOpponent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.SampledFrom(ruleset.AllClasses()).Draw(rt, "class")
		seed := rapid.Uint64().Draw(rt, "seed")
		b := combat.NewBattle(k, ruleset.Default(), dice.NewSeededSource(seed), nil)
		for i := 0; i < 5; i++ {
			b.Restart()
			assert.NotEqual(rt, k, b.Opponent().Class)
		}
	})
}

func TestBattle_Property_TerminatesWithWinOrLose(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.SampledFrom(ruleset.AllClasses()).Draw(rt, "class")
		seed := rapid.Uint64().Draw(rt, "seed")
		b := combat.NewBattle(k, ruleset.Default(), dice.NewSeededSource(seed), nil)

		prevPlayer, prevOpponent := b.Player().CurrentHP, b.Opponent().CurrentHP
		for i := 0; i < 10000 && !b.Finished(); i++ {
			_, err := b.AdvanceTurn()
			require.NoError(rt, err)
			assert.LessOrEqual(rt, b.Player().CurrentHP, prevPlayer)
			assert.LessOrEqual(rt, b.Opponent().CurrentHP, prevOpponent)
			prevPlayer, prevOpponent = b.Player().CurrentHP, b.Opponent().CurrentHP
		}
		require.True(rt, b.Finished())

		o, _ := b.Outcome()
		assert.Contains(rt, []combat.Outcome{combat.OutcomeWin, combat.OutcomeLose}, o)
		switch o {
		case combat.OutcomeWin:
			assert.Equal(rt, 0, b.Opponent().CurrentHP)
			assert.Greater(rt, b.Player().CurrentHP, 0)
		case combat.OutcomeLose:
			assert.Equal(rt, 0, b.Player().CurrentHP)
			assert.Greater(rt, b.Opponent().CurrentHP, 0)
		}
		assert.LessOrEqual(rt, len(b.Log()), combat.LogLimit)
	})
}

func TestBattle_LogsLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	b, err := combat.NewBattleAgainst(ruleset.Knight, ruleset.Mage, ruleset.Default(), constSource{v: 0.5}, zap.New(core))
	require.NoError(t, err)
	for !b.Finished() {
		_, err := b.AdvanceTurn()
		require.NoError(t, err)
	}

	require.Equal(t, 1, logs.FilterMessage("battle started").Len())
	finished := logs.FilterMessage("battle finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "win", finished[0].ContextMap()["outcome"])
	assert.Equal(t, b.ID().String(), finished[0].ContextMap()["battle_id"])
}
