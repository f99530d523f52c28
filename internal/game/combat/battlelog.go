package combat

import "fmt"

// LogLimit is the number of entries a battle log retains.
const LogLimit = 8

// LogEntry is one line of the battle log.
type LogEntry struct {
	Round int
	Text  string
}

// String renders the entry with its round tag.
func (e LogEntry) String() string {
	return fmt.Sprintf("Round %d: %s", e.Round, e.Text)
}

// battleLog keeps the most recent LogLimit entries, newest first.
type battleLog struct {
	entries []LogEntry
}

func (l *battleLog) push(e LogEntry) {
	l.entries = append([]LogEntry{e}, l.entries...)
	if len(l.entries) > LogLimit {
		l.entries = l.entries[:LogLimit]
	}
}

func (l *battleLog) snapshot() []LogEntry {
	cp := make([]LogEntry, len(l.entries))
	copy(cp, l.entries)
	return cp
}

func (l *battleLog) clear() { l.entries = nil }

// describeAttack narrates one attack from attacker to defender.
func describeAttack(attacker, defender string, r AttackResult) string {
	switch {
	case r.WasEvaded:
		return fmt.Sprintf("%s dodged the attack!", defender)
	case r.WasCritical:
		return fmt.Sprintf("%s lands a CRITICAL hit on %s for %d damage.", attacker, defender, r.DamageDealt)
	default:
		return fmt.Sprintf("%s hits %s for %d damage.", attacker, defender, r.DamageDealt)
	}
}
