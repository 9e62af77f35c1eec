package domain

import (
	"iter"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type of a recorded transaction.
type Kind string

const (
	KindDeposit    Kind = "Deposit"
	KindWithdrawal Kind = "Withdrawal"
)

// Matches reports whether the kind equals label, ignoring case.
// An empty label matches every kind.
func (k Kind) Matches(label string) bool {
	return label == "" || strings.EqualFold(string(k), label)
}

// ParseKind resolves a case-insensitive kind label.
func ParseKind(label string) (Kind, bool) {
	for _, k := range []Kind{KindDeposit, KindWithdrawal} {
		if strings.EqualFold(string(k), strings.TrimSpace(label)) {
			return k, true
		}
	}
	return "", false
}

// HistoryEntry is one successful transaction. Entries are never mutated.
type HistoryEntry struct {
	Timestamp time.Time
	Amount    decimal.Decimal
	Kind      Kind
	Sequence  int
}

// History is the append-only log of an account's successful transactions.
type History struct {
	entries []HistoryEntry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append records a transaction and returns the stored entry.
func (h *History) Append(kind Kind, amount decimal.Decimal, at time.Time) HistoryEntry {
	entry := HistoryEntry{
		Sequence:  len(h.entries) + 1,
		Kind:      kind,
		Amount:    amount,
		Timestamp: at,
	}
	h.entries = append(h.entries, entry)
	return entry
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of all entries in insertion order.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// EntriesOfKind yields entries whose kind matches label (case-insensitive).
// An empty label yields every entry. The sequence can be ranged over again.
func (h *History) EntriesOfKind(label string) iter.Seq[HistoryEntry] {
	return func(yield func(HistoryEntry) bool) {
		for _, e := range h.entries {
			if !e.Kind.Matches(label) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// CountOfKind counts entries whose kind matches label.
func (h *History) CountOfKind(label string) int {
	n := 0
	for range h.EntriesOfKind(label) {
		n++
	}
	return n
}

// EntriesToday returns entries recorded on now's calendar date, evaluated
// in now's location. Time of day is ignored.
func (h *History) EntriesToday(now time.Time) []HistoryEntry {
	var out []HistoryEntry
	for _, e := range h.entries {
		if sameDay(e.Timestamp.In(now.Location()), now) {
			out = append(out, e)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
