package domain

import "time"

// Score bounds. MaxIdentityScore is a policy ceiling below the sum of the
// identity bonuses (which reach 20); it must not be derived from the terms.
const (
	MaxIdentityScore  = 15
	MaxFinancialScore = 60
	MaxTrustScore     = 100
)

// HistoryEntry records one scoring event. Entries are append-only and never
// mutated.
type HistoryEntry struct {
	Score  int       `json:"score"`
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// TrustScore is the per-user composite reliability estimate. The identity
// history holds exactly the latest evaluation (overwritten each time), while
// the financial history accumulates.
type TrustScore struct {
	Current          int            `json:"current"`
	IdentityScore    int            `json:"identity_score"`
	FinancialScore   int            `json:"financial_score"`
	IdentityHistory  []HistoryEntry `json:"identity_history"`
	FinancialHistory []HistoryEntry `json:"financial_history"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Composite derives the capped total from the sub-scores. The stored Current
// field must always equal this value after a merge.
func (t TrustScore) Composite() int {
	total := t.IdentityScore + t.FinancialScore
	if total > MaxTrustScore {
		return MaxTrustScore
	}
	return total
}

// TrustScoreUpdate is a partial, namespaced update merged into a user's
// persisted TrustScore. Identity and financial evaluations write disjoint
// fields; both re-derive Current identically so concurrent merges converge.
type TrustScoreUpdate struct {
	IdentityScore  *int
	IdentityEntry  *HistoryEntry
	FinancialScore *int
	FinancialEntry *HistoryEntry
	UpdatedAt      time.Time
}

// ApplyTo merges the update into a TrustScore, enforcing the history
// semantics: identity history is replaced, financial history is appended.
func (u TrustScoreUpdate) ApplyTo(t TrustScore) TrustScore {
	if u.IdentityScore != nil {
		t.IdentityScore = *u.IdentityScore
	}
	if u.IdentityEntry != nil {
		t.IdentityHistory = []HistoryEntry{*u.IdentityEntry}
	}
	if u.FinancialScore != nil {
		t.FinancialScore = *u.FinancialScore
	}
	if u.FinancialEntry != nil {
		t.FinancialHistory = append(t.FinancialHistory, *u.FinancialEntry)
	}
	t.Current = t.Composite()
	t.UpdatedAt = u.UpdatedAt
	return t
}
