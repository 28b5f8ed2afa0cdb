package repos

import (
	"context"

	"manager/models"
	"manager/pkg/store"
)

// LedgerIncome is the entry type written by manual records and order payouts.
const LedgerIncome = "income"

// Placeholder note for manual entries recorded without one.
const defaultNote = "Manual"

// Finance is the append-only ledger. No update or delete exists.
type Finance struct {
	col store.Collection[models.Finance, *models.Finance]
}

func NewFinance(db *store.DB) *Finance {
	return &Finance{col: store.NewCollection[models.Finance](db, "f")}
}

// Record appends a manual income entry. amount may arrive as a JSON number
// or a numeric string; anything else is rejected before persistence.
func (r *Finance) Record(ctx context.Context, amount any, note string) (*models.Finance, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if note == "" {
		note = defaultNote
	}
	entry := models.Finance{Type: LedgerIncome, Amount: value, Note: note}
	if err := r.col.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Append writes an entry with a known-good amount. Used by the order ledger
// policy.
func (r *Finance) Append(ctx context.Context, ftype string, amount float64, note string) error {
	entry := models.Finance{Type: ftype, Amount: amount, Note: note}
	return r.col.Create(ctx, &entry)
}

type FinanceSummary struct {
	Sum     float64          `json:"sum"`
	History []models.Finance `json:"history"`
}

// Summary returns the ledger total plus the full history newest-first.
func (r *Finance) Summary(ctx context.Context) (*FinanceSummary, error) {
	history, err := r.col.List(ctx)
	if err != nil {
		return nil, err
	}
	s := &FinanceSummary{History: history}
	for _, e := range history {
		s.Sum += e.Amount
	}
	return s, nil
}
