package repos

import (
	"context"

	"manager/models"
	"manager/pkg/store"
)

// Earnings is the append-only per-employee payout ledger.
type Earnings struct {
	col store.Collection[models.Earning, *models.Earning]
}

func NewEarnings(db *store.DB) *Earnings {
	return &Earnings{col: store.NewCollection[models.Earning](db, "e")}
}

// Record appends a payout entry for an employee.
func (r *Earnings) Record(ctx context.Context, user string, amount any, note string) (*models.Earning, error) {
	if user == "" {
		return nil, invalidf("missing user")
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	e := models.Earning{User: user, Amount: value, Note: note}
	if err := r.col.Create(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type EarningSummary struct {
	Sum  float64          `json:"sum"`
	List []models.Earning `json:"list"`
}

// Summary totals earnings across everyone, or for one employee when user is
// given. The list comes back newest-first.
func (r *Earnings) Summary(ctx context.Context, user string) (*EarningSummary, error) {
	var filters []store.Filter
	if user != "" {
		filters = append(filters, store.Eq("User", user))
	}
	list, err := r.col.List(ctx, filters...)
	if err != nil {
		return nil, err
	}
	s := &EarningSummary{List: list}
	for _, e := range list {
		s.Sum += e.Amount
	}
	return s, nil
}
