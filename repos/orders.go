package repos

import (
	"context"

	"manager/models"
	"manager/pkg/store"
)

// Orders wraps the order collection. When ledgerOnDone is set, completing an
// order appends a paired income entry to the finance ledger; toggling back to
// pending does not remove it.
type Orders struct {
	col          store.Collection[models.Order, *models.Order]
	finance      *Finance
	ledgerOnDone bool
}

func NewOrders(db *store.DB, finance *Finance, ledgerOnDone bool) *Orders {
	return &Orders{
		col:          store.NewCollection[models.Order](db, "o"),
		finance:      finance,
		ledgerOnDone: ledgerOnDone,
	}
}

type CreateOrderInput struct {
	Title   string `json:"title"`
	Client  string `json:"client"`
	What    string `json:"what"`
	Due     string `json:"due"`
	Amount  any    `json:"amount"`
	Contact string `json:"contact"`
}

func (r *Orders) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.Title == "" {
		return nil, invalidf("missing title")
	}
	var amount float64
	if in.Amount != nil {
		var err error
		if amount, err = ParseAmount(in.Amount); err != nil {
			return nil, err
		}
	}
	o := models.Order{
		Title:   in.Title,
		Client:  in.Client,
		What:    in.What,
		Due:     in.Due,
		Amount:  amount,
		Contact: in.Contact,
	}
	if err := r.col.Create(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Orders) List(ctx context.Context) ([]models.Order, error) {
	return r.col.List(ctx)
}

// ToggleDone flips the order's done flag and returns the updated record.
func (r *Orders) ToggleDone(ctx context.Context, id string) (*models.Order, error) {
	o, err := r.col.Update(ctx, id, func(o *models.Order) { o.Done = !o.Done })
	if err != nil {
		return nil, err
	}
	if r.ledgerOnDone && o.Done {
		if err := r.finance.Append(ctx, LedgerIncome, o.Amount, "Order: "+o.Title); err != nil {
			return nil, err
		}
	}
	return o, nil
}
