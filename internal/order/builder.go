package order

import (
	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/cart"
	"github.com/ahinestrog/bookorders/internal/money"
	"github.com/ahinestrog/bookorders/internal/user"
)

var ErrEmptyCart = apperr.E(apperr.EmptyCart, "cart is empty")

// Build turns a cart snapshot into an order that is not yet durable.
// Amounts are integer-cent products, so the same snapshot always yields the
// same totals.
func Build(userID int64, shipping user.Address, lines []cart.SnapshotLine) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		UserID:      userID,
		Shipping:    shipping,
		CreatedUnix: nowUnix(),
	}
	var total money.Money
	for _, l := range lines {
		line := l.UnitPrice.Mul(l.Qty)
		o.Items = append(o.Items, Item{
			BookID:    l.BookID,
			Title:     l.Title,
			Qty:       l.Qty,
			UnitCents: l.UnitPrice.Cents,
			LineCents: line.Cents,
		})
		total = total.Add(line)
	}
	o.TotalCents = total.Cents
	return o, nil
}
