// Package checkout orchestrates the cart-to-order flow: validate session,
// snapshot the cart, build the order, commit it atomically, then clear the
// cart. Nothing here retries; a failed attempt leaves the cart untouched.
package checkout

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/auth"
	"github.com/ahinestrog/bookorders/internal/cart"
	"github.com/ahinestrog/bookorders/internal/events"
	"github.com/ahinestrog/bookorders/internal/order"
	"github.com/ahinestrog/bookorders/internal/user"
)

var ErrUnauthenticated = apperr.E(apperr.Unauthenticated, "no authenticated session")

type Coordinator struct {
	carts  *cart.Service
	users  *user.Service
	orders order.Repository
	events events.Publisher
	log    zerolog.Logger
}

func NewCoordinator(carts *cart.Service, users *user.Service, orders order.Repository, pub events.Publisher, log zerolog.Logger) *Coordinator {
	return &Coordinator{carts: carts, users: users, orders: orders, events: pub, log: log}
}

// Checkout converts the user's cart into a persisted order and returns the
// new order id. The user lock is held across snapshot, commit and clear so a
// concurrent AddItem can neither be lost nor half-charged.
func (c *Coordinator) Checkout(ctx context.Context, ident auth.Identity) (int64, error) {
	if !ident.OK {
		return 0, ErrUnauthenticated
	}
	userID := ident.UserID

	unlock := c.carts.LockUser(userID)
	defer unlock()

	lines, err := c.carts.Snapshot(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, order.ErrEmptyCart
	}

	u, err := c.users.Profile(ctx, userID)
	if err != nil {
		return 0, err
	}

	o, err := order.Build(userID, u.Address, lines)
	if err != nil {
		return 0, err
	}

	oid, err := c.orders.Create(ctx, o)
	if err != nil {
		return 0, err
	}

	// The order is durable from here on. A failed clear leaves a stale cart,
	// not a failed checkout; it is logged for reconciliation.
	if err := c.carts.Clear(ctx, userID); err != nil {
		c.log.Warn().Err(err).Int64("user_id", userID).Int64("order_id", oid).
			Msg("cart clear after commit failed, needs reconciliation")
	}

	c.publishCreated(o)

	c.log.Info().Int64("user_id", userID).Int64("order_id", oid).
		Int64("total_cents", o.TotalCents).Int("lines", len(o.Items)).
		Msg("checkout complete")
	return oid, nil
}

func (c *Coordinator) publishCreated(o *order.Order) {
	if c.events == nil {
		return
	}
	payload := events.OrderCreatedPayload{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, events.OrderItemEvt{
			BookID:    it.BookID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitCents: it.UnitCents,
			LineCents: it.LineCents,
		})
	}
	if err := c.events.PublishJSON(events.RKOrderCreated, payload); err != nil {
		c.log.Warn().Err(err).Int64("order_id", o.ID).Msg("publish order.created failed")
	}
}

// GetOrder returns the order with its lines; an order owned by another user
// is reported as not found.
func (c *Coordinator) GetOrder(ctx context.Context, ident auth.Identity, orderID int64) (*order.Order, error) {
	if !ident.OK {
		return nil, ErrUnauthenticated
	}
	return c.orders.GetForUser(ctx, orderID, ident.UserID)
}
