package checkout

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/auth"
	"github.com/ahinestrog/bookorders/internal/cart"
	"github.com/ahinestrog/bookorders/internal/catalog"
	"github.com/ahinestrog/bookorders/internal/events"
	"github.com/ahinestrog/bookorders/internal/order"
	"github.com/ahinestrog/bookorders/internal/store"
	"github.com/ahinestrog/bookorders/internal/user"
)

type capturingPublisher struct {
	keys     []string
	payloads []any
}

func (p *capturingPublisher) PublishJSON(rk string, v any) error {
	p.keys = append(p.keys, rk)
	p.payloads = append(p.payloads, v)
	return nil
}

type fixture struct {
	db          *sql.DB
	carts       *cart.Service
	users       *user.Service
	orders      order.Repository
	coordinator *Coordinator
	published   *capturingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db))

	pub := &capturingPublisher{}
	books := catalog.NewSQLiteRepo(db)
	carts := cart.NewService(cart.NewSQLiteRepo(db), books)
	users := user.NewService(user.NewRepository(db), nil)
	orders := order.NewSQLiteRepo(db)
	return &fixture{
		db:          db,
		carts:       carts,
		users:       users,
		orders:      orders,
		coordinator: NewCoordinator(carts, users, orders, pub, zerolog.Nop()),
		published:   pub,
	}
}

func (f *fixture) registerUser(t *testing.T) int64 {
	t.Helper()
	id, err := f.users.Register(context.Background(), user.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret",
		Address:  user.Address{Street: "Calle 10 #5-23", City: "Medellín", PostalCode: "050021"},
	})
	require.NoError(t, err)
	return id
}

func insertBook(t *testing.T, db *sql.DB, title string, cents int64) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO books(title, author, subject, price_cents, created_unix)
		VALUES (?,?,?,?,?)`, title, "Author", "Subject", cents, time.Now().Unix())
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// The worked example: B1 (10.00) x2 then x3 merge to qty 5, B2 (5.50) x1;
// checkout yields one order with lines 50.00 and 5.50 and an empty cart.
func TestCheckoutEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.registerUser(t)
	b1 := insertBook(t, f.db, "B1", 1000)
	b2 := insertBook(t, f.db, "B2", 550)

	require.NoError(t, f.carts.AddItem(ctx, uid, b1, 2))
	require.NoError(t, f.carts.AddItem(ctx, uid, b1, 3))
	require.NoError(t, f.carts.AddItem(ctx, uid, b2, 1))

	oid, err := f.coordinator.Checkout(ctx, auth.User(uid))
	require.NoError(t, err)

	o, err := f.coordinator.GetOrder(ctx, auth.User(uid), oid)
	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	assert.Equal(t, int32(5), o.Items[0].Qty)
	assert.Equal(t, int64(5000), o.Items[0].LineCents)
	assert.Equal(t, int32(1), o.Items[1].Qty)
	assert.Equal(t, int64(550), o.Items[1].LineCents)
	assert.Equal(t, int64(5550), o.TotalCents)
	assert.Equal(t, "Medellín", o.Shipping.City)

	lines, err := f.carts.Lines(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, lines, "cart must be empty after checkout")

	require.Equal(t, []string{events.RKOrderCreated}, f.published.keys)
	payload, ok := f.published.payloads[0].(events.OrderCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, oid, payload.OrderID)
	assert.Equal(t, int64(5550), payload.TotalCents)
}

func TestCheckoutUnauthenticated(t *testing.T) {
	f := newFixture(t)
	_, err := f.coordinator.Checkout(context.Background(), auth.Anonymous)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	var n int64
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(1) FROM orders`).Scan(&n))
	assert.Zero(t, n)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	uid := f.registerUser(t)

	_, err := f.coordinator.Checkout(context.Background(), auth.User(uid))
	assert.Equal(t, apperr.EmptyCart, apperr.KindOf(err))

	var n int64
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(1) FROM orders`).Scan(&n))
	assert.Zero(t, n)
	assert.Empty(t, f.published.keys)
}

func TestCheckoutChargesPriceAtCheckoutTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.registerUser(t)
	b1 := insertBook(t, f.db, "B1", 1000)

	require.NoError(t, f.carts.AddItem(ctx, uid, b1, 1))
	_, err := f.db.Exec(`UPDATE books SET price_cents=1200 WHERE id=?`, b1)
	require.NoError(t, err)

	oid, err := f.coordinator.Checkout(ctx, auth.User(uid))
	require.NoError(t, err)

	o, err := f.coordinator.GetOrder(ctx, auth.User(uid), oid)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), o.TotalCents)
}

func TestShippingSnapshotIsFrozen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.registerUser(t)
	b1 := insertBook(t, f.db, "B1", 1000)

	require.NoError(t, f.carts.AddItem(ctx, uid, b1, 1))
	oid, err := f.coordinator.Checkout(ctx, auth.User(uid))
	require.NoError(t, err)

	// later profile edit must not rewrite order history
	_, err = f.db.Exec(`UPDATE users SET city='Bogotá' WHERE id=?`, uid)
	require.NoError(t, err)

	o, err := f.coordinator.GetOrder(ctx, auth.User(uid), oid)
	require.NoError(t, err)
	assert.Equal(t, "Medellín", o.Shipping.City)
}

func TestGetOrderOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.registerUser(t)
	b1 := insertBook(t, f.db, "B1", 1000)

	require.NoError(t, f.carts.AddItem(ctx, uid, b1, 1))
	oid, err := f.coordinator.Checkout(ctx, auth.User(uid))
	require.NoError(t, err)

	_, err = f.coordinator.GetOrder(ctx, auth.User(uid+1), oid)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = f.coordinator.GetOrder(ctx, auth.Anonymous, oid)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}
