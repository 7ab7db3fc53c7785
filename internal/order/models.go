package order

import (
	"time"

	"github.com/ahinestrog/bookorders/internal/user"
)

// Order is an append-only financial record. Shipping fields are a copy of
// the user's profile at checkout time; later profile edits never touch it.
type Order struct {
	ID          int64        `db:"id"`
	UserID      int64        `db:"user_id"`
	Shipping    user.Address `db:"-"`
	TotalCents  int64        `db:"total_cents"`
	CreatedUnix int64        `db:"created_unix"`
	Items       []Item
}

type Item struct {
	ID        int64  `db:"id"`
	OrderID   int64  `db:"order_id"`
	BookID    int64  `db:"book_id"`
	Title     string `db:"title"`
	Qty       int32  `db:"qty"`
	UnitCents int64  `db:"unit_cents"`
	LineCents int64  `db:"line_cents"`
}

func nowUnix() int64 { return time.Now().Unix() }
