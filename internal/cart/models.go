package cart

import "github.com/ahinestrog/bookorders/internal/money"

// Line is the priced view of one cart row, as returned to the request layer.
type Line struct {
	BookID    int64       `json:"book_id"`
	Title     string      `json:"title"`
	Author    string      `json:"author"`
	Qty       int32       `json:"qty"`
	UnitPrice money.Money `json:"unit_price"`
	LineTotal money.Money `json:"line_total"`
}

// SnapshotLine is a point-in-time cart row joined with the current catalog
// price, the input to order building. The price is read at snapshot time; a
// change since the item was added is charged at the checkout price.
type SnapshotLine struct {
	BookID    int64
	Title     string
	Qty       int32
	UnitPrice money.Money
}
