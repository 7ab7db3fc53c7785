// Cart persistence. A cart row is created lazily on first add; quantities
// for the same (cart, book) pair always merge into one line.
package cart

import (
	"context"
	"database/sql"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/money"
)

type Repository interface {
	AddItem(ctx context.Context, userID, bookID int64, qty int32) error
	Lines(ctx context.Context, userID int64) ([]Line, error)
	Snapshot(ctx context.Context, userID int64) ([]SnapshotLine, error)
	Clear(ctx context.Context, userID int64) error
}

type sqliteRepo struct{ db *sql.DB }

func NewSQLiteRepo(db *sql.DB) Repository { return &sqliteRepo{db: db} }

// Callers serialize same-user adds through Service, so the select-then-insert
// here cannot race with itself.
func (r *sqliteRepo) getOrCreateCartID(ctx context.Context, userID int64) (int64, error) {
	var cartID int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id=?`, userID).Scan(&cartID)
	if err == sql.ErrNoRows {
		res, err := r.db.ExecContext(ctx, `INSERT INTO carts(user_id) VALUES (?)`, userID)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
	return cartID, err
}

// AddItem merges quantities with a single atomic upsert: repeated adds of the
// same book accumulate into one line.
func (r *sqliteRepo) AddItem(ctx context.Context, userID, bookID int64, qty int32) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.StoreFailure, "add to cart failed", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_items(cart_id, book_id, qty)
		VALUES (?, ?, ?)
		ON CONFLICT(cart_id, book_id)
		DO UPDATE SET qty = qty + excluded.qty
	`, cartID, bookID, qty)
	if err != nil {
		return apperr.Wrap(apperr.StoreFailure, "add to cart failed", err)
	}
	return nil
}

func (r *sqliteRepo) Lines(ctx context.Context, userID int64) ([]Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.book_id, b.title, b.author, ci.qty, b.price_cents
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN books b ON b.id = ci.book_id
		WHERE c.user_id=? ORDER BY ci.id`, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "cart read failed", err)
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		var cents int64
		if err := rows.Scan(&l.BookID, &l.Title, &l.Author, &l.Qty, &cents); err != nil {
			return nil, apperr.Wrap(apperr.StoreFailure, "cart read failed", err)
		}
		l.UnitPrice = money.FromCents(cents)
		l.LineTotal = l.UnitPrice.Mul(l.Qty)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "cart read failed", err)
	}
	return out, nil
}

func (r *sqliteRepo) Snapshot(ctx context.Context, userID int64) ([]SnapshotLine, error) {
	lines, err := r.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]SnapshotLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, SnapshotLine{
			BookID:    l.BookID,
			Title:     l.Title,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
		})
	}
	return out, nil
}

// Clear is idempotent: no cart, or an already-empty one, is a no-op.
func (r *sqliteRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id=?)`, userID)
	if err != nil {
		return apperr.Wrap(apperr.StoreFailure, "cart clear failed", err)
	}
	return nil
}
