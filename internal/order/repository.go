package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/store"
)

type Repository interface {
	// Create persists the order and every line in one transaction; either
	// all rows exist afterwards or none do.
	Create(ctx context.Context, o *Order) (int64, error)
	// GetForUser returns NotFound both for absent orders and for orders
	// owned by someone else, so existence is never leaked.
	GetForUser(ctx context.Context, orderID, userID int64) (*Order, error)
}

type sqliteRepo struct{ db *sql.DB }

func NewSQLiteRepo(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, o *Order) (int64, error) {
	var oid int64
	err := store.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
  INSERT INTO orders(user_id, ship_street, ship_city, ship_postal, total_cents, created_unix)
  VALUES(?,?,?,?,?,?)`,
			o.UserID, o.Shipping.Street, o.Shipping.City, o.Shipping.PostalCode,
			o.TotalCents, o.CreatedUnix)
		if err != nil {
			return err
		}
		if oid, err = res.LastInsertId(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
  INSERT INTO order_items(order_id, book_id, title, qty, unit_cents, line_cents)
  VALUES(?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, it := range o.Items {
			if _, err := stmt.ExecContext(ctx,
				oid, it.BookID, it.Title, it.Qty, it.UnitCents, it.LineCents); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, apperr.Wrap(apperr.StoreFailure, "order commit failed", err)
	}
	o.ID = oid
	return oid, nil
}

func (r *sqliteRepo) GetForUser(ctx context.Context, orderID, userID int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
    SELECT id, user_id, ship_street, ship_city, ship_postal, total_cents, created_unix
    FROM orders WHERE id=? AND user_id=?`, orderID, userID)
	var o Order
	err := row.Scan(&o.ID, &o.UserID,
		&o.Shipping.Street, &o.Shipping.City, &o.Shipping.PostalCode,
		&o.TotalCents, &o.CreatedUnix)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.NotFound, fmt.Sprintf("order %d not found", orderID))
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "order read failed", err)
	}
	items, err := r.listItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *sqliteRepo) listItems(ctx context.Context, orderID int64) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
    SELECT id, order_id, book_id, title, qty, unit_cents, line_cents
    FROM order_items WHERE order_id=? ORDER BY id`, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "order read failed", err)
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.BookID, &it.Title, &it.Qty, &it.UnitCents, &it.LineCents); err != nil {
			return nil, apperr.Wrap(apperr.StoreFailure, "order read failed", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "order read failed", err)
	}
	return out, nil
}
