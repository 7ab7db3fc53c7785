package store

import (
	"context"
	"database/sql"
	"time"
)

// Seed loads a small catalog on first start so the service is browsable
// without an import step. No-op when books already exist.
func Seed(ctx context.Context, db *sql.DB) error {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	books := []struct {
		title, author, subject string
		priceCents             int64
	}{
		{"The Go Programming Language", "Alan A. A. Donovan", "Programming", 3999},
		{"Designing Data-Intensive Applications", "Martin Kleppmann", "Programming", 4550},
		{"Clean Architecture", "Robert C. Martin", "Programming", 3250},
		{"Cien años de soledad", "Gabriel García Márquez", "Fiction", 1899},
		{"El amor en los tiempos del cólera", "Gabriel García Márquez", "Fiction", 1750},
		{"The Pragmatic Programmer", "David Thomas", "Programming", 4199},
		{"A Brief History of Time", "Stephen Hawking", "Science", 1550},
	}

	now := time.Now().Unix()
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
  INSERT INTO books(title, author, subject, price_cents, created_unix)
  VALUES(?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, b := range books {
			if _, err := stmt.ExecContext(ctx, b.title, b.author, b.subject, b.priceCents, now); err != nil {
				return err
			}
		}
		return nil
	})
}
