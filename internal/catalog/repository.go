// Read-only book lookups. The catalog is never written by this service.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/money"
)

type Repository interface {
	// Search returns one page of matches plus the total match count.
	// An offset past the end yields an empty page, not an error.
	Search(ctx context.Context, c Criterion, page, pageSize int32) ([]*Book, int64, error)
	GetByID(ctx context.Context, id int64) (*Book, error)
}

type sqliteRepo struct{ db *sql.DB }

func NewSQLiteRepo(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Search(ctx context.Context, c Criterion, page, pageSize int32) ([]*Book, int64, error) {
	if page < 1 || pageSize < 1 {
		return nil, 0, apperr.E(apperr.InvalidInput, "page and page size must be at least 1")
	}
	where, arg, err := whereClause(c)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books `+where, arg).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.StoreFailure, "catalog lookup failed", err)
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, author, subject, price_cents, created_unix
		FROM books `+where+` ORDER BY id LIMIT ? OFFSET ?`, arg, pageSize, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.StoreFailure, "catalog lookup failed", err)
	}
	defer rows.Close()

	var out []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, apperr.Wrap(apperr.StoreFailure, "catalog lookup failed", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(apperr.StoreFailure, "catalog lookup failed", err)
	}
	return out, total, nil
}

func whereClause(c Criterion) (clause string, arg any, err error) {
	term := strings.TrimSpace(c.Term)
	switch c.Field {
	case BySubject:
		return `WHERE subject = ?`, term, nil
	case ByAuthor:
		return `WHERE lower(author) LIKE ?`, strings.ToLower(term) + "%", nil
	case ByTitle:
		return `WHERE lower(title) LIKE ?`, "%" + strings.ToLower(term) + "%", nil
	default:
		return "", nil, apperr.E(apperr.InvalidInput, "unknown search criterion")
	}
}

func (r *sqliteRepo) GetByID(ctx context.Context, id int64) (*Book, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, author, subject, price_cents, created_unix
		FROM books WHERE id=?`, id)
	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.NotFound, fmt.Sprintf("book %d not found", id))
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "catalog lookup failed", err)
	}
	return b, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanBook(s scanner) (*Book, error) {
	var b Book
	var cents int64
	if err := s.Scan(&b.ID, &b.Title, &b.Author, &b.Subject, &cents, &b.CreatedUnix); err != nil {
		return nil, err
	}
	b.Price = money.FromCents(cents)
	return &b, nil
}

func TotalPages(total int64, pageSize int32) int64 {
	if pageSize < 1 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
