package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/ahinestrog/bookorders/internal/apperr"
)

type Repository struct{ db *sql.DB }

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Create(ctx context.Context, u *User) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users(name, email, password_hash, street, city, postal_code, created_unix)
		VALUES (?,?,?,?,?,?,?)`,
		u.Name, u.Email, u.PasswordHash,
		u.Address.Street, u.Address.City, u.Address.PostalCode,
		time.Now().Unix())
	if err != nil {
		return 0, apperr.Wrap(apperr.StoreFailure, "user create failed", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Wrap(apperr.StoreFailure, "user create failed", err)
	}
	return id, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getWhere(ctx, `email=?`, email)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getWhere(ctx, `id=?`, id)
}

func (r *Repository) getWhere(ctx context.Context, cond string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, street, city, postal_code, created_unix
		FROM users WHERE `+cond, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Address.Street, &u.Address.City, &u.Address.PostalCode, &u.CreatedUnix)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "user lookup failed", err)
	}
	return &u, nil
}

func (r *Repository) CreateSession(ctx context.Context, token string, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions(token, user_id, created_unix) VALUES (?,?,?)`,
		token, userID, time.Now().Unix())
	if err != nil {
		return apperr.Wrap(apperr.StoreFailure, "session create failed", err)
	}
	return nil
}

func (r *Repository) UserBySession(ctx context.Context, token string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM sessions WHERE token=?`, token).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, apperr.E(apperr.NotFound, "session not found")
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.StoreFailure, "session lookup failed", err)
	}
	return id, nil
}
