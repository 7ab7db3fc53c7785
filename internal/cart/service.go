package cart

import (
	"context"
	"fmt"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/catalog"
)

var ErrInvalidQuantity = apperr.E(apperr.InvalidInput, "quantity must be at least 1")

// Service wraps the repository with input validation, book existence checks
// and the per-user lock shared with checkout.
type Service struct {
	repo  Repository
	books catalog.Repository
	locks *userLocks
}

func NewService(repo Repository, books catalog.Repository) *Service {
	return &Service{repo: repo, books: books, locks: newUserLocks()}
}

func (s *Service) AddItem(ctx context.Context, userID, bookID int64, qty int32) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return apperr.E(apperr.NotFound, fmt.Sprintf("book %d not found", bookID))
		}
		return err
	}

	unlock := s.locks.lock(userID)
	defer unlock()
	return s.repo.AddItem(ctx, userID, bookID, qty)
}

func (s *Service) Lines(ctx context.Context, userID int64) ([]Line, error) {
	return s.repo.Lines(ctx, userID)
}

func (s *Service) Snapshot(ctx context.Context, userID int64) ([]SnapshotLine, error) {
	return s.repo.Snapshot(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}

// LockUser serializes a checkout against concurrent adds for the same user.
// The returned func releases the lock.
func (s *Service) LockUser(userID int64) func() {
	return s.locks.lock(userID)
}
