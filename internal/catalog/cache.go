package catalog

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachedRepo keeps recent book-by-id reads in an LRU. A slightly stale hit is
// fine here: checkout re-reads prices with a SQL join at snapshot time, so
// the cache only serves browse and add-to-cart validation.
type cachedRepo struct {
	inner Repository
	books *lru.Cache[int64, *Book]
}

func NewCachedRepo(inner Repository, size int) (Repository, error) {
	c, err := lru.New[int64, *Book](size)
	if err != nil {
		return nil, err
	}
	return &cachedRepo{inner: inner, books: c}, nil
}

func (r *cachedRepo) Search(ctx context.Context, c Criterion, page, pageSize int32) ([]*Book, int64, error) {
	return r.inner.Search(ctx, c, page, pageSize)
}

func (r *cachedRepo) GetByID(ctx context.Context, id int64) (*Book, error) {
	if b, ok := r.books.Get(id); ok {
		return b, nil
	}
	b, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.books.Add(id, b)
	return b, nil
}
