package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/catalog"
)

type CatalogHandler struct {
	books catalog.Repository
}

func NewCatalogHandler(books catalog.Repository) *CatalogHandler {
	return &CatalogHandler{books: books}
}

// GET /api/books?subject=|author=|title=&page=&page_size=
// Exactly one of subject/author/title selects the criterion.
func (h *CatalogHandler) Search(c *gin.Context) {
	crit, err := criterionFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 20)

	items, total, err := h.books.Search(c.Request.Context(), crit, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total":       total,
		"page":        page,
		"total_pages": catalog.TotalPages(total, pageSize),
	})
}

func criterionFromQuery(c *gin.Context) (catalog.Criterion, error) {
	if v := c.Query("subject"); v != "" {
		return catalog.Criterion{Field: catalog.BySubject, Term: v}, nil
	}
	if v := c.Query("author"); v != "" {
		return catalog.Criterion{Field: catalog.ByAuthor, Term: v}, nil
	}
	if v := c.Query("title"); v != "" {
		return catalog.Criterion{Field: catalog.ByTitle, Term: v}, nil
	}
	return catalog.Criterion{}, apperr.E(apperr.InvalidInput, "one of subject, author or title is required")
}

func intQuery(c *gin.Context, key string, def int32) int32 {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}
