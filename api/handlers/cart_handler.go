package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/cart"
	"github.com/ahinestrog/bookorders/internal/checkout"
	"github.com/ahinestrog/bookorders/internal/money"
)

type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type addItemRequest struct {
	BookID int64 `json:"book_id"`
	Qty    int32 `json:"qty"`
}

// POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	ident := identityOf(c)
	if !ident.OK {
		writeError(c, checkout.ErrUnauthenticated)
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.Wrap(apperr.InvalidInput, "malformed request body", err))
		return
	}
	if err := h.carts.AddItem(c.Request.Context(), ident.UserID, req.BookID, req.Qty); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

// GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ident := identityOf(c)
	if !ident.OK {
		writeError(c, checkout.ErrUnauthenticated)
		return
	}
	lines, err := h.carts.Lines(c.Request.Context(), ident.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	var total money.Money
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	if lines == nil {
		lines = []cart.Line{}
	}
	c.JSON(http.StatusOK, gin.H{"items": lines, "total": total})
}
