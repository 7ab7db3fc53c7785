package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/checkout"
	"github.com/ahinestrog/bookorders/internal/money"
	"github.com/ahinestrog/bookorders/internal/order"
)

type OrderHandler struct {
	coordinator *checkout.Coordinator
}

func NewOrderHandler(coordinator *checkout.Coordinator) *OrderHandler {
	return &OrderHandler{coordinator: coordinator}
}

// POST /api/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	oid, err := h.coordinator.Checkout(c.Request.Context(), identityOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": oid})
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	oid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, apperr.E(apperr.InvalidInput, "malformed order id"))
		return
	}
	o, err := h.coordinator.GetOrder(c.Request.Context(), identityOf(c), oid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(o))
}

func orderView(o *order.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, gin.H{
			"book_id":    it.BookID,
			"title":      it.Title,
			"qty":        it.Qty,
			"unit_price": money.FromCents(it.UnitCents),
			"amount":     money.FromCents(it.LineCents),
		})
	}
	return gin.H{
		"order_id":     o.ID,
		"created_unix": o.CreatedUnix,
		"shipping":     o.Shipping,
		"items":        items,
		"total":        money.FromCents(o.TotalCents),
	}
}
