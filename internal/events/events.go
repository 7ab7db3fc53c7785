package events

// Routing keys published by this service.
const (
	RKOrderCreated   = "order.created"
	RKUserRegistered = "user.registered"
)

type OrderCreatedPayload struct {
	OrderID    int64          `json:"order_id"`
	UserID     int64          `json:"user_id"`
	Items      []OrderItemEvt `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

type OrderItemEvt struct {
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Qty       int32  `json:"qty"`
	UnitCents int64  `json:"unit_cents"`
	LineCents int64  `json:"line_cents"`
}

type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Publisher is satisfied by *Rabbit; services treat a nil publisher as
// events disabled.
type Publisher interface {
	PublishJSON(routingKey string, v any) error
}
