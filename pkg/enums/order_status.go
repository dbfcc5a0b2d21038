package enums

// OrderStatus tracks an order's lifecycle after checkout.
type OrderStatus string

const (
	// OrderStatusPending is set when the order row is created at checkout.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed is set by the admin once the WhatsApp conversation settles.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusCancelled is set by the admin when the shopper backs out.
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}
