package types

import (
	"github.com/google/uuid"

	"github.com/lunakids/lunakids-backend/pkg/enums"
)

// CartNotice tells the shopper how a stock reconciliation changed their cart.
type CartNotice struct {
	ProductID   uuid.UUID            `json:"product_id"`
	ProductName string               `json:"product_name"`
	Kind        enums.CartNoticeKind `json:"kind"`
	Quantity    int                  `json:"quantity,omitempty"`
}

// CartNotices is the ordered list emitted by a single reconciliation pass.
type CartNotices []CartNotice
