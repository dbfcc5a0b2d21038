package enums

// CartNoticeKind labels the reconciliation outcomes surfaced to shoppers.
type CartNoticeKind string

const (
	// CartNoticeRemovedOutOfStock means the line was dropped because remote stock hit zero.
	CartNoticeRemovedOutOfStock CartNoticeKind = "removed_out_of_stock"
	// CartNoticeQuantityReduced means the line quantity was lowered to the remote stock.
	CartNoticeQuantityReduced CartNoticeKind = "quantity_reduced"
	// CartNoticeQuantityClamped means an explicit SetQuantity was clamped to remote stock.
	CartNoticeQuantityClamped CartNoticeKind = "quantity_clamped"
)

func (k CartNoticeKind) IsValid() bool {
	switch k {
	case CartNoticeRemovedOutOfStock, CartNoticeQuantityReduced, CartNoticeQuantityClamped:
		return true
	}
	return false
}
