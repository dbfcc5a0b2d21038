package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
)

// formatCents renders a cent amount as a plain decimal string ("2900" -> "29.00").
func formatCents(cents int) string {
	return decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// sanitizeNumber strips everything but digits so the wa.me path stays valid.
func sanitizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildWhatsAppLink renders the order into a wa.me deep link the shopper opens
// to finish the purchase over chat.
func BuildWhatsAppLink(number string, order *models.Order) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "Hello! I would like to place order %s\n\n", shortRef(order))
	for _, line := range order.LineItems {
		fmt.Fprintf(&msg, "%dx %s", line.Quantity, line.DisplayName)
		if breakdown := unitBreakdown(line); breakdown != "" {
			fmt.Fprintf(&msg, " (%s)", breakdown)
		}
		fmt.Fprintf(&msg, " - %s\n", formatCents(line.UnitPriceCents*line.Quantity))
	}
	fmt.Fprintf(&msg, "\nSubtotal: %s\n", formatCents(order.SubtotalCents))
	if order.DiscountCents > 0 {
		fmt.Fprintf(&msg, "Discount: -%s\n", formatCents(order.DiscountCents))
	}
	fmt.Fprintf(&msg, "Total: %s\n\n", formatCents(order.TotalCents))
	fmt.Fprintf(&msg, "Name: %s\n", order.CustomerName)
	if order.CustomerAddress != nil && *order.CustomerAddress != "" {
		fmt.Fprintf(&msg, "Address: %s\n", *order.CustomerAddress)
	}

	link := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + sanitizeNumber(number),
		RawQuery: url.Values{"text": {msg.String()}}.Encode(),
	}
	return link.String()
}

func shortRef(order *models.Order) string {
	id := order.ID.String()
	if len(id) >= 8 {
		return "#" + id[:8]
	}
	return "#" + id
}

// unitBreakdown joins the per-unit color/size pairs ("Red 2-3y, Blue 4-5y").
func unitBreakdown(line models.OrderLineItem) string {
	if len(line.Colors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(line.Colors))
	for i, color := range line.Colors {
		part := color
		if i < len(line.Sizes) && line.Sizes[i] != "" {
			part += " " + line.Sizes[i]
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
