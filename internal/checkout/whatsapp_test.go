package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
)

func TestFormatCents(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:     "0.00",
		5:     "0.05",
		2900:  "29.00",
		12345: "123.45",
	}
	for cents, want := range cases {
		if got := formatCents(cents); got != want {
			t.Fatalf("formatCents(%d) = %s, want %s", cents, got, want)
		}
	}
}

func TestSanitizeNumber(t *testing.T) {
	t.Parallel()

	if got := sanitizeNumber("+49 170 123-4567"); got != "491701234567" {
		t.Fatalf("got %s", got)
	}
}

func TestBuildWhatsAppLink(t *testing.T) {
	t.Parallel()

	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  "Maria",
		SubtotalCents: 9900,
		DiscountCents: 990,
		TotalCents:    8910,
		LineItems: []models.OrderLineItem{
			{
				DisplayName:    "Cosy Hoodie",
				UnitPriceCents: 2900,
				Quantity:       2,
				Colors:         pq.StringArray{"Red", "Blue"},
				Sizes:          pq.StringArray{"2-3y", "4-5y"},
			},
			{
				DisplayName:    "Plain Tee",
				UnitPriceCents: 4100,
				Quantity:       1,
			},
		},
	}

	link := BuildWhatsAppLink("+49 170 1234567", order)
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	if parsed.Host != "wa.me" || parsed.Path != "/491701234567" {
		t.Fatalf("link = %s", link)
	}

	text := parsed.Query().Get("text")
	for _, want := range []string{
		"2x Cosy Hoodie (Red 2-3y, Blue 4-5y) - 58.00",
		"1x Plain Tee - 41.00",
		"Subtotal: 99.00",
		"Discount: -9.90",
		"Total: 89.10",
		"Name: Maria",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q:\n%s", want, text)
		}
	}
}

func TestBuildWhatsAppLinkSkipsZeroDiscount(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), CustomerName: "Sam", SubtotalCents: 100, TotalCents: 100}
	text := mustText(t, BuildWhatsAppLink("123456789", order))
	if strings.Contains(text, "Discount") {
		t.Fatalf("unexpected discount line:\n%s", text)
	}
}

func mustText(t *testing.T, link string) string {
	t.Helper()
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	return parsed.Query().Get("text")
}
