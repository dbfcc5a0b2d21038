package product

import (
	"testing"

	"github.com/lib/pq"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestEffectivePriceCents(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		price int
		offer *int
		want  int
	}{
		{"no offer", 3500, nil, 3500},
		{"offer lower", 3500, intPtr(2900), 2900},
		{"offer higher is ignored", 3500, intPtr(4000), 3500},
		{"zero offer is ignored", 3500, intPtr(0), 3500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Product{PriceCents: tc.price, OfferPriceCents: tc.offer}
			if got := EffectivePriceCents(p); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTotalStockPrefersVariantSum(t *testing.T) {
	t.Parallel()

	p := &models.Product{
		StockQty: 99,
		Variants: []models.ColorVariant{
			{Color: "Pink", StockQty: 3},
			{Color: "White", StockQty: 2},
			{Color: "Grey", StockQty: -1},
		},
	}
	if got := TotalStock(p); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}

	scalar := &models.Product{StockQty: 7}
	if got := TotalStock(scalar); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
	if got := TotalStock(&models.Product{StockQty: -2}); got != 0 {
		t.Fatalf("negative scalar stock must clamp to 0, got %d", got)
	}
}

func TestColorOptionsLegacyFallback(t *testing.T) {
	t.Parallel()

	p := &models.Product{
		StockQty:     4,
		LegacyColors: pq.StringArray{"Red", "Blue"},
		LegacySizes:  pq.StringArray{"2-3y", "4-5y"},
	}
	options := ColorOptions(p)
	if len(options) != 2 {
		t.Fatalf("len = %d", len(options))
	}
	for _, opt := range options {
		if opt.StockQty != 4 {
			t.Fatalf("legacy colors must share the scalar stock pool, got %d", opt.StockQty)
		}
		if len(opt.Sizes) != 2 {
			t.Fatalf("legacy sizes missing, got %v", opt.Sizes)
		}
	}
}

func TestColorOptionsVariantsWin(t *testing.T) {
	t.Parallel()

	p := &models.Product{
		StockQty:     4,
		LegacyColors: pq.StringArray{"Red"},
		Variants: []models.ColorVariant{
			{Color: "Pink", StockQty: 3, Sizes: pq.StringArray{"2-3y"}},
		},
	}
	options := ColorOptions(p)
	if len(options) != 1 || options[0].Color != "Pink" {
		t.Fatalf("variant rows must win over legacy arrays, got %+v", options)
	}
}

func TestNewProductDTOBackfillsAltName(t *testing.T) {
	t.Parallel()

	p := &models.Product{Name: "Cosy Hoodie", PriceCents: 3500}
	if dto := NewProductDTO(p); dto.AltName != "Cosy Hoodie" {
		t.Fatalf("alt name = %q", dto.AltName)
	}

	p.AltName = strPtr("Hoodie Deluxe")
	if dto := NewProductDTO(p); dto.AltName != "Hoodie Deluxe" {
		t.Fatalf("alt name = %q", dto.AltName)
	}
}
