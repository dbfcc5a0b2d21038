package product

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:         fmt.Sprintf("Test Hoodie %s", t.Name()),
		Description:  "A warm hoodie for cold mornings",
		PriceCents:   3500,
		StockQty:     10,
		LegacyColors: pq.StringArray{"Red", "Blue"},
		LegacySizes:  pq.StringArray{"2-3y", "4-5y"},
		IsActive:     true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateVariantProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        fmt.Sprintf("Variant Dress %s", t.Name()),
		Description: "Summer dress with color variants",
		PriceCents:  4200,
		StockQty:    0,
		IsActive:    true,
		Variants: []models.ColorVariant{
			{Color: "Pink", StockQty: 3, Sizes: pq.StringArray{"2-3y", "4-5y"}},
			{Color: "White", StockQty: 2, Sizes: pq.StringArray{"4-5y"}},
		},
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create variant product: %v", err)
	}
	return product
}
