package product

import (
	"strings"
	"testing"

	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

func TestValidateProductInput(t *testing.T) {
	t.Parallel()

	if err := validateProductInput("", 100, nil, 0, nil); err == nil {
		t.Fatal("expected name rejection")
	}
	if err := validateProductInput("Hoodie", 0, nil, 0, nil); err == nil {
		t.Fatal("expected price rejection")
	}
	if err := validateProductInput("Hoodie", 100, intPtr(-1), 0, nil); err == nil {
		t.Fatal("expected offer price rejection")
	}
	if err := validateProductInput("Hoodie", 100, nil, -1, nil); err == nil {
		t.Fatal("expected stock rejection")
	}
	if err := validateProductInput("Hoodie", 100, nil, 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateVariantsRejectsDuplicates(t *testing.T) {
	t.Parallel()

	err := validateVariants([]VariantInput{
		{Color: "Pink", StockQty: 1},
		{Color: "Pink", StockQty: 2},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate variant color") {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	if err := validateVariants([]VariantInput{{Color: " ", StockQty: 1}}); err == nil {
		t.Fatal("expected blank color rejection")
	}
	if err := validateVariants([]VariantInput{{Color: "Pink", StockQty: -1}}); err == nil {
		t.Fatal("expected negative stock rejection")
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
