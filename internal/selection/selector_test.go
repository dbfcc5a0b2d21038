package selection

import (
	"reflect"
	"strings"
	"testing"

	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

func twoColorProduct() *Selector {
	return New([]ColorStock{
		{Color: "Red", Stock: 2, Sizes: []string{"2-3y", "4-5y"}},
		{Color: "Blue", Stock: 5, Sizes: []string{"2-3y", "4-5y", "6-7y"}},
	}, 0)
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetRequestedQuantityBounds(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	if err := s.SetRequestedQuantity(0); err == nil {
		t.Fatal("expected rejection below 1")
	}
	if err := s.SetRequestedQuantity(8); err == nil {
		t.Fatal("expected rejection above total stock")
	}
	mustOK(t, s.SetRequestedQuantity(7))
	if s.RequestedQuantity() != 7 {
		t.Fatalf("requested = %d", s.RequestedQuantity())
	}
}

func TestSetRequestedQuantityShrinkClearsSelections(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(3))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseSize("Red", "2-3y"))

	mustOK(t, s.SetRequestedQuantity(2))
	if got := s.SelectedQuantity(); got != 0 {
		t.Fatalf("selections not cleared, sum = %d", got)
	}
	if s.SizeCount("Red", "2-3y") != 0 {
		t.Fatal("size breakdown not cleared")
	}
}

func TestSetRequestedQuantityGrowKeepsSelections(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(2))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.SetRequestedQuantity(4))
	if s.ColorQuantity("Red") != 1 {
		t.Fatal("growing the request must keep selections")
	}
}

func TestIncreaseColorGuards(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	if err := s.IncreaseColor("Red"); err == nil {
		t.Fatal("expected rejection before a quantity is set")
	}
	mustOK(t, s.SetRequestedQuantity(3))

	if err := s.IncreaseColor("Green"); err == nil {
		t.Fatal("expected rejection for unknown color")
	}

	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseColor("Red"))
	err := s.IncreaseColor("Red")
	if err == nil || !strings.Contains(err.Error(), "color stock exhausted") {
		t.Fatalf("expected color stock exhaustion, got %v", err)
	}
	if s.ColorQuantity("Red") != 2 {
		t.Fatalf("rejected mutation must not change state, got %d", s.ColorQuantity("Red"))
	}

	mustOK(t, s.IncreaseColor("Blue"))
	err = s.IncreaseColor("Blue")
	if err == nil || !strings.Contains(err.Error(), "requested quantity cap reached") {
		t.Fatalf("expected cap rejection, got %v", err)
	}
}

func TestDecreaseColorRemovesZeroEntriesAndTrimsSizes(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(4))
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseSize("Blue", "2-3y"))
	mustOK(t, s.IncreaseSize("Blue", "4-5y"))
	mustOK(t, s.IncreaseSize("Blue", "6-7y"))

	mustOK(t, s.DecreaseColor("Blue"))
	if s.ColorQuantity("Blue") != 2 {
		t.Fatalf("quantity = %d", s.ColorQuantity("Blue"))
	}
	// one size unit trimmed, from the lexicographically first size.
	total := s.SizeCount("Blue", "2-3y") + s.SizeCount("Blue", "4-5y") + s.SizeCount("Blue", "6-7y")
	if total != 2 {
		t.Fatalf("size sum = %d, want 2", total)
	}
	if s.SizeCount("Blue", "2-3y") != 0 {
		t.Fatalf("expected trim to start at the first size, got %d", s.SizeCount("Blue", "2-3y"))
	}

	mustOK(t, s.DecreaseColor("Blue"))
	mustOK(t, s.DecreaseColor("Blue"))
	if s.ColorQuantity("Blue") != 0 {
		t.Fatal("expected zero quantity")
	}
	// decrement on an absent color is a no-op.
	mustOK(t, s.DecreaseColor("Blue"))
	mustOK(t, s.DecreaseColor("Red"))
}

func TestIncreaseSizeGuards(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(3))

	if err := s.IncreaseSize("Red", "2-3y"); err == nil {
		t.Fatal("expected rejection before the color is selected")
	}

	mustOK(t, s.IncreaseColor("Red"))
	if err := s.IncreaseSize("Red", "6-7y"); err == nil {
		t.Fatal("expected rejection for a size the color does not offer")
	}

	mustOK(t, s.IncreaseSize("Red", "2-3y"))
	err := s.IncreaseSize("Red", "4-5y")
	if err == nil || !strings.Contains(err.Error(), "already have a size") {
		t.Fatalf("expected size cap rejection, got %v", err)
	}
}

func TestDecreaseSizeIsIdempotentAtZero(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(2))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseSize("Red", "2-3y"))
	mustOK(t, s.DecreaseSize("Red", "2-3y"))
	mustOK(t, s.DecreaseSize("Red", "2-3y"))
	if s.SizeCount("Red", "2-3y") != 0 {
		t.Fatal("expected zero")
	}
}

func TestValidateForCommitReportsShortfall(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(5))
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseColor("Blue"))

	err := s.ValidateForCommit()
	if err == nil || !strings.Contains(err.Error(), "2 more units needed") {
		t.Fatalf("expected unit shortfall, got %v", err)
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestValidateForCommitReportsMissingSizes(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(2))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseSize("Red", "2-3y"))

	err := s.ValidateForCommit()
	if err == nil || !strings.Contains(err.Error(), "assign 1 more sizes for Red") {
		t.Fatalf("expected size shortfall, got %v", err)
	}
}

func TestValidateForCommitRequiresAColor(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(1))
	if err := s.ValidateForCommit(); err == nil {
		t.Fatal("expected rejection with no color selected")
	}
}

func TestFlattenOrdersByPickThenDeclaredSize(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(3))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseColor("Red"))
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseSize("Red", "4-5y"))
	mustOK(t, s.IncreaseSize("Red", "2-3y"))
	mustOK(t, s.IncreaseSize("Blue", "6-7y"))

	got := s.Flatten()
	want := []Unit{
		{Color: "Red", Size: "2-3y"},
		{Color: "Red", Size: "4-5y"},
		{Color: "Blue", Size: "6-7y"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flatten = %+v, want %+v", got, want)
	}
}

func TestFlattenPanicsOnInvalidState(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	mustOK(t, s.SetRequestedQuantity(2))
	mustOK(t, s.IncreaseColor("Red"))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	s.Flatten()
}

func TestVariantlessProduct(t *testing.T) {
	t.Parallel()

	s := New(nil, 4)
	if s.HasColors() {
		t.Fatal("expected no colors")
	}
	if err := s.SetRequestedQuantity(5); err == nil {
		t.Fatal("expected scalar stock bound")
	}
	mustOK(t, s.SetRequestedQuantity(3))
	mustOK(t, s.ValidateForCommit())

	units := s.Flatten()
	if len(units) != 3 {
		t.Fatalf("len = %d", len(units))
	}
	for _, u := range units {
		if u.Color != "" || u.Size != "" {
			t.Fatalf("expected bare units, got %+v", u)
		}
	}
}

func TestCurrentState(t *testing.T) {
	t.Parallel()

	s := twoColorProduct()
	if s.CurrentState() != StateEmpty {
		t.Fatalf("state = %s", s.CurrentState())
	}
	mustOK(t, s.SetRequestedQuantity(2))
	if s.CurrentState() != StateEmpty {
		t.Fatalf("state = %s", s.CurrentState())
	}
	mustOK(t, s.IncreaseColor("Red"))
	if s.CurrentState() != StatePartial {
		t.Fatalf("state = %s", s.CurrentState())
	}
	mustOK(t, s.IncreaseColor("Blue"))
	mustOK(t, s.IncreaseSize("Red", "2-3y"))
	mustOK(t, s.IncreaseSize("Blue", "4-5y"))
	if s.CurrentState() != StateComplete {
		t.Fatalf("state = %s", s.CurrentState())
	}
}
