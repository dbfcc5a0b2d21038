package selection

import (
	"fmt"
	"sort"

	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

// ColorStock describes one color offered by a product: its live stock and the
// size names valid for it. Sizes may be empty for single-size garments.
type ColorStock struct {
	Color string
	Stock int
	Sizes []string
}

// Unit is one physical garment in a flattened selection. Size is empty when
// the color has no size list.
type Unit struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// State classifies the selector. It is always derived from the current counts,
// never stored.
type State string

const (
	StateEmpty    State = "empty"
	StatePartial  State = "partial"
	StateComplete State = "complete"
)

type colorSelection struct {
	quantity int
	sizes    map[string]int
}

// Selector distributes a requested total quantity across a product's colors
// and sizes. Every mutation either succeeds and keeps all invariants, or is
// rejected and leaves the state untouched.
type Selector struct {
	colors      map[string]ColorStock
	colorOrder  []string
	scalarStock int
	requested   int
	selected    map[string]*colorSelection
	pickOrder   []string
}

// New builds a selector for a product. For variant-less products pass no
// colors and the product's scalar stock; otherwise the scalar stock is ignored
// and availability derives from the color stocks.
func New(colors []ColorStock, scalarStock int) *Selector {
	s := &Selector{
		colors:      make(map[string]ColorStock, len(colors)),
		scalarStock: scalarStock,
		selected:    make(map[string]*colorSelection),
	}
	for _, c := range colors {
		if c.Color == "" {
			continue
		}
		if _, ok := s.colors[c.Color]; ok {
			continue
		}
		s.colors[c.Color] = c
		s.colorOrder = append(s.colorOrder, c.Color)
	}
	return s
}

// Colors returns the product's color options in declared order.
func (s *Selector) Colors() []ColorStock {
	out := make([]ColorStock, 0, len(s.colorOrder))
	for _, name := range s.colorOrder {
		out = append(out, s.colors[name])
	}
	return out
}

// HasColors reports whether the product offers color variants.
func (s *Selector) HasColors() bool {
	return len(s.colors) > 0
}

// TotalAvailableStock is the combined stock across all colors, or the scalar
// stock for variant-less products.
func (s *Selector) TotalAvailableStock() int {
	if !s.HasColors() {
		if s.scalarStock < 0 {
			return 0
		}
		return s.scalarStock
	}
	total := 0
	for _, c := range s.colors {
		if c.Stock > 0 {
			total += c.Stock
		}
	}
	return total
}

// RequestedQuantity returns the target total the shopper asked for.
func (s *Selector) RequestedQuantity() int {
	return s.requested
}

// SelectedQuantity returns the sum of all per-color quantities.
func (s *Selector) SelectedQuantity() int {
	total := 0
	for _, sel := range s.selected {
		total += sel.quantity
	}
	return total
}

// ColorQuantity returns the quantity currently assigned to the color.
func (s *Selector) ColorQuantity(color string) int {
	if sel, ok := s.selected[color]; ok {
		return sel.quantity
	}
	return 0
}

// SizeCount returns the units of a color assigned to the size.
func (s *Selector) SizeCount(color, size string) int {
	sel, ok := s.selected[color]
	if !ok {
		return 0
	}
	return sel.sizes[size]
}

// SetRequestedQuantity sets the target total. Shrinking it below the
// already-selected sum clears all color and size selections.
func (s *Selector) SetRequestedQuantity(n int) error {
	if n < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if available := s.TotalAvailableStock(); n > available {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("quantity exceeds available stock (max %d)", available))
	}
	if n < s.SelectedQuantity() {
		s.selected = make(map[string]*colorSelection)
		s.pickOrder = nil
	}
	s.requested = n
	return nil
}

// IncreaseColor assigns one more unit to the color.
func (s *Selector) IncreaseColor(color string) error {
	stock, ok := s.colors[color]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown color")
	}
	if s.requested < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "set a quantity first")
	}
	sel := s.selected[color]
	current := 0
	if sel != nil {
		current = sel.quantity
	}
	if current >= stock.Stock {
		return pkgerrors.New(pkgerrors.CodeConflict, "color stock exhausted")
	}
	if s.SelectedQuantity() >= s.requested {
		return pkgerrors.New(pkgerrors.CodeConflict, "requested quantity cap reached")
	}
	if sel == nil {
		sel = &colorSelection{sizes: make(map[string]int)}
		s.selected[color] = sel
		s.pickOrder = append(s.pickOrder, color)
	}
	sel.quantity++
	return nil
}

// DecreaseColor removes one unit from the color. Reaching zero drops the color
// entry; an over-assigned size breakdown is trimmed back deterministically, in
// lexicographic size order.
func (s *Selector) DecreaseColor(color string) error {
	sel, ok := s.selected[color]
	if !ok || sel.quantity == 0 {
		return nil
	}
	sel.quantity--
	if sel.quantity == 0 {
		s.removeColor(color)
		return nil
	}
	s.trimSizes(sel)
	return nil
}

// IncreaseSize assigns a size to one of the color's unsized units.
func (s *Selector) IncreaseSize(color, size string) error {
	stock, ok := s.colors[color]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown color")
	}
	if !containsString(stock.Sizes, size) {
		return pkgerrors.New(pkgerrors.CodeValidation, "size not available for this color")
	}
	sel := s.selected[color]
	if sel == nil || sel.quantity == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a color first")
	}
	if sizeSum(sel) >= sel.quantity {
		return pkgerrors.New(pkgerrors.CodeConflict, "all units of this color already have a size assigned")
	}
	sel.sizes[size]++
	return nil
}

// DecreaseSize unassigns one unit from the size. Reaching zero drops the entry.
func (s *Selector) DecreaseSize(color, size string) error {
	sel, ok := s.selected[color]
	if !ok {
		return nil
	}
	if sel.sizes[size] == 0 {
		return nil
	}
	sel.sizes[size]--
	if sel.sizes[size] == 0 {
		delete(sel.sizes, size)
	}
	return nil
}

// ValidateForCommit checks whether the selection can be flattened into cart
// line items. It reports the exact shortfall so the storefront can tell the
// shopper how many units or sizes are still missing.
func (s *Selector) ValidateForCommit() error {
	if s.requested < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "set a quantity first")
	}
	if s.HasColors() && len(s.selected) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a color")
	}
	if selected := s.SelectedQuantity(); s.HasColors() && selected != s.requested {
		shortfall := s.requested - selected
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%d more units needed", shortfall)).
			WithDetails(map[string]any{"shortfall": shortfall})
	}
	for _, color := range s.pickOrder {
		sel := s.selected[color]
		if sel == nil {
			continue
		}
		if len(s.colors[color].Sizes) == 0 {
			continue
		}
		if missing := sel.quantity - sizeSum(sel); missing > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("assign %d more sizes for %s", missing, color)).
				WithDetails(map[string]any{"color": color, "shortfall": missing})
		}
	}
	return nil
}

// CurrentState derives the selector state from the counts.
func (s *Selector) CurrentState() State {
	if s.SelectedQuantity() == 0 {
		if s.HasColors() || s.requested == 0 {
			return StateEmpty
		}
	}
	if s.ValidateForCommit() == nil {
		return StateComplete
	}
	if s.SelectedQuantity() == 0 {
		return StateEmpty
	}
	return StatePartial
}

// Flatten expands the selection into one entry per physical unit: each color
// repeated by its quantity and, within a color, each size repeated by its
// count in the color's declared size order. Calling Flatten on a state that
// fails ValidateForCommit is a programming error.
func (s *Selector) Flatten() []Unit {
	if err := s.ValidateForCommit(); err != nil {
		panic(fmt.Sprintf("selection: Flatten called on invalid state: %v", err))
	}

	if !s.HasColors() {
		units := make([]Unit, s.requested)
		return units
	}

	units := make([]Unit, 0, s.requested)
	for _, color := range s.pickOrder {
		sel := s.selected[color]
		if sel == nil {
			continue
		}
		sizes := s.colors[color].Sizes
		if len(sizes) == 0 {
			for i := 0; i < sel.quantity; i++ {
				units = append(units, Unit{Color: color})
			}
			continue
		}
		for _, size := range sizes {
			for i := 0; i < sel.sizes[size]; i++ {
				units = append(units, Unit{Color: color, Size: size})
			}
		}
	}
	return units
}

func (s *Selector) removeColor(color string) {
	delete(s.selected, color)
	for i, c := range s.pickOrder {
		if c == color {
			s.pickOrder = append(s.pickOrder[:i], s.pickOrder[i+1:]...)
			break
		}
	}
}

// trimSizes drops whole units from the size breakdown until its sum fits the
// color quantity again, walking size names in sorted order.
func (s *Selector) trimSizes(sel *colorSelection) {
	excess := sizeSum(sel) - sel.quantity
	if excess <= 0 {
		return
	}
	names := make([]string, 0, len(sel.sizes))
	for name := range sel.sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for excess > 0 && sel.sizes[name] > 0 {
			sel.sizes[name]--
			excess--
		}
		if sel.sizes[name] == 0 {
			delete(sel.sizes, name)
		}
	}
}

func sizeSum(sel *colorSelection) int {
	total := 0
	for _, n := range sel.sizes {
		total += n
	}
	return total
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
