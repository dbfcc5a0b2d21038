package enums

// PromoKind distinguishes the storefront's discount gimmicks.
type PromoKind string

const (
	PromoKindSpinWheel  PromoKind = "spin_wheel"
	PromoKindExitIntent PromoKind = "exit_intent"
)

func (k PromoKind) IsValid() bool {
	switch k {
	case PromoKindSpinWheel, PromoKindExitIntent:
		return true
	}
	return false
}
