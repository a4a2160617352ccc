package entity

// ObstructionCategory classifies a pre-audit page obstruction.
type ObstructionCategory string

const (
	// ObstructionConsent covers age/profession confirmation gates.
	ObstructionConsent ObstructionCategory = "consent"
	// ObstructionCookie covers cookie/consent-manager banners.
	ObstructionCookie ObstructionCategory = "cookie"
)

// ObstructionCandidate is one entry of an ordered dismissal catalog.
// The selector is opaque to the control flow; candidates are evaluated in
// declaration order and the first visible match wins.
type ObstructionCandidate struct {
	Category    ObstructionCategory
	Selector    string
	Description string
}
