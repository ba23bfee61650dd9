package script

// Tier is the complexity rating of a legacy script
type Tier int

const (
	Simple Tier = iota
	Moderate
	Complex
)

func (t Tier) String() string {
	switch t {
	case Moderate:
		return "moderate"
	case Complex:
		return "complex"
	default:
		return "simple"
	}
}

// MarshalText lets tiers render by name in YAML and JSON reports
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Template names
const (
	BaseTemplate           = "base"
	PageTitleAwareTemplate = "page-title-aware"
)

const (
	// ComplexLineThreshold is the code line count above which a script is
	// complex regardless of its features.
	ComplexLineThreshold = 300
	// moderateFunctionThreshold is the number of other custom functions
	// above which a script is at least moderate.
	moderateFunctionThreshold = 2
)

// Selection is the tier and template chosen for a script
type Selection struct {
	Tier     Tier
	Template string
}

// Select rates a script and picks the template to convert it with.
// The first matching rule wins.
func Select(flags FeatureFlags, lineCount int) Selection {
	switch {
	case flags.IframeResize || flags.CharacterManager || flags.PhaseDecorator || lineCount > ComplexLineThreshold:
		return Selection{Tier: Complex, Template: PageTitleAwareTemplate}
	case flags.PrintHelper || flags.SharedInit || len(flags.OtherFunctions) > moderateFunctionThreshold:
		return Selection{Tier: Moderate, Template: BaseTemplate}
	default:
		return Selection{Tier: Simple, Template: BaseTemplate}
	}
}
