package webclip

// Strategy identifies which stage of the extraction cascade produced a
// content match. Earlier stages always win over later ones; the value is
// recorded so runs are explainable and tests can assert determinism.
type Strategy string

const (
	// StrategyUserSelector is an operator-supplied CSS selector.
	StrategyUserSelector Strategy = "user-selector"

	// StrategySiteRule is a fixed selector for a known publishing platform.
	StrategySiteRule Strategy = "site-rule"

	// StrategyCandidate is the generic candidate selector list.
	StrategyCandidate Strategy = "candidate-selector"

	// StrategyDensity is readability-style text density analysis.
	StrategyDensity Strategy = "text-density"
)

// ContentMatch holds the primary article content located by the cascade.
type ContentMatch struct {
	// ContentHTML is the content subtree as HTML. Image references have
	// been normalized to absolute, non-lazy URLs.
	ContentHTML string

	// Strategy records which cascade stage matched.
	Strategy Strategy
}

// Extractor locates the primary article content in a rendered page.
type Extractor interface {
	// Extract returns the content match for the page, or an ENOTFOUND
	// error when no cascade stage matches. The page URL selects
	// site-specific rules and anchors relative image resolution.
	Extract(html string, pageURL string) (*ContentMatch, error)
}

// Converter transforms HTML content into Markdown text.
type Converter interface {
	Convert(html string) (string, error)
}
