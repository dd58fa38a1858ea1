package entity

// Adaptations carries optional hints applied when the chosen provider is
// not the canonical match for the requested style. Fields are sparse —
// only the ones relevant to a given (style, provider) pair are set.
type Adaptations struct {
	PromptEnhancement string `json:"prompt_enhancement,omitempty"`
	ImageStyle        string `json:"image_style,omitempty"`
	StyleNote         string `json:"style_note,omitempty"`
	TransitionEffects string `json:"transition_effects,omitempty"`
	SequenceTiming    string `json:"sequence_timing,omitempty"`
	DurationAdjustment string `json:"duration_adjustment,omitempty"`
}

// IsEmpty reports whether no adaptation field was set.
func (a *Adaptations) IsEmpty() bool {
	return a == nil || (a.PromptEnhancement == "" && a.ImageStyle == "" && a.StyleNote == "" &&
		a.TransitionEffects == "" && a.SequenceTiming == "" && a.DurationAdjustment == "")
}

// RoutingDecision is the immutable output of the router: the chosen
// provider, why it was chosen, and the runtime fallback candidate.
type RoutingDecision struct {
	Provider         Provider     `json:"provider"`
	Mode             Mode         `json:"mode"`
	Reason           string       `json:"reason"`
	Confidence       float64      `json:"confidence"`
	FallbackProvider Provider     `json:"fallback_provider,omitempty"`
	Adaptations      *Adaptations `json:"adaptations,omitempty"`
}

// ScoreBreakdown is the per-factor scoring detail for a single provider,
// returned by the router's pure analysis view.
type ScoreBreakdown struct {
	Provider      Provider `json:"provider"`
	StyleScore    float64  `json:"style_score"`
	ContentScore  float64  `json:"content_score"`
	DurationScore float64  `json:"duration_score"`
	QualityScore  float64  `json:"quality_score"`
	CostScore     float64  `json:"cost_score"`
	TotalScore    float64  `json:"total_score"`
	PrimaryFactor string   `json:"primary_factor"`
}

// RoutingAnalysis is the pure, non-executing view of a routing decision:
// the decision itself plus the full per-provider scoring breakdown.
type RoutingAnalysis struct {
	Decision RoutingDecision  `json:"routing_decision"`
	Scores   []ScoreBreakdown `json:"scores"`
}
