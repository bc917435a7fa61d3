package types

// MaxDiscoveredProblems caps the problems list; the gateway truncates
// over-produced responses down to this.
const MaxDiscoveredProblems = 5

// Problem is one discovered opportunity, framed for the requesting founder.
type Problem struct {
	ID                  int    `json:"id"`
	ProblemStatement    string `json:"problem_statement"`
	SimulatedSource     string `json:"simulated_source"`
	FreshnessTimestamp  string `json:"freshness_timestamp"`
	PersonalizationNote string `json:"personalization_note"`
}

// DiscoveryResult is the report produced for a sector scan.
type DiscoveryResult struct {
	Mode           string         `json:"mode"`
	Sector         string         `json:"sector"`
	FounderProfile FounderProfile `json:"founder_profile"`
	Problems       []Problem      `json:"problems"`
}

// ModeProactiveDiscovery is the wire discriminator for DiscoveryResult.
const ModeProactiveDiscovery = "proactive_discovery"

// Truncate drops problems beyond MaxDiscoveredProblems.
func (d *DiscoveryResult) Truncate() {
	if len(d.Problems) > MaxDiscoveredProblems {
		d.Problems = d.Problems[:MaxDiscoveredProblems]
	}
}
