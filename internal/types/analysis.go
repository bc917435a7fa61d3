package types

// Fixed chunk titles the analysis prompt instructs the model to emit, in
// order. Kept here so renderers and tests agree with the prompt.
var AnalysisChunkTitles = []string{
	"Existing Solutions & Gaps",
	"Feasibility & Scalability",
	"Market & Edge",
	"Resources & Timeline",
	"Ethics & Risks",
}

// AnalysisChunk is one titled section of an analysis result, covering one
// fixed analytical dimension.
type AnalysisChunk struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Analysis    string   `json:"analysis"`
	KeyInsights []string `json:"key_insights"`
}

// Synthesis is the closing solution guide of an analysis.
type Synthesis struct {
	SolutionGuide []string `json:"solution_guide"`
}

// AnalysisResult is the structured report produced for a user-submitted
// problem. Immutable after decoding; the orchestrator holds the current one
// until it is replaced or cleared.
type AnalysisResult struct {
	Mode           string          `json:"mode"`
	InputProblem   string          `json:"input_problem"`
	RefinedProblem string          `json:"refined_problem"`
	FounderProfile FounderProfile  `json:"founder_profile"`
	Chunks         []AnalysisChunk `json:"chunks"`
	Synthesis      Synthesis       `json:"synthesis"`
}

// ModeUserDriven is the wire discriminator for AnalysisResult.
const ModeUserDriven = "user_driven"
