package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfile = `{
	"experience_years": 2,
	"team_size": 2,
	"runway_months": 3,
	"tech_stack": ["python"],
	"location": "Punjab",
	"funding_stage": "pre-seed"
}`

func TestValidate_Analysis_Valid(t *testing.T) {
	doc := `{
		"mode": "user_driven",
		"input_problem": "Reduce milk spoilage",
		"refined_problem": "Reduce milk spoilage for dairy co-ops in Punjab",
		"founder_profile": ` + validProfile + `,
		"chunks": [
			{"id": 1, "title": "Existing Solutions & Gaps", "analysis": "...", "key_insights": ["a", "b"]}
		],
		"synthesis": {"solution_guide": ["step 1"]}
	}`

	assert.NoError(t, Validate(Analysis, []byte(doc)))
}

func TestValidate_Analysis_MissingField(t *testing.T) {
	doc := `{
		"mode": "user_driven",
		"input_problem": "x",
		"founder_profile": ` + validProfile + `,
		"chunks": [],
		"synthesis": {"solution_guide": []}
	}`

	err := Validate(Analysis, []byte(doc))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, Analysis, ve.Schema)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidate_Discovery_Valid(t *testing.T) {
	doc := `{
		"mode": "proactive_discovery",
		"sector": "agritech",
		"founder_profile": ` + validProfile + `,
		"problems": [
			{"id": 1, "problem_statement": "s", "simulated_source": "reddit", "freshness_timestamp": "2025-06-01T00:00:00Z", "personalization_note": "fits runway"}
		]
	}`

	assert.NoError(t, Validate(Discovery, []byte(doc)))
}

func TestValidate_Discovery_BadFundingStage(t *testing.T) {
	doc := `{
		"mode": "proactive_discovery",
		"sector": "agritech",
		"founder_profile": {
			"experience_years": 2, "team_size": 2, "runway_months": 3,
			"tech_stack": [], "location": "Punjab", "funding_stage": "series-z"
		},
		"problems": []
	}`

	var ve *ValidationError
	require.True(t, errors.As(Validate(Discovery, []byte(doc)), &ve))
}

func TestValidate_Plan_Valid(t *testing.T) {
	doc := `{
		"mode": "compose",
		"cap_id": "7a1f0c9e-1b2c-4d5e-8f90-aabbccddeeff",
		"generated_at": "2025-06-01T12:00:00Z",
		"founder_profile": ` + validProfile + `,
		"priority": "high",
		"fusion_summary": "summary",
		"fused_insights": [
			{"from_sources": ["analysis.chunk2"], "insight": "i", "confidence": 0.8}
		],
		"action_plan": [
			{"id": 1, "title": "t", "description": "d", "owner": "ai", "executable": true, "command": "echo hi", "status": "pending", "due_in_hours": 24},
			{"id": 2, "title": "t2", "description": "d2", "owner": "founder", "executable": false, "command": null, "status": "pending", "due_in_hours": 48}
		],
		"execution_log": ["EXECUTION: first step"],
		"next_heartbeat_in_seconds": 900,
		"key_considerations": {"financial": ["f"], "governmental": ["g"]}
	}`

	assert.NoError(t, Validate(Plan, []byte(doc)))
}

func TestValidate_Plan_ConfidenceOutOfRange(t *testing.T) {
	doc := `{
		"mode": "compose",
		"cap_id": "x", "generated_at": "now",
		"founder_profile": ` + validProfile + `,
		"priority": "high", "fusion_summary": "s",
		"fused_insights": [{"from_sources": [], "insight": "i", "confidence": 1.5}],
		"action_plan": [], "execution_log": [],
		"next_heartbeat_in_seconds": 900,
		"key_considerations": {"financial": [], "governmental": []}
	}`

	var ve *ValidationError
	require.True(t, errors.As(Validate(Plan, []byte(doc)), &ve))
}

func TestValidate_InvalidJSON(t *testing.T) {
	err := Validate(Analysis, []byte("{not json"))
	assert.Error(t, err)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte("{}"))
	assert.Error(t, err)
}
