package gateway

import "github.com/google/generative-ai-go/genai"

// Response schemas handed to the generation API. These mirror the JSON
// Schema documents in internal/schemas; the genai variants constrain
// generation, the JSON Schema variants verify what actually came back.

func founderProfileSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"experience_years": {Type: genai.TypeInteger},
			"team_size":        {Type: genai.TypeInteger},
			"runway_months":    {Type: genai.TypeInteger},
			"tech_stack":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"location":         {Type: genai.TypeString},
			"funding_stage":    {Type: genai.TypeString, Enum: []string{"pre-seed", "seed", "pre-series-a", "series-a+"}},
		},
		Required: []string{"experience_years", "team_size", "runway_months", "tech_stack", "location", "funding_stage"},
	}
}

func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mode":            {Type: genai.TypeString, Enum: []string{"user_driven"}},
			"input_problem":   {Type: genai.TypeString},
			"refined_problem": {Type: genai.TypeString},
			"founder_profile": founderProfileSchema(),
			"chunks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":           {Type: genai.TypeInteger},
						"title":        {Type: genai.TypeString},
						"analysis":     {Type: genai.TypeString},
						"key_insights": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					},
					Required: []string{"id", "title", "analysis", "key_insights"},
				},
			},
			"synthesis": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"solution_guide": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"solution_guide"},
			},
		},
		Required: []string{"mode", "input_problem", "refined_problem", "founder_profile", "chunks", "synthesis"},
	}
}

func discoverySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mode":            {Type: genai.TypeString, Enum: []string{"proactive_discovery"}},
			"sector":          {Type: genai.TypeString},
			"founder_profile": founderProfileSchema(),
			"problems": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":                   {Type: genai.TypeInteger},
						"problem_statement":    {Type: genai.TypeString},
						"simulated_source":     {Type: genai.TypeString},
						"freshness_timestamp":  {Type: genai.TypeString},
						"personalization_note": {Type: genai.TypeString},
					},
					Required: []string{"id", "problem_statement", "simulated_source", "freshness_timestamp", "personalization_note"},
				},
			},
		},
		Required: []string{"mode", "sector", "founder_profile", "problems"},
	}
}

func planSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mode":            {Type: genai.TypeString, Enum: []string{"compose"}},
			"cap_id":          {Type: genai.TypeString, Description: "UUID v4"},
			"generated_at":    {Type: genai.TypeString, Description: "ISO 8601 UTC"},
			"founder_profile": founderProfileSchema(),
			"priority":        {Type: genai.TypeString, Enum: []string{"urgent", "high", "medium", "low"}},
			"fusion_summary":  {Type: genai.TypeString},
			"fused_insights": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"from_sources": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"insight":      {Type: genai.TypeString},
						"confidence":   {Type: genai.TypeNumber},
					},
					Required: []string{"from_sources", "insight", "confidence"},
				},
			},
			"action_plan": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":           {Type: genai.TypeInteger},
						"title":        {Type: genai.TypeString},
						"description":  {Type: genai.TypeString},
						"owner":        {Type: genai.TypeString, Enum: []string{"founder", "ai", "tool"}},
						"executable":   {Type: genai.TypeBoolean},
						"command":      {Type: genai.TypeString, Nullable: true},
						"status":       {Type: genai.TypeString, Enum: []string{"pending", "in_progress", "done"}},
						"due_in_hours": {Type: genai.TypeInteger},
					},
					Required: []string{"id", "title", "description", "owner", "executable", "command", "status", "due_in_hours"},
				},
			},
			"execution_log":             {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"next_heartbeat_in_seconds": {Type: genai.TypeInteger},
			"key_considerations": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"financial":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"governmental": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"financial", "governmental"},
			},
		},
		Required: []string{
			"mode", "cap_id", "generated_at", "founder_profile", "priority",
			"fusion_summary", "fused_insights", "action_plan", "execution_log",
			"next_heartbeat_in_seconds", "key_considerations",
		},
	}
}
