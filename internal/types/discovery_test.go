package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoveryResult_Truncate(t *testing.T) {
	result := &DiscoveryResult{Mode: ModeProactiveDiscovery, Sector: "agritech"}
	for i := 0; i < 8; i++ {
		result.Problems = append(result.Problems, Problem{
			ID:               i + 1,
			ProblemStatement: fmt.Sprintf("problem %d", i+1),
		})
	}

	result.Truncate()

	assert.Len(t, result.Problems, MaxDiscoveredProblems)
	assert.Equal(t, 1, result.Problems[0].ID, "leading entries kept in order")
	assert.Equal(t, 5, result.Problems[4].ID)
}

func TestDiscoveryResult_Truncate_UnderLimit(t *testing.T) {
	result := &DiscoveryResult{Problems: []Problem{{ID: 1}, {ID: 2}}}
	result.Truncate()
	assert.Len(t, result.Problems, 2)
}
