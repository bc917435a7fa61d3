package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func testPlan() *ActionPlan {
	return &ActionPlan{
		Mode:     ModeCompose,
		CapID:    "7a1f0c9e-0000-0000-0000-000000000000",
		Priority: PriorityHigh,
		Tasks: []ActionTask{
			{ID: 1, Title: "Fix offline crash", Owner: OwnerAI, Executable: true, Command: strPtr("github create issue --title 'Fix offline crash'"), Status: StatusPending, DueInHours: 24},
			{ID: 2, Title: "Call pilot customers", Owner: OwnerFounder, Status: StatusInProgress, DueInHours: 48},
		},
		ExecutionLog:           []string{"EXECUTION: AI created GitHub issue #123 for 'Fix offline crash'."},
		NextHeartbeatInSeconds: 900,
	}
}

func TestActionPlan_MarkTaskDone(t *testing.T) {
	plan := testPlan()
	now := time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC)

	assert.True(t, plan.MarkTaskDone(1, now))
	assert.Equal(t, StatusDone, plan.Task(1).Status)
	assert.Len(t, plan.ExecutionLog, 2)
	assert.Equal(t, "[09:30:15] Task #1 completed: Fix offline crash", plan.ExecutionLog[1])
}

func TestActionPlan_MarkTaskDone_Idempotent(t *testing.T) {
	plan := testPlan()
	now := time.Now()

	assert.True(t, plan.MarkTaskDone(2, now))
	before := len(plan.ExecutionLog)

	assert.False(t, plan.MarkTaskDone(2, now), "second call is a no-op")
	assert.Len(t, plan.ExecutionLog, before, "log grows by exactly one, not two")
}

func TestActionPlan_MarkTaskDone_MissingTask(t *testing.T) {
	plan := testPlan()
	assert.False(t, plan.MarkTaskDone(99, time.Now()))
	assert.Len(t, plan.ExecutionLog, 1)
}

func TestHeartbeatSeconds(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityUrgent, 300},
		{PriorityHigh, 900},
		{PriorityMedium, 1800},
		{PriorityLow, 3600},
		{Priority("unknown"), 3600},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeartbeatSeconds(tt.priority), string(tt.priority))
	}
}
