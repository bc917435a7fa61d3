package types

import (
	"fmt"
	"time"
)

// Priority is the stated urgency of a composed plan.
type Priority string

// Priority values.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// HeartbeatSeconds maps a priority to the advisory check-in interval.
// Unknown priorities fall back to the low tier.
func HeartbeatSeconds(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 300
	case PriorityHigh:
		return 900
	case PriorityMedium:
		return 1800
	default:
		return 3600
	}
}

// ActionStatus is the lifecycle state of a task. Done is terminal.
type ActionStatus string

// Task statuses.
const (
	StatusPending    ActionStatus = "pending"
	StatusInProgress ActionStatus = "in_progress"
	StatusDone       ActionStatus = "done"
)

// ActionOwner says who executes a task.
type ActionOwner string

// Task owners.
const (
	OwnerFounder ActionOwner = "founder"
	OwnerAI      ActionOwner = "ai"
	OwnerTool    ActionOwner = "tool"
)

// ActionTask is one owned, deadline-bound step of a composed plan.
// Command is nil unless the task is executable.
type ActionTask struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Owner       ActionOwner  `json:"owner"`
	Executable  bool         `json:"executable"`
	Command     *string      `json:"command"`
	Status      ActionStatus `json:"status"`
	DueInHours  int          `json:"due_in_hours"`
}

// FusedInsight is a synthesized observation citing the input streams it
// draws from and a confidence score in [0,1].
type FusedInsight struct {
	FromSources []string `json:"from_sources"`
	Insight     string   `json:"insight"`
	Confidence  float64  `json:"confidence"`
}

// KeyConsiderations carries financial and governmental notes extracted from
// the analysis input.
type KeyConsiderations struct {
	Financial    []string `json:"financial"`
	Governmental []string `json:"governmental"`
}

// ActionPlan is a composed, executable cross-domain plan. After creation it
// is mutated only by MarkTaskDone, which flips one task and appends one
// execution log line.
type ActionPlan struct {
	Mode                   string            `json:"mode"`
	CapID                  string            `json:"cap_id"`
	GeneratedAt            string            `json:"generated_at"`
	FounderProfile         FounderProfile    `json:"founder_profile"`
	Priority               Priority          `json:"priority"`
	FusionSummary          string            `json:"fusion_summary"`
	FusedInsights          []FusedInsight    `json:"fused_insights"`
	Tasks                  []ActionTask      `json:"action_plan"`
	ExecutionLog           []string          `json:"execution_log"`
	NextHeartbeatInSeconds int               `json:"next_heartbeat_in_seconds"`
	KeyConsiderations      KeyConsiderations `json:"key_considerations"`
}

// ModeCompose is the wire discriminator for ActionPlan.
const ModeCompose = "compose"

// Task returns the task with the given id, or nil.
func (p *ActionPlan) Task(id int) *ActionTask {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// MarkTaskDone flips the task's status to done and appends one formatted
// execution log line. Idempotent: a done or missing task changes nothing and
// returns false.
func (p *ActionPlan) MarkTaskDone(id int, now time.Time) bool {
	task := p.Task(id)
	if task == nil || task.Status == StatusDone {
		return false
	}
	task.Status = StatusDone
	p.ExecutionLog = append(p.ExecutionLog,
		fmt.Sprintf("[%s] Task #%d completed: %s", now.Format("15:04:05"), task.ID, task.Title))
	return true
}
