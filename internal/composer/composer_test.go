package composer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-ai/forge/internal/types"
)

// fakeSource returns a fresh plan per call so recomposition discards local
// task completions.
type fakeSource struct {
	err   error
	calls int
}

func (f *fakeSource) Compose(ctx context.Context, liveData []types.LiveData, priority types.Priority) (*types.ActionPlan, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cmd := "echo hi"
	return &types.ActionPlan{
		Mode:     types.ModeCompose,
		CapID:    "7a1f0c9e-1b2c-4d5e-8f90-aabbccddeeff",
		Priority: priority,
		Tasks: []types.ActionTask{
			{ID: 1, Title: "Ship landing page", Owner: types.OwnerAI, Executable: true, Command: &cmd, Status: types.StatusPending, DueInHours: 24},
			{ID: 2, Title: "Call first customer", Owner: types.OwnerFounder, Status: types.StatusPending, DueInHours: 48},
		},
		ExecutionLog:           []string{"EXECUTION: AI drafted the landing page copy."},
		NextHeartbeatInSeconds: types.HeartbeatSeconds(priority),
	}, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNew_StartsEmpty(t *testing.T) {
	c := New(&fakeSource{})
	assert.Equal(t, StateEmpty, c.State())
	assert.Nil(t, c.Plan())
	assert.Equal(t, 0, c.Heartbeat())
}

func TestCompose_Ready(t *testing.T) {
	c := New(&fakeSource{})

	plan, err := c.Compose(context.Background(), nil, types.PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, plan, c.Plan())
	assert.Equal(t, 900, c.Heartbeat())
}

func TestCompose_FailureLeavesEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	c := New(src)

	_, err := c.Compose(context.Background(), nil, types.PriorityHigh)
	require.Error(t, err)

	assert.Equal(t, StateEmpty, c.State())
	assert.Nil(t, c.Plan())
	assert.Equal(t, 0, c.Heartbeat())
}

func TestCompose_DiscardsPriorCompletions(t *testing.T) {
	src := &fakeSource{}
	c := New(src)

	_, err := c.Compose(context.Background(), nil, types.PriorityHigh)
	require.NoError(t, err)
	require.True(t, c.MarkComplete(1))

	_, err = c.Compose(context.Background(), nil, types.PriorityUrgent)
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, types.StatusPending, c.Plan().Task(1).Status)
	assert.Equal(t, 300, c.Heartbeat())
}

func TestMarkComplete_AppendsOneLogLine(t *testing.T) {
	at := time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC)
	c := New(&fakeSource{}, WithClock(fixedClock(at)))

	_, err := c.Compose(context.Background(), nil, types.PriorityHigh)
	require.NoError(t, err)
	before := len(c.Plan().ExecutionLog)

	require.True(t, c.MarkComplete(1))

	plan := c.Plan()
	assert.Equal(t, types.StatusDone, plan.Task(1).Status)
	require.Len(t, plan.ExecutionLog, before+1)
	assert.Equal(t, "[14:30:05] Task #1 completed: Ship landing page", plan.ExecutionLog[before])
}

func TestMarkComplete_Idempotent(t *testing.T) {
	c := New(&fakeSource{})

	_, err := c.Compose(context.Background(), nil, types.PriorityHigh)
	require.NoError(t, err)

	require.True(t, c.MarkComplete(1))
	logLen := len(c.Plan().ExecutionLog)

	// second completion is a no-op: one log line, not two
	assert.False(t, c.MarkComplete(1))
	assert.Len(t, c.Plan().ExecutionLog, logLen)
}

func TestMarkComplete_MissingTaskOrPlan(t *testing.T) {
	c := New(&fakeSource{})
	assert.False(t, c.MarkComplete(1))

	_, err := c.Compose(context.Background(), nil, types.PriorityHigh)
	require.NoError(t, err)
	assert.False(t, c.MarkComplete(99))
}

func TestTick_CountsDownToZeroAndFloors(t *testing.T) {
	c := New(&fakeSource{})

	_, err := c.Compose(context.Background(), nil, types.PriorityUrgent)
	require.NoError(t, err)
	require.Equal(t, 300, c.Heartbeat())

	for i := 0; i < 300; i++ {
		c.Tick()
	}
	assert.Equal(t, 0, c.Heartbeat())

	// extra ticks never go negative
	assert.Equal(t, 0, c.Tick())
	assert.Equal(t, 0, c.Heartbeat())
}

func TestCompose_RestartsCountdown(t *testing.T) {
	c := New(&fakeSource{})

	_, err := c.Compose(context.Background(), nil, types.PriorityMedium)
	require.NoError(t, err)
	c.Tick()
	c.Tick()
	require.Equal(t, 1798, c.Heartbeat())

	_, err = c.Compose(context.Background(), nil, types.PriorityMedium)
	require.NoError(t, err)
	assert.Equal(t, 1800, c.Heartbeat())
}
