// Package composer manages the lifecycle of a composed action plan: loading
// it, marking its tasks complete, and counting down the advisory heartbeat.
// The countdown is display-only; reaching zero triggers nothing.
package composer

import (
	"context"
	"sync"
	"time"

	"github.com/forge-ai/forge/internal/types"
)

// State is the composer lifecycle.
type State string

// Composer states. Empty means no plan has ever loaded or the last attempt
// failed; loading means a request is out; ready means a plan is held.
const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Source produces action plans. Satisfied by *orchestrator.Orchestrator.
type Source interface {
	Compose(ctx context.Context, liveData []types.LiveData, priority types.Priority) (*types.ActionPlan, error)
}

// Composer holds at most one plan and its heartbeat countdown. Safe for
// concurrent use.
type Composer struct {
	source Source
	now    func() time.Time

	mu        sync.Mutex
	state     State
	plan      *types.ActionPlan
	heartbeat int
}

// Option configures a Composer.
type Option func(*Composer)

// WithClock overrides the completion-timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// New creates an empty composer over the given plan source.
func New(source Source, opts ...Option) *Composer {
	c := &Composer{
		source: source,
		now:    time.Now,
		state:  StateEmpty,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Plan returns the held plan, or nil.
func (c *Composer) Plan() *types.ActionPlan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan
}

// Compose requests a fresh plan. The prior plan and its local completions
// are discarded when the request is issued; on failure the composer is left
// empty with the error returned to the caller.
func (c *Composer) Compose(ctx context.Context, liveData []types.LiveData, priority types.Priority) (*types.ActionPlan, error) {
	c.mu.Lock()
	c.state = StateLoading
	c.plan = nil
	c.heartbeat = 0
	c.mu.Unlock()

	plan, err := c.source.Compose(ctx, liveData, priority)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateEmpty
		return nil, err
	}
	c.state = StateReady
	c.plan = plan
	c.heartbeat = plan.NextHeartbeatInSeconds
	return plan, nil
}

// MarkComplete flips a task to done and appends one execution log line.
// A done or missing task, or no plan at all, changes nothing and returns
// false.
func (c *Composer) MarkComplete(taskID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.plan == nil {
		return false
	}
	return c.plan.MarkTaskDone(taskID, c.now())
}

// Heartbeat returns the seconds remaining on the countdown.
func (c *Composer) Heartbeat() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heartbeat
}

// Tick advances the countdown by one second and returns the remainder.
// The countdown floors at zero.
func (c *Composer) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.heartbeat > 0 {
		c.heartbeat--
	}
	return c.heartbeat
}
