// Package orchestrator coordinates the four screens of the co-pilot: which
// one is active, what each screen's request is doing, and the single current
// result per screen. It is the only writer of screen state; callers trigger
// transitions through its operations and read snapshots back.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/forge-ai/forge/internal/types"
)

// Screen identifies one of the co-pilot views.
type Screen string

// Screens.
const (
	ScreenAnalyze  Screen = "analyze"
	ScreenDiscover Screen = "discover"
	ScreenCompose  Screen = "compose"
	ScreenChat     Screen = "chat"
)

// State is the request lifecycle of a single screen. Every screen starts
// idle; transitions are the only mutation path.
type State string

// Screen states.
const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Sentinel errors.
var (
	// ErrRequestInFlight is returned when a screen already has an
	// outstanding request.
	ErrRequestInFlight = errors.New("a request is already in flight for this screen")
	// ErrAnalysisRequired gates composition until an analysis exists.
	ErrAnalysisRequired = errors.New("compose requires a completed analysis")
	// ErrNoDiscovery is returned by SelectProblem without a discovery result.
	ErrNoDiscovery = errors.New("no discovery result to select from")
)

// Generator is the slice of the gateway the orchestrator drives. Satisfied
// by *gateway.Gateway.
type Generator interface {
	Analyze(ctx context.Context, problem string, profile types.FounderProfile) (*types.AnalysisResult, error)
	Discover(ctx context.Context, sector string, profile types.FounderProfile) (*types.DiscoveryResult, error)
	Compose(ctx context.Context, analysis *types.AnalysisResult, opportunities *types.DiscoveryResult, liveData []types.LiveData, profile types.FounderProfile, priority types.Priority) (*types.ActionPlan, error)
	Chat(ctx context.Context, message string, history []types.Message) (string, error)
}

// Orchestrator holds the active screen, per-screen request state, and the
// single current result of each generation kind. Safe for concurrent use.
type Orchestrator struct {
	gen     Generator
	profile *types.FounderProfile

	mu     sync.Mutex
	flight singleflight.Group

	active Screen
	states map[Screen]State
	errs   map[Screen]error

	analysis    *types.AnalysisResult
	analysisSig string
	discovery   *types.DiscoveryResult
	plan        *types.ActionPlan

	problemInput string
	analyzed     map[string]bool
}

// New creates an orchestrator starting on the analyze screen with every
// screen idle. The profile pointer is shared with the profile form; its
// current value is snapshotted into each request.
func New(gen Generator, profile *types.FounderProfile) *Orchestrator {
	return &Orchestrator{
		gen:     gen,
		profile: profile,
		active:  ScreenAnalyze,
		states: map[Screen]State{
			ScreenAnalyze:  StateIdle,
			ScreenDiscover: StateIdle,
			ScreenCompose:  StateIdle,
			ScreenChat:     StateIdle,
		},
		errs:     make(map[Screen]error),
		analyzed: make(map[string]bool),
	}
}

// ActiveScreen returns the currently selected screen.
func (o *Orchestrator) ActiveScreen() Screen {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// SetScreen switches the active view. Held results are untouched.
func (o *Orchestrator) SetScreen(s Screen) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = s
}

// State returns the request state of a screen.
func (o *Orchestrator) State(s Screen) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.states[s]
}

// Err returns the error recorded by a screen's last failed request, or nil.
func (o *Orchestrator) Err(s Screen) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errs[s]
}

// Analysis returns the held analysis result, or nil.
func (o *Orchestrator) Analysis() *types.AnalysisResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.analysis
}

// Discovery returns the held discovery result, or nil.
func (o *Orchestrator) Discovery() *types.DiscoveryResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.discovery
}

// Plan returns the held action plan, or nil.
func (o *Orchestrator) Plan() *types.ActionPlan {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.plan
}

// ProblemInput returns the analyze screen's seeded input.
func (o *Orchestrator) ProblemInput() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.problemInput
}

// CanCompose reports whether composition is unlocked.
func (o *Orchestrator) CanCompose() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.analysis != nil
}

// begin moves a screen to pending, clearing its recorded error. Returns
// ErrRequestInFlight when the screen is already pending.
func (o *Orchestrator) begin(s Screen) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.states[s] == StatePending {
		return ErrRequestInFlight
	}
	o.states[s] = StatePending
	delete(o.errs, s)
	return nil
}

// finish records the outcome of a screen's request.
func (o *Orchestrator) finish(s Screen, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.states[s] = StateFailed
		o.errs[s] = err
		return
	}
	o.states[s] = StateSucceeded
}

func (o *Orchestrator) snapshotProfile() types.FounderProfile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.profile.Snapshot()
}

// analyzeSignature identifies one (problem, profile) request so repeated
// problem selections do not re-trigger identical analyses.
func analyzeSignature(problem string, profile types.FounderProfile) string {
	return fmt.Sprintf("%s|%d|%d|%d|%v|%s|%s",
		problem, profile.ExperienceYears, profile.TeamSize, profile.RunwayMonths,
		profile.TechStack, profile.Location, profile.FundingStage)
}

// Analyze runs a problem analysis for the analyze screen. The previously
// held result is cleared when the request is issued; a failure therefore
// leaves the screen empty, not stale.
func (o *Orchestrator) Analyze(ctx context.Context, problem string) (*types.AnalysisResult, error) {
	if err := o.begin(ScreenAnalyze); err != nil {
		return nil, err
	}
	profile := o.snapshotProfile()

	o.mu.Lock()
	o.analysis = nil
	o.analysisSig = ""
	o.problemInput = problem
	o.mu.Unlock()

	result, err, _ := o.flight.Do(string(ScreenAnalyze), func() (any, error) {
		return o.gen.Analyze(ctx, problem, profile)
	})
	o.finish(ScreenAnalyze, err)
	if err != nil {
		return nil, err
	}

	analysis := result.(*types.AnalysisResult)
	o.mu.Lock()
	o.analysis = analysis
	o.analysisSig = analyzeSignature(problem, profile)
	o.analyzed[o.analysisSig] = true
	o.mu.Unlock()
	return analysis, nil
}

// Discover runs a sector scan for the discover screen. Clears the held
// discovery result at issue time.
func (o *Orchestrator) Discover(ctx context.Context, sector string) (*types.DiscoveryResult, error) {
	if err := o.begin(ScreenDiscover); err != nil {
		return nil, err
	}
	profile := o.snapshotProfile()

	o.mu.Lock()
	o.discovery = nil
	o.mu.Unlock()

	result, err, _ := o.flight.Do(string(ScreenDiscover), func() (any, error) {
		return o.gen.Discover(ctx, sector, profile)
	})
	o.finish(ScreenDiscover, err)
	if err != nil {
		return nil, err
	}

	discovery := result.(*types.DiscoveryResult)
	o.mu.Lock()
	o.discovery = discovery
	o.mu.Unlock()
	return discovery, nil
}

// SelectProblem picks a discovered problem by zero-based index: it switches
// to the analyze screen, seeds the input, and triggers at most one analysis
// per unique (problem, profile) pair. A repeat selection with an unchanged
// profile returns the held analysis without another upstream call, unless
// the held analysis has since been replaced by one for a different problem.
func (o *Orchestrator) SelectProblem(ctx context.Context, index int) (*types.AnalysisResult, error) {
	o.mu.Lock()
	if o.discovery == nil {
		o.mu.Unlock()
		return nil, ErrNoDiscovery
	}
	if index < 0 || index >= len(o.discovery.Problems) {
		o.mu.Unlock()
		return nil, fmt.Errorf("problem index %d out of range", index)
	}
	problem := o.discovery.Problems[index].ProblemStatement
	o.active = ScreenAnalyze
	o.problemInput = problem
	// The shortcut needs the held analysis to actually be this selection's:
	// an intervening Analyze for another problem replaces it even though the
	// signature is still recorded as seen.
	signature := analyzeSignature(problem, o.profile.Snapshot())
	if o.analyzed[signature] && o.analysis != nil && o.analysisSig == signature {
		analysis := o.analysis
		o.mu.Unlock()
		return analysis, nil
	}
	o.mu.Unlock()

	return o.Analyze(ctx, problem)
}

// Compose fuses the held analysis and discovery with the given live data
// stream. Gated on an analysis being present; the held plan is cleared at
// issue time.
func (o *Orchestrator) Compose(ctx context.Context, liveData []types.LiveData, priority types.Priority) (*types.ActionPlan, error) {
	o.mu.Lock()
	analysis := o.analysis
	discovery := o.discovery
	o.mu.Unlock()
	if analysis == nil {
		return nil, ErrAnalysisRequired
	}

	if err := o.begin(ScreenCompose); err != nil {
		return nil, err
	}
	profile := o.snapshotProfile()

	o.mu.Lock()
	o.plan = nil
	o.mu.Unlock()

	result, err, _ := o.flight.Do(string(ScreenCompose), func() (any, error) {
		return o.gen.Compose(ctx, analysis, discovery, liveData, profile, priority)
	})
	o.finish(ScreenCompose, err)
	if err != nil {
		return nil, err
	}

	plan := result.(*types.ActionPlan)
	o.mu.Lock()
	o.plan = plan
	o.mu.Unlock()
	return plan, nil
}

// Chat sends one chat turn. Chat holds no result; the conversation store
// owns the transcript.
func (o *Orchestrator) Chat(ctx context.Context, message string, history []types.Message) (string, error) {
	if err := o.begin(ScreenChat); err != nil {
		return "", err
	}

	result, err, _ := o.flight.Do(string(ScreenChat), func() (any, error) {
		return o.gen.Chat(ctx, message, history)
	})
	o.finish(ScreenChat, err)
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
