package scenario

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/louisbranch/herosheet/internal/platform/otel"
	"github.com/louisbranch/herosheet/internal/random"
	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Config configures a scenario run.
type Config struct {
	// Timeout bounds each step. Zero disables the per-step deadline.
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
	// Seed drives dice not scripted by the scenario. Zero draws a fresh seed.
	Seed int64
}

// DefaultConfig returns the default scenario configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		Assertions: AssertionStrict,
	}
}

// Runner executes scenarios against a fresh session per run.
type Runner struct {
	assertions Assertions
	timeout    time.Duration
	verbose    bool
	logger     *log.Logger
	seed       int64
}

// NewRunner builds a runner from cfg.
func NewRunner(cfg Config) (*Runner, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	seed := cfg.Seed
	if seed == 0 {
		var err error
		seed, err = random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("dice seed: %w", err)
		}
	}
	return &Runner{
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		timeout:    cfg.Timeout,
		verbose:    cfg.Verbose,
		logger:     logger,
		seed:       seed,
	}, nil
}

// Seed returns the seed used for unscripted dice.
func (r *Runner) Seed() int64 {
	return r.seed
}

// RunFile loads and runs the scenario at path.
func RunFile(ctx context.Context, cfg Config, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes every step of scenario in order.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return fmt.Errorf("scenario is required")
	}
	ctx, span := otel.Tracer("herosheet/scenario").Start(ctx, "scenario.run")
	defer span.End()
	span.SetAttributes(attribute.String("scenario.name", scenario.Name))

	state := newScenarioState(r.seed)
	r.logf("scenario %q: %d steps, dice seed %d", scenario.Name, len(scenario.Steps), r.seed)
	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logf("step %d: %s", index+1, step.Kind)
		stepCtx, cancel := r.stepContext(ctx)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("scenario %q step %d (%s): %w", scenario.Name, index+1, step.Kind, err)
		}
	}
	r.logf("scenario %q: ok", scenario.Name)
	return nil
}

func (r *Runner) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose {
		return
	}
	r.logger.Printf(format, args...)
}

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// scenarioState is the session a scenario mutates plus the outcome of its
// latest step.
type scenarioState struct {
	session *session.Session
	dice    *scriptedSource
	changed bool
	removed int
	roll    *domain.DiceRoll
	ids     int
}

func newScenarioState(seed int64) *scenarioState {
	src := &scriptedSource{fallback: random.NewSource(seed)}
	state := &scenarioState{dice: src}
	state.session = session.New(session.Config{
		Source: src,
		NewID:  state.nextID,
	})
	return state
}

func (s *scenarioState) nextID() (string, error) {
	s.ids++
	return fmt.Sprintf("scenario-%d", s.ids), nil
}

// scriptedSource yields queued faces first and falls back to a seeded
// source once the queue is empty.
type scriptedSource struct {
	queue    []int
	fallback *random.Source
}

func (s *scriptedSource) push(faces ...int) {
	s.queue = append(s.queue, faces...)
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.queue) == 0 {
		return s.fallback.IntN(n)
	}
	face := s.queue[0]
	s.queue = s.queue[1:]
	return min(max(face-1, 0), n-1)
}
