// Package workflow drives one scan attempt from text entry to result.
package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/logger"
)

var (
	// ErrNotReady is returned by Scan when there is nothing to submit
	ErrNotReady = errors.New("workflow: no message ready to submit")

	// ErrStale is returned by Scan when the controller was reset or disposed
	// while the request was outstanding
	ErrStale = errors.New("workflow: outcome discarded")
)

// Analyzer is the single external dependency of the controller
type Analyzer interface {
	Analyze(ctx context.Context, message string) (*analysis.Result, error)
}

// Snapshot is a consistent copy of the controller state
type Snapshot struct {
	State   State
	Message string
	Result  *analysis.Result

	// Notice is the short user-facing text of the last failure
	Notice string

	// Err is the last failure, for diagnostics only
	Err error
}

// Controller owns the scan lifecycle. All methods are safe for concurrent use;
// only the analysis call itself runs outside the lock.
type Controller struct {
	analyzer Analyzer
	log      *logger.Logger

	mu         sync.Mutex
	state      State
	message    string
	result     *analysis.Result
	notice     string
	failure    error
	generation uint64
	disposed   bool
}

// Option customizes a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a controller in the Idle state
func New(analyzer Analyzer, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Job is one submitted analysis. Run it off the UI loop and hand the outcome
// back to Resolve.
type Job struct {
	generation uint64
	message    string
	analyzer   Analyzer
}

// Outcome is the result of running a Job
type Outcome struct {
	generation uint64
	Result     *analysis.Result
	Err        error
}

// Message returns the text that was submitted
func (j *Job) Message() string {
	return j.message
}

// Run performs the analysis request
func (j *Job) Run(ctx context.Context) Outcome {
	result, err := j.analyzer.Analyze(ctx, j.message)
	if err == nil && result == nil {
		err = analysis.NewMalformedResponseError("", "", "analysis returned no result", nil)
	}
	return Outcome{generation: j.generation, Result: result, Err: err}
}

// OnTextChange replaces the message. It is ignored while processing or
// showing a result.
func (c *Controller) OnTextChange(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || !c.state.AcceptsInput() {
		return
	}

	c.message = text
	c.notice = ""
	c.failure = nil

	blank := strings.TrimSpace(text) == ""
	switch {
	case c.state == StateIdle && !blank:
		c.transition(StateTextEntered)
	case c.state == StateTextEntered && blank:
		c.transition(StateIdle)
	}
}

// Submit moves TextEntered to Processing and returns the job to run. It
// returns false, without side effects, in any other situation.
func (c *Controller) Submit() (*Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.state != StateTextEntered || strings.TrimSpace(c.message) == "" {
		return nil, false
	}

	c.generation++
	c.notice = ""
	c.failure = nil
	c.transition(StateProcessing)

	return &Job{
		generation: c.generation,
		message:    c.message,
		analyzer:   c.analyzer,
	}, true
}

// Resolve applies an outcome. Outcomes of a reset or disposed workflow are
// dropped and Resolve returns false.
func (c *Controller) Resolve(out Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.state != StateProcessing || out.generation != c.generation {
		c.log.DebugWithFields("ignoring stale outcome", []logger.Field{
			logger.F("generation", out.generation),
			logger.F("current", c.generation),
			logger.F("state", c.state),
		})
		return false
	}

	if out.Err != nil {
		c.failure = out.Err
		c.notice = analysis.UserMessage(out.Err)
		c.log.ErrorWithFields("scan failed", []logger.Field{
			logger.F("type", analysis.TypeOf(out.Err)),
			logger.Error(out.Err),
		})
		c.transition(StateTextEntered)
		return true
	}

	c.result = out.Result
	c.transition(StateResult)
	return true
}

// Reset clears the message and result and returns to Idle. Any outstanding
// outcome becomes stale.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.message = ""
	c.result = nil
	c.notice = ""
	c.failure = nil
	if c.state != StateIdle {
		c.transition(StateIdle)
	}
}

// Dispose tears the controller down; later outcomes and input are ignored
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.disposed = true
}

// Scan submits the current message, waits for the analysis and applies it
func (c *Controller) Scan(ctx context.Context) (*analysis.Result, error) {
	job, ok := c.Submit()
	if !ok {
		return nil, ErrNotReady
	}

	out := job.Run(ctx)
	if !c.Resolve(out) {
		return nil, ErrStale
	}
	return out.Result, out.Err
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:   c.state,
		Message: c.message,
		Result:  c.result,
		Notice:  c.notice,
		Err:     c.failure,
	}
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// transition must be called with mu held
func (c *Controller) transition(to State) {
	c.log.DebugWithFields("state change", []logger.Field{
		logger.F("from", c.state),
		logger.F("to", to),
	})
	c.state = to
}
