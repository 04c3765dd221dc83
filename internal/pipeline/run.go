package pipeline

import (
	"log/slog"
	"time"

	"github.com/cwbudde/mandelcl/internal/mandel"
	"github.com/google/uuid"
)

// Run records the progress of one render.
type Run struct {
	ID        string        `json:"id"`
	Backend   string        `json:"backend"`
	Output    string        `json:"output"`
	Stage     mandel.Stage  `json:"stage"`
	StartTime time.Time     `json:"startTime"`
	Elapsed   time.Duration `json:"elapsed"`
	Error     string        `json:"error,omitempty"`
	Reason    string        `json:"reason,omitempty"`

	history []mandel.Stage
}

// NewRun creates a run in the uninitialized stage.
func NewRun(backend, output string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Backend:   backend,
		Output:    output,
		Stage:     mandel.StageUninitialized,
		StartTime: time.Now(),
		history:   []mandel.Stage{mandel.StageUninitialized},
	}
}

// Advance moves the run to stage. Stages never move backwards; reaching a
// stage that was already passed is a no-op.
func (r *Run) Advance(stage mandel.Stage) {
	if stage <= r.Stage {
		return
	}
	r.Stage = stage
	r.history = append(r.history, stage)
	slog.Debug("Stage reached", "run_id", r.ID, "stage", stage.String())
}

// History returns the stages reached, in order.
func (r *Run) History() []mandel.Stage {
	out := make([]mandel.Stage, len(r.history))
	copy(out, r.history)
	return out
}

// Failed reports whether the run ended with an error.
func (r *Run) Failed() bool {
	return r.Error != ""
}

func (r *Run) stampElapsed() {
	r.Elapsed = time.Since(r.StartTime)
}

// fail records err, tags it with the stage the run had reached and returns
// it as a *mandel.StageError.
func (r *Run) fail(err error) error {
	r.stampElapsed()
	r.Error = err.Error()

	attrs := []any{
		"run_id", r.ID,
		"stage", r.Stage.String(),
		"error", err,
	}
	if reason := mandel.Reason(err); reason != nil {
		r.Reason = reason.Error()
		attrs = append(attrs, "reason", r.Reason)
	}
	slog.Error("Render failed", attrs...)

	return &mandel.StageError{Stage: r.Stage, Err: err}
}
