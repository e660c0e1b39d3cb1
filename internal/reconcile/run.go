package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level grades a run event.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event is one structured observation emitted while processing a record.
type Event struct {
	Stage   string `json:"stage"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Run is the per-record processing context. Each record gets its own Run, so
// pipeline stages never share mutable logging state; callers read the event
// stream after processing.
type Run struct {
	ID        uuid.UUID `json:"run_id"`
	StartedAt time.Time `json:"started_at"`

	events []Event
}

// NewRun creates a Run with a fresh identifier.
func NewRun() *Run {
	return &Run{ID: uuid.New(), StartedAt: time.Now().UTC()}
}

// Eventf records a formatted event against a pipeline stage.
func (r *Run) Eventf(stage string, level Level, format string, args ...any) {
	r.events = append(r.events, Event{
		Stage:   stage,
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof records an info-level event.
func (r *Run) Infof(stage, format string, args ...any) {
	r.Eventf(stage, LevelInfo, format, args...)
}

// Warnf records a warn-level event.
func (r *Run) Warnf(stage, format string, args ...any) {
	r.Eventf(stage, LevelWarn, format, args...)
}

// Errorf records an error-level event.
func (r *Run) Errorf(stage, format string, args ...any) {
	r.Eventf(stage, LevelError, format, args...)
}

// Events returns the recorded events in emission order.
func (r *Run) Events() []Event {
	return r.events
}
