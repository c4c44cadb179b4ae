package engine

import (
	"fmt"
	"time"

	"tradeterm/internal/models"
)

type throttleDecision struct {
	Allowed       bool      `json:"allowed"`
	Message       string    `json:"message"`
	LastExecution time.Time `json:"last_execution_time,omitempty"`
	Elapsed       time.Duration
}

// entryAllowed is the pure cooldown rule: a zero lastExecution means no prior
// trade and entry is allowed; otherwise the elapsed time must strictly exceed
// the cooldown. Both timestamps must already be in the same location.
func entryAllowed(lastExecution, now time.Time, cooldown time.Duration) (bool, time.Duration) {
	if lastExecution.IsZero() {
		return true, 0
	}
	elapsed := now.Sub(lastExecution)
	return elapsed > cooldown, elapsed
}

// isEntryAllowed applies the entry-frequency throttle to the symbol's executed
// trades. All comparisons happen in the terminal's canonical timezone so the
// venue clock and the server clock cannot drift apart.
func (e *Engine) isEntryAllowed(executions []models.Execution) throttleDecision {
	cooldown := time.Duration(e.cfg.Trading.MaxEntryFrequencyMinutes) * time.Minute

	last := latestExecutionTime(executions)
	if last.IsZero() {
		return throttleDecision{
			Allowed: true,
			Message: "No executions found. Entry allowed.",
		}
	}

	last = last.In(e.loc)
	now := e.now().In(e.loc)

	allowed, elapsed := entryAllowed(last, now, cooldown)
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60

	msg := fmt.Sprintf("Last execution was %dm %ds ago (limit: %d minutes)",
		minutes, seconds, e.cfg.Trading.MaxEntryFrequencyMinutes)
	if allowed {
		msg = "Entry allowed: " + msg
	}

	return throttleDecision{
		Allowed:       allowed,
		Message:       msg,
		LastExecution: last,
		Elapsed:       elapsed,
	}
}

func latestExecutionTime(executions []models.Execution) time.Time {
	var latest time.Time
	for _, exec := range executions {
		if exec.Time.After(latest) {
			latest = exec.Time
		}
	}
	return latest
}
