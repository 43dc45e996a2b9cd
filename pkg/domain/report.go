package domain

import "time"

// StepStatus is the outcome of a single step of a dispatch.
type StepStatus string

const (
	// StepCompleted means the command ran and returned without error.
	StepCompleted StepStatus = "completed"
	// StepNotFound means the id did not resolve to a command.
	StepNotFound StepStatus = "not_found"
	// StepParseError means the arguments were rejected by the command's options.
	StepParseError StepStatus = "parse_error"
	// StepFailed means the command returned an error or panicked. The failure was logged and swallowed.
	StepFailed StepStatus = "failed"
	// StepSkipped means the dispatch was cancelled before the step started.
	StepSkipped StepStatus = "skipped"
)

// StepResult records one step of a dispatch.
type StepResult struct {
	CommandID string        `json:"command_id"`
	Args      []string      `json:"args,omitempty"`
	Status    StepStatus    `json:"status"`
	Err       error         `json:"-"`
	Duration  time.Duration `json:"duration"`
}

// DispatchReport summarizes a processed line.
type DispatchReport struct {
	ID      string       `json:"id"`
	Line    string       `json:"line"`
	Flow    string       `json:"flow,omitempty"`
	Steps   []StepResult `json:"steps"`
	Aborted bool         `json:"aborted,omitempty"` // line rejected before any step ran
	Err     error        `json:"-"`
}

// Completed reports whether every step ran to completion without error.
func (r *DispatchReport) Completed() bool {
	if r.Aborted {
		return false
	}
	for _, s := range r.Steps {
		if s.Status != StepCompleted {
			return false
		}
	}
	return true
}
