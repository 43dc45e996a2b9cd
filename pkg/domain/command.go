package domain

import (
	"context"
	"strings"
)

// Command is a single invocable unit of work.
//
// A fresh instance is created for every invocation, so implementations may keep
// parsed option values in fields.
type Command interface {
	// ConfigureOptions declares the options the command understands.
	// It is called once, right after the instance is created.
	ConfigureOptions()
	// Parse binds raw argument tokens to the declared options.
	Parse(args []string) error
	// OptionNames lists the long names of the declared options, without marker.
	OptionNames() []string
	// WriteHelp prints a usage summary of the declared options.
	WriteHelp(s Sink)
	// Execute runs the command against the execution context.
	Execute(ctx context.Context, ec *ExecutionContext) error
}

// Factory creates a new, unconfigured Command instance.
type Factory func() Command

// CommandDescriptor describes a command known to the registry.
type CommandDescriptor struct {
	ID          string
	Description string
	// Details is optional extended help, printed by the help command.
	Details string
	Factory Factory
}

// FlowDescriptor is a named, ordered list of command ids.
// Steps are not validated when the flow is loaded; each one is resolved when the flow runs.
type FlowDescriptor struct {
	Name  string
	Steps []string
}

// String renders the flow as "name: [a, b]".
func (f FlowDescriptor) String() string {
	return f.Name + ": [" + strings.Join(f.Steps, ", ") + "]"
}

// Catalog is the full set of commands and flows produced by a registry source.
type Catalog struct {
	Commands []CommandDescriptor
	Flows    []FlowDescriptor
}
