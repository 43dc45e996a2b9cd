package commands

import (
	"context"

	"github.com/aretw0/clic/pkg/adapters/process"
	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/domain"
)

type execCommand struct {
	command.Base
	runner *process.Runner
	name   string
	quiet  bool
}

func execFactory(runner *process.Runner, name string) domain.Factory {
	return func() domain.Command {
		return &execCommand{runner: runner, name: name}
	}
}

func (e *execCommand) ConfigureOptions() {
	e.Flags().BoolVarP(&e.quiet, "quiet", "q", false, "only pass output to the next flow step")
}

// Execute runs the program with the positional arguments appended to its configured ones.
func (e *execCommand) Execute(ctx context.Context, ec *domain.ExecutionContext) error {
	return e.runner.Run(ctx, e.name, e.Args(), func(line string) {
		if !e.quiet {
			ec.Write(line)
		}
		ec.AppendOutput(line)
	})
}
