// Package command provides the option handling shared by command implementations.
//
// Commands embed Base, declare their options on Flags() in ConfigureOptions and
// implement Execute. Options follow the POSIX/GNU style of spf13/pflag:
// "--name value", "--name=value" and "-n value".
package command

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/spf13/pflag"
)

// Base implements the option side of domain.Command on top of a pflag.FlagSet.
type Base struct {
	flags *pflag.FlagSet
}

// Flags returns the flag set of the command, creating it on first use.
func (b *Base) Flags() *pflag.FlagSet {
	if b.flags == nil {
		b.flags = pflag.NewFlagSet("", pflag.ContinueOnError)
		b.flags.SetOutput(io.Discard)
		b.flags.SortFlags = true
	}
	return b.flags
}

// ConfigureOptions declares no options. Commands with options override it.
func (b *Base) ConfigureOptions() {}

// Parse binds args to the declared options.
func (b *Base) Parse(args []string) error {
	return b.Flags().Parse(args)
}

// Args returns the arguments left after option parsing.
func (b *Base) Args() []string {
	return b.Flags().Args()
}

// OptionNames returns the sorted long names of the declared options.
func (b *Base) OptionNames() []string {
	var names []string
	b.Flags().VisitAll(func(f *pflag.Flag) {
		names = append(names, f.Name)
	})
	sort.Strings(names)
	return names
}

// OptionShorthands returns the sorted one-letter shorthands of the declared options.
func (b *Base) OptionShorthands() []string {
	var names []string
	b.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Shorthand != "" {
			names = append(names, f.Shorthand)
		}
	})
	sort.Strings(names)
	return names
}

// WriteHelp writes one line per declared option to s.
func (b *Base) WriteHelp(s domain.Sink) {
	usage := strings.TrimRight(b.Flags().FlagUsages(), "\n")
	if usage == "" {
		return
	}
	for _, line := range strings.Split(usage, "\n") {
		s.Write(line)
	}
}

// RunFunc is the body of a Func command.
type RunFunc func(ctx context.Context, ec *domain.ExecutionContext, fs *pflag.FlagSet) error

// Func is a command assembled from functions.
type Func struct {
	Base
	configure func(fs *pflag.FlagSet)
	run       RunFunc
}

// ConfigureOptions calls the configure function, if any.
func (f *Func) ConfigureOptions() {
	fs := f.Flags()
	if f.configure != nil {
		f.configure(fs)
	}
}

// Execute calls the run function.
func (f *Func) Execute(ctx context.Context, ec *domain.ExecutionContext) error {
	if f.run == nil {
		return nil
	}
	return f.run(ctx, ec, f.Flags())
}

// NewFunc returns a factory of Func commands. configure may be nil.
func NewFunc(configure func(fs *pflag.FlagSet), run RunFunc) domain.Factory {
	return func() domain.Command {
		return &Func{configure: configure, run: run}
	}
}
