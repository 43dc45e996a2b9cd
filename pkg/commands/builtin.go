package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
)

// Catalog is the registry view builtins need to describe other commands.
type Catalog interface {
	ports.Catalog
	Describe(id string) (string, bool)
	Details(id string) (string, bool)
}

// Builtins returns the descriptors of the builtin commands that need no configuration.
func Builtins(catalog Catalog) []domain.CommandDescriptor {
	return []domain.CommandDescriptor{
		{ID: "help", Description: "Describes a command and its options", Factory: helpFactory(catalog)},
		{ID: "list", Description: "Lists the available commands", Factory: listFactory(catalog)},
		{ID: "flows", Description: "Lists the available flows", Factory: flowsFactory(catalog)},
		{ID: "hello", Description: "Greets someone", Factory: helloFactory(helloConfig{Greeting: "Hello"})},
		{ID: "echo", Description: "Writes its arguments and passes them to the next flow step", Factory: echoFactory(echoConfig{})},
	}
}

type helpCommand struct {
	command.Base
	catalog Catalog
	target  string
}

func helpFactory(catalog Catalog) domain.Factory {
	return func() domain.Command {
		return &helpCommand{catalog: catalog}
	}
}

func (h *helpCommand) ConfigureOptions() {
	h.Flags().StringVarP(&h.target, "command", "c", "", "command to describe")
}

func (h *helpCommand) Execute(ctx context.Context, ec *domain.ExecutionContext) error {
	id := h.target
	if id == "" && len(h.Args()) > 0 {
		id = h.Args()[0]
	}
	if id == "" {
		id = "help"
	}

	desc, ok := h.catalog.Describe(id)
	if !ok {
		ec.Write(domain.MsgCommandNotFound(id, ""))
		return nil
	}
	ec.Write(fmt.Sprintf("%s: %s", id, desc))

	if details, _ := h.catalog.Details(id); details != "" {
		for _, line := range strings.Split(strings.TrimSpace(details), "\n") {
			ec.Write(line)
		}
	}
	if cmd, ok := h.catalog.CreateCommand(id); ok {
		cmd.WriteHelp(ec.Sink())
	}
	return nil
}

type listCommand struct {
	command.Base
	catalog Catalog
	all     bool
}

func listFactory(catalog Catalog) domain.Factory {
	return func() domain.Command {
		return &listCommand{catalog: catalog}
	}
}

func (l *listCommand) ConfigureOptions() {
	l.Flags().BoolVarP(&l.all, "all", "a", false, "include flows")
}

func (l *listCommand) Execute(ctx context.Context, ec *domain.ExecutionContext) error {
	for _, id := range l.catalog.ListCommandIDs() {
		desc, _ := l.catalog.Describe(id)
		ec.Write(fmt.Sprintf("%s - %s", id, desc))
	}
	if l.all {
		for _, name := range sortedFlowNames(l.catalog) {
			ec.Write(fmt.Sprintf("%s - [ COMMAND FLOW ]", name))
		}
	}
	return nil
}

type flowsCommand struct {
	command.Base
	catalog Catalog
}

func flowsFactory(catalog Catalog) domain.Factory {
	return func() domain.Command {
		return &flowsCommand{catalog: catalog}
	}
}

func (f *flowsCommand) Execute(ctx context.Context, ec *domain.ExecutionContext) error {
	flows := f.catalog.ListFlows()
	for _, name := range sortedFlowNames(f.catalog) {
		ec.Write(flows[name].String())
	}
	return nil
}

func sortedFlowNames(catalog Catalog) []string {
	flows := catalog.ListFlows()
	names := make([]string, 0, len(flows))
	for name := range flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type helloConfig struct {
	Greeting string `mapstructure:"greeting"`
	Name     string `mapstructure:"name"`
}

type helloCommand struct {
	command.Base
	cfg  helloConfig
	name string
}

func helloFactory(cfg helloConfig) domain.Factory {
	if cfg.Greeting == "" {
		cfg.Greeting = "Hello"
	}
	return func() domain.Command {
		return &helloCommand{cfg: cfg}
	}
}

func (h *helloCommand) ConfigureOptions() {
	def := h.cfg.Name
	if def == "" {
		def = "world"
	}
	h.Flags().StringVarP(&h.name, "name", "n", def, "who to greet")
}

func (h *helloCommand) Execute(ctx context.Context, ec *domain.ExecutionContext) error {
	greeting := fmt.Sprintf("%s %s", h.cfg.Greeting, h.name)
	ec.Write(greeting)
	ec.AppendOutput(greeting)
	return nil
}

type echoConfig struct {
	Prefix string `mapstructure:"prefix"`
}

type echoCommand struct {
	command.Base
	cfg echoConfig
}

func echoFactory(cfg echoConfig) domain.Factory {
	return func() domain.Command {
		return &echoCommand{cfg: cfg}
	}
}

func (e *echoCommand) Execute(ctx context.Context, ec *domain.ExecutionContext) error {
	args := e.Args()
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = e.cfg.Prefix + a
	}
	ec.Write(strings.Join(out, " "))
	ec.AppendOutput(out...)
	return nil
}
