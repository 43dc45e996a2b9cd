package commands

import (
	"context"
	"fmt"

	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/spf13/pflag"
)

// DefaultJournalLimit is how many records the journal command shows without --limit.
const DefaultJournalLimit = 10

// Journal returns the descriptor of a command listing the most recent processed
// lines recorded in j, oldest first.
func Journal(j ports.Journal) domain.CommandDescriptor {
	return domain.CommandDescriptor{
		ID:          "journal",
		Description: "Shows the most recently processed lines",
		Factory: command.NewFunc(
			func(fs *pflag.FlagSet) {
				fs.IntP("limit", "n", DefaultJournalLimit, "number of records, 0 for all")
			},
			func(ctx context.Context, ec *domain.ExecutionContext, fs *pflag.FlagSet) error {
				limit, err := fs.GetInt("limit")
				if err != nil {
					return err
				}
				recent, err := j.Recent(ctx, limit)
				if err != nil {
					return fmt.Errorf("failed to read journal: %w", err)
				}
				for i := len(recent) - 1; i >= 0; i-- {
					ev := recent[i]
					ec.Write(fmt.Sprintf("%s  %s", ev.Timestamp.Format("15:04:05"), ev.Line))
				}
				return nil
			},
		),
	}
}
