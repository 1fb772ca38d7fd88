// Package migrate provides the migrate command.
package migrate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/marksync/cmd/application"
)

// NewCommand creates the migrate command using the application context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "migrate",
		GroupID: "core",
		Short:   "Copy Pinboard bookmarks into Raindrop.io",
		Args:    cobra.NoArgs,
		Long: `Migrate reads every Pinboard bookmark, picks a Raindrop collection for it
from the tag rules in --collection-map, and creates it in Raindrop.

Bookmarks whose URL already exists in Raindrop are skipped, or merged with
--merge-tags (tags are added, the note is replaced, nothing is removed).
Running the same migration twice creates nothing new.

Per-bookmark failures never stop the run. They are listed at the end and
the command exits non-zero. An interrupted run prints the --offset to
resume from.`,
		Example: `  marksync migrate --pinboard-json pinboard.json --collection-map rules.yaml
  marksync migrate --fetch-pinboard --dry-run
  marksync migrate --pinboard-json pinboard.json --merge-tags --report run.jsonl
  marksync migrate --pinboard-json pinboard.json --offset 1200`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := flags.resolve(cmd); err != nil {
				return err
			}
			return Run(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}

	flags = addFlags(cmd)

	return cmd
}
