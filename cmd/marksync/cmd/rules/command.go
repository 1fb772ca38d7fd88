// Package rules provides the rules command for checking rule files.
package rules

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/marksync/cmd/application"
	"github.com/agentstation/marksync/internal/cmd/output"
	"github.com/agentstation/marksync/internal/cmd/table"
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/rules"
)

// NewCommand creates the rules command and its subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		GroupID: "management",
		Short:   "Check tag-to-collection rule files",
		Long: `Rules files map Pinboard tags to Raindrop collection ids. They are
JSON, YAML or TOML, chosen by file extension, and evaluated in file order:
the first rule sharing a tag with a bookmark wins.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newValidateCommand(app))
	cmd.AddCommand(newShowCommand(app))

	return cmd
}

func newValidateCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a rules file loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.Load(args[0])
			if err != nil {
				return err
			}
			app.Logger().Debug().Str("file", args[0]).Int("rules", len(rs)).Msg("Rules loaded")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d collections\n", args[0], len(rs), len(rs.Collections()))
			return nil
		},
	}
}

// ruleView is the machine-readable form of a rule.
type ruleView struct {
	Priority     int                    `json:"priority" yaml:"priority"`
	Name         string                 `json:"name,omitempty" yaml:"name,omitempty"`
	CollectionID bookmarks.CollectionID `json:"collection_id" yaml:"collection_id"`
	Tags         []string               `json:"tags" yaml:"tags"`
}

func newShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a rules file in priority order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.Load(args[0])
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			formatter := output.NewFormatter(format)
			if format == output.FormatJSON || format == output.FormatYAML {
				views := make([]ruleView, 0, len(rs))
				for i, r := range rs {
					views = append(views, ruleView{Priority: i + 1, Name: r.Name, CollectionID: r.Collection, Tags: r.Tags.Strings()})
				}
				return formatter.Format(cmd.OutOrStdout(), views)
			}
			return formatter.Format(cmd.OutOrStdout(), table.Rules(rs))
		},
	}
}
