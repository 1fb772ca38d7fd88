package migrate

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/migrate"
)

// Flags holds the migrate command flags.
type Flags struct {
	// Source
	PinboardJSON  string
	FetchPinboard bool
	PinboardToken string

	// Destination
	RaindropToken         string
	CollectionID          int64
	CollectionMap         string
	ReadLaterCollectionID int64
	ReadLaterSet          bool
	ToReadTag             string

	// Behavior
	LowercaseTags bool
	SkipExisting  bool
	MergeTags     bool
	Sleep         time.Duration
	Limit         int
	Offset        int
	DryRun        bool

	// Outputs
	Report      string
	MetricsFile string
}

func addFlags(cmd *cobra.Command) *Flags {
	f := &Flags{}
	fs := cmd.Flags()

	fs.StringVar(&f.PinboardJSON, "pinboard-json", "", "path to a Pinboard JSON export")
	fs.BoolVar(&f.FetchPinboard, "fetch-pinboard", false, "fetch posts from the Pinboard API instead of a file")
	fs.StringVar(&f.PinboardToken, "pinboard-token", "", "Pinboard API token user:TOKEN (default $PINBOARD_TOKEN)")

	fs.StringVar(&f.RaindropToken, "raindrop-token", "", "Raindrop.io test token (default $RAINDROP_TOKEN)")
	fs.Int64Var(&f.CollectionID, "collection-id", int64(bookmarks.CollectionUnsorted), "collection for bookmarks no rule matches (-1 is Unsorted)")
	fs.StringVar(&f.CollectionMap, "collection-map", "", "rules file mapping tags to collection ids (.json, .yaml or .toml)")
	fs.Int64Var(&f.ReadLaterCollectionID, "readlater-collection-id", 0, "collection for Pinboard toread=yes bookmarks; overrides rules")
	fs.StringVar(&f.ToReadTag, "toread-tag", constants.DefaultReadLaterTag, "tag added to toread=yes bookmarks (empty disables)")

	fs.BoolVar(&f.LowercaseTags, "lowercase-tags", false, "lowercase all tags during import")
	fs.BoolVar(&f.SkipExisting, "skip-existing", true, "skip bookmarks that already exist in Raindrop")
	fs.Bool("no-skip-existing", false, "overwrite bookmarks that already exist in Raindrop with the Pinboard values")
	fs.BoolVar(&f.MergeTags, "merge-tags", false, "merge tags and note into existing bookmarks instead of skipping")
	fs.DurationVar(&f.Sleep, "sleep", constants.DefaultPacing, "delay between Raindrop writes")
	fs.IntVar(&f.Limit, "limit", 0, "process at most this many bookmarks (0 is all)")
	fs.IntVar(&f.Offset, "offset", 0, "skip this many source entries, to resume an interrupted run")
	fs.BoolVar(&f.DryRun, "dry-run", false, "report intended actions without writing to Raindrop")

	fs.StringVar(&f.Report, "report", "", "write one JSON line per bookmark outcome to this file")
	fs.StringVar(&f.MetricsFile, "metrics-file", "", "write run metrics in Prometheus textfile format")

	cmd.MarkFlagsMutuallyExclusive("pinboard-json", "fetch-pinboard")
	cmd.MarkFlagsMutuallyExclusive("skip-existing", "no-skip-existing")

	return f
}

// resolve folds flags that depend on whether they were set.
func (f *Flags) resolve(cmd *cobra.Command) error {
	fs := cmd.Flags()
	f.ReadLaterSet = fs.Changed("readlater-collection-id")
	if noSkip, _ := fs.GetBool("no-skip-existing"); noSkip {
		f.SkipExisting = false
	}
	if f.PinboardJSON == "" && !f.FetchPinboard {
		return errors.NewConfigError("flags", "provide --pinboard-json or use --fetch-pinboard", nil)
	}
	return nil
}

// Options converts the flags into migration options.
func (f *Flags) Options(runID string) []migrate.Option {
	opts := []migrate.Option{
		migrate.WithRunID(runID),
		migrate.WithTargetCollection(bookmarks.CollectionID(f.CollectionID)),
		migrate.WithReadLaterTag(f.ToReadTag),
		migrate.WithSkipExisting(f.SkipExisting),
		migrate.WithMergeTags(f.MergeTags),
		migrate.WithLowercaseTags(f.LowercaseTags),
		migrate.WithLimit(f.Limit),
		migrate.WithOffset(f.Offset),
		migrate.WithPacing(f.Sleep),
		migrate.WithDryRun(f.DryRun),
	}
	if f.ReadLaterSet {
		opts = append(opts, migrate.WithReadLaterCollection(bookmarks.CollectionID(f.ReadLaterCollectionID)))
	}
	return opts
}
