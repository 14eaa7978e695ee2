package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/bbext-labs/bbext/internal/branding"
	"github.com/bbext-labs/bbext/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Flags shared with subcommands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [widget]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns an installed widget into an extension library: it generates
a library skeleton, copies the widget's artifacts, composes a customizable
template and patches the generated sources to reuse the original widget.

Without a widget argument the installed widgets are listed for selection.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		return config.BindFlags(cmd.Flags())
	},
	RunE: runExtend,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyDistPath, config.DefaultDistPath, "Directory holding the installed widgets")
	pf.String(config.KeyWidgetPattern, config.DefaultWidgetPattern, "Substring identifying widget directories")
	pf.String(config.KeyGenerator, config.DefaultGenerator, "Skeleton generator (ng, builtin)")
	pf.String(config.KeyGeneratorCommand, config.DefaultGeneratorCommand, "Executable used by the ng generator")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
