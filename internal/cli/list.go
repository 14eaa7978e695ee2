package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bbext-labs/bbext/internal/config"
	"github.com/bbext-labs/bbext/internal/registry"
	"github.com/bbext-labs/bbext/internal/widget"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed widgets",
	Long:  `List the widget packages found in the distribution directory (--dist-path).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listWidgets(cmd.OutOrStdout(), config.Current(), listJSON)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listWidgets prints the discovered widgets. Finding none, including a
// missing distribution directory, is not an error.
func listWidgets(w io.Writer, settings config.Settings, asJSON bool) error {
	widgets, err := registry.Discover(settings.DistPath, settings.WidgetPattern)
	var nf *widget.NotFoundError
	if errors.As(err, &nf) {
		widgets = nil
	} else if err != nil {
		return fmt.Errorf("discovering widgets: %w", err)
	}

	if asJSON {
		return printListJSON(w, widgets)
	}

	if len(widgets) == 0 {
		if nf != nil {
			fmt.Fprintf(w, "No widgets found: %s does not exist.\n", settings.DistPath)
		} else {
			fmt.Fprintf(w, "No widgets matching %q found in %s.\n", settings.WidgetPattern, settings.DistPath)
		}
		return nil
	}
	return printListTable(w, widgets)
}

func printListTable(w io.Writer, widgets []registry.DiscoveredWidget) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "WIDGET\tVERSION\tTITLE")
	for _, dw := range widgets {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", dw.ID, orDash(dw.Version), orDash(dw.Title))
	}
	return tw.Flush()
}

func printListJSON(w io.Writer, widgets []registry.DiscoveredWidget) error {
	if widgets == nil {
		widgets = []registry.DiscoveredWidget{}
	}
	data, err := json.MarshalIndent(widgets, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
