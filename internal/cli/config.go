package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/bbext-labs/bbext/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persisted settings",
	Long: `Read and write settings stored in ` + config.FilePath() + `.
Flags override environment variables, which override the file.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		for _, kv := range [][2]string{
			{config.KeyDistPath, s.DistPath},
			{config.KeyWidgetPattern, s.WidgetPattern},
			{config.KeyProject, s.Project},
			{config.KeyExtensionSlots, fmt.Sprint(s.ExtensionSlots)},
			{config.KeyMarker, s.Marker},
			{config.KeyLibsRoot, s.LibsRoot},
			{config.KeyGenerator, s.Generator},
			{config.KeyGeneratorCommand, s.GeneratorCommand},
		} {
			fmt.Fprintf(tw, "%s\t%s\n", kv[0], orDash(kv[1]))
		}
		return tw.Flush()
	},
}
