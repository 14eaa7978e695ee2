package cli

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/bbext-labs/bbext/internal/branding"
	"github.com/bbext-labs/bbext/internal/config"
	"github.com/bbext-labs/bbext/internal/generator"
	"github.com/bbext-labs/bbext/internal/manifest"
	"github.com/bbext-labs/bbext/internal/registry"
	"github.com/bbext-labs/bbext/internal/widget"
	"github.com/spf13/cobra"
)

var checkManifest string

func init() {
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate an extension manifest at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment before extending widgets",
	Long: `Run diagnostic checks: the configured generator is available, the widget
distribution directory exists and every installed widget's peer dependencies
are satisfied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Current()
		out := cmd.OutOrStdout()

		if checkManifest != "" {
			return runManifestCheck(out, checkManifest)
		}

		runGeneratorCheck(out, settings)
		runWidgetCheck(out, settings)
		return nil
	},
}

func runGeneratorCheck(w io.Writer, settings config.Settings) {
	fmt.Fprintln(w, "Generator check:")
	switch settings.Generator {
	case generator.KindBuiltin:
		fmt.Fprintln(w, "  [ OK ] built-in templates selected")
	case generator.KindCommand, "":
		checkBinary(w, settings.GeneratorCommand)
		checkBinary(w, "node")
	default:
		fmt.Fprintf(w, "  [FAIL] unknown generator %q (run `%s config set %s builtin`)\n",
			settings.Generator, branding.CLIName(), config.KeyGenerator)
	}
}

func checkBinary(w io.Writer, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runWidgetCheck(w io.Writer, settings config.Settings) {
	fmt.Fprintln(w, "Widget check:")

	widgets, err := registry.Discover(settings.DistPath, settings.WidgetPattern)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}
	if len(widgets) == 0 {
		fmt.Fprintf(w, "  [INFO] No widgets matching %q in %s\n", settings.WidgetPattern, settings.DistPath)
		return
	}

	for _, dw := range widgets {
		p, err := widget.Open(settings.DistPath, dw.ID)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", dw.ID, err)
			continue
		}
		d, err := widget.LoadDescriptor(p)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", dw.ID, err)
			continue
		}

		warnings := widget.CheckPeers(d, settings.DistPath)
		if len(warnings) == 0 {
			fmt.Fprintf(w, "  [ OK ] %s %s\n", dw.ID, orDash(d.Version))
			continue
		}
		for _, msg := range warnings {
			fmt.Fprintf(w, "  [WARN] %s: %s\n", dw.ID, msg)
		}
	}
}

func runManifestCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.Parse(path)
		if err != nil {
			fmt.Fprintln(w, "  [ OK ] Valid manifest")
			return nil
		}
		fmt.Fprintf(w, "  [ OK ] %s extends %s (%s)\n", m.Name, m.Source.ID, m.Component)
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		switch {
		case issue.Line > 0:
			fmt.Fprintf(w, "    - line %d, %s: %s\n", issue.Line, issue.Path, issue.Message)
		case issue.Path != "":
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		default:
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
