package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bbext-labs/bbext/internal/branding"
	"github.com/bbext-labs/bbext/internal/config"
	"github.com/bbext-labs/bbext/internal/generator"
	"github.com/bbext-labs/bbext/internal/pipeline"
	"github.com/bbext-labs/bbext/internal/registry"
	"github.com/bbext-labs/bbext/internal/widget"
	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	extendTitle  string
	extendModule string
	listMode     bool
	listJSON     bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&extendTitle, "title", "", "Title of the extension (default: the widget's title)")
	f.StringVar(&extendModule, "module", "", "Name of the extension library (default: the widget name)")
	f.Bool(config.KeyExtensionSlots, false, "Keep extracted markup live instead of commented out")
	f.String(config.KeyProject, "", "Project passed to the generator")
	f.String(config.KeyMarker, config.DefaultMarker, "Attribute marking customizable elements")
	f.String(config.KeyLibsRoot, config.DefaultLibsRoot, "Directory libraries are generated into")
	f.BoolVar(&listMode, "list", false, "List installed widgets and exit")
	f.BoolVar(&listJSON, "json", false, "Output the widget list in JSON format")
}

// extendTarget is what the user chose to extend.
type extendTarget struct {
	Widget string
	Title  string
	Module string
}

func runExtend(cmd *cobra.Command, args []string) error {
	settings := config.Current()
	if listMode {
		return listWidgets(cmd.OutOrStdout(), settings, listJSON)
	}

	out := cmd.OutOrStdout()
	var widgetID string
	if len(args) == 1 {
		widgetID = args[0]
	}

	target, err := resolveTarget(bufio.NewReader(cmd.InOrStdin()), out, settings, widgetID, extendTitle, extendModule)
	if err != nil {
		return err
	}

	gen, err := generator.New(settings.Generator, settings.GeneratorCommand)
	if err != nil {
		return err
	}
	if c, ok := gen.(*generator.Command); ok {
		c.Stdout = out
		c.Stderr = cmd.ErrOrStderr()
	}

	orch := pipeline.New(pipeline.Options{
		Widget:         target.Widget,
		Module:         target.Module,
		Title:          target.Title,
		DistPath:       settings.DistPath,
		LibsRoot:       settings.LibsRoot,
		Marker:         settings.Marker,
		Project:        settings.Project,
		ExtensionSlots: settings.ExtensionSlots,
		Generator:      gen,
		GeneratorKind:  settings.Generator,
		Logger:         newLogger(cmd.ErrOrStderr()),
	})

	result, err := orch.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(out, target, result)
	return nil
}

// resolveTarget fills in whatever was not given on the command line by
// asking on reader.
func resolveTarget(reader *bufio.Reader, w io.Writer, settings config.Settings, widgetID, title, module string) (*extendTarget, error) {
	if widgetID == "" {
		widgets, err := registry.Discover(settings.DistPath, settings.WidgetPattern)
		if err != nil {
			return nil, err
		}
		if len(widgets) == 0 {
			return nil, fmt.Errorf("no widgets matching %q found in %s", settings.WidgetPattern, settings.DistPath)
		}

		labels := make([]string, len(widgets))
		for i, dw := range widgets {
			labels[i] = dw.ID
			if dw.Title != "" && dw.Title != dw.Package {
				labels[i] += " - " + dw.Title
			}
		}
		idx, err := selectFromList(reader, w, "Select widget to extend:", labels)
		if err != nil {
			return nil, err
		}
		widgetID = widgets[idx].ID
	}

	var err error
	if title == "" {
		title, err = askWithDefault(reader, w, "Title", widgetTitle(settings.DistPath, widgetID))
		if err != nil {
			return nil, err
		}
	}
	if module == "" {
		module, err = askWithDefault(reader, w, "Module name", widgetID)
		if err != nil {
			return nil, err
		}
	}
	if !pipeline.ValidModuleName(module) {
		return nil, fmt.Errorf("invalid module name %q: use lowercase words separated by dashes", module)
	}

	return &extendTarget{Widget: widgetID, Title: title, Module: module}, nil
}

// widgetTitle returns the installed widget's title, or "" when its
// descriptor cannot be read. The pipeline reports the underlying error.
func widgetTitle(distPath, id string) string {
	p, err := widget.Open(distPath, id)
	if err != nil {
		return ""
	}
	d, err := widget.LoadDescriptor(p)
	if err != nil {
		return ""
	}
	return d.Title
}

func newLogger(w io.Writer) hclog.Logger {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   branding.CLIName(),
		Level:  level,
		Output: w,
		Color:  hclog.AutoColor,
	})
}

func printSummary(w io.Writer, target *extendTarget, r *pipeline.Result) {
	fmt.Fprintf(w, "\nCreated %s from %s at %s\n", target.Module, target.Widget, r.LibDir)
	fmt.Fprintf(w, "  component: %s (<%s>)\n", r.ComponentType, r.Tag)
	if r.Reference != nil {
		fmt.Fprintf(w, "  wraps:     %s from %s\n", r.Reference.Component, r.Reference.Package)
	}
	if len(r.Outputs) > 0 {
		fmt.Fprintf(w, "  outputs:   %s\n", strings.Join(r.Outputs, ", "))
	}
	if len(r.Inputs) > 0 {
		fmt.Fprintf(w, "  inputs:    %s (not wired)\n", strings.Join(r.Inputs, ", "))
	}
	fmt.Fprintln(w, "  files:")
	for _, f := range r.Files {
		fmt.Fprintf(w, "    %s\n", f)
	}

	if len(r.Warnings) > 0 {
		warn := color.New(color.FgYellow)
		fmt.Fprintf(w, "\n%d warning(s):\n", len(r.Warnings))
		for _, msg := range r.Warnings {
			warn.Fprintf(w, "  - %s\n", msg)
		}
	}
}
