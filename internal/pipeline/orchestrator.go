package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bbext-labs/bbext/internal/generator"
	"github.com/bbext-labs/bbext/internal/manifest"
	"github.com/bbext-labs/bbext/internal/markup"
	"github.com/bbext-labs/bbext/internal/model"
	"github.com/bbext-labs/bbext/internal/patch"
	"github.com/bbext-labs/bbext/internal/registry"
	"github.com/bbext-labs/bbext/internal/scaffold"
	"github.com/bbext-labs/bbext/internal/taskgraph"
	"github.com/bbext-labs/bbext/internal/widget"
	"github.com/hashicorp/go-hclog"
)

// Options configures one run.
type Options struct {
	Widget string // installed widget id, e.g. "product-summary-widget-ang"
	Module string // destination library name
	Title  string // display title written into the definition document

	WorkDir        string // workspace root; defaults to "."
	DistPath       string // directory holding installed widgets, relative to WorkDir unless absolute
	LibsRoot       string // library root relative to WorkDir
	Marker         string // customization marker attribute
	Project        string // passed through to the generator
	ExtensionSlots bool   // leave extracted markup live instead of commented out

	Generator     generator.Generator
	GeneratorKind string // recorded in the manifest
	Logger        hclog.Logger
}

// Result describes the artifacts of a successful run.
type Result struct {
	LibDir        string
	Files         []string // relative to LibDir, slash-separated
	Tag           string
	ComponentType string
	Descriptor    *widget.Descriptor
	Reference     *widget.Reference
	Inputs        []string
	Outputs       []string
	Warnings      []string
}

// Orchestrator runs the extension of one widget into one library. It is
// single use.
type Orchestrator struct {
	opts Options
	log  hclog.Logger

	mu        sync.Mutex
	state     State
	completed map[string]bool
	warnings  []string

	// Written by one task and read by the tasks depending on it.
	pkg       *widget.Package
	desc      *widget.Descriptor
	ref       *widget.Reference
	libDir    string
	tag       string
	copied    []string
	inputs    []string
	outputs   []string
	typeName  string
	tmplPath  string
	compPath  string
	modPath   string
	modelPath string
}

// New returns an Orchestrator for opts.
func New(opts Options) *Orchestrator {
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.Marker == "" {
		opts.Marker = "bbCustomizable"
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.GeneratorKind == "" {
		opts.GeneratorKind = generator.KindCommand
		if _, ok := opts.Generator.(generator.Builtin); ok {
			opts.GeneratorKind = generator.KindBuiltin
		}
	}
	return &Orchestrator{
		opts:      opts,
		log:       opts.Logger.Named("pipeline"),
		completed: make(map[string]bool),
	}
}

// State returns the current state of the run.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Run executes the extension. The first failure aborts the run and is
// returned unchanged; files already written are left in place.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	if o.opts.Widget == "" || o.opts.Module == "" {
		return nil, errors.New("widget and module are required")
	}
	if o.opts.Generator == nil {
		return nil, errors.New("no generator configured")
	}

	o.libDir = filepath.Join(o.opts.WorkDir, o.opts.LibsRoot, o.opts.Module)
	o.typeName = scaffold.NewData(o.opts.Module, o.opts.LibsRoot).ComponentType()
	o.compPath = filepath.Join(o.libDir, scaffold.ComponentPath(o.opts.Module))
	o.modPath = filepath.Join(o.libDir, scaffold.ModulePath(o.opts.Module))
	o.tmplPath = filepath.Join(o.libDir, scaffold.TemplatePath(o.opts.Module))
	o.modelPath = filepath.Join(o.libDir, registry.DefinitionFile)

	g := taskgraph.New()
	for _, t := range []struct {
		name string
		deps []string
		fn   taskgraph.Func
	}{
		{taskMetadata, nil, o.loadMetadata},
		{taskSkeleton, []string{taskMetadata}, o.generateSkeleton},
		{taskArtifacts, []string{taskSkeleton}, o.copyArtifacts},
		{taskTemplate, []string{taskSkeleton}, o.composeTemplate},
		{taskModel, []string{taskArtifacts, taskTemplate}, o.transformModel},
		{taskModule, []string{taskMetadata, taskSkeleton}, o.patchModule},
		{taskComponent, []string{taskModel}, o.patchComponent},
		{taskManifest, []string{taskComponent, taskModule}, o.writeManifest},
	} {
		if err := g.Add(t.name, t.deps, o.track(t.name, t.fn)); err != nil {
			return nil, err
		}
	}

	o.log.Info("extending widget", "widget", o.opts.Widget, "module", o.opts.Module, "destination", o.libDir)
	if err := g.Run(ctx); err != nil {
		o.fail(err)
		return nil, err
	}

	return o.result(), nil
}

// track wraps a task so its completion advances the state.
func (o *Orchestrator) track(name string, fn taskgraph.Func) taskgraph.Func {
	return func(ctx context.Context) error {
		o.log.Debug("task started", "task", name)
		if err := fn(ctx); err != nil {
			o.log.Debug("task failed", "task", name, "error", err)
			return err
		}
		o.complete(name)
		return nil
	}
}

func (o *Orchestrator) complete(task string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completed[task] = true
	if o.state == Failed {
		return
	}
	for _, m := range milestones {
		if m.state <= o.state {
			continue
		}
		for _, t := range m.tasks {
			if !o.completed[t] {
				return
			}
		}
		o.log.Info("state changed", "from", o.state, "to", m.state)
		o.state = m.state
	}
}

func (o *Orchestrator) fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.log.Error("extension failed", "from", o.state, "error", err)
	o.state = Failed
}

func (o *Orchestrator) warn(msg string, args ...interface{}) {
	o.log.Warn(msg, args...)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, formatWarning(msg, args...))
}

// formatWarning renders a log message and its key/value pairs for the
// result's warning list.
func formatWarning(msg string, args ...interface{}) string {
	for i := 0; i+1 < len(args); i += 2 {
		msg += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return msg
}

// files lists the library files the run produced or patched, apart from the
// manifest.
func (o *Orchestrator) files() []string {
	files := []string{
		filepath.ToSlash(scaffold.ComponentPath(o.opts.Module)),
		filepath.ToSlash(scaffold.ModulePath(o.opts.Module)),
		filepath.ToSlash(scaffold.TemplatePath(o.opts.Module)),
	}
	return append(files, o.copied...)
}

func (o *Orchestrator) result() *Result {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &Result{
		LibDir:        o.libDir,
		Files:         append(o.files(), manifest.FileName),
		Tag:           o.tag,
		ComponentType: o.typeName,
		Descriptor:    o.desc,
		Reference:     o.ref,
		Inputs:        o.inputs,
		Outputs:       o.outputs,
		Warnings:      append([]string(nil), o.warnings...),
	}
}

func (o *Orchestrator) distPath() string {
	if filepath.IsAbs(o.opts.DistPath) {
		return o.opts.DistPath
	}
	return filepath.Join(o.opts.WorkDir, o.opts.DistPath)
}

func (o *Orchestrator) loadMetadata(context.Context) error {
	if err := checkNames(o.opts); err != nil {
		return err
	}
	pkg, err := widget.Open(o.distPath(), o.opts.Widget)
	if err != nil {
		return err
	}
	desc, err := widget.LoadDescriptor(pkg)
	if err != nil {
		return err
	}
	ref, err := widget.LoadReference(pkg, desc.Name)
	if err != nil {
		return err
	}
	if ref.Placeholder {
		o.warn("no exported module found; using placeholder", "module", ref.Module)
	}
	for _, w := range widget.CheckPeers(desc, o.distPath()) {
		o.warn("peer dependency mismatch: " + w)
	}

	o.pkg, o.desc, o.ref = pkg, desc, ref
	if o.opts.Title == "" {
		o.opts.Title = desc.Title
	}
	o.log.Info("metadata loaded", "package", desc.Name, "version", desc.Version,
		"module", ref.Module, "component", ref.Component)
	return nil
}

func (o *Orchestrator) generateSkeleton(ctx context.Context) error {
	if _, err := os.Stat(o.libDir); err == nil {
		return &ExistsError{Path: o.libDir}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking destination %s: %w", o.libDir, err)
	}

	req := generator.Request{
		WorkDir:  o.opts.WorkDir,
		LibsRoot: o.opts.LibsRoot,
		Module:   o.opts.Module,
		Project:  o.opts.Project,
	}
	return o.opts.Generator.Generate(ctx, req)
}

func (o *Orchestrator) copyArtifacts(context.Context) error {
	for _, res := range registry.CopyArtifacts(o.pkg, o.libDir) {
		if res.Err != nil {
			o.warn("item file not copied", "file", res.Name, "error", res.Err)
			continue
		}
		o.copied = append(o.copied, res.Name)
		o.log.Debug("item file copied", "file", res.Name, "dest", res.Dest)
	}
	return nil
}

func (o *Orchestrator) composeTemplate(context.Context) error {
	bundlePath, err := o.pkg.BundlePath()
	if err != nil {
		return err
	}
	bundle, err := os.ReadFile(bundlePath)
	if err != nil {
		return fmt.Errorf("reading bundle %s: %w", bundlePath, err)
	}

	fragments, err := markup.Extract(string(bundle), o.opts.Marker)
	if err != nil {
		return err
	}

	o.tag = widget.TagName(o.opts.Widget)
	out := markup.Compose(o.tag, fragments, o.opts.ExtensionSlots)
	if err := os.WriteFile(o.tmplPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing template %s: %w", o.tmplPath, err)
	}
	return nil
}

func (o *Orchestrator) transformModel(context.Context) error {
	data, err := os.ReadFile(o.modelPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &widget.NotFoundError{What: "definition document", Path: o.modelPath}
		}
		return fmt.Errorf("reading definition document: %w", err)
	}

	doc, err := model.Parse(data)
	if err != nil {
		return err
	}
	o.inputs, o.outputs = model.Classify(doc)

	doc.Rename(o.opts.Module)
	doc.Retitle(o.opts.Title)
	doc.RebindClassID(o.typeName)

	out, err := model.Serialize(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.modelPath, out, 0644); err != nil {
		return fmt.Errorf("writing definition document: %w", err)
	}

	o.log.Info("definition document transformed", "inputs", len(o.inputs), "outputs", len(o.outputs))
	if len(o.inputs) > 0 {
		o.log.Debug("inputs exposed by the widget", "inputs", o.inputs)
	}
	return nil
}

func (o *Orchestrator) patchModule(context.Context) error {
	return patch.Rewrite(o.modPath, func(src string) (string, error) {
		src, err := patch.InjectModuleImports(src, o.ref)
		if err != nil {
			return "", err
		}
		return patch.RegisterDependencies(src, o.ref, o.typeName)
	})
}

func (o *Orchestrator) patchComponent(context.Context) error {
	templateURL := "./" + filepath.Base(o.tmplPath)
	err := patch.Rewrite(o.compPath, func(src string) (string, error) {
		src, err := patch.AddRouteCopy(src, o.ref)
		if err != nil {
			return "", err
		}
		if src, err = patch.WireOutputs(src, o.outputs); err != nil {
			return "", err
		}
		return patch.RewriteTemplateURL(src, templateURL)
	})
	if err != nil {
		return err
	}

	if len(o.outputs) == 0 {
		return nil
	}
	return patch.Rewrite(o.tmplPath, func(html string) (string, error) {
		out, found := patch.WireTemplateOutputs(html, o.tag, o.outputs)
		if !found {
			o.warn("usage tag not found in template; outputs not bound", "tag", o.tag)
		}
		return out, nil
	})
}

func (o *Orchestrator) writeManifest(context.Context) error {
	m := &manifest.Extension{
		Name:           o.opts.Module,
		Title:          o.opts.Title,
		Component:      o.typeName,
		Tag:            o.tag,
		ExtensionSlots: o.opts.ExtensionSlots,
		Generator:      o.opts.GeneratorKind,
		Source: manifest.Source{
			ID:        o.opts.Widget,
			Package:   o.desc.Name,
			Version:   o.desc.Version,
			Module:    o.ref.Module,
			Component: o.ref.Component,
		},
		Inputs:  o.inputs,
		Outputs: o.outputs,
		Files:   o.files(),
	}
	return manifest.Write(filepath.Join(o.libDir, manifest.FileName), m)
}
