package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bbext-labs/bbext/internal/scaffold"
)

// Supported generator identifiers.
const (
	KindCommand = "ng"
	KindBuiltin = "builtin"
)

// Request describes the skeleton to generate.
type Request struct {
	WorkDir  string // workspace root; the command runs here
	LibsRoot string // library root relative to WorkDir
	Module   string // library name
	Project  string // target project passed through to the command, optional
}

// LibDir returns the directory the library is generated into.
func (r Request) LibDir() string {
	return filepath.Join(r.WorkDir, r.LibsRoot, r.Module)
}

// Generator creates a library skeleton.
type Generator interface {
	Generate(ctx context.Context, req Request) error
}

// New returns the Generator for kind. command names the executable used by
// the command generator and is ignored otherwise.
func New(kind, command string) (Generator, error) {
	switch kind {
	case KindCommand, "":
		return NewCommand(command), nil
	case KindBuiltin:
		return Builtin{}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q: supported generators are %q and %q", kind, KindCommand, KindBuiltin)
	}
}

// Builtin renders the embedded library templates.
type Builtin struct{}

// Generate implements Generator.
func (Builtin) Generate(_ context.Context, req Request) error {
	data := scaffold.NewData(req.Module, req.LibsRoot)
	if _, err := scaffold.Generate(data, req.LibDir()); err != nil {
		return fmt.Errorf("scaffolding %s: %w", req.Module, err)
	}
	return nil
}

// verifySkeleton checks that the sources patched later exist.
func verifySkeleton(req Request) error {
	for _, rel := range []string{scaffold.ComponentPath(req.Module), scaffold.ModulePath(req.Module)} {
		path := filepath.Join(req.LibDir(), rel)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("generator did not produce %s: %w", path, err)
		}
	}
	return nil
}
