package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

// DefaultArgs are the argument templates of the Angular CLI invocation.
// Arguments rendering to an empty string are dropped.
var DefaultArgs = []string{
	"generate", "library", "{{.Module}}",
	"{{if .Project}}--project={{.Project}}{{end}}",
}

// Command runs an external generator.
type Command struct {
	Name string   // executable, looked up in PATH
	Args []string // text/template strings rendered against the Request

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand returns a generator running name with DefaultArgs.
func NewCommand(name string) *Command {
	return &Command{Name: name, Args: DefaultArgs}
}

// Generate implements Generator. It blocks until the command exits; a
// non-zero exit is an error carrying the command's stderr.
func (c *Command) Generate(ctx context.Context, req Request) error {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return fmt.Errorf("generator %q not found: %w", c.Name, err)
	}

	args, err := c.render(req)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = req.WorkDir

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s %s exited with code %d: %s",
				c.Name, strings.Join(args, " "), exitErr.ExitCode(), strings.TrimSpace(stderrBuf.String()))
		}
		return fmt.Errorf("executing %s: %w", c.Name, err)
	}

	return verifySkeleton(req)
}

func (c *Command) render(req Request) ([]string, error) {
	var out []string
	for _, a := range c.Args {
		tmpl, err := template.New("arg").Parse(a)
		if err != nil {
			return nil, fmt.Errorf("parsing generator argument %q: %w", a, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, req); err != nil {
			return nil, fmt.Errorf("rendering generator argument %q: %w", a, err)
		}
		if buf.Len() > 0 {
			out = append(out, buf.String())
		}
	}
	return out, nil
}
