package patch

import (
	"errors"
	"fmt"
	"os"
)

// Rewrite reads path, applies transform to its contents and overwrites the
// file with the result in a single write. Nothing is written when transform
// fails.
func Rewrite(path string, transform func(string) (string, error)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := transform(string(data))
	if err != nil {
		var ae *AnchorError
		if errors.As(err, &ae) && ae.File == "" {
			ae.File = path
		}
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), info.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
