package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// selectFromList presents a numbered list and returns the selected index.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string) (int, error) {
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d]: ", len(items))

	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(line), len(items))
	}

	return num - 1, nil
}

// askWithDefault asks for a single line. An empty answer, or end of input,
// accepts def.
func askWithDefault(reader *bufio.Reader, w io.Writer, prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(w, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(w, "%s: ", prompt)
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(prompt), err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
