package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/extension.schema.json
var schemaJSON []byte

const schemaURL = "extension.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	printer = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of validating a manifest document.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string // JSON pointer into the document, e.g. "/source/module"; empty for the root
	Line    int    // line of the offending YAML node, 0 when unknown
	Keyword string // failing schema keyword, e.g. "pattern"
	Message string
}

func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("reading manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("registering manifest schema: %w", err)
			return
		}
		if schema, err = c.Compile(schemaURL); err != nil {
			schemaErr = fmt.Errorf("compiling manifest schema: %w", err)
		}
	})
	return schema, schemaErr
}

// Validate checks a YAML manifest document against the embedded schema. The
// error is reserved for documents that are not YAML and schema failures;
// violations are reported in the result.
func Validate(data []byte) (*ValidationResult, error) {
	s, err := getSchema()
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	lines := make(map[string]int)
	inst, err := instance(&root, "", lines)
	if err != nil {
		return nil, err
	}

	err = s.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	return &ValidationResult{Issues: issues(ve, lines)}, nil
}

// ValidateFile validates the manifest at path.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// instance converts a YAML node into the JSON value model the validator
// expects, recording the line of every node by its JSON pointer.
func instance(n *yaml.Node, ptr string, lines map[string]int) (interface{}, error) {
	if n.Line > 0 {
		lines[ptr] = n.Line
	}

	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return instance(n.Content[0], ptr, lines)
	case yaml.AliasNode:
		return instance(n.Alias, ptr, lines)
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := instance(n.Content[i+1], ptr+"/"+escapePointer(key), lines)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil
	case yaml.SequenceNode:
		a := make([]interface{}, len(n.Content))
		for i, item := range n.Content {
			v, err := instance(item, ptr+"/"+strconv.Itoa(i), lines)
			if err != nil {
				return nil, err
			}
			a[i] = v
		}
		return a, nil
	}

	// Scalars: numbers become json.Number so integers stay exact.
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, err
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return n.Value, nil
	}
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}

// issues flattens the leaves of the error tree, dropping reference wrappers
// and repeats, ordered by position in the document.
func issues(ve *jsonschema.ValidationError, lines map[string]int) []ValidationIssue {
	var out []ValidationIssue
	seen := make(map[ValidationIssue]bool)

	stack := []*jsonschema.ValidationError{ve}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(e.Causes) > 0 {
			stack = append(stack, e.Causes...)
			continue
		}
		if e.ErrorKind == nil {
			continue
		}
		kw := e.ErrorKind.KeywordPath()
		if len(kw) == 0 || kw[len(kw)-1] == "$ref" {
			continue
		}

		var path string
		for _, tok := range e.InstanceLocation {
			path += "/" + escapePointer(tok)
		}
		issue := ValidationIssue{
			Path:    path,
			Line:    lines[path],
			Keyword: kw[len(kw)-1],
			Message: e.ErrorKind.LocalizedString(printer),
		}
		if !seen[issue] {
			seen[issue] = true
			out = append(out, issue)
		}
	}

	if len(out) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Path < out[j].Path
	})
	return out
}
