package replay

import (
	"bufio"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/heyjunin/reactlog/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Op is a lifecycle operation recorded in a script.
type Op string

const (
	// OpCreate creates a new value under a ref.
	OpCreate Op = "create"
	// OpUpdate replaces the payload of an existing value.
	OpUpdate Op = "update"
	// OpName assigns a name to an existing value.
	OpName Op = "name"
)

// ParseOp accepts both the imperative and the hook spelling of an operation.
func ParseOp(s string) (Op, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create", "created":
		return OpCreate, true
	case "update", "updated":
		return OpUpdate, true
	case "name", "named":
		return OpName, true
	default:
		return "", false
	}
}

// Event is one recorded lifecycle step.
type Event struct {
	Op    Op     `json:"op" yaml:"op"`
	Ref   string `json:"ref" yaml:"ref"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Format is the encoding of a script.
type Format string

const (
	// JSONLines holds one JSON encoded Event per line.
	JSONLines Format = "jsonl"
	// YAML holds a list of events, either at the top level or under "events".
	YAML Format = "yaml"
)

// DetectFormat picks a format from the file extension, defaulting to JSONLines.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSONLines
	}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case JSONLines, "json", "ndjson":
		return JSONLines, nil
	case YAML, "yml":
		return YAML, nil
	default:
		return "", errors.Newf(errors.ScriptError, errors.ErrScriptUnknownFormat, "format %q", s)
	}
}

// Decode reads and validates a script.
func Decode(r io.Reader, format Format) ([]Event, error) {
	var (
		events []Event
		err    error
	)
	switch format {
	case JSONLines:
		events, err = decodeJSONLines(r)
	case YAML:
		events, err = decodeYAML(r)
	default:
		return nil, errors.Newf(errors.ScriptError, errors.ErrScriptUnknownFormat, "format %q", format)
	}
	if err != nil {
		return nil, err
	}

	for i := range events {
		if err := normalize(&events[i], i+1); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// maxLineSize bounds a single JSON lines event.
var maxLineSize = 16 << 20

func decodeJSONLines(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	initial := 64 * 1024
	if maxLineSize < initial {
		initial = maxLineSize
	}
	scanner.Buffer(make([]byte, 0, initial), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			return nil, errors.Newf(errors.ScriptError, errors.ErrScriptMalformed, "line %d: %v", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, errors.Newf(errors.ScriptError, errors.ErrScriptMalformed, "line %d: longer than %d bytes", lineNo+1, maxLineSize)
		}
		return nil, errors.Wrap(err, errors.SystemError, errors.GetErrorMessage(errors.ErrFileNotAccessible), errors.ErrFileNotAccessible)
	}
	return events, nil
}

func decodeYAML(r io.Reader) ([]Event, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Newf(errors.ScriptError, errors.ErrScriptMalformed, "%v", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var events []Event
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&events); err != nil {
			return nil, errors.Newf(errors.ScriptError, errors.ErrScriptMalformed, "%v", err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Events []Event `yaml:"events"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, errors.Newf(errors.ScriptError, errors.ErrScriptMalformed, "%v", err)
		}
		events = wrapper.Events
	default:
		return nil, errors.Newf(errors.ScriptError, errors.ErrScriptMalformed, "line %d: expected a list of events", root.Line)
	}
	return events, nil
}

func normalize(ev *Event, index int) error {
	op, ok := ParseOp(string(ev.Op))
	if !ok {
		return errors.Newf(errors.ScriptError, errors.ErrScriptUnknownOp, "event %d: op %q", index, ev.Op)
	}
	ev.Op = op
	if ev.Ref == "" {
		return errors.Newf(errors.ScriptError, errors.ErrScriptMissingRef, "event %d", index)
	}
	return nil
}
