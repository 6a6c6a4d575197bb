package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Envelope is the shape of every structured CLI response. Meta carries
// view information (sort, progress, change flags); Hints suggest a next command.
type Envelope struct {
	Data  any            `json:"data"`
	Meta  map[string]any `json:"meta,omitempty"`
	Hints []string       `json:"_hints,omitempty"`
}

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts json (the default when empty), yaml and yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected json|yaml)", s)
	}
}

func Write(w io.Writer, v any, format string, pretty bool) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if f == YAML {
		return WriteYAML(w, v)
	}
	return WriteJSON(w, v, pretty)
}

// WriteJSON writes one JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
