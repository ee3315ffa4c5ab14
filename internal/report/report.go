package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vk/colorgrid/internal/datablock"
	"github.com/vk/colorgrid/internal/graph"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid report format %q: must be one of text, json, yaml", s)
	}
}

// Result is one evaluated plug.
type Result struct {
	Plug     string              `json:"plug" yaml:"plug"`
	Elements []datablock.Element `json:"elements" yaml:"elements"`
}

// FromGraph converts graph results into report results.
func FromGraph(in []graph.Result) []Result {
	out := make([]Result, len(in))
	for i, r := range in {
		elems := r.Elements
		if elems == nil {
			elems = []datablock.Element{}
		}
		out[i] = Result{Plug: r.Addr.String(), Elements: elems}
	}
	return out
}

// Write encodes results to w.
func Write(w io.Writer, format Format, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatText:
		return writeText(w, results)
	default:
		return fmt.Errorf("invalid report format %q", format)
	}
}

func writeText(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s (%d elements)\n", r.Plug, len(r.Elements)); err != nil {
			return err
		}
		for _, e := range r.Elements {
			if _, err := fmt.Fprintf(w, "  [%d] %s\n", e.Index, strconv.FormatFloat(float64(e.Value), 'g', -1, 32)); err != nil {
				return err
			}
		}
	}
	return nil
}
