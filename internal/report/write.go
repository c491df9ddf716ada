package report

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/saturncloud/examplecheck/internal/output"
)

// Summary is the machine-readable form of a report.
type Summary struct {
	Count  int      `json:"count"`
	Errors []string `json:"errors"`
}

// Summarize returns the collector contents as a Summary.
func (c *Collector) Summarize() Summary {
	return Summary{Count: c.Len(), Errors: c.Errors()}
}

// Write renders the collector to w in the requested format.
func Write(w io.Writer, c *Collector, format output.OutputFormat) error {
	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c.Summarize())
	case output.FormatYAML:
		data, err := yaml.Marshal(c.Summarize())
		if err != nil {
			return fmt.Errorf("rendering yaml report: %w", err)
		}
		_, err = w.Write(data)
		return err
	case output.FormatText:
		return writeText(w, c)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func writeText(w io.Writer, c *Collector) error {
	count := fmt.Sprintf("%d errors found checking examples", c.Len())
	if c.Len() > 0 {
		count = output.StyleFailure.Render(count)
	} else {
		count = output.StyleSummary.Render(count)
	}

	if _, err := fmt.Fprintf(w, "\n%s\n\n%s\n\n", output.StyleDim.Render("------ check results ------"), count); err != nil {
		return err
	}

	for i, msg := range c.errors {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, msg); err != nil {
			return err
		}
	}
	return nil
}
