package smoke

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	dimColor  = color.New(color.Faint)
)

// Write prints one line per case followed by a summary.
func (r *Report) Write(w io.Writer) error {
	for _, cr := range r.Results {
		var err error
		if cr.Passed() {
			_, err = passColor.Fprintf(w, "✓ %s", cr.Name)
		} else {
			_, err = failColor.Fprintf(w, "✗ %s", cr.Name)
		}
		if err != nil {
			return err
		}

		_, err = dimColor.Fprintf(w, " (%v)", cr.Duration.Round(time.Millisecond))
		if err != nil {
			return err
		}

		if !cr.Passed() {
			_, err = fmt.Fprintf(w, "\n    %v", cr.Err)
			if err != nil {
				return err
			}
		}

		_, err = fmt.Fprintln(w)
		if err != nil {
			return err
		}
	}

	summary := passColor
	if r.Failed() > 0 {
		summary = failColor
	}
	_, err := summary.Fprintf(w, "\n%d passed, %d failed against %s in %v\n",
		r.Passed(), r.Failed(), r.BaseURL, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

	return err
}
