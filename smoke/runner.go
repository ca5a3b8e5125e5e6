package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CaseResult is the outcome of one Case.
type CaseResult struct {
	Name string

	// StepsRun counts steps whose check was applied, including a failing one.
	StepsRun int
	Err      error
	Duration time.Duration
}

func (cr *CaseResult) Passed() bool {
	return cr.Err == nil
}

// Report is the outcome of running a Suite.
type Report struct {
	BaseURL    string
	Driver     string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []*CaseResult
}

func (r *Report) Passed() int {
	n := 0
	for _, cr := range r.Results {
		if cr.Passed() {
			n++
		}
	}
	return n
}

func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Runner runs suites sequentially on one Browser.
type Runner struct {
	Browser Browser

	// Driver is recorded in reports.
	Driver string
}

// Run executes every case of suite in order. A failing case does not stop the ones after it. Once ctx is done the
// remaining cases are reported failed without being visited.
func (r *Runner) Run(ctx context.Context, suite *Suite) *Report {
	logger := zerolog.Ctx(ctx)

	report := &Report{
		BaseURL:   suite.BaseURL,
		Driver:    r.Driver,
		StartedAt: time.Now(),
		Results:   make([]*CaseResult, 0, len(suite.Cases)),
	}

	for _, c := range suite.Cases {
		result := r.runCase(ctx, suite.BaseURL, c)
		report.Results = append(report.Results, result)

		if result.Err != nil {
			logger.Error().Str("case", c.Name).Int("steps_run", result.StepsRun).Dur("duration", result.Duration).Err(result.Err).Msg("case failed")
		} else {
			logger.Info().Str("case", c.Name).Int("steps_run", result.StepsRun).Dur("duration", result.Duration).Msg("case passed")
		}
	}

	report.FinishedAt = time.Now()

	return report
}

func (r *Runner) runCase(ctx context.Context, base string, c Case) *CaseResult {
	start := time.Now()
	result := &CaseResult{Name: c.Name}
	defer func() {
		result.Duration = time.Since(start)
	}()

	for _, step := range c.Steps {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		url := step.Route.URL(base)
		snapshot, err := r.Browser.Visit(ctx, url)
		if err != nil {
			result.Err = err
			return result
		}

		result.StepsRun++
		err = step.Check.Verify(snapshot)
		if err != nil {
			result.Err = fmt.Errorf("%s: %w", url, err)
			return result
		}
	}

	return result
}
