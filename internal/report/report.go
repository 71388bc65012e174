// Package report models a suite run and renders it as JSON or an Excel
// summary sheet for circulation outside the engineering team.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
)

// Outcome of one test.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
	OutcomeSkip Outcome = "skip"
)

// Result is one test's outcome.
type Result struct {
	Name     string        `json:"name"`
	Module   string        `json:"module"`
	Outcome  Outcome       `json:"outcome"`
	Duration time.Duration `json:"duration_ns"`
	Message  string        `json:"message,omitempty"`
}

// Run is a complete suite execution.
type Run struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	BaseURL    string    `json:"base_url"`
	Browser    string    `json:"browser"`
	Results    []Result  `json:"results"`
}

// Summary aggregates a run.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	PassRate float64 // of non-skipped
}

// Summarize computes aggregate counts for a run.
func (r *Run) Summarize() Summary {
	s := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomePass:
			s.Passed++
		case OutcomeFail:
			s.Failed++
		case OutcomeSkip:
			s.Skipped++
		}
	}
	if executed := s.Passed + s.Failed; executed > 0 {
		s.PassRate = float64(s.Passed) / float64(executed)
	}
	return s
}

// Modules returns the distinct module names, sorted.
func (r *Run) Modules() []string {
	seen := map[string]struct{}{}
	for _, res := range r.Results {
		seen[res.Module] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// WriteJSON persists the run to path.
func (r *Run) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads a run previously written by WriteJSON.
func LoadJSON(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report %s: %w", path, err)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run report %s: %w", path, err)
	}
	return &run, nil
}

// WriteXLSX renders the run as a two-sheet workbook: a summary sheet and a
// per-test detail sheet.
func (r *Run) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := f.GetSheetName(0)
	if err := f.SetSheetName(summarySheet, "Summary"); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}

	s := r.Summarize()
	rows := [][]any{
		{"Started", r.StartedAt.Format(time.RFC3339)},
		{"Finished", r.FinishedAt.Format(time.RFC3339)},
		{"Base URL", r.BaseURL},
		{"Browser", r.Browser},
		{"Total", s.Total},
		{"Passed", s.Passed},
		{"Failed", s.Failed},
		{"Skipped", s.Skipped},
		{"Pass rate", fmt.Sprintf("%.1f%%", s.PassRate*100)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}

	const detail = "Results"
	if _, err := f.NewSheet(detail); err != nil {
		return fmt.Errorf("creating results sheet: %w", err)
	}
	header := []any{"Module", "Test", "Outcome", "Duration", "Message"}
	if err := f.SetSheetRow(detail, "A1", &header); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}
	for i, res := range r.Results {
		row := []any{
			res.Module,
			res.Name,
			string(res.Outcome),
			res.Duration.Round(time.Millisecond).String(),
			res.Message,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(detail, cell, &row); err != nil {
			return fmt.Errorf("writing result row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}
