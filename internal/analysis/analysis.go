// Package analysis runs the full per-file pipeline: index, classify,
// extract, derive findings and synthesize the WBS. Analysis is a pure
// function of the file text; the only injected input is the timestamp,
// so identical input yields identical output.
package analysis

import (
	"time"

	"takeoff/internal/ifc"
	"takeoff/internal/optimize"
	"takeoff/internal/step"
	"takeoff/internal/wbs"
)

// Stats summarizes one file's analysis.
type Stats struct {
	RecordCount  int                  `json:"record_count"`
	ElementCount int                  `json:"element_count"`
	ByCategory   map[ifc.Category]int `json:"by_category,omitempty"`
}

// Skips surfaces silently dropped work so data loss stays observable.
type Skips struct {
	Lines                 int `json:"lines"`
	UnresolvedRefs        int `json:"unresolved_refs"`
	UnknownPropertyValues int `json:"unknown_property_values"`
}

// Result is the complete analysis of one file.
type Result struct {
	File        string             `json:"file"`
	Specialty   ifc.Specialty      `json:"specialty"`
	Elements    []ifc.Element      `json:"elements,omitempty"`
	Chapters    []wbs.Chapter      `json:"chapters,omitempty"`
	Findings    []optimize.Finding `json:"findings,omitempty"`
	Stats       Stats              `json:"stats"`
	Skips       Skips              `json:"skips"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Options configures an analysis run. Now is injected so results are
// reproducible; the zero value falls back to the wall clock.
type Options struct {
	Now time.Time
}

// Analyze runs the pipeline over one file's text. It never fails: a file
// with no recognizable records yields an unknown specialty and an empty
// result, not an error.
func Analyze(file, content string, options Options) *Result {
	now := options.Now
	if now.IsZero() {
		now = time.Now()
	}

	idx := step.NewIndex(content)
	specialty := ifc.DetectSpecialty(idx)
	elements, diag := ifc.Extract(idx)

	byCategory := make(map[ifc.Category]int)
	for _, el := range elements {
		byCategory[el.Category]++
	}

	return &Result{
		File:      file,
		Specialty: specialty,
		Elements:  elements,
		Chapters:  wbs.Generate(elements, specialty),
		Findings:  optimize.Analyze(elements, specialty),
		Stats: Stats{
			RecordCount:  idx.Len(),
			ElementCount: len(elements),
			ByCategory:   byCategory,
		},
		Skips: Skips{
			Lines:                 idx.SkippedLines,
			UnresolvedRefs:        diag.UnresolvedRefs,
			UnknownPropertyValues: diag.UnknownPropertyValues,
		},
		GeneratedAt: now,
	}
}
