// Package validate checks an assembled project for internal
// consistency before it is persisted or exported.
package validate

import (
	"fmt"

	"takeoff/internal/analysis"
	"takeoff/internal/project"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDuplicateCode   = "duplicate_article_code"
	codeBadQuantity     = "non_positive_quantity"
	codeAbsurdQuantity  = "implausible_quantity"
	codeNoElements      = "article_without_elements"
	codeUnknownElement  = "unknown_source_element"
	codeMissingUnit     = "article_without_unit"
	codeEmptySubChapter = "empty_subchapter"
)

// Quantity ceilings per unit. A merged project exceeding these almost
// always means a unit mixup upstream, not a real building.
var quantityCeilings = map[string]float64{
	"m2": 1_000_000,
	"m3": 100_000,
	"m":  100_000,
	"u":  100_000,
}

type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Chapter  string   `json:"chapter,omitempty"`
	Article  string   `json:"article,omitempty"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// Errors reports how many issues are hard errors.
func (r *Report) Errors() int {
	var n int
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Run checks the project. The analyses it was assembled from are
// optional; when given, article source elements are checked against the
// extracted element ids.
func Run(p *project.Project, results []*analysis.Result) (*Report, error) {
	if p == nil {
		return nil, fmt.Errorf("project is required")
	}

	known := knownElements(results)
	issues := make([]Issue, 0)
	seen := make(map[string]bool)

	for _, ch := range p.Chapters {
		for _, sc := range ch.SubChapters {
			if len(sc.Articles) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     codeEmptySubChapter,
					Message:  fmt.Sprintf("subchapter %s has no articles", sc.Code),
					Chapter:  ch.Code,
				})
				continue
			}
			for _, a := range sc.Articles {
				if seen[a.Code] {
					issues = append(issues, Issue{
						Severity: SeverityError,
						Code:     codeDuplicateCode,
						Message:  fmt.Sprintf("article code %s appears more than once", a.Code),
						Chapter:  ch.Code,
						Article:  a.Code,
					})
				}
				seen[a.Code] = true

				issues = append(issues, checkArticle(ch.Code, a.Code, a.Unit, a.Quantity, a.Elements, known)...)
			}
		}
	}

	return &Report{Issues: issues}, nil
}

func checkArticle(chapter, code, unit string, quantity float64, elements []string, known map[string]bool) []Issue {
	var issues []Issue

	if quantity <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeBadQuantity,
			Message:  fmt.Sprintf("article %s has quantity %v", code, quantity),
			Chapter:  chapter,
			Article:  code,
		})
	} else if ceiling, ok := quantityCeilings[unit]; ok && quantity > ceiling {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeAbsurdQuantity,
			Message:  fmt.Sprintf("article %s has quantity %v %s, above the plausible ceiling", code, quantity, unit),
			Chapter:  chapter,
			Article:  code,
		})
	}

	if unit == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeMissingUnit,
			Message:  fmt.Sprintf("article %s has no unit", code),
			Chapter:  chapter,
			Article:  code,
		})
	}

	if len(elements) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeNoElements,
			Message:  fmt.Sprintf("article %s references no model elements", code),
			Chapter:  chapter,
			Article:  code,
		})
	} else if known != nil {
		for _, id := range elements {
			if !known[id] {
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     codeUnknownElement,
					Message:  fmt.Sprintf("article %s references unknown element %s", code, id),
					Chapter:  chapter,
					Article:  code,
				})
			}
		}
	}

	return issues
}

func knownElements(results []*analysis.Result) map[string]bool {
	if len(results) == 0 {
		return nil
	}
	known := make(map[string]bool)
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, el := range r.Elements {
			if el.GlobalID != "" {
				known[el.GlobalID] = true
			}
		}
	}
	return known
}
