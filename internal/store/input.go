package store

import (
	"encoding/json"
	"fmt"

	"takeoff/internal/analysis"
	"takeoff/internal/project"
)

// InputFromProject flattens an assembled project and the analyses it
// came from into the persistable form.
func InputFromProject(name string, p *project.Project, results []*analysis.Result) (ProjectInput, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return ProjectInput{}, fmt.Errorf("encoding project document: %w", err)
	}

	in := ProjectInput{Name: name, Document: doc}
	for _, r := range results {
		if r == nil {
			continue
		}
		in.Analyses = append(in.Analyses, AnalysisInput{
			File:         r.File,
			Specialty:    string(r.Specialty),
			ElementCount: r.Stats.ElementCount,
			SkippedLines: r.Skips.Lines,
			GeneratedAt:  r.GeneratedAt,
		})
	}
	for _, ch := range p.Chapters {
		for _, sc := range ch.SubChapters {
			for _, a := range sc.Articles {
				in.Articles = append(in.Articles, ArticleInput{
					Chapter:     ch.Code,
					SubChapter:  sc.Code,
					Code:        a.Code,
					Description: a.Description,
					Unit:        a.Unit,
					Quantity:    a.Quantity,
					Elements:    len(a.Elements),
				})
			}
		}
	}
	return in, nil
}
