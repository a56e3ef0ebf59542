// Package project merges per-file analyses into one building project.
package project

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"takeoff/internal/analysis"
	"takeoff/internal/ifc"
	"takeoff/internal/optimize"
	"takeoff/internal/wbs"
)

// ErrNoAnalyses is returned by Assemble when given nothing to merge.
// It is the only hard precondition in the pipeline; everything else
// degrades instead of failing.
var ErrNoAnalyses = errors.New("no analyses to assemble")

// BuildingType is a coarse occupancy guess derived from element names
// and properties.
type BuildingType string

const (
	BuildingResidential BuildingType = "residential"
	BuildingCommercial  BuildingType = "commercial"
	BuildingMixed       BuildingType = "mixed"
	BuildingUnknown     BuildingType = "unknown"
)

// Metadata summarizes the merged model.
type Metadata struct {
	FloorCount     int          `json:"floor_count"`
	Storeys        []string     `json:"storeys,omitempty"`
	GrossFloorArea float64      `json:"gross_floor_area"`
	BuildingHeight float64      `json:"building_height"`
	BuildingType   BuildingType `json:"building_type"`
	ElementCount   int          `json:"element_count"`
	FileCount      int          `json:"file_count"`
}

// FileFindings groups one file's optimization findings with its origin.
type FileFindings struct {
	File      string             `json:"file"`
	Specialty ifc.Specialty      `json:"specialty"`
	Findings  []optimize.Finding `json:"findings"`
}

// Project is the merged result of one or more per-file analyses.
type Project struct {
	Name        string          `json:"name,omitempty"`
	Files       []string        `json:"files"`
	Specialties []ifc.Specialty `json:"specialties"`
	Chapters    []wbs.Chapter   `json:"chapters"`
	Findings    []FileFindings  `json:"findings,omitempty"`
	Metadata    Metadata        `json:"metadata"`
}

// Assemble merges the analyses in input order. Chapters sharing a code
// merge recursively; within a subchapter the first article seen for a
// code wins and later duplicates are dropped.
func Assemble(results []*analysis.Result) (*Project, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("assembling project: %w", ErrNoAnalyses)
	}

	p := &Project{}
	var elements []ifc.Element
	for _, r := range results {
		if r == nil {
			continue
		}
		p.Files = append(p.Files, r.File)
		p.Specialties = append(p.Specialties, r.Specialty)
		p.Chapters = mergeChapters(p.Chapters, r.Chapters)
		if len(r.Findings) > 0 {
			p.Findings = append(p.Findings, FileFindings{
				File:      r.File,
				Specialty: r.Specialty,
				Findings:  r.Findings,
			})
		}
		elements = append(elements, r.Elements...)
	}

	p.Metadata = deriveMetadata(elements, len(p.Files))
	return p, nil
}

func mergeChapters(into, from []wbs.Chapter) []wbs.Chapter {
	for _, ch := range from {
		i := chapterIndex(into, ch.Code)
		if i < 0 {
			into = append(into, copyChapter(ch))
			continue
		}
		into[i].SubChapters = mergeSubChapters(into[i].SubChapters, ch.SubChapters)
	}
	return into
}

func mergeSubChapters(into, from []wbs.SubChapter) []wbs.SubChapter {
	for _, sc := range from {
		i := subChapterIndex(into, sc.Code)
		if i < 0 {
			into = append(into, copySubChapter(sc))
			continue
		}
		for _, a := range sc.Articles {
			if into[i].FindArticle(a.Code) == nil {
				into[i].Articles = append(into[i].Articles, a)
			}
		}
	}
	return into
}

func chapterIndex(chapters []wbs.Chapter, code string) int {
	for i := range chapters {
		if chapters[i].Code == code {
			return i
		}
	}
	return -1
}

func subChapterIndex(subs []wbs.SubChapter, code string) int {
	for i := range subs {
		if subs[i].Code == code {
			return i
		}
	}
	return -1
}

// copyChapter detaches the merged tree from its source analysis so a
// later merge never mutates an earlier result.
func copyChapter(ch wbs.Chapter) wbs.Chapter {
	out := ch
	out.SubChapters = nil
	for _, sc := range ch.SubChapters {
		out.SubChapters = append(out.SubChapters, copySubChapter(sc))
	}
	return out
}

func copySubChapter(sc wbs.SubChapter) wbs.SubChapter {
	out := sc
	out.Articles = append([]wbs.Article(nil), sc.Articles...)
	return out
}

// Occupancy indicators for the building-type guess. Matching is against
// lowercased element names and space names.
var (
	residentialHints = []string{"apartment", "dwelling", "flat", "bedroom", "residential", "housing", "logement", "wohnung"}
	commercialHints  = []string{"office", "retail", "shop", "commercial", "meeting", "conference", "bureau", "store"}
)

func deriveMetadata(elements []ifc.Element, fileCount int) Metadata {
	md := Metadata{
		ElementCount: len(elements),
		FileCount:    fileCount,
		BuildingType: BuildingUnknown,
	}

	storeys := make(map[string]bool)
	var residential, commercial int
	for _, el := range elements {
		if el.Storey != "" {
			storeys[el.Storey] = true
		}
		if el.Category == ifc.CategorySlab && el.Quantities.Area != nil {
			md.GrossFloorArea += *el.Quantities.Area
		}
		for name, value := range el.Properties {
			if strings.Contains(strings.ToUpper(name), "ELEVATION") {
				if v, ok := asFloat(value); ok && v > md.BuildingHeight {
					md.BuildingHeight = v
				}
			}
		}
		lower := strings.ToLower(el.Name)
		if containsAny(lower, residentialHints) {
			residential++
		}
		if containsAny(lower, commercialHints) {
			commercial++
		}
	}

	md.FloorCount = len(storeys)
	for s := range storeys {
		md.Storeys = append(md.Storeys, s)
	}
	sort.Strings(md.Storeys)

	switch {
	case residential > 0 && commercial > 0:
		md.BuildingType = BuildingMixed
	case residential > 0:
		md.BuildingType = BuildingResidential
	case commercial > 0:
		md.BuildingType = BuildingCommercial
	}
	return md
}

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
