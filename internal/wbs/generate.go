package wbs

import "takeoff/internal/ifc"

// Generate synthesizes the fixed-code WBS chapters for one file's
// elements under its detected specialty. Chapters and articles come out
// in catalog order, so output is deterministic. Unknown specialties (or
// files with no grouped elements) yield no chapters.
func Generate(elements []ifc.Element, specialty ifc.Specialty) []Chapter {
	allowed := specialtyGroups[specialty]
	if allowed == nil {
		return nil
	}

	groups := make(map[string][]ifc.Element)
	for _, el := range elements {
		group := groupOf(el)
		if !allowed[group] {
			continue
		}
		groups[group] = append(groups[group], el)
	}

	var chapters []Chapter
	for _, e := range catalog {
		members := groups[e.group]
		if len(members) == 0 {
			continue
		}
		article := buildArticle(e, members)

		chapter := findOrAddChapter(&chapters, e)
		sub := chapter.FindSubChapter(e.subCode)
		if sub == nil {
			chapter.SubChapters = append(chapter.SubChapters, SubChapter{
				Code:        e.subCode,
				Description: e.subDesc,
			})
			sub = &chapter.SubChapters[len(chapter.SubChapters)-1]
		}
		sub.Articles = append(sub.Articles, article)
	}
	return chapters
}

func findOrAddChapter(chapters *[]Chapter, e entry) *Chapter {
	for i := range *chapters {
		if (*chapters)[i].Code == e.chapterCode {
			return &(*chapters)[i]
		}
	}
	*chapters = append(*chapters, Chapter{
		Code:        e.chapterCode,
		Description: e.chapterDesc,
	})
	return &(*chapters)[len(*chapters)-1]
}

func buildArticle(e entry, members []ifc.Element) Article {
	article := Article{
		Code:        e.articleCode,
		Description: e.articleDesc,
		Unit:        e.unit,
		Tags:        e.tags,
	}

	for _, el := range members {
		article.Elements = append(article.Elements, el.GlobalID)
		article.Quantity += contribution(e, el)
		if article.Keynote == "" && el.Classification != "" {
			article.Keynote = el.Classification
		}
	}
	return article
}

// contribution computes one element's share of the group quantity:
// measured when available, assumed otherwise, always bounded.
func contribution(e entry, el ifc.Element) float64 {
	q := el.Quantities
	var v float64
	switch e.measure {
	case measureCount:
		return 1
	case measureArea:
		if q.Area != nil {
			v = *q.Area
		}
	case measureVolume:
		switch {
		case q.Volume != nil:
			v = *q.Volume
		case q.Width != nil && q.Depth != nil:
			// Back out a volume from the cross-section and an assumed
			// typical height or span.
			length := assumedStoreyHeight
			if el.Category == ifc.CategoryBeam {
				length = assumedBeamSpan
			}
			if q.Length != nil {
				length = *q.Length
			}
			v = *q.Width * *q.Depth * length
		}
	case measureLength:
		if q.Length != nil {
			v = *q.Length
		}
	}

	if v <= 0 {
		v = e.perElement
	}
	if e.capPerElement > 0 && v > e.capPerElement {
		v = e.capPerElement
	}
	return v
}
