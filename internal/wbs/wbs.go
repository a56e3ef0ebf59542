// Package wbs synthesizes a coded work-breakdown structure from
// extracted element records. Codes come from fixed per-specialty
// catalogs; quantities are measured where the model provides them and
// assumed per-element defaults otherwise, so a group never yields a
// zero, unexplainable quantity.
package wbs

// Article is a costed line: one classification code with a measured
// quantity and the ids of the elements that produced it.
type Article struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Quantity    float64  `json:"quantity"`
	Keynote     string   `json:"keynote,omitempty"`
	Elements    []string `json:"elements,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SubChapter groups articles under a two-level code such as "08.01".
// Article codes are unique within a subchapter.
type SubChapter struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Articles    []Article `json:"articles"`
}

// Chapter is the top grouping level, e.g. "08" for walls and partitions.
type Chapter struct {
	Code        string       `json:"code"`
	Description string       `json:"description"`
	SubChapters []SubChapter `json:"subchapters"`
}

// FindSubChapter returns the subchapter with code, if present.
func (c *Chapter) FindSubChapter(code string) *SubChapter {
	for i := range c.SubChapters {
		if c.SubChapters[i].Code == code {
			return &c.SubChapters[i]
		}
	}
	return nil
}

// FindArticle returns the article with code, if present.
func (s *SubChapter) FindArticle(code string) *Article {
	for i := range s.Articles {
		if s.Articles[i].Code == code {
			return &s.Articles[i]
		}
	}
	return nil
}
