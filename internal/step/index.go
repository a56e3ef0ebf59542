// Package step indexes STEP physical-file entity records. Each logical
// record is one line of the form `#<id> = <TYPE>(<args>);`. The source
// format permits multi-line statements; this indexer is line-oriented
// and ignores continuation lines (known limitation).
package step

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var recordLine = regexp.MustCompile(`^#(\d+)\s*=\s*(.+)$`)

// Record is one numbered statement: an opaque id plus the raw body after
// the `=`, with the terminating `;` stripped.
type Record struct {
	ID   int
	Body string
}

// Type returns the record's entity type tag: the first parenthesis-prefixed
// token of the body, upper-cased. Empty when the body carries no call shape.
func (r Record) Type() string {
	open := strings.IndexByte(r.Body, '(')
	if open <= 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(r.Body[:open]))
}

// Index is an arena of records for one file, with secondary lookups built
// once at construction: by entity type, and a reverse index from
// referenced id to the ids of records that reference it.
type Index struct {
	records map[int]Record
	byType  map[string][]int
	refs    map[int][]int

	// SkippedLines counts non-empty lines that did not match the record
	// shape. Exposed so silent data loss is at least observable.
	SkippedLines int
}

// NewIndex tokenizes raw file text into an Index. Lines that do not match
// the `#<id> = <body>` shape are counted and otherwise ignored.
func NewIndex(content string) *Index {
	idx := &Index{
		records: make(map[int]Record),
		byType:  make(map[string][]int),
		refs:    make(map[int][]int),
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		m := recordLine.FindStringSubmatch(trimmed)
		if m == nil {
			idx.SkippedLines++
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			idx.SkippedLines++
			continue
		}
		body := strings.TrimSuffix(strings.TrimSpace(m[2]), ";")
		rec := Record{ID: id, Body: body}
		idx.records[id] = rec
		if tag := rec.Type(); tag != "" {
			idx.byType[tag] = append(idx.byType[tag], id)
		}
	}

	for id, rec := range idx.records {
		for _, target := range ReferencedIDs(rec.Body) {
			idx.refs[target] = append(idx.refs[target], id)
		}
	}
	// Map iteration above is unordered; referrer lists are sorted so
	// downstream resolution is reproducible.
	for _, ids := range idx.refs {
		sort.Ints(ids)
	}

	return idx
}

// Get returns the record for id.
func (idx *Index) Get(id int) (Record, bool) {
	rec, ok := idx.records[id]
	return rec, ok
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// OfType returns the ids of all records whose type tag equals tag
// (case-insensitive).
func (idx *Index) OfType(tag string) []int {
	return idx.byType[strings.ToUpper(tag)]
}

// Referrers returns the ids of records whose body references id. The
// boundary-safe match in ReferencedIDs guarantees #12 never matches
// inside #123.
func (idx *Index) Referrers(id int) []int {
	return idx.refs[id]
}

// Each calls fn for every indexed record. Iteration order is unspecified.
func (idx *Index) Each(fn func(Record)) {
	for _, rec := range idx.records {
		fn(rec)
	}
}

// Types returns every distinct type tag with its occurrence count.
func (idx *Index) Types() map[string]int {
	counts := make(map[string]int, len(idx.byType))
	for tag, ids := range idx.byType {
		counts[tag] = len(ids)
	}
	return counts
}
