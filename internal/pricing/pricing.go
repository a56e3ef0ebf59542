// Package pricing loads a unit-price catalog and matches takeoff
// articles against it by description. The catalog is an explicit value
// owned by the caller; nothing here is process-global.
package pricing

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when a catalog file parses but contains
// no items.
var ErrEmptyCatalog = errors.New("pricing catalog has no items")

// Item is one priced line of the catalog.
type Item struct {
	Code        string   `yaml:"code" json:"code"`
	Description string   `yaml:"description" json:"description"`
	Unit        string   `yaml:"unit" json:"unit"`
	UnitPrice   float64  `yaml:"unit_price" json:"unit_price"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

type catalogFile struct {
	Currency string `yaml:"currency"`
	Items    []Item `yaml:"items"`
}

// Catalog is a loaded price list plus derived match indexes. The zero
// value is empty and safe to query; Load and Refresh replace its whole
// contents, Reset empties it.
type Catalog struct {
	path     string
	currency string
	items    []Item
	byCode   map[string]int
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	c := &Catalog{}
	if err := c.load(path); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading pricing catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("loading pricing catalog: %w", err)
	}
	if len(file.Items) == 0 {
		return fmt.Errorf("loading pricing catalog %s: %w", path, ErrEmptyCatalog)
	}

	byCode := make(map[string]int, len(file.Items))
	for i, item := range file.Items {
		if strings.TrimSpace(item.Code) == "" {
			return fmt.Errorf("loading pricing catalog %s: item %d has no code", path, i)
		}
		if _, exists := byCode[item.Code]; exists {
			return fmt.Errorf("loading pricing catalog %s: duplicate code %s", path, item.Code)
		}
		byCode[item.Code] = i
	}

	c.path = path
	c.currency = file.Currency
	c.items = file.Items
	c.byCode = byCode
	return nil
}

// Refresh re-reads the file the catalog was loaded from. On failure the
// previous contents stay in place.
func (c *Catalog) Refresh() error {
	if c.path == "" {
		return errors.New("refreshing pricing catalog: nothing loaded")
	}
	next := &Catalog{}
	if err := next.load(c.path); err != nil {
		return err
	}
	*c = *next
	return nil
}

// Reset empties the catalog. The load path is kept so Refresh can
// restore it.
func (c *Catalog) Reset() {
	c.currency = ""
	c.items = nil
	c.byCode = nil
}

// Len reports the number of loaded items.
func (c *Catalog) Len() int { return len(c.items) }

// Currency reports the catalog's declared currency, if any.
func (c *Catalog) Currency() string { return c.currency }

// ByCode returns the item with the exact code, if present.
func (c *Catalog) ByCode(code string) (Item, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Match is one scored catalog candidate for a query description.
type Match struct {
	Item  Item    `json:"item"`
	Score float64 `json:"score"`
}

// Scoring mix: token overlap carries most of the weight, string
// similarity breaks ties between items sharing the same vocabulary.
const (
	tokenWeight      = 0.7
	similarityWeight = 0.3
	minMatchScore    = 0.25
)

// BestMatch returns the highest-scoring item for the query, or false
// when nothing scores above the match floor.
func (c *Catalog) BestMatch(query string) (Match, bool) {
	matches := c.TopMatches(query, 1)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// TopMatches returns up to limit candidates ordered by descending
// score, dropping everything below the match floor.
func (c *Catalog) TopMatches(query string, limit int) []Match {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || limit <= 0 {
		return nil
	}

	var matches []Match
	for _, item := range c.items {
		score := score(queryTokens, strings.ToLower(query), item)
		if score < minMatchScore {
			continue
		}
		matches = append(matches, Match{Item: item, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func score(queryTokens map[string]bool, queryLower string, item Item) float64 {
	itemTokens := tokenize(item.Description)
	for _, kw := range item.Keywords {
		for t := range tokenize(kw) {
			itemTokens[t] = true
		}
	}
	if len(itemTokens) == 0 {
		return 0
	}

	var hits int
	for t := range queryTokens {
		if itemTokens[t] {
			hits++
		}
	}
	overlap := float64(hits) / float64(len(queryTokens))

	similarity := levenshtein.Similarity(queryLower, strings.ToLower(item.Description), nil)

	return tokenWeight*overlap + similarityWeight*similarity
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-character fragments.
func tokenize(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r >= 'à' && r <= 'ÿ')
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		tokens[f] = true
	}
	return tokens
}
