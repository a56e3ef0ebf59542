package ifc

import (
	"regexp"
	"sort"
	"strconv"

	"takeoff/internal/step"
)

const (
	// Opening dimensions above this are decode noise, not doors.
	maxOpeningDimension = 10.0
	// Back-calculated member lengths are capped at a plausible span.
	maxMemberLength = 12.0
	// Section tokens outside this millimeter range are not cross-sections.
	minSectionMM = 30.0
	maxSectionMM = 3000.0
)

// sectionToken matches the vendor "WIDTHxDEPTHmm" shape embedded in
// structural member names, e.g. "Concrete Column 300x600mm".
var sectionToken = regexp.MustCompile(`(\d{2,4})\s*[xX]\s*(\d{2,4})\s*(?:mm|MM)?`)

// Extract produces one Element per allowlisted, non-template entity of
// the file, with its relationships resolved and dimensions inferred.
// Elements are ordered by entity id so output is deterministic.
func Extract(idx *step.Index) ([]Element, Diag) {
	r := &resolver{idx: idx}

	var ids []int
	idx.Each(func(rec step.Record) {
		if _, ok := CategoryOf(rec.Type()); ok {
			ids = append(ids, rec.ID)
		}
	})
	sort.Ints(ids)

	elements := make([]Element, 0, len(ids))
	for _, id := range ids {
		rec, _ := idx.Get(id)
		elements = append(elements, r.extractElement(rec))
	}
	return elements, r.diag
}

func (r *resolver) extractElement(rec step.Record) Element {
	cat, _ := CategoryOf(rec.Type())
	el := Element{
		ID:       rec.ID,
		Type:     rec.Type(),
		Category: cat,
	}

	quoted := step.QuotedStrings(rec.Body)
	if len(quoted) > 0 {
		el.GlobalID = quoted[0]
	}
	if len(quoted) > 1 {
		el.Name = quoted[1]
	}

	r.resolveProperties(&el)
	r.resolveMaterials(&el)
	r.resolveClassification(&el)
	r.resolveStorey(&el)

	if openingCategories[el.Category] {
		inferOpeningDimensions(&el, rec.Body)
	}
	if structuralCategories[el.Category] {
		inferSectionDimensions(&el)
	}

	return el
}

// inferOpeningDimensions reads the overall height and width a window or
// door record carries as its two trailing numeric fields.
func inferOpeningDimensions(el *Element, body string) {
	nums := step.Numbers(body)
	if len(nums) < 2 {
		return
	}
	height := nums[len(nums)-2]
	width := nums[len(nums)-1]
	if height <= 0 || height > maxOpeningDimension || width <= 0 || width > maxOpeningDimension {
		return
	}
	setIfNil(&el.Quantities.Height, height)
	setIfNil(&el.Quantities.Width, width)
	setIfNil(&el.Quantities.Area, height*width)
}

// inferSectionDimensions parses a cross-section token out of the member
// name and, when a measured volume exists, back-calculates an effective
// length. The cap keeps decode noise from producing absurd spans.
func inferSectionDimensions(el *Element) {
	m := sectionToken.FindStringSubmatch(el.Name)
	if m == nil {
		return
	}
	widthMM, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}
	depthMM, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return
	}
	if widthMM < minSectionMM || widthMM > maxSectionMM || depthMM < minSectionMM || depthMM > maxSectionMM {
		return
	}

	width := widthMM / 1000
	depth := depthMM / 1000
	setIfNil(&el.Quantities.Width, width)
	setIfNil(&el.Quantities.Depth, depth)

	if el.Quantities.Volume != nil && el.Quantities.Length == nil {
		length := *el.Quantities.Volume / (width * depth)
		if length > maxMemberLength {
			length = maxMemberLength
		}
		if length > 0 {
			el.Quantities.Length = floatPtr(length)
		}
	}
}
