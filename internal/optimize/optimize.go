// Package optimize derives design-review findings from extracted element
// records. Rules are fixed-threshold heuristics scoped to the file's
// detected specialty; there is no calibration step.
package optimize

import (
	"fmt"
	"sort"
	"strings"

	"takeoff/internal/ifc"
)

// Kind tags what a finding is about.
type Kind string

const (
	KindStandardization Kind = "standardization"
	KindRedundancy      Kind = "redundancy"
	KindSizing          Kind = "sizing"
	KindMaterial        Kind = "material"
	KindCoordination    Kind = "coordination"
	KindCost            Kind = "cost"
)

// Severity orders findings for presentation.
type Severity string

const (
	SeverityInfo       Severity = "info"
	SeveritySuggestion Severity = "suggestion"
	SeverityWarning    Severity = "warning"
)

// Finding is one derived observation with the elements that triggered it.
type Finding struct {
	Kind        Kind     `json:"kind"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Elements    []string `json:"elements,omitempty"` // global ids
	Savings     string   `json:"savings,omitempty"`  // optional estimate, free text
}

const (
	maxWallThicknessVariants = 4
	maxWindowSizeVariants    = 6
	minWindowsForVariantRule = 8
	minIdenticalOpenings     = 10
	maxWallMaterialVariants  = 3
	maxColumnSectionVariants = 3
	longBeamSpan             = 8.0
	maxPipeDiameterVariants  = 5
)

// Analyze runs the specialty's rule set over one file's elements.
// Findings are deterministic: grouped keys are sorted before reporting.
func Analyze(elements []ifc.Element, specialty ifc.Specialty) []Finding {
	switch specialty {
	case ifc.SpecialtyArchitecture:
		return analyzeArchitecture(elements)
	case ifc.SpecialtyStructure:
		return analyzeStructure(elements)
	case ifc.SpecialtyPlumbing, ifc.SpecialtyHVAC, ifc.SpecialtyElectrical,
		ifc.SpecialtyFireSafety, ifc.SpecialtyTelecom, ifc.SpecialtyGas:
		return analyzeMEP(elements, specialty)
	}
	return nil
}

func analyzeArchitecture(elements []ifc.Element) []Finding {
	var findings []Finding

	walls := ofCategory(elements, ifc.CategoryWall)
	windows := ofCategory(elements, ifc.CategoryWindow)
	doors := ofCategory(elements, ifc.CategoryDoor)

	if f, ok := wallThicknessRule(walls); ok {
		findings = append(findings, f)
	}
	if f, ok := openingVariantRule(windows, "window"); ok {
		findings = append(findings, f)
	}
	if f, ok := identicalOpeningRule(append(windows, doors...)); ok {
		findings = append(findings, f)
	}
	if f, ok := wallMaterialRule(walls); ok {
		findings = append(findings, f)
	}

	return findings
}

func wallThicknessRule(walls []ifc.Element) (Finding, bool) {
	variants := make(map[string][]string)
	for _, w := range walls {
		if w.Quantities.Thickness == nil {
			continue
		}
		key := fmt.Sprintf("%.0f", *w.Quantities.Thickness*1000)
		variants[key] = append(variants[key], w.GlobalID)
	}
	if len(variants) <= maxWallThicknessVariants {
		return Finding{}, false
	}
	return Finding{
		Kind:     KindStandardization,
		Severity: SeveritySuggestion,
		Title:    "Excessive wall thickness variants",
		Description: fmt.Sprintf(
			"%d distinct wall thicknesses found (%s mm); reducing to %d or fewer simplifies setting out and procurement",
			len(variants), strings.Join(sortedKeys(variants), ", "), maxWallThicknessVariants),
		Elements: flatten(variants),
	}, true
}

func openingVariantRule(openings []ifc.Element, label string) (Finding, bool) {
	sizes := make(map[string][]string)
	for _, o := range openings {
		if o.Quantities.Width == nil || o.Quantities.Height == nil {
			continue
		}
		key := fmt.Sprintf("%.2fx%.2f", *o.Quantities.Width, *o.Quantities.Height)
		sizes[key] = append(sizes[key], o.GlobalID)
	}
	if len(openings) <= minWindowsForVariantRule || len(sizes) <= maxWindowSizeVariants {
		return Finding{}, false
	}
	return Finding{
		Kind:     KindStandardization,
		Severity: SeveritySuggestion,
		Title:    fmt.Sprintf("Too many %s sizes", label),
		Description: fmt.Sprintf(
			"%d distinct %s sizes across %d units; a reduced size palette lowers joinery cost",
			len(sizes), label, len(openings)),
		Elements: flatten(sizes),
		Savings:  "5-10% on joinery procurement",
	}, true
}

func identicalOpeningRule(openings []ifc.Element) (Finding, bool) {
	sizes := make(map[string][]string)
	for _, o := range openings {
		if o.Quantities.Width == nil || o.Quantities.Height == nil {
			continue
		}
		key := fmt.Sprintf("%.2fx%.2f", *o.Quantities.Width, *o.Quantities.Height)
		sizes[key] = append(sizes[key], o.GlobalID)
	}
	for _, key := range sortedKeys(sizes) {
		ids := sizes[key]
		if len(ids) >= minIdenticalOpenings {
			return Finding{
				Kind:     KindRedundancy,
				Severity: SeverityInfo,
				Title:    "Repeated opening size",
				Description: fmt.Sprintf(
					"%d openings share size %s m; modelling them as a typed family keeps schedules consistent",
					len(ids), key),
				Elements: ids,
			}, true
		}
	}
	return Finding{}, false
}

func wallMaterialRule(walls []ifc.Element) (Finding, bool) {
	palette := make(map[string][]string)
	for _, w := range walls {
		for _, m := range w.Materials {
			palette[m] = append(palette[m], w.GlobalID)
		}
	}
	if len(palette) <= maxWallMaterialVariants {
		return Finding{}, false
	}
	return Finding{
		Kind:     KindMaterial,
		Severity: SeveritySuggestion,
		Title:    "Broad wall material palette",
		Description: fmt.Sprintf(
			"walls use %d distinct materials (%s); consolidating reduces waste and trade changeovers",
			len(palette), strings.Join(sortedKeys(palette), ", ")),
		Elements: flatten(palette),
	}, true
}

func analyzeStructure(elements []ifc.Element) []Finding {
	var findings []Finding

	beams := ofCategory(elements, ifc.CategoryBeam)
	columns := ofCategory(elements, ifc.CategoryColumn)

	var longBeams []string
	for _, b := range beams {
		if b.Quantities.Length != nil && *b.Quantities.Length > longBeamSpan {
			longBeams = append(longBeams, b.GlobalID)
		}
	}
	if len(longBeams) > 0 {
		findings = append(findings, Finding{
			Kind:     KindSizing,
			Severity: SeverityWarning,
			Title:    "Long beam spans",
			Description: fmt.Sprintf(
				"%d beams span more than %.0f m; consider pre-stressed or composite sections",
				len(longBeams), longBeamSpan),
			Elements: longBeams,
		})
	}

	sections := make(map[string][]string)
	for _, c := range columns {
		if c.Quantities.Width == nil || c.Quantities.Depth == nil {
			continue
		}
		key := fmt.Sprintf("%.0fx%.0f", *c.Quantities.Width*1000, *c.Quantities.Depth*1000)
		sections[key] = append(sections[key], c.GlobalID)
	}
	if len(sections) > maxColumnSectionVariants {
		findings = append(findings, Finding{
			Kind:     KindStandardization,
			Severity: SeveritySuggestion,
			Title:    "Many column section sizes",
			Description: fmt.Sprintf(
				"%d distinct column sections (%s mm); repeating formwork sizes cuts cycle time",
				len(sections), strings.Join(sortedKeys(sections), ", ")),
			Elements: flatten(sections),
		})
	}

	if f, ok := concreteVolumeRule(elements); ok {
		findings = append(findings, f)
	}

	return findings
}

func concreteVolumeRule(elements []ifc.Element) (Finding, bool) {
	structural := map[ifc.Category]bool{
		ifc.CategoryBeam: true, ifc.CategoryColumn: true, ifc.CategorySlab: true,
		ifc.CategoryFooting: true, ifc.CategoryWall: true, ifc.CategoryPile: true,
	}
	total := 0.0
	var ids []string
	for _, el := range elements {
		if !structural[el.Category] || el.Quantities.Volume == nil {
			continue
		}
		total += *el.Quantities.Volume
		ids = append(ids, el.GlobalID)
	}
	if total <= 0 {
		return Finding{}, false
	}
	return Finding{
		Kind:     KindCost,
		Severity: SeverityInfo,
		Title:    "Aggregate structural concrete volume",
		Description: fmt.Sprintf(
			"structural elements total %.1f m3 of measured volume across %d elements",
			total, len(ids)),
		Elements: ids,
	}, true
}

func analyzeMEP(elements []ifc.Element, specialty ifc.Specialty) []Finding {
	var findings []Finding

	counts := make(map[ifc.Category]int)
	for _, el := range elements {
		counts[el.Category]++
	}
	if len(elements) > 0 {
		parts := make([]string, 0, len(counts))
		cats := make([]string, 0, len(counts))
		for cat := range counts {
			cats = append(cats, string(cat))
		}
		sort.Strings(cats)
		for _, cat := range cats {
			parts = append(parts, fmt.Sprintf("%s: %d", cat, counts[ifc.Category(cat)]))
		}
		findings = append(findings, Finding{
			Kind:     KindCoordination,
			Severity: SeverityInfo,
			Title:    fmt.Sprintf("%s element inventory", specialty),
			Description: fmt.Sprintf("%d elements (%s)",
				len(elements), strings.Join(parts, ", ")),
		})
	}

	if specialty == ifc.SpecialtyPlumbing || specialty == ifc.SpecialtyGas {
		if f, ok := pipeDiameterRule(elements); ok {
			findings = append(findings, f)
		}
	}

	return findings
}

func pipeDiameterRule(elements []ifc.Element) (Finding, bool) {
	diameters := make(map[string][]string)
	for _, el := range elements {
		if el.Category != ifc.CategoryPipe && el.Category != ifc.CategoryPipeFitting {
			continue
		}
		d := nominalDiameter(el)
		if d == "" {
			continue
		}
		diameters[d] = append(diameters[d], el.GlobalID)
	}
	if len(diameters) == 0 {
		return Finding{}, false
	}
	severity := SeverityInfo
	desc := fmt.Sprintf("pipework groups into %d nominal diameters (%s)",
		len(diameters), strings.Join(sortedKeys(diameters), ", "))
	if len(diameters) > maxPipeDiameterVariants {
		desc += "; a tighter diameter schedule simplifies fittings stock"
	}
	return Finding{
		Kind:        KindCoordination,
		Severity:    severity,
		Title:       "Pipe diameter groupings",
		Description: desc,
		Elements:    flatten(diameters),
	}, true
}

func nominalDiameter(el ifc.Element) string {
	for _, key := range []string{"NominalDiameter", "DN", "Size", "Diameter"} {
		if v, ok := el.Properties[key]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	upper := strings.ToUpper(el.Name)
	if i := strings.Index(upper, "DN"); i >= 0 {
		end := i + 2
		for end < len(upper) && upper[end] >= '0' && upper[end] <= '9' {
			end++
		}
		if end > i+2 {
			return upper[i:end]
		}
	}
	return ""
}

func ofCategory(elements []ifc.Element, cat ifc.Category) []ifc.Element {
	var out []ifc.Element
	for _, el := range elements {
		if el.Category == cat {
			out = append(out, el)
		}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flatten(m map[string][]string) []string {
	var out []string
	for _, k := range sortedKeys(m) {
		out = append(out, m[k]...)
	}
	return out
}
