package ifc

import (
	"regexp"
	"strconv"
	"strings"

	"takeoff/internal/step"
)

// Plausibility bounds per quantity kind. Vendor exports occasionally
// leak placement coordinates or unit-conversion artifacts into quantity
// records; values outside these ranges are rejected.
const (
	maxPlausibleArea   = 100000.0
	maxPlausibleVolume = 50000.0
	maxPlausibleLength = 10000.0
	maxPlausibleWeight = 1000000.0
)

// resolver walks the relationship records of one indexed file. All
// lookups go through the reverse-reference index, so resolving one
// element is proportional to the records that actually mention it.
type resolver struct {
	idx  *step.Index
	diag Diag
}

// relationshipsOf returns the records of relType whose related-objects
// list mentions elemID.
func (r *resolver) relationshipsOf(elemID int, relType string) []step.Record {
	var out []step.Record
	for _, rid := range r.idx.Referrers(elemID) {
		rec, ok := r.idx.Get(rid)
		if !ok {
			continue
		}
		if rec.Type() == relType {
			out = append(out, rec)
		}
	}
	return out
}

// follow resolves the closing reference of a relationship record.
func (r *resolver) follow(rel step.Record) (step.Record, bool) {
	target, ok := step.LastReference(rel.Body)
	if !ok {
		r.diag.UnresolvedRefs++
		return step.Record{}, false
	}
	rec, ok := r.idx.Get(target)
	if !ok {
		r.diag.UnresolvedRefs++
		return step.Record{}, false
	}
	return rec, true
}

// resolveProperties follows every property-definition relationship of
// the element into either a quantity set or a property set, and folds
// the decoded values into el.
func (r *resolver) resolveProperties(el *Element) {
	for _, rel := range r.relationshipsOf(el.ID, "IFCRELDEFINESBYPROPERTIES") {
		set, ok := r.follow(rel)
		if !ok {
			continue
		}
		switch set.Type() {
		case "IFCELEMENTQUANTITY":
			r.resolveQuantitySet(el, set)
		case "IFCPROPERTYSET":
			r.resolvePropertySet(el, set)
		}
	}
}

func (r *resolver) resolveQuantitySet(el *Element, set step.Record) {
	for _, qid := range step.ReferencedIDs(set.Body) {
		q, ok := r.idx.Get(qid)
		if !ok {
			r.diag.UnresolvedRefs++
			continue
		}
		v, ok := step.LastFloat(q.Body)
		if !ok || v < 0 {
			continue
		}
		name := strings.ToUpper(firstQuoted(q.Body))
		switch q.Type() {
		case "IFCQUANTITYAREA":
			if v <= maxPlausibleArea {
				setIfNil(&el.Quantities.Area, v)
			}
		case "IFCQUANTITYVOLUME":
			if v <= maxPlausibleVolume {
				setIfNil(&el.Quantities.Volume, v)
			}
		case "IFCQUANTITYLENGTH":
			if v > maxPlausibleLength {
				continue
			}
			// Length quantities carry width/height/depth under their
			// measurement name.
			switch {
			case strings.Contains(name, "WIDTH"):
				setIfNil(&el.Quantities.Width, v)
			case strings.Contains(name, "HEIGHT"):
				setIfNil(&el.Quantities.Height, v)
			case strings.Contains(name, "DEPTH"):
				setIfNil(&el.Quantities.Depth, v)
			case strings.Contains(name, "THICKNESS"):
				setIfNil(&el.Quantities.Thickness, v)
			default:
				setIfNil(&el.Quantities.Length, v)
			}
		case "IFCQUANTITYWEIGHT":
			if v <= maxPlausibleWeight {
				setIfNil(&el.Quantities.Weight, v)
			}
		}
	}
}

func (r *resolver) resolvePropertySet(el *Element, set step.Record) {
	quoted := step.QuotedStrings(set.Body)
	setName := ""
	if len(quoted) > 1 {
		setName = quoted[1]
	}
	for _, pid := range step.ReferencedIDs(set.Body) {
		p, ok := r.idx.Get(pid)
		if !ok {
			r.diag.UnresolvedRefs++
			continue
		}
		if p.Type() != "IFCPROPERTYSINGLEVALUE" {
			continue
		}
		name := firstQuoted(p.Body)
		if name == "" {
			continue
		}
		value, ok := decodeValue(p.Body)
		if !ok {
			r.diag.UnknownPropertyValues++
			continue
		}
		el.assimilate(setName, name, value)
	}
}

// resolveMaterials collects material names, descending through layered
// assemblies down to each layer's material.
func (r *resolver) resolveMaterials(el *Element) {
	for _, rel := range r.relationshipsOf(el.ID, "IFCRELASSOCIATESMATERIAL") {
		mat, ok := r.follow(rel)
		if !ok {
			continue
		}
		el.Materials = append(el.Materials, r.materialNames(mat)...)
	}
}

func (r *resolver) materialNames(rec step.Record) []string {
	switch rec.Type() {
	case "IFCMATERIAL":
		if name := firstQuoted(rec.Body); name != "" {
			return []string{name}
		}
	case "IFCMATERIALLAYERSETUSAGE":
		for _, id := range step.ReferencedIDs(rec.Body) {
			layerSet, ok := r.idx.Get(id)
			if !ok {
				r.diag.UnresolvedRefs++
				continue
			}
			if layerSet.Type() == "IFCMATERIALLAYERSET" {
				return r.materialNames(layerSet)
			}
		}
	case "IFCMATERIALLAYERSET", "IFCMATERIALLIST":
		var names []string
		for _, id := range step.ReferencedIDs(rec.Body) {
			child, ok := r.idx.Get(id)
			if !ok {
				r.diag.UnresolvedRefs++
				continue
			}
			names = append(names, r.materialNames(child)...)
		}
		return names
	case "IFCMATERIALLAYER":
		for _, id := range step.ReferencedIDs(rec.Body) {
			child, ok := r.idx.Get(id)
			if !ok {
				r.diag.UnresolvedRefs++
				continue
			}
			if child.Type() == "IFCMATERIAL" {
				return r.materialNames(child)
			}
		}
	}
	return nil
}

// resolveClassification extracts the reference code of the first
// classification association.
func (r *resolver) resolveClassification(el *Element) {
	for _, rel := range r.relationshipsOf(el.ID, "IFCRELASSOCIATESCLASSIFICATION") {
		ref, ok := r.follow(rel)
		if !ok {
			continue
		}
		if ref.Type() != "IFCCLASSIFICATIONREFERENCE" {
			continue
		}
		quoted := step.QuotedStrings(ref.Body)
		// Location, ItemReference, Name: the item reference is the code.
		switch {
		case len(quoted) > 1 && quoted[1] != "":
			el.Classification = quoted[1]
			return
		case len(quoted) > 0 && quoted[0] != "":
			el.Classification = quoted[0]
			return
		}
	}
}

// resolveStorey extracts the name of the containing storey.
func (r *resolver) resolveStorey(el *Element) {
	for _, rel := range r.relationshipsOf(el.ID, "IFCRELCONTAINEDINSPATIALSTRUCTURE") {
		storey, ok := r.follow(rel)
		if !ok {
			continue
		}
		quoted := step.QuotedStrings(storey.Body)
		if len(quoted) > 1 && quoted[1] != "" {
			el.Storey = quoted[1]
			return
		}
	}
}

// Value-wrapper kinds in decode priority order; the first wrapper found
// in the record body wins.
var valueWrappers = []struct {
	pattern *regexp.Regexp
	kind    string
}{
	{regexp.MustCompile(`IFCREAL\(\s*([^)\s]+)\s*\)`), "real"},
	{regexp.MustCompile(`IFCBOOLEAN\(\s*\.([TF])\.\s*\)`), "bool"},
	{regexp.MustCompile(`IFCLABEL\(\s*'((?:[^']|'')*)'\s*\)`), "string"},
	{regexp.MustCompile(`IFCTEXT\(\s*'((?:[^']|'')*)'\s*\)`), "string"},
	{regexp.MustCompile(`IFCINTEGER\(\s*(-?\d+)\s*\)`), "int"},
	{regexp.MustCompile(`IFCTHERMALTRANSMITTANCEMEASURE\(\s*([^)\s]+)\s*\)`), "real"},
	{regexp.MustCompile(`IFCPOSITIVELENGTHMEASURE\(\s*([^)\s]+)\s*\)`), "real"},
	{regexp.MustCompile(`IFCAREAMEASURE\(\s*([^)\s]+)\s*\)`), "real"},
}

// decodeValue decodes the wrapped scalar of a single-value property.
// Returns false when no known wrapper kind matches.
func decodeValue(body string) (any, bool) {
	for _, w := range valueWrappers {
		m := w.pattern.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		switch w.kind {
		case "real":
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			return v, true
		case "bool":
			return m[1] == "T", true
		case "string":
			return step.DecodeText(strings.ReplaceAll(m[1], "''", "'")), true
		case "int":
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

// assimilate routes a decoded property into the element's reserved
// fields or, failing that, its generic maps.
func (el *Element) assimilate(setName, name string, value any) {
	if el.Properties == nil {
		el.Properties = make(map[string]any)
	}
	if el.PropertySets == nil {
		el.PropertySets = make(map[string]map[string]any)
	}
	if setName != "" {
		if el.PropertySets[setName] == nil {
			el.PropertySets[setName] = make(map[string]any)
		}
		el.PropertySets[setName][name] = value
	}
	if _, exists := el.Properties[name]; !exists {
		el.Properties[name] = value
	}

	switch strings.ToUpper(name) {
	case "ISEXTERNAL":
		if b, ok := value.(bool); ok && el.IsExternal == nil {
			el.IsExternal = boolPtr(b)
		}
	case "LOADBEARING":
		if b, ok := value.(bool); ok && el.LoadBearing == nil {
			el.LoadBearing = boolPtr(b)
		}
	case "HANDICAPACCESSIBLE", "ISACCESSIBLE", "ACCESSIBLE":
		if b, ok := value.(bool); ok && el.Accessible == nil {
			el.Accessible = boolPtr(b)
		}
	case "THERMALTRANSMITTANCE":
		if v, ok := toFloat(value); ok {
			setIfNil(&el.ThermalTransmittance, v)
		}
	case "SOLARFACTOR", "SOLARHEATGAINCOEFFICIENT", "GVALUE":
		if v, ok := toFloat(value); ok {
			setIfNil(&el.SolarFactor, v)
		}
	case "FIRERATING":
		if s, ok := value.(string); ok && el.FireRating == "" {
			el.FireRating = s
		}
	case "ACOUSTICRATING":
		if s, ok := value.(string); ok && el.AcousticRating == "" {
			el.AcousticRating = s
		}
	case "WIDTH", "THICKNESS", "NOMINALTHICKNESS":
		if v, ok := toFloat(value); ok {
			setIfNil(&el.Quantities.Thickness, v)
		}
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func firstQuoted(body string) string {
	quoted := step.QuotedStrings(body)
	if len(quoted) == 0 {
		return ""
	}
	return quoted[0]
}
