// Package ifc turns an indexed STEP file into discipline-classified,
// quantity-bearing element records. Resolution is best-effort: vendor
// exports are messy, so unresolvable references are skipped and counted
// rather than surfaced as errors.
package ifc

// Quantities is the measured-dimension bag of an element. Fields are nil
// when the model carries no usable value; populated values are always
// non-negative.
type Quantities struct {
	Area      *float64 `json:"area,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	Length    *float64 `json:"length,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Depth     *float64 `json:"depth,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
}

// Element is one resolved building element. Commonly consulted
// attributes are explicit optional fields; everything else lands in
// Properties and, keyed by property-set name, in PropertySets.
type Element struct {
	ID             int        `json:"id"`
	Type           string     `json:"type"`
	Category       Category   `json:"category"`
	GlobalID       string     `json:"global_id,omitempty"`
	Name           string     `json:"name,omitempty"`
	Storey         string     `json:"storey,omitempty"`
	Classification string     `json:"classification,omitempty"`
	Materials      []string   `json:"materials,omitempty"`
	Quantities     Quantities `json:"quantities"`

	IsExternal           *bool    `json:"is_external,omitempty"`
	LoadBearing          *bool    `json:"load_bearing,omitempty"`
	Accessible           *bool    `json:"accessible,omitempty"`
	ThermalTransmittance *float64 `json:"thermal_transmittance,omitempty"`
	SolarFactor          *float64 `json:"solar_factor,omitempty"`
	FireRating           string   `json:"fire_rating,omitempty"`
	AcousticRating       string   `json:"acoustic_rating,omitempty"`

	Properties   map[string]any            `json:"properties,omitempty"`
	PropertySets map[string]map[string]any `json:"property_sets,omitempty"`
}

// Diag counts silently skipped resolution work so data loss stays
// observable without changing the parse-and-continue contract.
type Diag struct {
	UnresolvedRefs        int
	UnknownPropertyValues int
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

// setIfNil assigns v to *dst only when no value resolved earlier; first
// resolution wins throughout the extractor.
func setIfNil(dst **float64, v float64) {
	if *dst == nil && v >= 0 {
		*dst = floatPtr(v)
	}
}
