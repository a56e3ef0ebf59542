package wbs

import "takeoff/internal/ifc"

// measure selects how a group's quantity is computed.
type measure int

const (
	measureArea measure = iota
	measureVolume
	measureLength
	measureCount
)

// Assumed dimensions used when the model carries no measured value.
const (
	assumedStoreyHeight = 3.0 // m, column height fallback
	assumedBeamSpan     = 5.0 // m, beam length fallback
)

// entry is one fixed catalog line: a takeoff group with its chapter,
// subchapter and article codes and its quantity rule.
type entry struct {
	group       string
	chapterCode string
	chapterDesc string
	subCode     string
	subDesc     string
	articleCode string
	articleDesc string
	unit        string
	measure     measure
	// perElement is the assumed quantity for an element with no usable
	// measurement; capPerElement bounds any single element's contribution.
	perElement    float64
	capPerElement float64
	tags          []string
}

// catalog is the full fixed code table, in output order.
var catalog = []entry{
	{"column", "06", "Structure", "06.01", "Columns", "06.01.001", "Reinforced concrete columns", "m3", measureVolume, 0.27, 15, []string{"structural", "concrete"}},
	{"beam", "06", "Structure", "06.02", "Beams", "06.02.001", "Reinforced concrete beams", "m3", measureVolume, 0.35, 20, []string{"structural", "concrete"}},
	{"slab", "06", "Structure", "06.03", "Slabs", "06.03.001", "Floor slabs", "m2", measureArea, 20, 2000, []string{"structural"}},
	{"footing", "06", "Structure", "06.04", "Foundations", "06.04.001", "Footings", "m3", measureVolume, 1.5, 50, []string{"structural", "foundation"}},
	{"pile", "06", "Structure", "06.04", "Foundations", "06.04.002", "Piles", "m3", measureVolume, 2.0, 60, []string{"structural", "foundation"}},
	{"member", "06", "Structure", "06.05", "Secondary members", "06.05.001", "Structural members", "m3", measureVolume, 0.15, 10, []string{"structural"}},
	{"plate", "06", "Structure", "06.05", "Secondary members", "06.05.002", "Structural plates", "m2", measureArea, 2, 200, []string{"structural"}},
	{"roof", "07", "Roofing", "07.01", "Roofs", "07.01.001", "Roof construction", "m2", measureArea, 25, 3000, nil},
	{"wall-exterior", "08", "Walls and partitions", "08.01", "Exterior walls", "08.01.001", "Exterior walls", "m2", measureArea, 18, 1000, []string{"envelope"}},
	{"wall-interior", "08", "Walls and partitions", "08.02", "Interior walls", "08.02.001", "Interior partitions", "m2", measureArea, 15, 1000, nil},
	{"curtain-wall", "08", "Walls and partitions", "08.03", "Curtain walling", "08.03.001", "Curtain wall systems", "m2", measureArea, 30, 2000, []string{"envelope"}},
	{"stair", "09", "Stairs and railings", "09.01", "Stairs", "09.01.001", "Stair flights", "u", measureCount, 1, 1, nil},
	{"ramp", "09", "Stairs and railings", "09.01", "Stairs", "09.01.002", "Ramps", "u", measureCount, 1, 1, nil},
	{"railing", "09", "Stairs and railings", "09.02", "Railings", "09.02.001", "Railings and balustrades", "m", measureLength, 3, 100, nil},
	{"covering", "10", "Finishes", "10.01", "Coverings", "10.01.001", "Wall and floor coverings", "m2", measureArea, 10, 2000, nil},
	{"window", "15", "Doors and windows", "15.01", "Windows", "15.01.001", "Windows", "m2", measureArea, 1.5, 40, []string{"joinery"}},
	{"door", "15", "Doors and windows", "15.02", "Doors", "15.02.001", "Doors", "u", measureCount, 1, 1, []string{"joinery"}},
	{"pipe", "22", "Plumbing", "22.01", "Pipework", "22.01.001", "Pipe segments", "m", measureLength, 3, 100, nil},
	{"pipe-fitting", "22", "Plumbing", "22.01", "Pipework", "22.01.002", "Pipe fittings", "u", measureCount, 1, 1, nil},
	{"valve", "22", "Plumbing", "22.02", "Valves and controls", "22.02.001", "Valves", "u", measureCount, 1, 1, nil},
	{"flow-meter", "22", "Plumbing", "22.02", "Valves and controls", "22.02.002", "Flow meters", "u", measureCount, 1, 1, nil},
	{"pump", "22", "Plumbing", "22.03", "Equipment", "22.03.001", "Pumps", "u", measureCount, 1, 1, nil},
	{"tank", "22", "Plumbing", "22.03", "Equipment", "22.03.002", "Storage tanks", "u", measureCount, 1, 1, nil},
	{"sanitary-terminal", "22", "Plumbing", "22.04", "Sanitary fixtures", "22.04.001", "Sanitary terminals", "u", measureCount, 1, 1, nil},
	{"waste-terminal", "22", "Plumbing", "22.04", "Sanitary fixtures", "22.04.002", "Waste terminals", "u", measureCount, 1, 1, nil},
	{"duct", "24", "HVAC", "24.01", "Ductwork", "24.01.001", "Duct segments", "m", measureLength, 3, 100, nil},
	{"duct-fitting", "24", "HVAC", "24.01", "Ductwork", "24.01.002", "Duct fittings", "u", measureCount, 1, 1, nil},
	{"air-terminal", "24", "HVAC", "24.02", "Air distribution", "24.02.001", "Air terminals", "u", measureCount, 1, 1, nil},
	{"fan", "24", "HVAC", "24.03", "Plant", "24.03.001", "Fans", "u", measureCount, 1, 1, nil},
	{"coil", "24", "HVAC", "24.03", "Plant", "24.03.002", "Coils", "u", measureCount, 1, 1, nil},
	{"boiler", "24", "HVAC", "24.03", "Plant", "24.03.003", "Boilers", "u", measureCount, 1, 1, nil},
	{"chiller", "24", "HVAC", "24.03", "Plant", "24.03.004", "Chillers", "u", measureCount, 1, 1, nil},
	{"unitary-equipment", "24", "HVAC", "24.03", "Plant", "24.03.005", "Unitary equipment", "u", measureCount, 1, 1, nil},
	{"cable", "25", "Electrical", "25.01", "Cabling", "25.01.001", "Cable segments", "m", measureLength, 5, 200, nil},
	{"cable-carrier", "25", "Electrical", "25.01", "Cabling", "25.01.002", "Cable carriers", "m", measureLength, 3, 100, nil},
	{"distribution-board", "25", "Electrical", "25.02", "Distribution", "25.02.001", "Distribution boards", "u", measureCount, 1, 1, nil},
	{"transformer", "25", "Electrical", "25.02", "Distribution", "25.02.002", "Transformers", "u", measureCount, 1, 1, nil},
	{"outlet", "25", "Electrical", "25.03", "Wiring devices", "25.03.001", "Outlets and junction boxes", "u", measureCount, 1, 1, nil},
	{"switch", "25", "Electrical", "25.03", "Wiring devices", "25.03.002", "Switching devices", "u", measureCount, 1, 1, nil},
	{"light-fixture", "25", "Electrical", "25.04", "Lighting", "25.04.001", "Light fixtures", "u", measureCount, 1, 1, nil},
	{"electric-appliance", "25", "Electrical", "25.05", "Appliances", "25.05.001", "Electric appliances", "u", measureCount, 1, 1, nil},
	{"fire-suppression-terminal", "26", "Fire safety", "26.01", "Suppression", "26.01.001", "Suppression terminals", "u", measureCount, 1, 1, nil},
	{"alarm", "26", "Fire safety", "26.02", "Detection and alarm", "26.02.001", "Alarm devices", "u", measureCount, 1, 1, nil},
	{"sensor", "26", "Fire safety", "26.02", "Detection and alarm", "26.02.002", "Sensors and detectors", "u", measureCount, 1, 1, nil},
	{"communications-appliance", "27", "Telecommunications", "27.01", "Communications", "27.01.001", "Communications appliances", "u", measureCount, 1, 1, nil},
	{"audio-visual-appliance", "27", "Telecommunications", "27.02", "Audio-visual", "27.02.001", "Audio-visual appliances", "u", measureCount, 1, 1, nil},
	{"burner", "28", "Gas installations", "28.01", "Gas equipment", "28.01.001", "Burners", "u", measureCount, 1, 1, nil},
}

// specialtyGroups scopes the catalog per discipline. A group absent from
// the detected specialty's set yields no article even when elements of
// that kind appear in the file.
var specialtyGroups = map[ifc.Specialty]map[string]bool{
	ifc.SpecialtyArchitecture: setOf(
		"wall-exterior", "wall-interior", "curtain-wall", "window", "door",
		"slab", "roof", "stair", "ramp", "railing", "covering",
	),
	ifc.SpecialtyStructure: setOf(
		"column", "beam", "slab", "footing", "pile", "member", "plate",
		"wall-exterior", "wall-interior",
	),
	ifc.SpecialtyPlumbing: setOf(
		"pipe", "pipe-fitting", "valve", "flow-meter", "pump", "tank",
		"sanitary-terminal", "waste-terminal",
	),
	ifc.SpecialtyElectrical: setOf(
		"cable", "cable-carrier", "distribution-board", "transformer",
		"outlet", "switch", "light-fixture", "electric-appliance",
	),
	ifc.SpecialtyHVAC: setOf(
		"duct", "duct-fitting", "air-terminal", "fan", "coil", "boiler",
		"chiller", "unitary-equipment",
	),
	ifc.SpecialtyFireSafety: setOf(
		"fire-suppression-terminal", "alarm", "sensor",
	),
	ifc.SpecialtyTelecom: setOf(
		"communications-appliance", "audio-visual-appliance",
	),
	ifc.SpecialtyGas: setOf(
		"burner", "pipe", "pipe-fitting", "valve", "flow-meter",
	),
}

func setOf(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// groupOf maps an element to its takeoff group. Walls split on the
// IsExternal flag; interior is the default when the flag is absent.
func groupOf(el ifc.Element) string {
	if el.Category == ifc.CategoryWall {
		if el.IsExternal != nil && *el.IsExternal {
			return "wall-exterior"
		}
		return "wall-interior"
	}
	return string(el.Category)
}
