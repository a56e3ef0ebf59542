package ifc

import (
	"strings"

	"takeoff/internal/step"
)

// Specialty is the engineering discipline a file primarily models.
type Specialty string

const (
	SpecialtyArchitecture Specialty = "architecture"
	SpecialtyStructure    Specialty = "structure"
	SpecialtyPlumbing     Specialty = "plumbing"
	SpecialtyElectrical   Specialty = "electrical"
	SpecialtyHVAC         Specialty = "hvac"
	SpecialtyFireSafety   Specialty = "fire-safety"
	SpecialtyTelecom      Specialty = "telecom"
	SpecialtyGas          Specialty = "gas"
	SpecialtyUnknown      Specialty = "unknown"
)

// specialtyOrder fixes the tie-break: the first discipline to reach the
// winning count keeps it.
var specialtyOrder = []Specialty{
	SpecialtyArchitecture,
	SpecialtyStructure,
	SpecialtyPlumbing,
	SpecialtyElectrical,
	SpecialtyHVAC,
	SpecialtyFireSafety,
	SpecialtyTelecom,
	SpecialtyGas,
}

// specialtyIndicators maps each discipline to the entity-type prefixes
// that indicate it. A type may indicate more than one discipline.
var specialtyIndicators = map[Specialty][]string{
	SpecialtyArchitecture: {
		"IFCWALL", "IFCWINDOW", "IFCDOOR", "IFCROOF", "IFCSTAIR",
		"IFCRAMP", "IFCRAILING", "IFCCOVERING", "IFCCURTAINWALL",
		"IFCFURNISHINGELEMENT", "IFCSPACE",
	},
	SpecialtyStructure: {
		"IFCBEAM", "IFCCOLUMN", "IFCFOOTING", "IFCPILE", "IFCMEMBER",
		"IFCPLATE", "IFCREINFORCING", "IFCTENDON", "IFCSTRUCTURAL",
	},
	SpecialtyPlumbing: {
		"IFCPIPESEGMENT", "IFCPIPEFITTING", "IFCSANITARYTERMINAL",
		"IFCWASTETERMINAL", "IFCVALVE", "IFCPUMP", "IFCTANK",
		"IFCINTERCEPTOR", "IFCFLOWMETER",
	},
	SpecialtyElectrical: {
		"IFCCABLE", "IFCELECTRIC", "IFCOUTLET", "IFCSWITCHINGDEVICE",
		"IFCLIGHTFIXTURE", "IFCLAMP", "IFCTRANSFORMER", "IFCJUNCTIONBOX",
		"IFCPROTECTIVEDEVICE", "IFCSOLARDEVICE",
	},
	SpecialtyHVAC: {
		"IFCDUCT", "IFCAIRTERMINAL", "IFCFAN", "IFCCOIL", "IFCBOILER",
		"IFCCHILLER", "IFCCOMPRESSOR", "IFCDAMPER",
		"IFCUNITARYEQUIPMENT", "IFCAIRTOAIRHEATRECOVERY",
		"IFCEVAPORAT", "IFCCOOLINGTOWER",
	},
	SpecialtyFireSafety: {
		"IFCFIRESUPPRESSIONTERMINAL", "IFCALARM", "IFCSENSOR",
		"IFCDETECTOR",
	},
	SpecialtyTelecom: {
		"IFCCOMMUNICATIONSAPPLIANCE", "IFCAUDIOVISUALAPPLIANCE",
		"IFCANTENNA",
	},
	SpecialtyGas: {
		"IFCBURNER", "IFCGASTERMINAL", "IFCGASAPPLIANCE",
	},
}

// DetectSpecialty classifies a file's primary discipline with one linear
// pass over the indexed type tags. The strictly highest indicator count
// wins; when no indicator type occurs the result is SpecialtyUnknown.
func DetectSpecialty(idx *step.Index) Specialty {
	counts := make(map[Specialty]int, len(specialtyOrder))
	for tag, n := range idx.Types() {
		for _, sp := range specialtyOrder {
			for _, prefix := range specialtyIndicators[sp] {
				if strings.HasPrefix(tag, prefix) {
					counts[sp] += n
					break
				}
			}
		}
	}

	best := SpecialtyUnknown
	bestCount := 0
	for _, sp := range specialtyOrder {
		if counts[sp] > bestCount {
			best = sp
			bestCount = counts[sp]
		}
	}
	return best
}
