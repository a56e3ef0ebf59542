package ifc

import (
	"fmt"
	"strings"
	"testing"

	"takeoff/internal/step"
)

func fileOfTypes(types ...string) string {
	var sb strings.Builder
	for i, tag := range types {
		fmt.Fprintf(&sb, "#%d = %s('gid%d',#2,'Name',$,$);\n", i+1, tag, i+1)
	}
	return sb.String()
}

func TestDetectSpecialty(t *testing.T) {
	cases := []struct {
		name  string
		types []string
		want  Specialty
	}{
		{
			name:  "architecture dominates",
			types: []string{"IFCWALL", "IFCWALL", "IFCDOOR", "IFCBEAM"},
			want:  SpecialtyArchitecture,
		},
		{
			name:  "structure dominates",
			types: []string{"IFCBEAM", "IFCCOLUMN", "IFCFOOTING", "IFCWALL"},
			want:  SpecialtyStructure,
		},
		{
			name:  "plumbing",
			types: []string{"IFCPIPESEGMENT", "IFCPIPEFITTING", "IFCSANITARYTERMINAL"},
			want:  SpecialtyPlumbing,
		},
		{
			name:  "electrical",
			types: []string{"IFCCABLESEGMENT", "IFCELECTRICDISTRIBUTIONBOARD", "IFCOUTLET"},
			want:  SpecialtyElectrical,
		},
		{
			name:  "hvac",
			types: []string{"IFCDUCTSEGMENT", "IFCAIRTERMINAL", "IFCFAN"},
			want:  SpecialtyHVAC,
		},
		{
			name:  "fire safety",
			types: []string{"IFCFIRESUPPRESSIONTERMINAL", "IFCALARM"},
			want:  SpecialtyFireSafety,
		},
		{
			name:  "telecom",
			types: []string{"IFCCOMMUNICATIONSAPPLIANCE", "IFCANTENNA"},
			want:  SpecialtyTelecom,
		},
		{
			name:  "gas",
			types: []string{"IFCBURNER", "IFCGASTERMINAL"},
			want:  SpecialtyGas,
		},
		{
			name:  "tie keeps enumeration order",
			types: []string{"IFCWALL", "IFCBEAM"},
			want:  SpecialtyArchitecture,
		},
		{
			name:  "no indicators",
			types: []string{"IFCPROJECT", "IFCOWNERHISTORY"},
			want:  SpecialtyUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx := step.NewIndex(fileOfTypes(tc.types...))
			if got := DetectSpecialty(idx); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDetectSpecialty_EmptyFile(t *testing.T) {
	if got := DetectSpecialty(step.NewIndex("")); got != SpecialtyUnknown {
		t.Fatalf("expected unknown, got %s", got)
	}
}

// The detector must never return a specialty whose indicator count is not
// the unique maximum.
func TestDetectSpecialty_Monotonic(t *testing.T) {
	idx := step.NewIndex(fileOfTypes(
		"IFCWALL", "IFCWALL", "IFCWALL",
		"IFCPIPESEGMENT", "IFCPIPESEGMENT",
		"IFCDUCTSEGMENT",
	))
	if got := DetectSpecialty(idx); got != SpecialtyArchitecture {
		t.Fatalf("expected architecture as unique maximum, got %s", got)
	}
}
