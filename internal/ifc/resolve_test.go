package ifc

import (
	"testing"

	"takeoff/internal/step"
)

func TestDecodeValue(t *testing.T) {
	cases := []struct {
		name string
		body string
		want any
	}{
		{"real", `IFCPROPERTYSINGLEVALUE('Area',$,IFCREAL(12.5),$)`, 12.5},
		{"boolean true", `IFCPROPERTYSINGLEVALUE('IsExternal',$,IFCBOOLEAN(.T.),$)`, true},
		{"boolean false", `IFCPROPERTYSINGLEVALUE('IsExternal',$,IFCBOOLEAN(.F.),$)`, false},
		{"label", `IFCPROPERTYSINGLEVALUE('Reference',$,IFCLABEL('Generic 200mm'),$)`, "Generic 200mm"},
		{"text", `IFCPROPERTYSINGLEVALUE('Comments',$,IFCTEXT('two '' quotes'),$)`, "two ' quotes"},
		{"integer", `IFCPROPERTYSINGLEVALUE('Count',$,IFCINTEGER(4),$)`, 4},
		{"thermal transmittance", `IFCPROPERTYSINGLEVALUE('U',$,IFCTHERMALTRANSMITTANCEMEASURE(0.28),$)`, 0.28},
		{"positive length", `IFCPROPERTYSINGLEVALUE('Width',$,IFCPOSITIVELENGTHMEASURE(0.2),$)`, 0.2},
		{"area measure", `IFCPROPERTYSINGLEVALUE('A',$,IFCAREAMEASURE(37.5),$)`, 37.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := decodeValue(tc.body)
			if !ok {
				t.Fatalf("expected a decoded value")
			}
			if got != tc.want {
				t.Fatalf("expected %v (%T), got %v (%T)", tc.want, tc.want, got, got)
			}
		})
	}

	t.Run("unknown wrapper", func(t *testing.T) {
		if _, ok := decodeValue(`IFCPROPERTYSINGLEVALUE('Odd',$,IFCCOMPLEXNUMBER((1.,2.)),$)`); ok {
			t.Fatalf("expected no value for unknown wrapper")
		}
	})

	t.Run("real wins over measure kinds", func(t *testing.T) {
		got, ok := decodeValue(`IFCPROPERTYSINGLEVALUE('X',$,IFCREAL(1.5),IFCAREAMEASURE(9.9))`)
		if !ok || got != 1.5 {
			t.Fatalf("expected first wrapper kind to win, got %v", got)
		}
	})
}

func TestAssimilate_ReservedKeys(t *testing.T) {
	el := &Element{}
	el.assimilate("Pset_DoorCommon", "FireRating", "EI30")
	el.assimilate("Pset_DoorCommon", "HandicapAccessible", true)
	el.assimilate("Pset_DoorCommon", "AcousticRating", "32dB")
	el.assimilate("Pset_WindowCommon", "SolarHeatGainCoefficient", 0.4)
	el.assimilate("Pset_WallCommon", "LoadBearing", true)
	el.assimilate("Dimensions", "NominalThickness", 0.2)

	if el.FireRating != "EI30" {
		t.Fatalf("unexpected fire rating: %q", el.FireRating)
	}
	if el.Accessible == nil || !*el.Accessible {
		t.Fatalf("expected accessible")
	}
	if el.AcousticRating != "32dB" {
		t.Fatalf("unexpected acoustic rating: %q", el.AcousticRating)
	}
	if el.SolarFactor == nil || *el.SolarFactor != 0.4 {
		t.Fatalf("unexpected solar factor: %v", el.SolarFactor)
	}
	if el.LoadBearing == nil || !*el.LoadBearing {
		t.Fatalf("expected load bearing")
	}
	if el.Quantities.Thickness == nil || *el.Quantities.Thickness != 0.2 {
		t.Fatalf("unexpected thickness: %v", el.Quantities.Thickness)
	}
}

func TestAssimilate_FirstResolutionWins(t *testing.T) {
	el := &Element{}
	el.assimilate("A", "Width", 0.2)
	el.assimilate("B", "Thickness", 0.3)
	if el.Quantities.Thickness == nil || *el.Quantities.Thickness != 0.2 {
		t.Fatalf("expected first thickness 0.2, got %v", el.Quantities.Thickness)
	}
	if el.Properties["Width"] != 0.2 || el.Properties["Thickness"] != 0.3 {
		t.Fatalf("unexpected generic map: %v", el.Properties)
	}
}

func TestResolve_ImplausibleQuantitiesRejected(t *testing.T) {
	content := `#10 = IFCWALL('w1',#2,'Wall',$,$,#93,#94,'W1');
#11 = IFCRELDEFINESBYPROPERTIES('r1',#2,$,$,(#10),#12);
#12 = IFCELEMENTQUANTITY('q1',#2,'BaseQuantities',$,$,(#13,#14));
#13 = IFCQUANTITYAREA('GrossArea',$,$,2500000.);
#14 = IFCQUANTITYVOLUME('NetVolume',$,$,3.2);
`
	idx := step.NewIndex(content)
	elements, _ := Extract(idx)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	if elements[0].Quantities.Area != nil {
		t.Fatalf("expected implausible area rejected, got %v", *elements[0].Quantities.Area)
	}
	if elements[0].Quantities.Volume == nil || *elements[0].Quantities.Volume != 3.2 {
		t.Fatalf("expected volume 3.2, got %v", elements[0].Quantities.Volume)
	}
}

func TestResolve_DirectMaterial(t *testing.T) {
	content := `#10 = IFCCOLUMN('c1',#2,'Column 300x300mm',$,$,#93,#94,'C1');
#11 = IFCRELASSOCIATESMATERIAL('r1',#2,$,$,(#10),#12);
#12 = IFCMATERIAL('Concrete C30/37');
`
	idx := step.NewIndex(content)
	elements, _ := Extract(idx)
	if len(elements) != 1 || len(elements[0].Materials) != 1 {
		t.Fatalf("expected one material, got %+v", elements)
	}
	if elements[0].Materials[0] != "Concrete C30/37" {
		t.Fatalf("unexpected material: %q", elements[0].Materials[0])
	}
}
