package ifc

import (
	"reflect"
	"testing"

	"takeoff/internal/step"
)

// architectureFile is a minimal but structurally faithful wall/door/column
// model: quantity sets, a property set, a layered material, a
// classification and storey containment.
const architectureFile = `#1 = IFCPROJECT('2O2Fr$t4X7Zf8NOew3FLOH',#2,'Sample house',$,$,$,$,(#90),#91);
#2 = IFCOWNERHISTORY(#3,#4,$,.ADDED.,$,$,$,1630000000);
#5 = IFCBUILDINGSTOREY('1xFgTRUnP5heAWp0q3hTRx',#2,'Level 1',$,$,#92,$,'Level 1',.ELEMENT.,0.);
#10 = IFCWALL('0DWgwt6o1FOx7466fPk$jl',#2,'Basic Wall:Generic 200mm',$,$,#93,#94,'W1');
#11 = IFCRELDEFINESBYPROPERTIES('2tAQsn6fX500$iVvnIsJSk',#2,$,$,(#10),#12);
#12 = IFCELEMENTQUANTITY('3rfqTyk$X7yuXm89nLuGp1',#2,'BaseQuantities',$,$,(#13,#14));
#13 = IFCQUANTITYAREA('NetSideArea',$,$,12.5);
#14 = IFCQUANTITYVOLUME('NetVolume',$,$,2.5);
#15 = IFCRELDEFINESBYPROPERTIES('0jf0WCuvz52wfzGJJTAx6e',#2,$,$,(#10),#16);
#16 = IFCPROPERTYSET('1pPHnf7cXCpu_dlVEGZJCV',#2,'Pset_WallCommon',$,(#17,#18));
#17 = IFCPROPERTYSINGLEVALUE('IsExternal',$,IFCBOOLEAN(.T.),$);
#18 = IFCPROPERTYSINGLEVALUE('ThermalTransmittance',$,IFCTHERMALTRANSMITTANCEMEASURE(0.35),$);
#19 = IFCRELASSOCIATESMATERIAL('0EF5_zZRv1Ggc0Pcq27fqL',#2,$,$,(#10),#20);
#20 = IFCMATERIALLAYERSETUSAGE(#21,.AXIS2.,.POSITIVE.,0.);
#21 = IFCMATERIALLAYERSET((#22),'Generic 200mm');
#22 = IFCMATERIALLAYER(#23,0.2,$);
#23 = IFCMATERIAL('Concrete Block');
#24 = IFCRELASSOCIATESCLASSIFICATION('1a5Tq9$vPCPvvesCEQ3dbc',#2,$,$,(#10),#25);
#25 = IFCCLASSIFICATIONREFERENCE('uniclass','08.01','Exterior walls',$);
#26 = IFCRELCONTAINEDINSPATIALSTRUCTURE('3Sa3dTJGn0H8TQIGiuGQd5',#2,$,$,(#10,#30),#5);
#30 = IFCDOOR('2LcD9c0TL2IfC6skbI$g0f',#2,'Single-Flush:0900x2100',$,$,#95,#96,'D1',2.1,0.9);
#40 = IFCCOLUMN('0$WU4A9R19$vKWO$AdOnKA',#2,'Concrete Column 300x600mm',$,$,#97,#98,'C1');
#41 = IFCRELDEFINESBYPROPERTIES('1CZILmCZHETO8NxHsjXk4p',#2,$,$,(#40),#42);
#42 = IFCELEMENTQUANTITY('2HgPGsfcnCfhM9YrSXLyoT',#2,'BaseQuantities',$,$,(#43));
#43 = IFCQUANTITYVOLUME('NetVolume',$,$,0.54);
#50 = IFCWALLTYPE('1lO$FP7dnAIPH$srA2SCkc',#2,'Generic 200mm',$,$,$,$,$,$,.STANDARD.);
`

func extractFixture(t *testing.T) []Element {
	t.Helper()
	idx := step.NewIndex(architectureFile)
	elements, _ := Extract(idx)
	return elements
}

func TestExtract(t *testing.T) {
	elements := extractFixture(t)

	t.Run("allowlist and template exclusion", func(t *testing.T) {
		if len(elements) != 3 {
			t.Fatalf("expected 3 elements, got %d", len(elements))
		}
		// Ordered by id: wall, door, column. IFCWALLTYPE is excluded.
		if elements[0].Category != CategoryWall ||
			elements[1].Category != CategoryDoor ||
			elements[2].Category != CategoryColumn {
			t.Fatalf("unexpected categories: %v %v %v",
				elements[0].Category, elements[1].Category, elements[2].Category)
		}
	})

	wall := elements[0]
	door := elements[1]
	column := elements[2]

	t.Run("identity by position", func(t *testing.T) {
		if wall.GlobalID != "0DWgwt6o1FOx7466fPk$jl" {
			t.Fatalf("unexpected wall global id: %q", wall.GlobalID)
		}
		if wall.Name != "Basic Wall:Generic 200mm" {
			t.Fatalf("unexpected wall name: %q", wall.Name)
		}
	})

	t.Run("quantity set resolved", func(t *testing.T) {
		if wall.Quantities.Area == nil || *wall.Quantities.Area != 12.5 {
			t.Fatalf("expected wall area 12.5, got %v", wall.Quantities.Area)
		}
		if wall.Quantities.Volume == nil || *wall.Quantities.Volume != 2.5 {
			t.Fatalf("expected wall volume 2.5, got %v", wall.Quantities.Volume)
		}
	})

	t.Run("property set resolved into reserved fields", func(t *testing.T) {
		if wall.IsExternal == nil || !*wall.IsExternal {
			t.Fatalf("expected external wall, got %v", wall.IsExternal)
		}
		if wall.ThermalTransmittance == nil || *wall.ThermalTransmittance != 0.35 {
			t.Fatalf("expected U-value 0.35, got %v", wall.ThermalTransmittance)
		}
		props, ok := wall.PropertySets["Pset_WallCommon"]
		if !ok {
			t.Fatalf("expected Pset_WallCommon, got %v", wall.PropertySets)
		}
		if props["IsExternal"] != true {
			t.Fatalf("expected IsExternal in set map, got %v", props)
		}
	})

	t.Run("layered material resolved", func(t *testing.T) {
		if !reflect.DeepEqual(wall.Materials, []string{"Concrete Block"}) {
			t.Fatalf("unexpected materials: %v", wall.Materials)
		}
	})

	t.Run("classification code", func(t *testing.T) {
		if wall.Classification != "08.01" {
			t.Fatalf("unexpected classification: %q", wall.Classification)
		}
	})

	t.Run("storey containment", func(t *testing.T) {
		if wall.Storey != "Level 1" {
			t.Fatalf("unexpected storey: %q", wall.Storey)
		}
		if door.Storey != "Level 1" {
			t.Fatalf("expected door on Level 1, got %q", door.Storey)
		}
	})

	t.Run("opening dimensions from trailing fields", func(t *testing.T) {
		if door.Quantities.Height == nil || *door.Quantities.Height != 2.1 {
			t.Fatalf("expected door height 2.1, got %v", door.Quantities.Height)
		}
		if door.Quantities.Width == nil || *door.Quantities.Width != 0.9 {
			t.Fatalf("expected door width 0.9, got %v", door.Quantities.Width)
		}
		if door.Quantities.Area == nil || *door.Quantities.Area != 2.1*0.9 {
			t.Fatalf("expected door area %v, got %v", 2.1*0.9, door.Quantities.Area)
		}
	})

	t.Run("section token and effective length", func(t *testing.T) {
		if column.Quantities.Width == nil || *column.Quantities.Width != 0.3 {
			t.Fatalf("expected column width 0.3, got %v", column.Quantities.Width)
		}
		if column.Quantities.Depth == nil || *column.Quantities.Depth != 0.6 {
			t.Fatalf("expected column depth 0.6, got %v", column.Quantities.Depth)
		}
		if column.Quantities.Length == nil || *column.Quantities.Length < 2.99 || *column.Quantities.Length > 3.01 {
			t.Fatalf("expected effective length 3.0, got %v", column.Quantities.Length)
		}
	})

	t.Run("non-negative quantities", func(t *testing.T) {
		for _, el := range elements {
			for _, q := range []*float64{
				el.Quantities.Area, el.Quantities.Volume, el.Quantities.Length,
				el.Quantities.Width, el.Quantities.Depth, el.Quantities.Height,
				el.Quantities.Thickness, el.Quantities.Weight,
			} {
				if q != nil && *q < 0 {
					t.Fatalf("negative quantity on %s: %v", el.GlobalID, *q)
				}
			}
		}
	})
}

func TestExtract_UnresolvableReferencesSkipped(t *testing.T) {
	content := `#10 = IFCWALL('w1',#2,'Wall',$,$,#93,#94,'W1');
#11 = IFCRELDEFINESBYPROPERTIES('r1',#2,$,$,(#10),#999);
`
	idx := step.NewIndex(content)
	elements, diag := Extract(idx)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	if diag.UnresolvedRefs == 0 {
		t.Fatalf("expected unresolved reference counted")
	}
	if elements[0].Quantities.Area != nil {
		t.Fatalf("expected no area, got %v", elements[0].Quantities.Area)
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	elements, diag := Extract(step.NewIndex(""))
	if len(elements) != 0 {
		t.Fatalf("expected no elements, got %d", len(elements))
	}
	if diag.UnresolvedRefs != 0 || diag.UnknownPropertyValues != 0 {
		t.Fatalf("expected clean diag, got %+v", diag)
	}
}

func TestExtract_CappedMemberLength(t *testing.T) {
	content := `#10 = IFCBEAM('b1',#2,'Beam 300x600mm',$,$,#93,#94,'B1');
#11 = IFCRELDEFINESBYPROPERTIES('r1',#2,$,$,(#10),#12);
#12 = IFCELEMENTQUANTITY('q1',#2,'BaseQuantities',$,$,(#13));
#13 = IFCQUANTITYVOLUME('NetVolume',$,$,9000.);
`
	idx := step.NewIndex(content)
	elements, _ := Extract(idx)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	length := elements[0].Quantities.Length
	if length == nil || *length != 12.0 {
		t.Fatalf("expected capped length 12.0, got %v", length)
	}
}
