package analysis

import (
	"reflect"
	"testing"
	"time"

	"takeoff/internal/ifc"
)

const wallFile = `#5 = IFCBUILDINGSTOREY('1xFgTRUnP5heAWp0q3hTRx',#2,'Level 1',$,$,#92,$,'Level 1',.ELEMENT.,0.);
#10 = IFCWALL('w0000000000000000000001',#2,'Basic Wall',$,$,#93,#94,'W1');
#11 = IFCRELDEFINESBYPROPERTIES('r1',#2,$,$,(#10),#12);
#12 = IFCELEMENTQUANTITY('q1',#2,'BaseQuantities',$,$,(#13));
#13 = IFCQUANTITYAREA('NetSideArea',$,$,12.5);
#14 = IFCRELDEFINESBYPROPERTIES('r2',#2,$,$,(#10),#15);
#15 = IFCPROPERTYSET('p1',#2,'Pset_WallCommon',$,(#16));
#16 = IFCPROPERTYSINGLEVALUE('IsExternal',$,IFCBOOLEAN(.T.),$);
#20 = IFCWALL('w0000000000000000000002',#2,'Basic Wall',$,$,#95,#96,'W2');
#21 = IFCRELDEFINESBYPROPERTIES('r3',#2,$,$,(#20),#12);
#22 = IFCRELDEFINESBYPROPERTIES('r4',#2,$,$,(#20),#15);
#30 = IFCWALL('w0000000000000000000003',#2,'Basic Wall',$,$,#97,#98,'W3');
#31 = IFCRELDEFINESBYPROPERTIES('r5',#2,$,$,(#30),#12);
#32 = IFCRELDEFINESBYPROPERTIES('r6',#2,$,$,(#30),#15);
`

func TestAnalyze_ExteriorWallScenario(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	result := Analyze("arch.ifc", wallFile, Options{Now: now})

	if result.Specialty != ifc.SpecialtyArchitecture {
		t.Fatalf("expected architecture, got %s", result.Specialty)
	}
	if result.Stats.ElementCount != 3 {
		t.Fatalf("expected 3 elements, got %d", result.Stats.ElementCount)
	}
	if len(result.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(result.Chapters))
	}
	sub := result.Chapters[0].FindSubChapter("08.01")
	if sub == nil {
		t.Fatalf("expected exterior wall subchapter")
	}
	if len(sub.Articles) != 1 || sub.Articles[0].Quantity != 37.5 {
		t.Fatalf("expected one article with quantity 37.5, got %+v", sub.Articles)
	}
	if !result.GeneratedAt.Equal(now) {
		t.Fatalf("expected injected timestamp, got %v", result.GeneratedAt)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := Analyze("arch.ifc", wallFile, Options{Now: now})
	b := Analyze("arch.ifc", wallFile, Options{Now: now})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results for identical input")
	}
}

func TestAnalyze_UnrecognizedFile(t *testing.T) {
	result := Analyze("noise.ifc", "#1 = IFCSOMETHINGELSE('x');\nplain text\n", Options{})
	if result.Specialty != ifc.SpecialtyUnknown {
		t.Fatalf("expected unknown specialty, got %s", result.Specialty)
	}
	if len(result.Elements) != 0 || len(result.Chapters) != 0 || len(result.Findings) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Skips.Lines != 1 {
		t.Fatalf("expected 1 skipped line, got %d", result.Skips.Lines)
	}
}

func TestAnalyze_SkipCountsExposed(t *testing.T) {
	content := `#10 = IFCWALL('w1',#2,'Wall',$,$,#93,#94,'W1');
#11 = IFCRELDEFINESBYPROPERTIES('r1',#2,$,$,(#10),#999);
`
	result := Analyze("arch.ifc", content, Options{})
	if result.Skips.UnresolvedRefs == 0 {
		t.Fatalf("expected unresolved refs surfaced, got %+v", result.Skips)
	}
}
