package project

import (
	"errors"
	"reflect"
	"testing"

	"takeoff/internal/analysis"
	"takeoff/internal/ifc"
	"takeoff/internal/wbs"
)

func floatPtr(v float64) *float64 { return &v }

func archResult() *analysis.Result {
	return &analysis.Result{
		File:      "arch.ifc",
		Specialty: ifc.SpecialtyArchitecture,
		Elements: []ifc.Element{
			{ID: 10, Category: ifc.CategoryWall, GlobalID: "w1", Name: "Apartment Wall", Storey: "Level 1"},
			{ID: 20, Category: ifc.CategorySlab, GlobalID: "s1", Storey: "Level 1", Quantities: ifc.Quantities{Area: floatPtr(120.0)}},
			{ID: 30, Category: ifc.CategorySlab, GlobalID: "s2", Storey: "Level 2", Quantities: ifc.Quantities{Area: floatPtr(80.0)}},
		},
		Chapters: []wbs.Chapter{{
			Code: "08", Description: "Walls and partitions",
			SubChapters: []wbs.SubChapter{{
				Code: "08.01", Description: "Exterior walls",
				Articles: []wbs.Article{{Code: "08.01.001", Unit: "m2", Quantity: 37.5, Elements: []string{"w1"}}},
			}},
		}},
	}
}

func structResult() *analysis.Result {
	return &analysis.Result{
		File:      "struct.ifc",
		Specialty: ifc.SpecialtyStructure,
		Elements: []ifc.Element{
			{ID: 40, Category: ifc.CategoryColumn, GlobalID: "c1", Storey: "Level 2",
				Properties: map[string]any{"Elevation": 12.4}},
		},
		Chapters: []wbs.Chapter{{
			Code: "06", Description: "Structural frame",
			SubChapters: []wbs.SubChapter{{
				Code: "06.01", Description: "Columns",
				Articles: []wbs.Article{{Code: "06.01.001", Unit: "m3", Quantity: 0.54, Elements: []string{"c1"}}},
			}},
		}},
	}
}

func TestAssemble_Empty(t *testing.T) {
	_, err := Assemble(nil)
	if !errors.Is(err, ErrNoAnalyses) {
		t.Fatalf("expected ErrNoAnalyses, got %v", err)
	}
	_, err = Assemble([]*analysis.Result{})
	if !errors.Is(err, ErrNoAnalyses) {
		t.Fatalf("expected ErrNoAnalyses for empty slice, got %v", err)
	}
}

func TestAssemble_MergesDisciplines(t *testing.T) {
	p, err := Assemble([]*analysis.Result{archResult(), structResult()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.Files, []string{"arch.ifc", "struct.ifc"}) {
		t.Fatalf("unexpected files: %v", p.Files)
	}
	if len(p.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(p.Chapters))
	}
	if p.Chapters[0].Code != "08" || p.Chapters[1].Code != "06" {
		t.Fatalf("expected input-order chapters, got %s then %s", p.Chapters[0].Code, p.Chapters[1].Code)
	}
}

func TestAssemble_FirstArticleWins(t *testing.T) {
	a := archResult()
	b := archResult()
	b.File = "arch2.ifc"
	b.Chapters[0].SubChapters[0].Articles[0].Quantity = 99.0

	p, err := Assemble([]*analysis.Result{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub := p.Chapters[0].FindSubChapter("08.01")
	if sub == nil || len(sub.Articles) != 1 {
		t.Fatalf("expected a single merged article, got %+v", sub)
	}
	if sub.Articles[0].Quantity != 37.5 {
		t.Fatalf("expected the first occurrence kept, got %v", sub.Articles[0].Quantity)
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	once, err := Assemble([]*analysis.Result{archResult()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Assemble([]*analysis.Result{archResult(), archResult()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once.Chapters, twice.Chapters) {
		t.Fatalf("expected identical article set:\n%+v\nvs\n%+v", once.Chapters, twice.Chapters)
	}
}

func TestAssemble_DoesNotMutateInputs(t *testing.T) {
	a := archResult()
	before := len(a.Chapters[0].SubChapters[0].Articles)
	extra := structResult()
	extra.Chapters = []wbs.Chapter{{
		Code: "08",
		SubChapters: []wbs.SubChapter{{
			Code:     "08.01",
			Articles: []wbs.Article{{Code: "08.01.002", Unit: "m2", Quantity: 5}},
		}},
	}}

	if _, err := Assemble([]*analysis.Result{a, extra}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Chapters[0].SubChapters[0].Articles) != before {
		t.Fatalf("input analysis mutated by merge")
	}
}

func TestAssemble_Metadata(t *testing.T) {
	p, err := Assemble([]*analysis.Result{archResult(), structResult()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	md := p.Metadata
	if md.FloorCount != 2 {
		t.Fatalf("expected 2 storeys, got %d", md.FloorCount)
	}
	if !reflect.DeepEqual(md.Storeys, []string{"Level 1", "Level 2"}) {
		t.Fatalf("unexpected storeys: %v", md.Storeys)
	}
	if md.GrossFloorArea != 200.0 {
		t.Fatalf("expected slab areas summed to 200, got %v", md.GrossFloorArea)
	}
	if md.BuildingHeight != 12.4 {
		t.Fatalf("expected height from elevation property, got %v", md.BuildingHeight)
	}
	if md.BuildingType != BuildingResidential {
		t.Fatalf("expected residential guess, got %s", md.BuildingType)
	}
	if md.ElementCount != 4 || md.FileCount != 2 {
		t.Fatalf("unexpected counts: %+v", md)
	}
}

func TestAssemble_MixedOccupancy(t *testing.T) {
	a := archResult()
	a.Elements = append(a.Elements, ifc.Element{ID: 50, Category: ifc.CategoryDoor, Name: "Office Entrance Door"})
	p, err := Assemble([]*analysis.Result{a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metadata.BuildingType != BuildingMixed {
		t.Fatalf("expected mixed, got %s", p.Metadata.BuildingType)
	}
}

func TestAssemble_NoHints(t *testing.T) {
	p, err := Assemble([]*analysis.Result{structResult()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metadata.BuildingType != BuildingUnknown {
		t.Fatalf("expected unknown occupancy, got %s", p.Metadata.BuildingType)
	}
}
