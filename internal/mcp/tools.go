package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"takeoff/internal/analysis"
	"takeoff/internal/ifc"
	"takeoff/internal/optimize"
	"takeoff/internal/project"
	"takeoff/internal/step"
	"takeoff/internal/wbs"
)

type AnalyzeInput struct {
	File    string `json:"file" jsonschema:"file name used in the report"`
	Content string `json:"content" jsonschema:"full IFC file text"`
}

type AnalyzeOutput struct {
	File      string             `json:"file"`
	Specialty ifc.Specialty      `json:"specialty"`
	Stats     analysis.Stats     `json:"stats"`
	Skips     analysis.Skips     `json:"skips"`
	Chapters  []wbs.Chapter      `json:"chapters,omitempty"`
	Findings  []optimize.Finding `json:"findings,omitempty"`
}

type DetectSpecialtyInput struct {
	Content string `json:"content" jsonschema:"full IFC file text"`
}

type DetectSpecialtyOutput struct {
	Specialty   ifc.Specialty `json:"specialty"`
	RecordCount int           `json:"record_count"`
}

type AssembleInput struct {
	Name  string         `json:"name,omitempty" jsonschema:"project name"`
	Files []AnalyzeInput `json:"files" jsonschema:"discipline files to analyze and merge"`
}

type AssembleOutput struct {
	Project *project.Project `json:"project"`
	Errors  []string         `json:"errors,omitempty"`
}

type MatchPriceInput struct {
	Query string `json:"query" jsonschema:"article description to match"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum candidates, default 5"`
}

type MatchPriceOutput struct {
	Matches []MatchOutput `json:"matches"`
}

type MatchOutput struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	Score       float64 `json:"score"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "analyze_ifc",
		Description: "Analyze one IFC file: specialty, quantities, findings",
	}, s.handleAnalyze)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "detect_specialty",
		Description: "Detect the discipline of an IFC file",
	}, s.handleDetectSpecialty)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "assemble_project",
		Description: "Analyze several discipline files and merge them into one project",
	}, s.handleAssemble)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "match_price",
		Description: "Match an article description against the price catalog",
	}, s.handleMatchPrice)
}

func (s *Server) handleAnalyze(ctx context.Context, req *sdk.CallToolRequest, input AnalyzeInput) (*sdk.CallToolResult, AnalyzeOutput, error) {
	if input.Content == "" {
		return nil, AnalyzeOutput{}, fmt.Errorf("content is required")
	}
	result := analysis.Analyze(input.File, input.Content, analysis.Options{})
	return nil, AnalyzeOutput{
		File:      result.File,
		Specialty: result.Specialty,
		Stats:     result.Stats,
		Skips:     result.Skips,
		Chapters:  result.Chapters,
		Findings:  result.Findings,
	}, nil
}

func (s *Server) handleDetectSpecialty(ctx context.Context, req *sdk.CallToolRequest, input DetectSpecialtyInput) (*sdk.CallToolResult, DetectSpecialtyOutput, error) {
	if input.Content == "" {
		return nil, DetectSpecialtyOutput{}, fmt.Errorf("content is required")
	}
	idx := step.NewIndex(input.Content)
	return nil, DetectSpecialtyOutput{
		Specialty:   ifc.DetectSpecialty(idx),
		RecordCount: idx.Len(),
	}, nil
}

func (s *Server) handleAssemble(ctx context.Context, req *sdk.CallToolRequest, input AssembleInput) (*sdk.CallToolResult, AssembleOutput, error) {
	if len(input.Files) == 0 {
		return nil, AssembleOutput{}, fmt.Errorf("at least one file is required")
	}

	files := make([]analysis.File, 0, len(input.Files))
	for _, f := range input.Files {
		files = append(files, analysis.File{Name: f.File, Content: f.Content})
	}
	batch := analysis.RunBatch(ctx, files, analysis.Options{})

	p, err := project.Assemble(batch.Analyses)
	if err != nil {
		return nil, AssembleOutput{}, err
	}
	p.Name = input.Name

	out := AssembleOutput{Project: p}
	for _, e := range batch.Errors {
		out.Errors = append(out.Errors, e.Error())
	}
	return nil, out, nil
}

func (s *Server) handleMatchPrice(ctx context.Context, req *sdk.CallToolRequest, input MatchPriceInput) (*sdk.CallToolResult, MatchPriceOutput, error) {
	if s.catalog == nil || s.catalog.Len() == 0 {
		return nil, MatchPriceOutput{}, fmt.Errorf("no pricing catalog loaded")
	}
	if input.Query == "" {
		return nil, MatchPriceOutput{}, fmt.Errorf("query is required")
	}
	limit := input.Limit
	if limit == 0 {
		limit = 5
	}

	matches := s.catalog.TopMatches(input.Query, limit)
	out := MatchPriceOutput{Matches: make([]MatchOutput, 0, len(matches))}
	for _, m := range matches {
		out.Matches = append(out.Matches, MatchOutput{
			Code:        m.Item.Code,
			Description: m.Item.Description,
			Unit:        m.Item.Unit,
			UnitPrice:   m.Item.UnitPrice,
			Score:       m.Score,
		})
	}
	return nil, out, nil
}
