// Package store persists assembled projects and their per-file
// analyses. Backends live in subpackages; callers pick one by DSN
// scheme.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	SaveProject(ctx context.Context, p ProjectInput) (int64, error)
	GetProject(ctx context.Context, name string) (*ProjectRecord, error)
	ListProjects(ctx context.Context) ([]ProjectSummary, error)
	DeleteProject(ctx context.Context, name string) (int64, error)

	ListAnalyses(ctx context.Context, projectName string) ([]AnalysisRecord, error)
	ListArticles(ctx context.Context, projectName string) ([]ArticleRecord, error)
}

// ProjectInput is everything needed to persist one assembled project.
// Document carries the full project JSON; Analyses and Articles are the
// queryable flattening of the same data.
type ProjectInput struct {
	Name     string
	Document []byte
	Analyses []AnalysisInput
	Articles []ArticleInput
}

type AnalysisInput struct {
	File         string
	Specialty    string
	ElementCount int
	SkippedLines int
	GeneratedAt  time.Time
}

type ArticleInput struct {
	Chapter     string
	SubChapter  string
	Code        string
	Description string
	Unit        string
	Quantity    float64
	Elements    int
}

type ProjectRecord struct {
	ID        int64
	Name      string
	Document  []byte
	CreatedAt time.Time
}

type ProjectSummary struct {
	ID           int64
	Name         string
	FileCount    int
	ArticleCount int
	CreatedAt    time.Time
}

type AnalysisRecord struct {
	File         string
	Specialty    string
	ElementCount int
	SkippedLines int
	GeneratedAt  time.Time
}

type ArticleRecord struct {
	Chapter     string
	SubChapter  string
	Code        string
	Description string
	Unit        string
	Quantity    float64
	Elements    int
}
