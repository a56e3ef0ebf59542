package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"takeoff/internal/store"
)

func (c *Client) SaveProject(ctx context.Context, p store.ProjectInput) (int64, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE name = $1`, p.Name); err != nil {
		return 0, fmt.Errorf("replacing project: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO projects (name, document) VALUES ($1, $2) RETURNING id`,
		p.Name, p.Document).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting project: %w", err)
	}

	for _, a := range p.Analyses {
		_, err := tx.Exec(ctx,
			`INSERT INTO analyses (project_id, file, specialty, element_count, skipped_lines, generated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, a.File, a.Specialty, a.ElementCount, a.SkippedLines, a.GeneratedAt)
		if err != nil {
			return 0, fmt.Errorf("inserting analysis %s: %w", a.File, err)
		}
	}

	for _, a := range p.Articles {
		_, err := tx.Exec(ctx,
			`INSERT INTO articles (project_id, chapter, subchapter, code, description, unit, quantity, elements)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, a.Chapter, a.SubChapter, a.Code, a.Description, a.Unit, a.Quantity, a.Elements)
		if err != nil {
			return 0, fmt.Errorf("inserting article %s: %w", a.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing project: %w", err)
	}
	return id, nil
}

func (c *Client) GetProject(ctx context.Context, name string) (*store.ProjectRecord, error) {
	var rec store.ProjectRecord
	err := c.pool.QueryRow(ctx,
		`SELECT id, name, document, created_at FROM projects WHERE name = $1`, name).
		Scan(&rec.ID, &rec.Name, &rec.Document, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", name, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}
	return &rec, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]store.ProjectSummary, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT p.id, p.name, p.created_at,
		       (SELECT COUNT(*) FROM analyses a WHERE a.project_id = p.id),
		       (SELECT COUNT(*) FROM articles t WHERE t.project_id = p.id)
		FROM projects p
		ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []store.ProjectSummary
	for rows.Next() {
		var s store.ProjectSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.FileCount, &s.ArticleCount); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (c *Client) DeleteProject(ctx context.Context, name string) (int64, error) {
	tag, err := c.pool.Exec(ctx, `DELETE FROM projects WHERE name = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("deleting project: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (c *Client) ListAnalyses(ctx context.Context, projectName string) ([]store.AnalysisRecord, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT a.file, a.specialty, a.element_count, a.skipped_lines, a.generated_at
		FROM analyses a
		JOIN projects p ON p.id = a.project_id
		WHERE p.name = $1
		ORDER BY a.id`, projectName)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var out []store.AnalysisRecord
	for rows.Next() {
		var r store.AnalysisRecord
		if err := rows.Scan(&r.File, &r.Specialty, &r.ElementCount, &r.SkippedLines, &r.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *Client) ListArticles(ctx context.Context, projectName string) ([]store.ArticleRecord, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT t.chapter, t.subchapter, t.code, t.description, t.unit, t.quantity, t.elements
		FROM articles t
		JOIN projects p ON p.id = t.project_id
		WHERE p.name = $1
		ORDER BY t.code`, projectName)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var out []store.ArticleRecord
	for rows.Next() {
		var r store.ArticleRecord
		if err := rows.Scan(&r.Chapter, &r.SubChapter, &r.Code, &r.Description, &r.Unit, &r.Quantity, &r.Elements); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
