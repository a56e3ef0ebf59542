package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"takeoff/internal/store"
)

// SaveProject replaces any existing project with the same name. The
// document, analyses, and articles are written in one transaction so a
// reader never sees a half-saved project.
func (c *Client) SaveProject(ctx context.Context, p store.ProjectInput) (int64, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, p.Name); err != nil {
		return 0, fmt.Errorf("replacing project: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO projects (name, document) VALUES (?, ?)`,
		p.Name, string(p.Document))
	if err != nil {
		return 0, fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading project id: %w", err)
	}

	for _, a := range p.Analyses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO analyses (project_id, file, specialty, element_count, skipped_lines, generated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, a.File, a.Specialty, a.ElementCount, a.SkippedLines, a.GeneratedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return 0, fmt.Errorf("inserting analysis %s: %w", a.File, err)
		}
	}

	for _, a := range p.Articles {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO articles (project_id, chapter, subchapter, code, description, unit, quantity, elements)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, a.Chapter, a.SubChapter, a.Code, a.Description, a.Unit, a.Quantity, a.Elements)
		if err != nil {
			return 0, fmt.Errorf("inserting article %s: %w", a.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing project: %w", err)
	}
	return id, nil
}

func (c *Client) GetProject(ctx context.Context, name string) (*store.ProjectRecord, error) {
	var rec store.ProjectRecord
	var doc, createdAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT id, name, document, created_at FROM projects WHERE name = ?`, name).
		Scan(&rec.ID, &rec.Name, &doc, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", name, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}
	rec.Document = []byte(doc)
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]store.ProjectSummary, error) {
	rows, err := c.db.QueryContext(ctx, `
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
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Name, &createdAt, &s.FileCount, &s.ArticleCount); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (c *Client) DeleteProject(ctx context.Context, name string) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("deleting project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return n, nil
}

func (c *Client) ListAnalyses(ctx context.Context, projectName string) ([]store.AnalysisRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT a.file, a.specialty, a.element_count, a.skipped_lines, a.generated_at
		FROM analyses a
		JOIN projects p ON p.id = a.project_id
		WHERE p.name = ?
		ORDER BY a.id`, projectName)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var out []store.AnalysisRecord
	for rows.Next() {
		var r store.AnalysisRecord
		var generatedAt string
		if err := rows.Scan(&r.File, &r.Specialty, &r.ElementCount, &r.SkippedLines, &generatedAt); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		r.GeneratedAt = parseTime(generatedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *Client) ListArticles(ctx context.Context, projectName string) ([]store.ArticleRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT t.chapter, t.subchapter, t.code, t.description, t.unit, t.quantity, t.elements
		FROM articles t
		JOIN projects p ON p.id = t.project_id
		WHERE p.name = ?
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

// parseTime accepts both sqlite's datetime('now') format and RFC 3339.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
