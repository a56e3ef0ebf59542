package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS projects (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		document   TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS analyses (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id    INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		file          TEXT NOT NULL,
		specialty     TEXT NOT NULL,
		element_count INTEGER NOT NULL DEFAULT 0,
		skipped_lines INTEGER NOT NULL DEFAULT 0,
		generated_at  TEXT NOT NULL DEFAULT '',
		CONSTRAINT uq_analysis_file UNIQUE (project_id, file)
	);

	CREATE TABLE IF NOT EXISTS articles (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		chapter     TEXT NOT NULL,
		subchapter  TEXT NOT NULL,
		code        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL DEFAULT '',
		quantity    REAL NOT NULL DEFAULT 0,
		elements    INTEGER NOT NULL DEFAULT 0,
		CONSTRAINT uq_article_code UNIQUE (project_id, code)
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_project ON analyses (project_id);
	CREATE INDEX IF NOT EXISTS idx_articles_project ON articles (project_id);
	CREATE INDEX IF NOT EXISTS idx_articles_chapter ON articles (project_id, chapter);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
