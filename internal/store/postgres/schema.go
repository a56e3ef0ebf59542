package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS projects (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		document   JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS analyses (
		id            BIGSERIAL PRIMARY KEY,
		project_id    BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		file          TEXT NOT NULL,
		specialty     TEXT NOT NULL,
		element_count INTEGER NOT NULL DEFAULT 0,
		skipped_lines INTEGER NOT NULL DEFAULT 0,
		generated_at  TIMESTAMPTZ,
		CONSTRAINT uq_analysis_file UNIQUE (project_id, file)
	);

	CREATE TABLE IF NOT EXISTS articles (
		id          BIGSERIAL PRIMARY KEY,
		project_id  BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		chapter     TEXT NOT NULL,
		subchapter  TEXT NOT NULL,
		code        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL DEFAULT '',
		quantity    DOUBLE PRECISION NOT NULL DEFAULT 0,
		elements    INTEGER NOT NULL DEFAULT 0,
		CONSTRAINT uq_article_code UNIQUE (project_id, code)
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_project ON analyses (project_id);
	CREATE INDEX IF NOT EXISTS idx_articles_project ON articles (project_id);
	CREATE INDEX IF NOT EXISTS idx_articles_chapter ON articles (project_id, chapter);
	`

	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("executing DDL: %w", err)
	}
	return nil
}
