package sqlite

import (
	"context"
	"database/sql"
)

// ddl mirrors migrations/0001_init.sql in SQLite dialect. The local build
// target has no migration tooling, so the schema is ensured on open.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
        user_id       TEXT PRIMARY KEY,
        email         TEXT NOT NULL UNIQUE,
        display_name  TEXT,
        role          TEXT NOT NULL DEFAULT 'team',
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS projects (
        project_id    TEXT PRIMARY KEY,
        client_id     TEXT NOT NULL REFERENCES users(user_id),
        name          TEXT NOT NULL,
        description   TEXT,
        status        TEXT NOT NULL DEFAULT 'draft',
        deadline      TIMESTAMP,
        progress      INTEGER NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
        budget        REAL,
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS tasks (
        task_id       TEXT PRIMARY KEY,
        project_id    TEXT NOT NULL REFERENCES projects(project_id),
        title         TEXT NOT NULL,
        status        TEXT NOT NULL DEFAULT 'todo',
        priority      TEXT NOT NULL DEFAULT 'medium',
        deadline      TIMESTAMP,
        assignee_id   TEXT REFERENCES users(user_id),
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS time_entries (
        entry_id      TEXT PRIMARY KEY,
        task_id       TEXT NOT NULL REFERENCES tasks(task_id),
        user_id       TEXT NOT NULL REFERENCES users(user_id),
        entry_date    TIMESTAMP NOT NULL,
        minutes       INTEGER NOT NULL CHECK (minutes >= 0),
        note          TEXT,
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS notifications (
        notification_id TEXT PRIMARY KEY,
        user_id         TEXT NOT NULL REFERENCES users(user_id),
        message         TEXT NOT NULL,
        is_read         INTEGER NOT NULL DEFAULT 0,
        creation_time   TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS activities (
        activity_id   TEXT PRIMARY KEY,
        actor_id      TEXT NOT NULL,
        action        TEXT NOT NULL,
        entity_kind   TEXT NOT NULL,
        entity_id     TEXT NOT NULL,
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
