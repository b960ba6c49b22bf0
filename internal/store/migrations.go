package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'pending',
	priority    TEXT NOT NULL DEFAULT 'medium',
	assigned_to TEXT NOT NULL DEFAULT '',
	due_date    DATETIME,
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL,
	fetched_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	type        TEXT NOT NULL DEFAULT 'system',
	title       TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL,
	link        TEXT NOT NULL DEFAULT '',
	is_read     INTEGER NOT NULL DEFAULT 0,
	priority    TEXT NOT NULL DEFAULT 'medium',
	created_by  TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	fetched_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS worklog_drafts (
	id          TEXT PRIMARY KEY,
	date        TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	hours       REAL NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
