package sqlstore

import "github.com/jmoiron/sqlx"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. The statements stay within the
// subset understood by both SQLite and PostgreSQL.
// Money and quantity columns are TEXT holding exact decimal strings.
// IMPORTANT: tables are created in foreign key order.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    lastname TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'new',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS meetings (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    scheduled_at BIGINT NOT NULL,
    owner_id TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    joined_at BIGINT NOT NULL,
    UNIQUE (meeting_id, user_id),
    FOREIGN KEY (meeting_id) REFERENCES meetings(id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    comment TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    UNIQUE (meeting_id, user_id),
    FOREIGN KEY (meeting_id) REFERENCES meetings(id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS custom_items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS checks (
    id TEXT PRIMARY KEY,
    participant_id TEXT NOT NULL,
    custom_item_id TEXT NOT NULL,
    custom_item_number TEXT NOT NULL,
    splited_bill TEXT NOT NULL,
    UNIQUE (custom_item_id, participant_id),
    FOREIGN KEY (participant_id) REFERENCES participants(id),
    FOREIGN KEY (custom_item_id) REFERENCES custom_items(id)
);

CREATE INDEX IF NOT EXISTS idx_participants_meeting_id ON participants(meeting_id);
CREATE INDEX IF NOT EXISTS idx_participants_user_id ON participants(user_id);
CREATE INDEX IF NOT EXISTS idx_feedback_meeting_id ON feedback(meeting_id);
CREATE INDEX IF NOT EXISTS idx_feedback_user_id ON feedback(user_id);
CREATE INDEX IF NOT EXISTS idx_checks_custom_item_id ON checks(custom_item_id);
CREATE INDEX IF NOT EXISTS idx_checks_participant_id ON checks(participant_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
