package schema

// SchemaSQL contains the full database schema initialization script.
// cmd/setup uses it to bootstrap a database without the goose toolchain;
// keep it in sync with migrations/.
const SchemaSQL = `
-- Characters: one persistent record per user, created on first contact and
-- never deleted. Inventory is an append-only JSONB array of item labels.
CREATE TABLE IF NOT EXISTS characters (
    user_id VARCHAR(255) PRIMARY KEY,
    health INTEGER NOT NULL DEFAULT 100,
    intelligence INTEGER NOT NULL DEFAULT 10,
    strength INTEGER NOT NULL DEFAULT 10,
    gold INTEGER NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 1,
    experience INTEGER NOT NULL DEFAULT 0,
    inventory JSONB NOT NULL DEFAULT '[]',
    avatar_style VARCHAR(50) NOT NULL DEFAULT 'classic',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Tasks: quests a user has logged. Completed rows are kept for history;
-- active listings filter on the completed flag.
CREATE TABLE IF NOT EXISTS tasks (
    task_id UUID PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL,
    name VARCHAR(255) NOT NULL,
    difficulty VARCHAR(20) NOT NULL,
    quest_type VARCHAR(20) NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_active ON tasks (user_id, created_at) WHERE NOT completed;

-- Events: the quest journal. Every user-addressed bus event lands here;
-- a scheduled cleanup trims rows past the retention window.
CREATE TABLE IF NOT EXISTS events (
    id BIGSERIAL PRIMARY KEY,
    event_type VARCHAR(50) NOT NULL,
    user_id VARCHAR(255) NOT NULL,
    payload JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_events_user_recent ON events (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_events_created_at ON events (created_at);
`
