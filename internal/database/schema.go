package database

const schema = `
CREATE TABLE IF NOT EXISTS translation_mappings (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    original TEXT NOT NULL,
    translation TEXT NOT NULL,
    category TEXT,
    user_id UUID,
    usage_count BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_translation_mappings_original ON translation_mappings(original);
CREATE INDEX IF NOT EXISTS idx_translation_mappings_user_id ON translation_mappings(user_id);
CREATE INDEX IF NOT EXISTS idx_translation_mappings_usage ON translation_mappings(usage_count DESC);

CREATE TABLE IF NOT EXISTS category_lists (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    categories JSON NOT NULL,
    is_default BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_category_lists_name ON category_lists(name);
CREATE UNIQUE INDEX IF NOT EXISTS idx_category_lists_single_default ON category_lists(is_default) WHERE is_default;

CREATE TABLE IF NOT EXISTS receipts (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID,
    user_ids JSONB NOT NULL DEFAULT '[]',
    items JSONB NOT NULL DEFAULT '[]',
    total NUMERIC(12, 2) NOT NULL DEFAULT 0,
    store TEXT NOT NULL DEFAULT '',
    date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_receipts_user_date ON receipts(user_id, date DESC);
CREATE INDEX IF NOT EXISTS idx_receipts_user_ids ON receipts USING GIN (user_ids);
CREATE INDEX IF NOT EXISTS idx_receipts_created_at ON receipts(created_at DESC);
`
