package storage

// Schema creates the three record tables. Every statement is idempotent so it
// can run against an existing file on each open. Files created elsewhere may
// still hold NULLs in the categorized and narrative columns; reads coalesce
// them.
const Schema = `
CREATE TABLE IF NOT EXISTS sequenced_items (
    issue_num INTEGER NOT NULL,
    vol_num INTEGER NOT NULL,
    mainstory TEXT,
    year INTEGER,
    PRIMARY KEY (issue_num, vol_num)
);

CREATE INDEX IF NOT EXISTS idx_sequenced_year ON sequenced_items(year);

CREATE TABLE IF NOT EXISTS categorized_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT DEFAULT '',
    writer TEXT DEFAULT '',
    artist TEXT DEFAULT '',
    collection TEXT DEFAULT '',
    publisher TEXT DEFAULT '',
    issues TEXT DEFAULT '',
    main_character TEXT DEFAULT '',
    event BOOLEAN DEFAULT 0,
    story_year INTEGER DEFAULT 0,
    category TEXT DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_categorized_category ON categorized_items(category);

CREATE TABLE IF NOT EXISTS narrative_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    story_name TEXT DEFAULT '',
    series_name TEXT DEFAULT '',
    year INTEGER DEFAULT 0
);
`
