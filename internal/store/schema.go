package store

const Schema = `
CREATE TABLE IF NOT EXISTS artists (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	bio TEXT NOT NULL DEFAULT '',
	genres TEXT,  -- JSON array
	images TEXT,  -- JSON array
	popularity INTEGER NOT NULL DEFAULT 0,

	-- Audit
	created_by TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_by TEXT NOT NULL DEFAULT '',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Identity key: one row per artist name
CREATE UNIQUE INDEX IF NOT EXISTS idx_artists_name ON artists(name);

CREATE TABLE IF NOT EXISTS albums (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	artist_id TEXT NOT NULL,
	year TEXT NOT NULL DEFAULT '',
	release_date DATETIME,
	cover_art_path TEXT,
	total_tracks INTEGER NOT NULL DEFAULT 0,

	-- Audit
	created_by TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_by TEXT NOT NULL DEFAULT '',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,

	FOREIGN KEY (artist_id) REFERENCES artists(id)
);

-- Identity key: same title under different artists stays distinct
CREATE UNIQUE INDEX IF NOT EXISTS idx_albums_title_artist ON albums(title, artist_id);
CREATE INDEX IF NOT EXISTS idx_albums_artist_id ON albums(artist_id);

CREATE TABLE IF NOT EXISTS songs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	track_number INTEGER,
	duration INTEGER NOT NULL DEFAULT 0,  -- seconds
	genre TEXT NOT NULL DEFAULT '',
	file_path TEXT NOT NULL,
	file_size INTEGER NOT NULL DEFAULT 0,
	mime_type TEXT NOT NULL DEFAULT '',
	visibility TEXT NOT NULL DEFAULT 'PRIVATE',
	album_id TEXT NOT NULL,

	-- Audit
	created_by TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_by TEXT NOT NULL DEFAULT '',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,

	FOREIGN KEY (album_id) REFERENCES albums(id)
);

-- Dedup sentinel: at most one song per storage path
CREATE UNIQUE INDEX IF NOT EXISTS idx_songs_file_path ON songs(file_path);
CREATE INDEX IF NOT EXISTS idx_songs_album_id ON songs(album_id);
CREATE INDEX IF NOT EXISTS idx_songs_visibility ON songs(visibility);
`
