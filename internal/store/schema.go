package store

// OutputSchema creates the output table. There is no IF NOT EXISTS: a run
// must start from an empty output store.
const OutputSchema = `
CREATE TABLE lyrics (
	id INTEGER PRIMARY KEY,
	track_name TEXT NOT NULL,
	artist_name TEXT NOT NULL,
	album_name TEXT,
	duration REAL,
	synced_lyrics TEXT NOT NULL,
	lang TEXT NOT NULL
);
`

// OutputIndexes are built once after the load.
const OutputIndexes = `
CREATE INDEX idx_artist_track ON lyrics(artist_name, track_name);
CREATE INDEX idx_lang ON lyrics(lang);
ANALYZE;
`

const (
	sourceCountQuery = `SELECT COUNT(*) FROM lyrics`

	sourceScanQuery = `SELECT id, track_name, artist_name, album_name, duration, synced_lyrics
		FROM lyrics
		WHERE duration IS NULL OR duration >= ?
		ORDER BY id`

	insertLyricQuery = `INSERT INTO lyrics (
		id, track_name, artist_name, album_name, duration, synced_lyrics, lang
	) VALUES (
		:id, :track_name, :artist_name, :album_name, :duration, :synced_lyrics, :lang
	)`

	deleteLyricQuery = `DELETE FROM lyrics WHERE id = ?`

	countByLanguageQuery = `SELECT lang, COUNT(*) AS n FROM lyrics GROUP BY lang`
)
