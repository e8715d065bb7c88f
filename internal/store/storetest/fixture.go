// Package storetest builds throwaway input corpora for tests.
package storetest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cesargomez89/lrcsieve/internal/domain"
)

// SourceSchema matches the upstream corpus table. Columns are nullable so
// tests can write malformed rows.
const SourceSchema = `
CREATE TABLE lyrics (
	id INTEGER PRIMARY KEY,
	track_name TEXT,
	artist_name TEXT,
	album_name TEXT,
	duration REAL,
	synced_lyrics TEXT
);
`

// NewSourceDB writes rows into a fresh input database under t.TempDir and
// returns its path.
func NewSourceDB(t *testing.T, rows []domain.SourceRecord) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "source.db")
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open source db: %v", err)
	}
	defer db.Close() //nolint:errcheck // test cleanup

	if _, err := db.Exec(SourceSchema); err != nil {
		t.Fatalf("Failed to create source schema: %v", err)
	}

	query := `INSERT INTO lyrics (id, track_name, artist_name, album_name, duration, synced_lyrics)
		VALUES (:id, :track_name, :artist_name, :album_name, :duration, :synced_lyrics)`
	for _, r := range rows {
		if _, err := db.NamedExec(query, r); err != nil {
			t.Fatalf("Failed to insert source row %d: %v", r.ID, err)
		}
	}
	return path
}

// Exec runs raw statements against a database file, for rows NewSourceDB
// cannot express.
func Exec(t *testing.T, path string, stmts ...string) {
	t.Helper()

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close() //nolint:errcheck // test cleanup

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("Failed to exec %q: %v", s, err)
		}
	}
}

// SyncedLyrics builds n time-stamped lines of text.
func SyncedLyrics(n int, text string) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("[%02d:%02d.00]%s", i/60, i%60, text)
	}
	return strings.Join(lines, "\n")
}

// Duration returns a pointer for SourceRecord.Duration.
func Duration(seconds float64) *float64 {
	return &seconds
}

// Album returns a pointer for SourceRecord.AlbumName.
func Album(name string) *string {
	return &name
}
