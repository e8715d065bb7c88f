package domain

import (
	"database/sql"
)

// SourceRecord is one row of the input corpus. It is never mutated.
type SourceRecord struct {
	ID           int64    `db:"id"`
	TrackName    string   `db:"track_name"`
	ArtistName   string   `db:"artist_name"`
	AlbumName    *string  `db:"album_name"`
	Duration     *float64 `db:"duration"`
	SyncedLyrics string   `db:"synced_lyrics"`
}

// SourceRow mirrors SourceRecord with nullable scan targets so NULL required
// columns can be reported instead of failing inside the driver.
type SourceRow struct {
	ID           int64           `db:"id"`
	TrackName    sql.NullString  `db:"track_name"`
	ArtistName   sql.NullString  `db:"artist_name"`
	AlbumName    sql.NullString  `db:"album_name"`
	Duration     sql.NullFloat64 `db:"duration"`
	SyncedLyrics sql.NullString  `db:"synced_lyrics"`
}

// MissingField returns the first required column that is NULL, or "".
func (r *SourceRow) MissingField() string {
	switch {
	case !r.TrackName.Valid:
		return "track_name"
	case !r.ArtistName.Valid:
		return "artist_name"
	case !r.SyncedLyrics.Valid:
		return "synced_lyrics"
	}
	return ""
}

// Record converts the row. Callers check MissingField first.
func (r *SourceRow) Record() SourceRecord {
	rec := SourceRecord{
		ID:           r.ID,
		TrackName:    r.TrackName.String,
		ArtistName:   r.ArtistName.String,
		SyncedLyrics: r.SyncedLyrics.String,
	}
	if r.AlbumName.Valid {
		album := r.AlbumName.String
		rec.AlbumName = &album
	}
	if r.Duration.Valid {
		d := r.Duration.Float64
		rec.Duration = &d
	}
	return rec
}

// OutputRecord is an accepted record tagged with its language.
type OutputRecord struct {
	SourceRecord
	Lang Language `db:"lang"`
}

// RunStats holds the counters of one filtering run. Kept is a net count: it
// drops by one whenever a kept record is superseded.
type RunStats struct {
	Processed          int64
	QualityRejected    int64
	LanguageRejected   int64
	ContentDuplicates  int64
	MetadataDuplicates int64
	Kept               int64
}
