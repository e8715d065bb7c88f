package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/lrcsieve/internal/domain"
	"github.com/cesargomez89/lrcsieve/internal/store/storetest"
)

func setupSink(t *testing.T) *Sink {
	t.Helper()
	sink, err := CreateSink(filepath.Join(t.TempDir(), "out.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if cErr := sink.Close(); cErr != nil {
			t.Logf("sink.Close error: %v", cErr)
		}
	})
	return sink
}

func outputRecord(id int64, lang domain.Language) domain.OutputRecord {
	return domain.OutputRecord{
		SourceRecord: domain.SourceRecord{
			ID:           id,
			TrackName:    "Track",
			ArtistName:   "Artist",
			AlbumName:    storetest.Album("Album"),
			Duration:     storetest.Duration(200),
			SyncedLyrics: "[00:01.00]hello",
		},
		Lang: lang,
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, err := OpenSource(filepath.Join(t.TempDir(), "nope.db"), 60)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestSource_CountAndScan(t *testing.T) {
	path := storetest.NewSourceDB(t, []domain.SourceRecord{
		{ID: 30, TrackName: "c", ArtistName: "x", SyncedLyrics: "l", Duration: storetest.Duration(200)},
		{ID: 10, TrackName: "a", ArtistName: "x", SyncedLyrics: "l"},
		{ID: 20, TrackName: "b", ArtistName: "x", SyncedLyrics: "l", Duration: storetest.Duration(59.9)},
		{ID: 40, TrackName: "d", ArtistName: "x", SyncedLyrics: "l", Duration: storetest.Duration(60), AlbumName: storetest.Album("Album")},
	})

	src, err := OpenSource(path, 60)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck // test cleanup

	total, err := src.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	var got []domain.SourceRecord
	err = src.Scan(context.Background(), func(r domain.SourceRecord) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, int64(10), got[0].ID)
	assert.Nil(t, got[0].Duration)
	assert.Equal(t, int64(30), got[1].ID)
	assert.Equal(t, int64(40), got[2].ID)
	require.NotNil(t, got[2].AlbumName)
	assert.Equal(t, "Album", *got[2].AlbumName)
	require.NotNil(t, got[2].Duration)
	assert.Equal(t, 60.0, *got[2].Duration)
}

func TestSource_ScanMalformedRow(t *testing.T) {
	path := storetest.NewSourceDB(t, nil)
	storetest.Exec(t, path, `INSERT INTO lyrics (id, track_name, artist_name, synced_lyrics) VALUES (1, 'Track', NULL, 'text')`)

	src, err := OpenSource(path, 60)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck // test cleanup

	err = src.Scan(context.Background(), func(domain.SourceRecord) error {
		t.Fatal("callback should not run for a malformed row")
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "artist_name")
}

func TestSource_ScanStopsOnCallbackError(t *testing.T) {
	path := storetest.NewSourceDB(t, []domain.SourceRecord{
		{ID: 1, TrackName: "a", ArtistName: "x", SyncedLyrics: "l"},
		{ID: 2, TrackName: "b", ArtistName: "x", SyncedLyrics: "l"},
	})

	src, err := OpenSource(path, 60)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck // test cleanup

	boom := errors.New("boom")
	calls := 0
	err = src.Scan(context.Background(), func(domain.SourceRecord) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestSink_InsertDeleteCommit(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	require.NoError(t, sink.Begin(ctx))
	assert.True(t, sink.InBatch())
	require.NoError(t, sink.Insert(ctx, outputRecord(1, domain.LanguageEnglish)))
	require.NoError(t, sink.Insert(ctx, outputRecord(2, domain.LanguageJapanese)))
	require.NoError(t, sink.Commit())
	assert.False(t, sink.InBatch())

	require.NoError(t, sink.Begin(ctx))
	require.NoError(t, sink.Delete(ctx, 1))
	require.NoError(t, sink.Insert(ctx, outputRecord(3, domain.LanguageEnglish)))
	require.NoError(t, sink.Commit())

	records, err := sink.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, domain.LanguageJapanese, records[0].Lang)
	assert.Equal(t, int64(3), records[1].ID)
	require.NotNil(t, records[1].AlbumName)
	assert.Equal(t, "Album", *records[1].AlbumName)

	counts, err := sink.CountByLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Language]int64{
		domain.LanguageJapanese: 1,
		domain.LanguageKorean:   0,
		domain.LanguageEnglish:  1,
	}, counts)
}

func TestSink_NullableColumns(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	rec := outputRecord(1, domain.LanguageKorean)
	rec.AlbumName = nil
	rec.Duration = nil

	require.NoError(t, sink.Begin(ctx))
	require.NoError(t, sink.Insert(ctx, rec))
	require.NoError(t, sink.Commit())

	records, err := sink.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].AlbumName)
	assert.Nil(t, records[0].Duration)
}

func TestSink_RollbackDiscardsBatch(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	require.NoError(t, sink.Begin(ctx))
	require.NoError(t, sink.Insert(ctx, outputRecord(1, domain.LanguageEnglish)))
	require.NoError(t, sink.Rollback())

	records, err := sink.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSink_ReadsInsideBatch(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	require.NoError(t, sink.Begin(ctx))
	require.NoError(t, sink.Insert(ctx, outputRecord(1, domain.LanguageEnglish)))

	counts, err := sink.CountByLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.LanguageEnglish])
	require.NoError(t, sink.Commit())
}

func TestSink_RequiresBatch(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	assert.ErrorIs(t, sink.Insert(ctx, outputRecord(1, domain.LanguageEnglish)), ErrStorage)
	assert.ErrorIs(t, sink.Delete(ctx, 1), ErrStorage)
	assert.ErrorIs(t, sink.Commit(), ErrStorage)

	require.NoError(t, sink.Begin(ctx))
	assert.ErrorIs(t, sink.Begin(ctx), ErrStorage)
	require.NoError(t, sink.Commit())
}

func TestSink_DeleteMissingRow(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	require.NoError(t, sink.Begin(ctx))
	err := sink.Delete(ctx, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	require.NoError(t, sink.Rollback())
}

func TestSink_DuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	require.NoError(t, sink.Begin(ctx))
	require.NoError(t, sink.Insert(ctx, outputRecord(1, domain.LanguageEnglish)))
	assert.ErrorIs(t, sink.Insert(ctx, outputRecord(1, domain.LanguageEnglish)), ErrStorage)
	require.NoError(t, sink.Rollback())
}

func TestSink_InvalidLanguageRejected(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	require.NoError(t, sink.Begin(ctx))
	assert.ErrorIs(t, sink.Insert(ctx, outputRecord(1, domain.Language("ru"))), ErrStorage)
	require.NoError(t, sink.Rollback())
}

func TestSink_BuildIndexes(t *testing.T) {
	ctx := context.Background()
	sink := setupSink(t)

	require.NoError(t, sink.Begin(ctx))
	require.NoError(t, sink.Insert(ctx, outputRecord(1, domain.LanguageEnglish)))
	assert.ErrorIs(t, sink.BuildIndexes(ctx), ErrStorage)
	require.NoError(t, sink.Commit())

	require.NoError(t, sink.BuildIndexes(ctx))

	var names []string
	require.NoError(t, sink.db.Select(&names, `SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'lyrics' ORDER BY name`))
	assert.Equal(t, []string{"idx_artist_track", "idx_lang"}, names)
}

func TestCreateSink_ExistingTableFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")

	sink, err := CreateSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	_, err = CreateSink(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestCreateSink_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.db")

	sink, err := CreateSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := storageErr("commit batch", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "commit batch: disk full", err.Error())

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "commit batch", se.Op)

	assert.NoError(t, storageErr("noop", nil))
}
