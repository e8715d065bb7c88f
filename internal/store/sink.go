package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/lrcsieve/internal/constants"
	"github.com/cesargomez89/lrcsieve/internal/domain"
)

var errNoBatch = errors.New("no open batch")

// Sink is the output store. Inserts and deletes go through an explicit batch
// transaction: Begin, any number of Insert/Delete, Commit.
type Sink struct {
	db     *DB
	tx     *sqlx.Tx
	insert *sqlx.NamedStmt
	delete *sqlx.Stmt
}

// CreateSink creates the output database at path with bulk-load settings.
// Durability is traded for speed: a crash leaves an unusable file and the run
// must start over.
func CreateSink(path string) (*Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, storageErr("create sink dir", err)
		}
	}

	db, err := openSQLite(path,
		"synchronous=OFF",
		"journal_mode=OFF",
		fmt.Sprintf("cache_size=-%d", constants.WriteCacheSizeKiB),
	)
	if err != nil {
		return nil, storageErr("open sink", err)
	}

	if _, err := db.Exec(OutputSchema); err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, storageErr("apply sink schema", err)
	}

	return &Sink{db: db}, nil
}

// Begin opens a new batch. Only one batch may be open at a time.
func (s *Sink) Begin(ctx context.Context) error {
	if s.tx != nil {
		return storageErr("begin batch", errors.New("batch already open"))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin batch", err)
	}

	insert, err := tx.PrepareNamedContext(ctx, insertLyricQuery)
	if err != nil {
		tx.Rollback() //nolint:errcheck // already failing
		return storageErr("prepare insert", err)
	}
	del, err := tx.PreparexContext(ctx, deleteLyricQuery)
	if err != nil {
		insert.Close() //nolint:errcheck // already failing
		tx.Rollback()  //nolint:errcheck // already failing
		return storageErr("prepare delete", err)
	}

	s.tx, s.insert, s.delete = tx, insert, del
	return nil
}

func (s *Sink) Insert(ctx context.Context, rec domain.OutputRecord) error {
	if s.tx == nil {
		return storageErr("insert lyric", errNoBatch)
	}
	if _, err := s.insert.ExecContext(ctx, rec); err != nil {
		return storageErr(fmt.Sprintf("insert lyric %d", rec.ID), err)
	}
	return nil
}

// Delete removes a previously inserted row. A missing row means the caller's
// bookkeeping is broken and is reported as an error.
func (s *Sink) Delete(ctx context.Context, id int64) error {
	if s.tx == nil {
		return storageErr("delete lyric", errNoBatch)
	}
	result, err := s.delete.ExecContext(ctx, id)
	if err != nil {
		return storageErr(fmt.Sprintf("delete lyric %d", id), err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr(fmt.Sprintf("delete lyric %d", id), err)
	}
	if rows == 0 {
		return storageErr(fmt.Sprintf("delete lyric %d", id), fmt.Errorf("lyric with id %d not found", id))
	}
	return nil
}

// Commit makes the open batch durable and closes it.
func (s *Sink) Commit() error {
	if s.tx == nil {
		return storageErr("commit batch", errNoBatch)
	}
	s.closeStmts()
	err := s.tx.Commit()
	s.tx = nil
	return storageErr("commit batch", err)
}

// Rollback discards the open batch, if any.
func (s *Sink) Rollback() error {
	if s.tx == nil {
		return nil
	}
	s.closeStmts()
	err := s.tx.Rollback()
	s.tx = nil
	return storageErr("rollback batch", err)
}

// InBatch reports whether a batch is open.
func (s *Sink) InBatch() bool {
	return s.tx != nil
}

// BuildIndexes creates the lookup indexes and refreshes planner statistics.
// It must run after the final Commit.
func (s *Sink) BuildIndexes(ctx context.Context) error {
	if s.tx != nil {
		return storageErr("build indexes", errors.New("batch still open"))
	}
	if _, err := s.db.ExecContext(ctx, OutputIndexes); err != nil {
		return storageErr("build indexes", err)
	}
	return nil
}

// CountByLanguage returns the row count per supported language. Languages
// without rows are reported as zero.
func (s *Sink) CountByLanguage(ctx context.Context) (map[domain.Language]int64, error) {
	type langCount struct {
		Lang  domain.Language `db:"lang"`
		Count int64           `db:"n"`
	}

	var rows []langCount
	if err := sqlx.SelectContext(ctx, s.queryer(), &rows, countByLanguageQuery); err != nil {
		return nil, storageErr("count by language", err)
	}

	counts := make(map[domain.Language]int64, len(domain.SupportedLanguages))
	for _, l := range domain.SupportedLanguages {
		counts[l] = 0
	}
	for _, r := range rows {
		counts[r.Lang] = r.Count
	}
	return counts, nil
}

// ListRecords returns every output row in id order. Intended for small
// stores and verification.
func (s *Sink) ListRecords(ctx context.Context) ([]domain.OutputRecord, error) {
	var records []domain.OutputRecord
	query := `SELECT id, track_name, artist_name, album_name, duration, synced_lyrics, lang FROM lyrics ORDER BY id`
	if err := sqlx.SelectContext(ctx, s.queryer(), &records, query); err != nil {
		return nil, storageErr("list lyrics", err)
	}
	return records, nil
}

// Close discards any open batch and closes the database.
func (s *Sink) Close() error {
	rbErr := s.Rollback()
	if err := s.db.Close(); err != nil {
		return storageErr("close sink", err)
	}
	return rbErr
}

// queryer reads through the open batch when there is one: the store has a
// single connection and the batch holds it.
func (s *Sink) queryer() sqlx.QueryerContext {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *Sink) closeStmts() {
	if s.insert != nil {
		s.insert.Close() //nolint:errcheck // statement scoped to the batch
	}
	if s.delete != nil {
		s.delete.Close() //nolint:errcheck // statement scoped to the batch
	}
	s.insert, s.delete = nil, nil
}
