package store

import (
	"context"
	"fmt"
	"os"

	"github.com/cesargomez89/lrcsieve/internal/constants"
	"github.com/cesargomez89/lrcsieve/internal/domain"
)

// Source is the read-only input corpus.
type Source struct {
	db          *DB
	minDuration int
}

// OpenSource opens the input database read-only. Rows whose duration is
// present and below minDuration seconds are never returned by Scan.
func OpenSource(path string, minDuration int) (*Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, storageErr("open source", err)
	}

	db, err := openSQLite("file:"+path+"?mode=ro",
		fmt.Sprintf("mmap_size=%d", constants.ReadMmapSize),
		fmt.Sprintf("cache_size=-%d", constants.ReadCacheSizeKiB),
	)
	if err != nil {
		return nil, storageErr("open source", err)
	}
	return &Source{db: db, minDuration: minDuration}, nil
}

// Count returns the number of rows in the input table, before filtering.
func (s *Source) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, sourceCountQuery); err != nil {
		return 0, storageErr("count source", err)
	}
	return n, nil
}

// Scan streams every row passing the duration pre-filter to fn in id order.
// It stops at the first error from fn and returns it unchanged.
func (s *Source) Scan(ctx context.Context, fn func(domain.SourceRecord) error) error {
	rows, err := s.db.QueryxContext(ctx, sourceScanQuery, s.minDuration)
	if err != nil {
		return storageErr("query source", err)
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	var row domain.SourceRow
	for rows.Next() {
		row = domain.SourceRow{}
		if err := rows.StructScan(&row); err != nil {
			return storageErr("scan source row", err)
		}
		if field := row.MissingField(); field != "" {
			return fmt.Errorf("%w: id %d has NULL %s", ErrMalformedRecord, row.ID, field)
		}
		if err := fn(row.Record()); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return storageErr("iterate source", err)
	}
	return nil
}

func (s *Source) Close() error {
	return s.db.Close()
}
