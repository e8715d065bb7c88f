// Package pipeline drives one filtering run: it streams the input corpus
// through the quality gate, the language classifier and both dedup indices,
// and writes survivors to the output store in kept-count batches.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cesargomez89/lrcsieve/internal/config"
	"github.com/cesargomez89/lrcsieve/internal/constants"
	"github.com/cesargomez89/lrcsieve/internal/dedup"
	"github.com/cesargomez89/lrcsieve/internal/domain"
	"github.com/cesargomez89/lrcsieve/internal/langdetect"
	"github.com/cesargomez89/lrcsieve/internal/logger"
	"github.com/cesargomez89/lrcsieve/internal/quality"
	"github.com/cesargomez89/lrcsieve/internal/textnorm"
)

// RecordSource is the ordered input cursor.
type RecordSource interface {
	Count(ctx context.Context) (int64, error)
	Scan(ctx context.Context, fn func(domain.SourceRecord) error) error
}

// RecordSink is the batched output store.
type RecordSink interface {
	Begin(ctx context.Context) error
	Insert(ctx context.Context, rec domain.OutputRecord) error
	Delete(ctx context.Context, id int64) error
	Commit() error
	Rollback() error
	BuildIndexes(ctx context.Context) error
	CountByLanguage(ctx context.Context) (map[domain.Language]int64, error)
}

// Options tune batching and progress reporting.
type Options struct {
	CommitEvery   int64
	ProgressEvery int64
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{CommitEvery: cfg.CommitEvery, ProgressEvery: cfg.ProgressEvery}
}

// Report summarizes a finished run.
type Report struct {
	Stats         domain.RunStats
	Total         int64
	FilterElapsed time.Duration
	IndexElapsed  time.Duration
	Languages     map[domain.Language]int64
}

// Driver owns all mutable state of a run. A Driver runs once.
type Driver struct {
	source     RecordSource
	sink       RecordSink
	gate       quality.Gate
	classifier langdetect.Classifier
	opts       Options
	logger     *logger.Logger

	fingerprints *dedup.FingerprintIndex
	identities   *dedup.IdentityIndex

	stats      domain.RunStats
	total      int64
	nextCommit int64
	started    time.Time
	now        func() time.Time
}

func New(source RecordSource, sink RecordSink, gate quality.Gate, classifier langdetect.Classifier, opts Options, log *logger.Logger) *Driver {
	if opts.CommitEvery < 1 {
		opts.CommitEvery = constants.DefaultCommitEvery
	}
	if opts.ProgressEvery < 1 {
		opts.ProgressEvery = constants.DefaultProgressEvery
	}
	return &Driver{
		source:       source,
		sink:         sink,
		gate:         gate,
		classifier:   classifier,
		opts:         opts,
		logger:       log.WithComponent("pipeline"),
		fingerprints: dedup.NewFingerprintIndex(constants.FingerprintCapacity),
		identities:   dedup.NewIdentityIndex(constants.IdentityCapacity),
		nextCommit:   opts.CommitEvery,
		now:          time.Now,
	}
}

// Stats returns the counters so far.
func (d *Driver) Stats() domain.RunStats {
	return d.stats
}

// Run processes the whole input and finalizes the output store. On error the
// open batch is rolled back; earlier batches stay committed.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	total, err := d.source.Count(ctx)
	if err != nil {
		return nil, err
	}
	d.total = total
	d.logger.Info("Starting filter", "total_records", humanize.Comma(total))

	d.started = d.now()
	if err := d.sink.Begin(ctx); err != nil {
		return nil, err
	}

	if err := d.source.Scan(ctx, func(rec domain.SourceRecord) error {
		return d.process(ctx, rec)
	}); err != nil {
		if rbErr := d.sink.Rollback(); rbErr != nil {
			d.logger.Error("Failed to roll back batch", "error", rbErr)
		}
		return nil, err
	}

	if err := d.sink.Commit(); err != nil {
		return nil, err
	}
	filterElapsed := d.now().Sub(d.started)
	d.logSummary(filterElapsed)

	d.logger.Info("Building indexes")
	indexStart := d.now()
	if err := d.sink.BuildIndexes(ctx); err != nil {
		return nil, err
	}
	indexElapsed := d.now().Sub(indexStart)
	d.logger.Info("Indexes built", "elapsed", indexElapsed.Round(time.Millisecond).String())

	langs, err := d.sink.CountByLanguage(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range domain.SupportedLanguages {
		d.logger.Info("Language count", "lang", string(l), "records", humanize.Comma(langs[l]))
	}

	return &Report{
		Stats:         d.stats,
		Total:         total,
		FilterElapsed: filterElapsed,
		IndexElapsed:  indexElapsed,
		Languages:     langs,
	}, nil
}

// process runs one record through every stage, stopping at the first
// rejection. Only storage failures and cancellation are returned.
func (d *Driver) process(ctx context.Context, rec domain.SourceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.stats.Processed++
	if d.stats.Processed%d.opts.ProgressEvery == 0 {
		d.logProgress()
	}

	stripped := textnorm.StripTimeMarkers(rec.SyncedLyrics)

	verdict := d.gate.Evaluate(rec.SyncedLyrics, stripped)
	if !verdict.Passed {
		d.stats.QualityRejected++
		return nil
	}

	lang, ok := d.classifier.Classify(stripped)
	if !ok {
		d.stats.LanguageRejected++
		return nil
	}

	if d.fingerprints.CheckAndInsert(stripped) == dedup.FingerprintDuplicate {
		d.stats.ContentDuplicates++
		return nil
	}

	key := dedup.NewIdentityKey(rec.ArtistName, rec.TrackName, rec.Duration)
	res := d.identities.Resolve(key, rec.ID, verdict.Lines)
	switch res.Outcome {
	case dedup.IdentityRejectedShorter:
		d.stats.MetadataDuplicates++
		return nil
	case dedup.IdentitySuperseded:
		if err := d.sink.Delete(ctx, res.PriorID); err != nil {
			return err
		}
		d.stats.MetadataDuplicates++
		d.stats.Kept--
		d.logger.WithRecord(rec.ID, rec.TrackName).Debug("Superseded shorter record",
			"prior_id", res.PriorID, "lines", verdict.Lines)
	}

	if err := d.sink.Insert(ctx, domain.OutputRecord{SourceRecord: rec, Lang: lang}); err != nil {
		return err
	}
	d.stats.Kept++

	if d.stats.Kept >= d.nextCommit {
		if err := d.rotateBatch(ctx); err != nil {
			return err
		}
		d.nextCommit += d.opts.CommitEvery
	}
	return nil
}

func (d *Driver) rotateBatch(ctx context.Context) error {
	if err := d.sink.Commit(); err != nil {
		return err
	}
	d.logger.Debug("Committed batch", "kept", d.stats.Kept)
	return d.sink.Begin(ctx)
}

func (d *Driver) logProgress() {
	elapsed := d.now().Sub(d.started).Seconds()
	var rate float64
	if elapsed > 0 {
		rate = float64(d.stats.Processed) / elapsed
	}
	var pct float64
	if d.total > 0 {
		pct = float64(d.stats.Processed) * 100 / float64(d.total)
	}
	d.logger.Info("Progress",
		"processed", fmt.Sprintf("%s/%s", humanize.Comma(d.stats.Processed), humanize.Comma(d.total)),
		"percent", fmt.Sprintf("%.1f", pct),
		"rate", humanize.Comma(int64(rate))+"/s",
		"kept", humanize.Comma(d.stats.Kept),
	)
}

func (d *Driver) logSummary(elapsed time.Duration) {
	s := d.stats
	d.logger.Info("Filter complete",
		"processed", humanize.Comma(s.Processed),
		"quality_rejected", humanize.Comma(s.QualityRejected),
		"language_rejected", humanize.Comma(s.LanguageRejected),
		"content_duplicates", humanize.Comma(s.ContentDuplicates),
		"metadata_duplicates", humanize.Comma(s.MetadataDuplicates),
		"kept", humanize.Comma(s.Kept),
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)
}
