package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_analyzer/internal/domain"
)

type IngestionService struct {
	src       domain.SeedSource
	sink      domain.ReviewSink
	batchSize int
	workers   int64
}

type IngestStats struct {
	Read    int
	Written int
	Failed  int
	Batches int
}

func NewIngestionService(src domain.SeedSource, sink domain.ReviewSink, batchSize, workers int) *IngestionService {
	if batchSize <= 0 {
		batchSize = 500
	}
	if workers <= 0 {
		workers = 1
	}
	return &IngestionService{src: src, sink: sink, batchSize: batchSize, workers: int64(workers)}
}

// seedIDNamespace scopes the name-based ids given to id-less seed rows.
var seedIDNamespace = uuid.MustParse("6f1c2a4e-93b8-4d57-a0c2-7e5d1b9f3a60")

// SeedID derives a stable id from a review's content. Identical rows map to
// the same id, so re-ingesting a file updates rows instead of adding them.
func SeedID(r domain.Review) string {
	name := r.Body + "\x00" + r.Location + "\x00" + r.Timestamp.String()
	return uuid.NewSHA1(seedIDNamespace, []byte(name)).String()
}

// Ingest copies every seed review into the sink in fixed-size batches.
// A failed batch is logged and counted; it does not stop the others.
func (s *IngestionService) Ingest(ctx context.Context) (IngestStats, error) {
	rs, err := s.src.LoadReviews(ctx)
	if err != nil {
		return IngestStats{}, fmt.Errorf("load seed: %w", err)
	}
	for i := range rs {
		if rs[i].ID == "" {
			rs[i].ID = SeedID(rs[i])
		}
	}

	stats := IngestStats{Read: len(rs)}
	var written, failed atomic.Int64

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for start := 0; start < len(rs); start += s.batchSize {
		end := min(start+s.batchSize, len(rs))
		batch := rs[start:end]
		stats.Batches++

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return s.finish(stats, &written, &failed), err
		}

		wg.Add(1)
		go func(n int, batch []domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.sink.InsertReviews(ctx, batch); err != nil {
				failed.Add(int64(len(batch)))
				log.Warn().Int("batch", n).Int("rows", len(batch)).Err(err).Msg("batch insert failed")
				return
			}
			written.Add(int64(len(batch)))
			log.Debug().Int("batch", n).Int("rows", len(batch)).Msg("batch insert ok")
		}(stats.Batches, batch)
	}

	wg.Wait()
	return s.finish(stats, &written, &failed), nil
}

func (s *IngestionService) finish(st IngestStats, written, failed *atomic.Int64) IngestStats {
	st.Written = int(written.Load())
	st.Failed = int(failed.Load())
	return st
}
