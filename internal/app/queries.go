package app

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"review_analyzer/internal/domain"
)

// QueryService selects reviews and ranks them by live sentiment.
type QueryService struct {
	store   domain.ReviewStore
	scorer  domain.SentimentScorer
	workers int
}

func NewQueryService(st domain.ReviewStore, sc domain.SentimentScorer, workers int) *QueryService {
	if workers <= 0 {
		workers = 1
	}
	return &QueryService{store: st, scorer: sc, workers: workers}
}

// Query returns the reviews matching q, most positive first. Sentiment is
// computed on every call so results always follow the current scorer.
// Reviews with equal compound scores keep their store order. The only error
// is ctx's, when the request goes away mid-scoring.
func (s *QueryService) Query(ctx context.Context, q domain.ReviewQuery) ([]domain.ScoredReview, error) {
	matched := make([]domain.Review, 0, 64)
	for _, r := range s.store.All(ctx) {
		if q.Matches(r) {
			matched = append(matched, r)
		}
	}

	out := make([]domain.ScoredReview, len(matched))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, r := range matched {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = domain.ScoredReview{Review: r, Sentiment: s.scorer.Score(r.Body)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Sentiment.Compound > out[b].Sentiment.Compound
	})
	return out, nil
}
