package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/domain"
)

type ReviewService struct {
	store  domain.ReviewStore
	scorer domain.SentimentScorer
	pub    domain.ReviewPublisher // optional
	clock  clockwork.Clock
}

func NewReviewService(st domain.ReviewStore, sc domain.SentimentScorer, pub domain.ReviewPublisher, clock clockwork.Clock) *ReviewService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ReviewService{store: st, scorer: sc, pub: pub, clock: clock}
}

// Create validates the submission, scores it and appends it to the store.
// Nothing is scored or stored when validation fails.
func (s *ReviewService) Create(ctx context.Context, body, location string) (domain.ScoredReview, error) {
	r, err := domain.NewReview(uuid.NewString(), body, location, domain.NewTimestamp(s.clock.Now()))
	if err != nil {
		return domain.ScoredReview{}, err
	}
	score := s.scorer.Score(r.Body)

	stored, err := s.store.Append(ctx, r)
	if err != nil {
		return domain.ScoredReview{}, fmt.Errorf("append review %s: %w", r.ID, err)
	}
	out := domain.ScoredReview{Review: stored, Sentiment: score}

	// best-effort: the review is already stored
	if s.pub != nil {
		if err := s.pub.PublishCreated(ctx, out); err != nil {
			log.Warn().Err(err).Str("review_id", out.ID).Msg("publish review created failed")
		}
	}
	return out, nil
}
