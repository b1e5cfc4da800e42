package domain

import "context"

type SentimentScorer interface {
	Score(text string) SentimentScore
}

type ReviewStore interface {
	Seed(rs []Review)
	Append(ctx context.Context, r Review) (Review, error)
	All(ctx context.Context) []Review
	Len() int
}

// SeedSource yields the initial reviews (CSV file, MySQL table).
type SeedSource interface {
	LoadReviews(ctx context.Context) ([]Review, error)
}

type ReviewPublisher interface {
	PublishCreated(ctx context.Context, r ScoredReview) error
}

// ReviewSink bulk-writes reviews (the ingestor's MySQL table).
type ReviewSink interface {
	InsertReviews(ctx context.Context, rs []Review) error
}
