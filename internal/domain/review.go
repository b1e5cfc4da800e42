package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire and seed format of review timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the format of start_date/end_date query values.
const DateLayout = "2006-01-02"

// Timestamp is a naive wall-clock time with second precision.
// It is always stored in UTC so that comparisons ignore zones.
type Timestamp struct{ time.Time }

// NewTimestamp drops the zone and sub-second part of t, keeping its wall clock.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return Timestamp{t}, nil
}

func (t Timestamp) String() string { return t.Format(TimestampLayout) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Review struct {
	ID        string    `json:"ReviewId,omitempty"`
	Body      string    `json:"ReviewBody"`
	Location  string    `json:"Location"`
	Timestamp Timestamp `json:"Timestamp"`
}

// NewReview builds a review from client-supplied fields, rejecting anything
// that may not enter the store.
func NewReview(id, body, location string, ts Timestamp) (Review, error) {
	if strings.TrimSpace(body) == "" || location == "" {
		return Review{}, ErrMissingFields
	}
	if !IsValidLocation(location) {
		return Review{}, fmt.Errorf("%w: %q", ErrInvalidLocation, location)
	}
	return Review{ID: id, Body: body, Location: location, Timestamp: ts}, nil
}

// SentimentScore mirrors the VADER polarity output.
type SentimentScore struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// NeutralScore is returned for text that carries no sentiment at all.
var NeutralScore = SentimentScore{Neutral: 1}

// ScoredReview is a review with sentiment attached at read or create time.
type ScoredReview struct {
	Review
	Sentiment SentimentScore `json:"sentiment"`
}

// ReviewQuery holds the optional read filters. Nil means unconstrained.
type ReviewQuery struct {
	Location *string
	Start    *time.Time
	End      *time.Time
}

// Matches reports whether r satisfies every supplied constraint.
func (q ReviewQuery) Matches(r Review) bool {
	if q.Location != nil && r.Location != *q.Location {
		return false
	}
	if q.Start != nil && r.Timestamp.Before(*q.Start) {
		return false
	}
	if q.End != nil && r.Timestamp.After(*q.End) {
		return false
	}
	return true
}
