package memory

import (
	"context"
	"sync"

	"review_analyzer/internal/domain"
)

// Store is the process-lifetime review collection. Reads share the lock,
// appends take it exclusively, so a reader never sees a half-applied append.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
	ids     map[string]struct{}
}

var _ domain.ReviewStore = (*Store)(nil)

func New() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// Seed replaces the contents. Seed rows are trusted and not re-validated.
func (s *Store) Seed(rs []domain.Review) {
	cp := make([]domain.Review, len(rs))
	copy(cp, rs)
	ids := make(map[string]struct{}, len(rs))
	for _, r := range cp {
		if r.ID != "" {
			ids[r.ID] = struct{}{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = cp
	s.ids = ids
}

func (s *Store) Append(ctx context.Context, r domain.Review) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID != "" {
		if _, taken := s.ids[r.ID]; taken {
			return domain.Review{}, domain.ErrDuplicateID
		}
		s.ids[r.ID] = struct{}{}
	}
	s.reviews = append(s.reviews, r)
	return r, nil
}

// All returns a snapshot; callers may iterate it while appends continue.
func (s *Store) All(ctx context.Context) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}
