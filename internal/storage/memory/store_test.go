package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/storage/memory"
)

func review(id, body string) domain.Review {
	return domain.Review{
		ID:        id,
		Body:      body,
		Location:  "Denver, Colorado",
		Timestamp: domain.NewTimestamp(time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC)),
	}
}

func TestStore_SeedReplacesContents(t *testing.T) {
	s := memory.New()
	s.Seed([]domain.Review{review("a", "one"), review("b", "two")})
	require.Equal(t, 2, s.Len())

	s.Seed([]domain.Review{review("", "three")})
	all := s.All(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "three", all[0].Body)

	// ids from the previous seed are released
	_, err := s.Append(context.Background(), review("a", "again"))
	assert.NoError(t, err)
}

func TestStore_AppendKeepsOrderAndReturnsReview(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		in := review(fmt.Sprintf("id-%d", i), fmt.Sprintf("body %d", i))
		out, err := s.Append(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
	all := s.All(ctx)
	require.Len(t, all, 3)
	for i, r := range all {
		assert.Equal(t, fmt.Sprintf("id-%d", i), r.ID)
	}
}

func TestStore_AppendRejectsDuplicateID(t *testing.T) {
	s := memory.New()
	s.Seed([]domain.Review{review("dup", "seeded")})

	_, err := s.Append(context.Background(), review("dup", "new"))
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.Equal(t, 1, s.Len())

	// seed rows without an id never collide
	_, err = s.Append(context.Background(), review("", "anonymous"))
	assert.NoError(t, err)
	_, err = s.Append(context.Background(), review("", "anonymous"))
	assert.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestStore_AllIsASnapshot(t *testing.T) {
	s := memory.New()
	s.Seed([]domain.Review{review("a", "one")})
	snap := s.All(context.Background())
	snap[0].Body = "mutated"

	_, err := s.Append(context.Background(), review("b", "two"))
	require.NoError(t, err)

	assert.Len(t, snap, 1)
	assert.Equal(t, "one", s.All(context.Background())[0].Body)
}

func TestStore_ConcurrentAppendsAndReads(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	const writers, perWriter = 16, 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := s.Append(ctx, review(fmt.Sprintf("%d-%d", w, i), "x"))
				assert.NoError(t, err)
			}
		}(w)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				for _, r := range s.All(ctx) {
					assert.NotEmpty(t, r.ID)
				}
			}
		}()
	}
	wg.Wait()

	all := s.All(ctx)
	require.Len(t, all, writers*perWriter)
	seen := make(map[string]struct{}, len(all))
	for _, r := range all {
		seen[r.ID] = struct{}{}
	}
	assert.Len(t, seen, writers*perWriter)
}
