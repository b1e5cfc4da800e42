package sentiment_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/sentiment"
)

func compound(a *sentiment.Analyzer, text string) float64 { return a.Score(text).Compound }

func TestScore_RangeAndDeterminism(t *testing.T) {
	a := sentiment.New()
	inputs := []string{
		"",
		"Great service!",
		"The food was terrible and the staff were RUDE!!!",
		"Café très agréable 😀 — 東京の寿司は最高",
		"\x00\xff broken utf8 \xc3",
		strings.Repeat("amazing ", 2000),
		strings.Repeat("horrible awful worst ", 2000),
		"????!!!!",
	}
	for _, in := range inputs {
		first := a.Score(in)
		assert.GreaterOrEqual(t, first.Compound, -1.0, in)
		assert.LessOrEqual(t, first.Compound, 1.0, in)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, a.Score(in), "score must be deterministic for %q", in)
		}
	}
}

func TestScore_EmptyTextIsNeutral(t *testing.T) {
	a := sentiment.New()
	for _, in := range []string{"", "   ", "!!!", "a", "\n\t"} {
		assert.Equal(t, domain.NeutralScore, a.Score(in), "input %q", in)
	}
}

func TestScore_ProportionsSumToOne(t *testing.T) {
	a := sentiment.New()
	for _, in := range []string{
		"Great service!",
		"The room was dirty and the bed was broken",
		"It was fine I guess, nothing special but not bad either",
	} {
		s := a.Score(in)
		assert.InDelta(t, 1.0, s.Negative+s.Neutral+s.Positive, 0.002, in)
	}
}

func TestScore_Polarity(t *testing.T) {
	a := sentiment.New()

	assert.InDelta(t, 0.6588, compound(a, "Great service!"), 0.0001)
	assert.InDelta(t, 0.5994, compound(a, "The room was beautiful"), 0.0001)
	assert.InDelta(t, 0.6808, compound(a, "The view was stunning and breathtaking"), 0.0001)
	assert.InDelta(t, -0.5423, compound(a, "Lousy rubbish service, a total ripoff"), 0.0001)
	assert.Less(t, compound(a, "The food was terrible"), 0.0)
	assert.Equal(t, 0.0, compound(a, "The table is made of wood"))
}

func TestScore_Negation(t *testing.T) {
	a := sentiment.New()
	assert.Greater(t, compound(a, "The room was good"), 0.0)
	assert.Less(t, compound(a, "The room was not good"), 0.0)
	assert.Less(t, compound(a, "The room wasn't good"), 0.0)
	assert.Greater(t, compound(a, "The staff were never unhelpful"), 0.0)
}

func TestScore_BoostersAndDampeners(t *testing.T) {
	a := sentiment.New()
	base := compound(a, "good")
	assert.Greater(t, compound(a, "very good"), base)
	assert.Less(t, compound(a, "slightly good"), base)
	assert.Less(t, compound(a, "very bad"), compound(a, "bad"))
}

func TestScore_CapsAndPunctuation(t *testing.T) {
	a := sentiment.New()
	assert.Greater(t, compound(a, "The food was GREAT"), compound(a, "The food was great"))
	assert.Greater(t, compound(a, "good!!!"), compound(a, "good"))
	// extra exclamation marks beyond the cap add nothing
	assert.Equal(t, compound(a, "good!!!!"), compound(a, "good!!!!!!!!"))
}

func TestScore_ButShiftsWeightToSecondClause(t *testing.T) {
	a := sentiment.New()
	assert.Less(t, compound(a, "The food was good but the service was terrible"), 0.0)
	assert.Greater(t, compound(a, "The food was terrible but the service was good"), 0.0)
}

func TestScore_KindOfAndLeast(t *testing.T) {
	a := sentiment.New()
	assert.Equal(t, 0.0, compound(a, "kind of"))
	assert.Greater(t, compound(a, "they were kind"), 0.0)
	assert.Less(t, compound(a, "least helpful"), 0.0)
	assert.Greater(t, compound(a, "at least helpful"), 0.0)
}

func TestScore_Emoticons(t *testing.T) {
	a := sentiment.New()
	assert.Greater(t, compound(a, "see you soon :)"), 0.0)
	assert.Less(t, compound(a, "closed again :("), 0.0)
}

func TestScore_CustomLexiconChangesScores(t *testing.T) {
	lex, err := sentiment.LoadLexicon(strings.NewReader("zorptastic\t2.5\nmeh\t-2.0\n"))
	require.NoError(t, err)

	custom := sentiment.NewWithLexicon(lex)
	assert.Greater(t, compound(custom, "the pizza was zorptastic"), 0.0)
	assert.Equal(t, 0.0, compound(sentiment.New(), "the pizza was zorptastic"))

	// overrides replace stock entries, the rest of the lexicon stays
	assert.Less(t, compound(custom, "the pizza was meh"), compound(sentiment.New(), "the pizza was meh"))
	assert.Greater(t, compound(custom, "the room was beautiful"), 0.0)
}

func TestScore_ConcurrentUse(t *testing.T) {
	a := sentiment.New()
	want := a.Score("Lovely staff, terrible parking")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, a.Score("Lovely staff, terrible parking"))
		}()
	}
	wg.Wait()
}
