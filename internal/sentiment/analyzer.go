// Package sentiment scores text polarity with the VADER lexicon and rules.
package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"review_analyzer/internal/domain"
)

// Analyzer wraps a govader analyzer. It is read-only after construction and
// safe for concurrent use.
type Analyzer struct{ sia *govader.SentimentIntensityAnalyzer }

var _ domain.SentimentScorer = (*Analyzer)(nil)

// New returns an Analyzer over the stock VADER lexicon.
func New() *Analyzer {
	return &Analyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// NewWithLexicon layers lex over the stock lexicon; its entries win.
func NewWithLexicon(lex Lexicon) *Analyzer {
	sia := govader.NewSentimentIntensityAnalyzer()
	for k, v := range lex {
		sia.Lexicon[strings.ToLower(k)] = v
	}
	return &Analyzer{sia: sia}
}

// Score rounds like nltk's polarity_scores: proportions to 3 places,
// compound to 4.
func (a *Analyzer) Score(text string) domain.SentimentScore {
	s := a.sia.PolarityScores(text)
	if s.Negative == 0 && s.Neutral == 0 && s.Positive == 0 {
		return domain.NeutralScore
	}
	return domain.SentimentScore{
		Negative: round(s.Negative, 3),
		Neutral:  round(s.Neutral, 3),
		Positive: round(s.Positive, 3),
		Compound: round(s.Compound, 4),
	}
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
