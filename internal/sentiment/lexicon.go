package sentiment

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Lexicon maps a lower-cased token to its valence, roughly in [-4, 4].
type Lexicon map[string]float64

// LoadLexicon parses "token<TAB>valence" lines in the VADER lexicon format.
// Blank lines and lines starting with '#' are skipped; extra tab-separated
// columns are ignored.
func LoadLexicon(r io.Reader) (Lexicon, error) {
	lex := make(Lexicon, 64)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(raw) == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		fields := strings.Split(raw, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("lexicon line %d: expected token and valence", line)
		}
		tok := strings.ToLower(strings.TrimSpace(fields[0]))
		if tok == "" {
			return nil, fmt.Errorf("lexicon line %d: empty token", line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		lex[tok] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	if len(lex) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return lex, nil
}
