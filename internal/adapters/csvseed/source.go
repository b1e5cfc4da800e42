// Package csvseed loads seed reviews from a CSV file with a header row.
package csvseed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"review_analyzer/internal/domain"
)

const (
	colID        = "reviewid"
	colBody      = "reviewbody"
	colLocation  = "location"
	colTimestamp = "timestamp"
)

var requiredColumns = []string{colBody, colLocation, colTimestamp}

// Source reads reviews from Path on every LoadReviews call.
type Source struct{ Path string }

var _ domain.SeedSource = Source{}

func New(path string) Source { return Source{Path: path} }

func (s Source) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open seed %s: %w", s.Path, err)
	}
	defer f.Close()

	out, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return out, nil
}

// Read parses every data row of r. Seed rows are trusted as-is apart from
// the timestamp, which must be in domain.TimestampLayout.
func Read(ctx context.Context, r io.Reader) ([]domain.Review, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	var out []domain.Review
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrCorruptSeed, line, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		ts, err := domain.ParseTimestamp(valueAt(header, row, colTimestamp))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrCorruptSeed, line, err)
		}
		out = append(out, domain.Review{
			ID:        valueAt(header, row, colID),
			Body:      valueAt(header, row, colBody),
			Location:  valueAt(header, row, colLocation),
			Timestamp: ts,
		})
	}
	return out, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", domain.ErrCorruptSeed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", domain.ErrCorruptSeed, err)
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = idx
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrCorruptSeed, col)
		}
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
