package app

import (
	"fmt"
	"time"

	"review_analyzer/internal/domain"
)

// ParseReviewQuery validates raw read parameters. Empty strings mean the
// filter is absent. Dates are checked before the location.
func ParseReviewQuery(location, startDate, endDate string) (domain.ReviewQuery, error) {
	var q domain.ReviewQuery

	start, err := parseDate("start_date", startDate)
	if err != nil {
		return domain.ReviewQuery{}, err
	}
	end, err := parseDate("end_date", endDate)
	if err != nil {
		return domain.ReviewQuery{}, err
	}
	q.Start, q.End = start, end

	if location != "" {
		if !domain.IsValidLocation(location) {
			return domain.ReviewQuery{}, fmt.Errorf("%w: %q", domain.ErrInvalidLocation, location)
		}
		q.Location = &location
	}
	return q, nil
}

// parseDate yields midnight of the given day.
func parseDate(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidDate, field, v)
	}
	return &t, nil
}
