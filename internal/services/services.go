package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
)

const (
	maxPageLimit = 100
	// maxPage keeps (page-1)*limit well inside int64.
	maxPage = math.MaxInt32
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// paging parses page/limit query values. Missing, malformed or non-positive values fall
// back to page 1 and defaultLimit; page is capped at maxPage and limit at maxPageLimit.
func paging(pageStr, limitStr string, defaultLimit int) (int, int, repository.Page) {
	page := min(positiveInt(pageStr, 1), maxPage)
	limit := min(positiveInt(limitStr, defaultLimit), maxPageLimit)
	return page, limit, repository.Page{Skip: int64(page-1) * int64(limit), Limit: int64(limit)}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func pagination(page, limit int, total int64) models.Pagination {
	return models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// dateFilter parses optional startDate/endDate bounds. Inputs are already validated.
func dateFilter(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := models.ParseTimestamp(start)
		if err != nil {
			return nil, nil, apperr.Validation("startDate must be an ISO 8601 date or timestamp")
		}
		from = &t
	}
	if end != "" {
		t, err := models.ParseRangeEnd(end)
		if err != nil {
			return nil, nil, apperr.Validation("endDate must be an ISO 8601 date or timestamp")
		}
		to = &t
	}
	return from, to, nil
}

// dateOr parses an optional client timestamp, defaulting to now.
func dateOr(s *string, now time.Time) time.Time {
	if s == nil || *s == "" {
		return now
	}
	if t, err := models.ParseTimestamp(*s); err == nil {
		return t
	}
	return now
}

// storeErr maps repository errors onto the client-facing taxonomy.
func storeErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFound)
	default:
		return apperr.Internal(err)
	}
}
