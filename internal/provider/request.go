package provider

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire and in keys.
const DateLayout = time.DateOnly

// DateRange is an inclusive calendar date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate reports whether the range is well formed (start <= end).
func (r DateRange) Validate() error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRequest, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// ParseDateRange parses start and end dates. Both empty means no range.
// Non-padded dates such as 2018-1-1 are accepted.
func ParseDateRange(start, end string) (*DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	var r DateRange
	var err error
	if start != "" {
		if r.Start, err = time.Parse("2006-1-2", start); err != nil {
			return nil, fmt.Errorf("%w: start date: %w", ErrInvalidRequest, err)
		}
	}
	if end != "" {
		if r.End, err = time.Parse("2006-1-2", end); err != nil {
			return nil, fmt.Errorf("%w: end date: %w", ErrInvalidRequest, err)
		}
	} else {
		r.End = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Request identifies one series fetch.
type Request struct {
	Code  string
	Range *DateRange
}

// Validate checks the code and optional range.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return fmt.Errorf("%w: empty series code", ErrInvalidRequest)
	}
	if r.Range != nil {
		return r.Range.Validate()
	}
	return nil
}

// Key identifies the request for caching.
func (r Request) Key() string {
	if r.Range == nil {
		return r.Code
	}
	var start, end string
	if !r.Range.Start.IsZero() {
		start = r.Range.Start.Format(DateLayout)
	}
	if !r.Range.End.IsZero() {
		end = r.Range.End.Format(DateLayout)
	}
	return r.Code + "|" + start + "|" + end
}
