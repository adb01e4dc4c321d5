package subsync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"subsync/pkg/subsync/models"
)

// RangeOptions configures a multi-day run.
type RangeOptions struct {
	// From and To are inclusive DDMMYYYY bounds.
	From string
	To   string
	// Day holds the options forwarded to every day's run; its Date field is
	// overwritten per day.
	Day Options
}

// DayOutcome records one day's result within a range run.
type DayOutcome struct {
	Date   string         `json:"date"`
	Result *models.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`

	// Err is the underlying error, kept off the JSON report.
	Err error `json:"-"`
}

// RunRange drives Run once per calendar day from From to To inclusive,
// strictly in order. A day's failure is logged and recorded but does not
// stop later days. The returned error is the last per-day failure observed,
// nil only when every day succeeded.
func RunRange(ctx context.Context, src Source, ropts RangeOptions, logger *zap.Logger) ([]DayOutcome, error) {
	start, err := ParseDate(ropts.From)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(ropts.To)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s precedes %s", ErrInvalidRange, ropts.To, ropts.From)
	}

	var outcomes []DayOutcome
	var lastErr error
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := FormatDate(day)
		opts := ropts.Day
		opts.Date = date

		res, err := Run(ctx, src, opts, logger)
		outcome := DayOutcome{Date: date, Result: res, Err: err}
		if err != nil {
			outcome.Error = err.Error()
			lastErr = err
			logger.Error("day sync failed",
				zap.String("date", date),
				zap.Error(err))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, lastErr
}
