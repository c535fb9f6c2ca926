// Package scores defines where finished-game scores go: the remote score API,
// local storage, or both.
package scores

import (
	"context"
	"errors"
	"fmt"
)

// ErrNegativeScore is returned for scores below zero. Such scores never reach
// a submitter.
var ErrNegativeScore = errors.New("scores: negative score")

// Result is what a submitter reports back for an accepted score.
type Result struct {
	NewHighScore bool
	HighScore    int
}

// Submitter accepts a final score.
type Submitter interface {
	SubmitScore(ctx context.Context, score int) (Result, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, score int) (Result, error)

// SubmitScore calls f.
func (f SubmitterFunc) SubmitScore(ctx context.Context, score int) (Result, error) {
	return f(ctx, score)
}

// Validate checks a score before submission.
func Validate(score int) error {
	if score < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeScore, score)
	}
	return nil
}

// Guard wraps next so invalid scores are rejected before it is called.
func Guard(next Submitter) Submitter {
	return SubmitterFunc(func(ctx context.Context, score int) (Result, error) {
		if err := Validate(score); err != nil {
			return Result{}, err
		}
		return next.SubmitScore(ctx, score)
	})
}

// Tee submits to every non-nil submitter in order. Failures are joined and
// do not stop later submitters. The returned result has the highest
// HighScore reported and NewHighScore if any submitter set it.
func Tee(subs ...Submitter) Submitter {
	return SubmitterFunc(func(ctx context.Context, score int) (Result, error) {
		var (
			best Result
			errs []error
		)
		for _, s := range subs {
			if s == nil {
				continue
			}
			res, err := s.SubmitScore(ctx, score)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			best.NewHighScore = best.NewHighScore || res.NewHighScore
			best.HighScore = max(best.HighScore, res.HighScore)
		}
		return best, errors.Join(errs...)
	})
}
