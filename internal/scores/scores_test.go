package scores

import (
	"context"
	"errors"
	"testing"
)

type recordingSubmitter struct {
	calls  []int
	result Result
	err    error
}

func (r *recordingSubmitter) SubmitScore(_ context.Context, score int) (Result, error) {
	r.calls = append(r.calls, score)
	return r.result, r.err
}

func TestValidate(t *testing.T) {
	tests := []struct {
		score   int
		wantErr bool
	}{
		{0, false},
		{42, false},
		{-1, true},
	}

	for _, tc := range tests {
		err := Validate(tc.score)
		if (err != nil) != tc.wantErr {
			t.Errorf("Validate(%d) = %v, wantErr %v", tc.score, err, tc.wantErr)
		}
		if tc.wantErr && !errors.Is(err, ErrNegativeScore) {
			t.Errorf("Validate(%d) = %v, expected ErrNegativeScore", tc.score, err)
		}
	}
}

func TestGuardRejectsNegative(t *testing.T) {
	rec := &recordingSubmitter{result: Result{HighScore: 5}}
	s := Guard(rec)

	if _, err := s.SubmitScore(context.Background(), -3); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("SubmitScore(-3) = %v, expected ErrNegativeScore", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("negative score reached the submitter: %v", rec.calls)
	}

	res, err := s.SubmitScore(context.Background(), 5)
	if err != nil {
		t.Fatalf("SubmitScore(5) failed: %v", err)
	}
	if res.HighScore != 5 || len(rec.calls) != 1 {
		t.Errorf("unexpected result %+v, calls %v", res, rec.calls)
	}
}

func TestTee(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSubmitter{result: Result{HighScore: 10}}
	b := &recordingSubmitter{err: boom}
	c := &recordingSubmitter{result: Result{NewHighScore: true, HighScore: 12}}

	res, err := Tee(a, nil, b, c).SubmitScore(context.Background(), 12)

	if !errors.Is(err, boom) {
		t.Errorf("Tee error = %v, expected to wrap boom", err)
	}
	if !res.NewHighScore || res.HighScore != 12 {
		t.Errorf("Tee result = %+v, expected new high score 12", res)
	}
	for name, s := range map[string]*recordingSubmitter{"a": a, "b": b, "c": c} {
		if len(s.calls) != 1 || s.calls[0] != 12 {
			t.Errorf("submitter %s calls = %v, expected [12]", name, s.calls)
		}
	}
}

func TestTeeNoSubmitters(t *testing.T) {
	res, err := Tee().SubmitScore(context.Background(), 3)
	if err != nil || res != (Result{}) {
		t.Errorf("Tee() = %+v, %v, expected zero result", res, err)
	}
}
