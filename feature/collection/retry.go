package collection

import (
	"context"
	"errors"
)

var errEmptyDetail = errors.New("detail fetcher returned no record")

// FetchState is the state of the bounded retry of a single detail fetch.
// A failed fetch is repeated exactly once:
//
//	Pending -> Succeeded
//	Pending -> Retrying -> Succeeded
//	Pending -> Retrying -> Failed
type FetchState int

const (
	FetchPending FetchState = iota
	FetchRetrying
	FetchSucceeded
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchPending:
		return "pending"
	case FetchRetrying:
		return "retrying"
	case FetchSucceeded:
		return "succeeded"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further attempt will be made.
func (s FetchState) Terminal() bool {
	return s == FetchSucceeded || s == FetchFailed
}

// AttemptHook observes every detail fetch attempt. attempt is 1-based and err is nil on
// success. With prefetching enabled it is called from several goroutines at once.
type AttemptHook func(externalID string, attempt int, err error)

// fetchResult is the terminal state of a detail fetch.
type fetchResult struct {
	state    FetchState
	attempts int
	detail   *DetailRecord
	err      error // last error, set when state is FetchFailed
}

// fetchWithRetry runs the detail fetch state machine for one item.
func fetchWithRetry(ctx context.Context, fetcher DetailFetcher, externalID string, hook AttemptHook) fetchResult {
	res := fetchResult{state: FetchPending}

	for !res.state.Terminal() {
		detail, err := fetcher.FetchDetail(ctx, externalID)
		if err == nil && detail == nil {
			err = errEmptyDetail
		}
		res.attempts++
		if hook != nil {
			hook(externalID, res.attempts, err)
		}

		res.state, res.detail, res.err = advance(res.state, detail, err)
	}
	return res
}

// advance computes the next state after an attempt that produced detail or err.
func advance(state FetchState, detail *DetailRecord, err error) (FetchState, *DetailRecord, error) {
	if err == nil {
		return FetchSucceeded, detail, nil
	}
	if state == FetchPending {
		return FetchRetrying, nil, err
	}
	return FetchFailed, nil, err
}
