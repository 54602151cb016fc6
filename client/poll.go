package client

import (
	"context"
	"time"

	"k8s.io/utils/strings/slices"
)

// InProgressStates are the Livy session and statement states that keep a
// wait going.
var InProgressStates = []string{"waiting", "running", "not_started", "starting"}

// WaitWhile calls fetch until the returned state is outside inProgress,
// sleeping interval between calls. It returns the final state and the
// number of fetches made. There is no retry cap; cancel ctx to give up.
func WaitWhile(ctx context.Context, interval time.Duration, inProgress []string, fetch func(context.Context) (string, error)) (string, int, error) {
	queries := 0
	for {
		state, err := fetch(ctx)
		queries++
		if err != nil {
			return state, queries, err
		}
		if !slices.Contains(inProgress, state) {
			return state, queries, nil
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return state, queries, ctx.Err()
		case <-timer.C:
		}
	}
}
