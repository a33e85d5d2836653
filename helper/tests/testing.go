package tests

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the retry context expires
var ErrTimeout = errors.New("timeout")

// RetryUntilTimeout retries the closure until it reports it is done
// retrying, or until the context expires
func RetryUntilTimeout(ctx context.Context, f func() (interface{}, bool)) (interface{}, error) {
	type result struct {
		data interface{}
		err  error
	}

	resCh := make(chan result, 1)

	go func() {
		defer close(resCh)

		for {
			select {
			case <-ctx.Done():
				resCh <- result{nil, ErrTimeout}

				return
			default:
				res, retry := f()
				if !retry {
					resCh <- result{res, nil}

					return
				}
			}

			time.Sleep(time.Millisecond * 100)
		}
	}()

	res := <-resCh

	return res.data, res.err
}
