package menu

import (
	"context"
	"errors"
	"time"

	"kiosk/internal/model"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often and how fast a menu fetch is retried.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy returns three attempts starting at 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

// Do runs op until it succeeds, the attempts are used up, ctx is done or op
// returns a malformed payload error. notify, if not nil, is called before
// every wait.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error, notify func(err error, wait time.Duration)) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	if p.InitialBackoff > 0 {
		exp.InitialInterval = p.InitialBackoff
	}
	if p.MaxBackoff > 0 {
		exp.MaxInterval = p.MaxBackoff
	}
	exp.MaxElapsedTime = 0
	exp.Reset()

	strategy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)

	operation := func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		// a bad document will not get better by asking again
		if errors.Is(err, model.ErrMalformedPayload) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.RetryNotify(operation, strategy, notify)
}
