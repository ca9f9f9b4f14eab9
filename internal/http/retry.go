package http

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// retryState counts the attempts of one Do call.
type retryState struct {
	attempt int
}

type retryStateKey struct{}

func stateFrom(ctx context.Context) *retryState {
	state, _ := ctx.Value(retryStateKey{}).(*retryState)
	if state == nil {
		return &retryState{}
	}

	return state
}

// trackAttempt runs before every attempt; retry is 0 for the first one.
func (c *Client) trackAttempt(_ retryablehttp.Logger, req *http.Request, retry int) {
	stateFrom(req.Context()).attempt = retry + 1
}

// checkRetry adapts the configured policy to retryablehttp.CheckRetry.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if c.retryPolicy == nil {
		return false, nil
	}

	attempt := stateFrom(ctx).attempt
	if !c.retryPolicy.ShouldRetry(attempt, resp, err) {
		return false, nil
	}

	fields := map[string]interface{}{"attempt": attempt}

	if err != nil {
		fields["error"] = err.Error()
	} else {
		fields["status"] = resp.StatusCode
	}

	c.logger.Debug("attempt failed", fields)

	return true, nil
}

// backoff adapts the policy's delay to retryablehttp.Backoff, whose
// attemptNum starts at 0 for the first retry. It is called once per retry,
// after checkRetry agreed to it.
func (c *Client) backoff(_, _ time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if c.retryPolicy == nil {
		return 0
	}

	delay := c.retryPolicy.Delay(attemptNum + 1)

	fields := map[string]interface{}{"attempt": attemptNum + 1, "delay": delay}
	if resp != nil {
		fields["status"] = resp.StatusCode
	}

	c.logger.Warn("retrying request", fields)

	return delay
}
