package httpclient

import (
	"io"
	"math"
	"net/http"
	"time"
)

// retryMiddleware retries a request on 429 and 5xx responses with
// exponential backoff, capped at cfg.MaxRetries retries after the first
// attempt (spec §5: "retries
// with backoff on 429/5xx, capped at 3"). A transport-level error (not an
// HTTP response at all) is retried the same way.
func retryMiddleware(cfg RetryConfig) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return &retryRoundTripper{next: next, cfg: cfg}
	}
}

type retryRoundTripper struct {
	next http.RoundTripper
	cfg  RetryConfig
}

func (t *retryRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastResp *http.Response
	var lastErr error

	for attempt := 0; attempt <= t.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * t.cfg.BaseDelay
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(delay):
			}
		}

		clonedReq := req.Clone(req.Context())
		if req.Body != nil && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			clonedReq.Body = body
		}

		resp, err := t.next.RoundTrip(clonedReq)
		if err != nil {
			lastErr = err
			lastResp = nil
			continue
		}

		if !isRetryableStatus(resp.StatusCode) || attempt == t.cfg.MaxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastResp = resp
		lastErr = nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return lastResp, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
