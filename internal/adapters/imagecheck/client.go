// internal/adapters/imagecheck/client.go
package imagecheck

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"daleel/internal/adapters/observability"
	"daleel/internal/domain"
)

const maxAttempts = 4

// Client checks whether doctor image URLs are reachable.
type Client struct {
	hc *http.Client
	rl *rate.Limiter
}

func New(rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		hc: &http.Client{Timeout: 10 * time.Second},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Check issues a HEAD (GET when the host refuses HEAD) with client-side rate
// limiting. 2xx means available; 404/410 return domain.ErrNotFound; 429 and
// transient 5xx are retried, honoring Retry-After when provided.
func (c *Client) Check(ctx context.Context, url string) (bool, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return false, err
	}

	method := http.MethodHead
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return false, err
		}
		req.Header.Set("Accept", "image/*")
		req.Header.Set("User-Agent", "daleel-prober/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveImageProbe(0, time.Since(start))
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, lastErr
		}
		observability.ObserveImageProbe(resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			drain(resp)
			return true, nil

		case resp.StatusCode == http.StatusMethodNotAllowed && method == http.MethodHead:
			// some CDNs only answer GET
			drain(resp)
			method = http.MethodGet
			i--
			continue

		case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
			drain(resp)
			return false, fmt.Errorf("image %s: %w", url, domain.ErrNotFound)

		case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusInternalServerError,
			resp.StatusCode == http.StatusBadGateway, resp.StatusCode == http.StatusServiceUnavailable,
			resp.StatusCode == http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			drain(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return false, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return false, lastErr
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
