package worker

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter rate-limits outbound requests per target host, so hammering one
// news site does not starve fetches from another.
type Limiter struct {
	mu     sync.Mutex
	byHost map[string]*rate.Limiter
	limit  rate.Limit
	burst  int
}

// NewLimiter creates a limiter applying the given rate to each host
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		byHost: make(map[string]*rate.Limiter),
		limit:  rate.Limit(requestsPerSecond),
		burst:  burst,
	}
}

// Wait blocks until the host's limiter clears the request or the context
// is cancelled
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return l.hostLimiter(parsed.Host).Wait(ctx)
}

// WaitWithDelay waits for the rate limit, then sleeps out any extra delay
// the site requested (robots.txt crawl-delay)
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, delay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.byHost[host]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.byHost[host] = limiter
	}
	return limiter
}
