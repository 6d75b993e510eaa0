package probe

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Prober checks that URLs answer a ranged GET with 200 or 206.
type Prober struct {
	client Doer
	cfg    Config
	logger *zap.Logger
	jitter func(lo, hi time.Duration) time.Duration
}

// New creates a Prober. Per-attempt timeouts are enforced through request contexts, so
// client should not carry a shorter overall timeout of its own.
func New(client Doer, cfg Config, logger *zap.Logger) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		client: client,
		cfg:    cfg.normalize(),
		logger: logger,
		jitter: randomBetween,
	}
}

func randomBetween(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int64N(int64(hi-lo)+1))
}

// Run probes every target concurrently and returns one Violation per failed target.
// It returns once all probes finish or the configured deadline elapses, whichever is
// first; probes still running at the deadline are reported as unresolved and left to
// finish in the background.
func (p *Prober) Run(ctx context.Context, targets []Target) []Violation {
	col := newCollector(targets)

	var wg conc.WaitGroup
	for i, t := range targets {
		wg.Go(func() {
			col.complete(i, p.Probe(ctx, t))
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(p.cfg.Deadline)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		p.logger.Warn("Probe deadline reached", zap.Duration("deadline", p.cfg.Deadline), zap.Int("pending", col.pendingCount()))
	case <-ctx.Done():
		p.logger.Warn("Probe run cancelled", zap.Error(ctx.Err()), zap.Int("pending", col.pendingCount()))
	}

	return col.close()
}

// Probe checks a single target and returns nil when it is reachable.
func (p *Prober) Probe(ctx context.Context, t Target) *Violation {
	if err := validateURL(t.URL); err != nil {
		return &Violation{Kind: KindMalformedURL, Target: t, Err: err.Error()}
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.Attempts; attempt++ {
		status, err := p.attempt(ctx, t.URL)
		if err == nil {
			if status == http.StatusOK || status == http.StatusPartialContent {
				return nil
			}
			return &Violation{Kind: KindUnexpectedStatus, Target: t, Status: status, Attempts: attempt}
		}

		if !isTimeout(err) {
			return &Violation{Kind: KindTransportError, Target: t, Attempts: attempt, Err: err.Error()}
		}

		lastErr = err
		p.logger.Debug("Probe attempt timed out",
			zap.String("url", t.URL),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.cfg.Attempts),
		)
	}

	return &Violation{Kind: KindTimeout, Target: t, Attempts: p.cfg.Attempts, Err: lastErr.Error()}
}

// attempt issues one ranged GET with a freshly randomized timeout.
func (p *Prober) attempt(ctx context.Context, rawURL string) (int, error) {
	timeout := p.jitter(p.cfg.MinTimeout, p.cfg.MaxTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", p.cfg.RangeBytes-1))
	if p.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", p.cfg.UserAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	// Only the status matters; closing releases the connection.
	resp.Body.Close()

	return resp.StatusCode, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// collector tracks which probes are still pending. After close, late completions are dropped.
type collector struct {
	mu         sync.Mutex
	pending    map[int]Target
	violations []Violation
	closed     bool
}

func newCollector(targets []Target) *collector {
	pending := make(map[int]Target, len(targets))
	for i, t := range targets {
		pending[i] = t
	}
	return &collector{pending: pending}
}

func (c *collector) complete(i int, v *Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	delete(c.pending, i)
	if v != nil {
		c.violations = append(c.violations, *v)
	}
}

func (c *collector) pendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *collector) close() []Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true

	idx := make([]int, 0, len(c.pending))
	for i := range c.pending {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		c.violations = append(c.violations, Violation{Kind: KindUnresolved, Target: c.pending[i]})
	}

	out := c.violations
	c.violations = nil
	return out
}
