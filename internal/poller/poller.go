// Package poller pulls public radio registrations from the spreadsheet
// endpoint on a schedule and hands new ones to the store.
//
// A cycle is skipped when no endpoint is configured, when the previous cycle
// is still running, or when the last attempt was less than the debounce
// interval ago. Failures are logged and counted; the next scheduled cycle is
// the retry.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manav03panchal/controleplus/internal/config"
	"github.com/manav03panchal/controleplus/internal/logging"
	"github.com/manav03panchal/controleplus/internal/model"
)

// Fetcher reads the pending submissions from an endpoint.
type Fetcher interface {
	Read(ctx context.Context, url string) ([]model.RadioSubmission, error)
}

// Sink receives fetched submissions and reports how many were new.
type Sink interface {
	MergeSubmissions(incoming []model.RadioSubmission) (int, error)
}

// Options configures a Poller.
type Options struct {
	Fetcher Fetcher
	Sink    Sink
	// URL returns the endpoint for the next cycle. Empty skips the cycle.
	URL func() string

	Interval   time.Duration
	Debounce   time.Duration
	Timeout    time.Duration
	SignalHold time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig fills the timing options from the sync configuration.
func OptionsFromConfig(cfg config.SyncConfig, fetcher Fetcher, sink Sink, url func() string) Options {
	return Options{
		Fetcher:    fetcher,
		Sink:       sink,
		URL:        url,
		Interval:   cfg.Interval,
		Debounce:   cfg.Debounce,
		Timeout:    cfg.Timeout,
		SignalHold: cfg.SignalHold,
	}
}

// SkipReason says why a cycle did not contact the endpoint.
type SkipReason string

// Skip reasons.
const (
	SkipNoURL    SkipReason = "no_url"
	SkipInFlight SkipReason = "in_flight"
	SkipDebounce SkipReason = "debounce"
)

// Result describes one cycle.
type Result struct {
	Skipped SkipReason
	Fetched int
	Added   int
	// Err is the fetch error, or a non-fatal persistence warning from the
	// sink when Added is positive.
	Err error
}

// Ran reports whether the cycle contacted the endpoint.
func (r Result) Ran() bool { return r.Skipped == "" }

// Event announces submissions added by a cycle.
type Event struct {
	Added int
	At    time.Time
}

// Poller runs submission sync cycles.
type Poller struct {
	fetcher    Fetcher
	sink       Sink
	url        func() string
	interval   time.Duration
	debounce   time.Duration
	timeout    time.Duration
	signalHold time.Duration
	now        func() time.Time

	cron    *cron.Cron
	metrics *Metrics
	wg      sync.WaitGroup

	mu          sync.Mutex
	running     bool
	inFlight    bool
	lastAttempt time.Time
	signalUntil time.Time
	subs        []chan Event
}

// New creates a poller. Zero timings take the configuration defaults.
func New(opts Options) (*Poller, error) {
	if opts.Fetcher == nil || opts.Sink == nil {
		return nil, fmt.Errorf("poller: fetcher and sink are required")
	}
	defaults := config.DefaultRuntimeConfig().Sync
	p := &Poller{
		fetcher:    opts.Fetcher,
		sink:       opts.Sink,
		url:        opts.URL,
		interval:   orDefault(opts.Interval, defaults.Interval),
		debounce:   orDefault(opts.Debounce, defaults.Debounce),
		timeout:    orDefault(opts.Timeout, defaults.Timeout),
		signalHold: orDefault(opts.SignalHold, defaults.SignalHold),
		now:        opts.Now,
		metrics:    NewMetrics(),
	}
	if p.url == nil {
		p.url = func() string { return "" }
	}
	if p.now == nil {
		p.now = time.Now
	}
	logger := cronLogger{}
	p.cron = cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger)))
	return p, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Start schedules a cycle every interval and runs the first one right away
// in the background. Cycles use ctx; cancelling it aborts the running fetch.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("poller already started")
	}

	spec := "@every " + p.interval.String()
	if _, err := p.cron.AddFunc(spec, func() { p.Poll(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}
	p.cron.Start()
	p.running = true

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Poll(ctx)
	}()

	logging.Info("sync started", "interval", p.interval.String(), "debounce", p.debounce.String())
	return nil
}

// Stop stops scheduling, waits for the running cycle and closes every
// subscription channel.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	<-p.cron.Stop().Done()
	p.wg.Wait()

	p.mu.Lock()
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
	p.mu.Unlock()
	logging.Info("sync stopped")
}

// Poll runs one cycle now, subject to the skip rules.
func (p *Poller) Poll(ctx context.Context) Result {
	url := p.url()
	if url == "" {
		return p.skip(SkipNoURL)
	}

	now := p.now()
	p.mu.Lock()
	switch {
	case p.inFlight:
		p.mu.Unlock()
		return p.skip(SkipInFlight)
	case !p.lastAttempt.IsZero() && now.Sub(p.lastAttempt) < p.debounce:
		p.mu.Unlock()
		return p.skip(SkipDebounce)
	}
	p.inFlight = true
	p.lastAttempt = now
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	ctx = logging.NewRequestContext(ctx)
	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.metrics.RecordAttempt(now)
	start := time.Now()
	subs, err := p.fetcher.Read(fetchCtx, url)
	latency := time.Since(start)
	if err != nil {
		p.metrics.RecordFailure(p.now(), err)
		logging.WarnContext(ctx, "sync failed",
			logging.KeyURL, url,
			logging.KeyError, err,
			logging.KeyDuration, latency.Milliseconds())
		return Result{Err: err}
	}

	added, err := p.sink.MergeSubmissions(subs)
	if err != nil {
		logging.WarnContext(ctx, "sync merge not saved", logging.KeyError, err)
	}
	p.metrics.RecordSuccess(p.now(), added, latency)
	logging.DebugContext(ctx, "sync finished",
		"fetched", len(subs),
		logging.KeyCount, added,
		logging.KeyDuration, latency.Milliseconds())

	if added > 0 {
		p.announce(Event{Added: added, At: p.now()})
	}
	return Result{Fetched: len(subs), Added: added, Err: err}
}

func (p *Poller) skip(reason SkipReason) Result {
	p.metrics.RecordSkip(reason)
	return Result{Skipped: reason}
}

// announce raises the new-data signal and notifies subscribers without
// blocking on slow readers.
func (p *Poller) announce(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signalUntil = ev.At.Add(p.signalHold)
	for _, ch := range p.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// NewData reports whether a recent cycle added submissions; it stays true
// for the signal hold period.
func (p *Poller) NewData() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now().Before(p.signalUntil)
}

// Subscribe returns a channel receiving an Event after every cycle that
// added submissions. Events are dropped while the channel is full. The
// channel is closed by Stop.
func (p *Poller) Subscribe() <-chan Event {
	ch := make(chan Event, 1)
	p.mu.Lock()
	p.subs = append(p.subs, ch)
	p.mu.Unlock()
	return ch
}

// LastAttempt returns the time of the last cycle that contacted the
// endpoint.
func (p *Poller) LastAttempt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastAttempt
}

// NextRun returns the next scheduled cycle, or the zero time before Start.
func (p *Poller) NextRun() time.Time {
	entries := p.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Metrics returns the poller's counters.
func (p *Poller) Metrics() *Metrics {
	return p.metrics
}
