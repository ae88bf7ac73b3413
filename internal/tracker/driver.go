package tracker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTickInterval is how often the driver refreshes the elapsed time
const DefaultTickInterval = time.Second

// Driver calls Store.Tick periodically while a timer is running. The ticker
// is created when the store enters the running state and stopped as soon as
// it goes idle, so repeated start/stop cycles never leave tickers behind.
type Driver struct {
	store    *Store
	clock    clockwork.Clock
	interval time.Duration
	log      *slog.Logger
	onTick   func(elapsed int)

	ticking atomic.Bool
}

// DriverOption configures a Driver
type DriverOption func(*Driver)

// WithDriverClock sets the clock used to create tickers
func WithDriverClock(c clockwork.Clock) DriverOption {
	return func(d *Driver) { d.clock = c }
}

// WithDriverLogger sets the logger
func WithDriverLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) { d.log = l }
}

// OnTick registers a callback invoked with the elapsed seconds after each tick
func OnTick(fn func(elapsed int)) DriverOption {
	return func(d *Driver) { d.onTick = fn }
}

// NewDriver creates a tick driver for store
func NewDriver(store *Store, interval time.Duration, opts ...DriverOption) *Driver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	d := &Driver{
		store:    store,
		clock:    clockwork.NewRealClock(),
		interval: interval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Ticking reports whether the driver currently holds a live ticker
func (d *Driver) Ticking() bool {
	return d.ticking.Load()
}

// Run drives ticks until ctx is cancelled
func (d *Driver) Run(ctx context.Context) error {
	changes := make(chan bool, 1)
	unsubscribe := d.store.Subscribe(func(st State) {
		latest(changes, st.Active.IsRunning())
	})
	defer unsubscribe()

	var (
		ticker clockwork.Ticker
		tickC  <-chan time.Time
	)
	startTicker := func() {
		if ticker != nil {
			return
		}
		ticker = d.clock.NewTicker(d.interval)
		tickC = ticker.Chan()
		d.ticking.Store(true)
		d.log.Debug("tick driver started", slog.Duration("interval", d.interval))
	}
	stopTicker := func() {
		if ticker == nil {
			return
		}
		ticker.Stop()
		ticker, tickC = nil, nil
		d.ticking.Store(false)
		d.log.Debug("tick driver stopped")
	}
	defer stopTicker()

	// Resume after a reload: the store may already be running.
	if d.store.Active().IsRunning() {
		startTicker()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case running := <-changes:
			if running {
				startTicker()
			} else {
				stopTicker()
			}
		case <-tickC:
			elapsed, running := d.store.Tick()
			if !running {
				stopTicker()
				continue
			}
			if d.onTick != nil {
				d.onTick(elapsed)
			}
		}
	}
}

// latest replaces any pending value in ch with v without blocking
func latest(ch chan bool, v bool) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
