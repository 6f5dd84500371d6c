package playback

import (
	"context"
	"sync"
	"time"
)

// Driver delivers wall-clock ticks to an engine at the configured cadence.
// The engine's contract is driver-agnostic; this driver is the default host
// facility, built on a time.Ticker. It stops itself when the route completes
// naturally or the configured duration elapses.
type Driver struct {
	mu        sync.Mutex
	engine    *Engine
	running   bool
	cancel    context.CancelFunc
	ticker    *time.Ticker
	done      chan struct{}
	callbacks []func(Snapshot)
}

// NewDriver creates a driver for the given engine.
func NewDriver(engine *Engine) *Driver {
	return &Driver{engine: engine}
}

// AddCallback registers a function invoked with the snapshot of every tick.
// Callbacks run on the driver goroutine, in tick order.
func (d *Driver) AddCallback(callback func(Snapshot)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callbacks = append(d.callbacks, callback)
}

// Start begins delivering ticks on a background goroutine.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return ErrDriverAlreadyRunning
	}

	cfg := d.engine.Config()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.ticker = time.NewTicker(cfg.TickRate)
	d.done = make(chan struct{})
	d.running = true

	go d.run(ctx, cfg.Duration)
	return nil
}

// Stop withdraws future ticks. The engine holds no background resources of
// its own, so this is the only cancellation mechanism a session needs.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

func (d *Driver) stopLocked() error {
	if !d.running {
		return ErrDriverNotRunning
	}
	d.cancel()
	d.ticker.Stop()
	d.running = false
	return nil
}

// IsRunning reports whether the driver is currently delivering ticks.
func (d *Driver) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Wait blocks until the driver's run loop has exited.
func (d *Driver) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (d *Driver) run(ctx context.Context, duration time.Duration) {
	defer close(d.done)

	var durationChan <-chan time.Time
	if duration > 0 {
		durationTimer := time.NewTimer(duration)
		durationChan = durationTimer.C
		defer durationTimer.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.ticker.C:
			snap := d.engine.Tick(time.Now())

			d.mu.Lock()
			callbacks := d.callbacks
			d.mu.Unlock()
			for _, callback := range callbacks {
				callback(snap)
			}

			if snap.Completed && !snap.Playing {
				d.mu.Lock()
				d.stopLocked()
				d.mu.Unlock()
				return
			}
		case <-durationChan:
			d.mu.Lock()
			d.stopLocked()
			d.mu.Unlock()
			return
		}
	}
}
