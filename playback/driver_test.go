package playback

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDriverRunsRouteToCompletion(t *testing.T) {
	config := DefaultConfig()
	config.TickRate = 5 * time.Millisecond
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// A short route: two waypoints 50 ms apart in route time.
	start := time.Now()
	route := Route{
		{Latitude: 0, Longitude: 0, Timestamp: start},
		{Latitude: 0, Longitude: 0.0001, Timestamp: start.Add(50 * time.Millisecond)},
	}
	loadAndPlay(t, engine, route)

	var mu sync.Mutex
	ticks := 0
	driver := NewDriver(engine)
	driver.AddCallback(func(Snapshot) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})

	if err := driver.Start(); err != nil {
		t.Fatalf("Failed to start driver: %v", err)
	}
	if err := driver.Start(); !errors.Is(err, ErrDriverAlreadyRunning) {
		t.Errorf("Expected ErrDriverAlreadyRunning, got %v", err)
	}

	waitDone(t, driver, time.Second)

	snap := engine.Snapshot()
	if !snap.Completed {
		t.Error("Driver should have run the route to completion")
	}
	if driver.IsRunning() {
		t.Error("Driver should stop itself at route completion")
	}

	mu.Lock()
	defer mu.Unlock()
	if ticks == 0 {
		t.Error("Callbacks should have been invoked")
	}
}

func TestDriverDurationCap(t *testing.T) {
	config := DefaultConfig()
	config.TickRate = 5 * time.Millisecond
	config.Duration = 30 * time.Millisecond
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	start := time.Now()
	loadAndPlay(t, engine, Route{
		{Latitude: 0, Longitude: 0, Timestamp: start},
		{Latitude: 0, Longitude: 0.001, Timestamp: start.Add(time.Hour)},
	})

	driver := NewDriver(engine)
	if err := driver.Start(); err != nil {
		t.Fatalf("Failed to start driver: %v", err)
	}

	waitDone(t, driver, time.Second)

	if driver.IsRunning() {
		t.Error("Driver should stop once the duration elapses")
	}
	if engine.Snapshot().Completed {
		t.Error("Duration cap must not mark the route completed")
	}
}

func TestDriverStopWithdrawsTicks(t *testing.T) {
	engine := newTestEngine(t)
	driver := NewDriver(engine)

	if err := driver.Stop(); !errors.Is(err, ErrDriverNotRunning) {
		t.Errorf("Expected ErrDriverNotRunning, got %v", err)
	}

	if err := driver.Start(); err != nil {
		t.Fatalf("Failed to start driver: %v", err)
	}
	if err := driver.Stop(); err != nil {
		t.Fatalf("Failed to stop driver: %v", err)
	}
	waitDone(t, driver, time.Second)
}

func waitDone(t *testing.T, driver *Driver, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		driver.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("Timed out waiting for driver to stop")
	}
}
