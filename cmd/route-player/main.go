package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.bug.st/serial"

	"github.com/ShauryaBist21/Vehicle-Movement/nmea"
	"github.com/ShauryaBist21/Vehicle-Movement/playback"
)

// Version information - populated at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		routeFile   string
		format      string
		serialPort  string
		baudRate    int
		recordFile  string
		quiet       bool
		showVersion bool
	)
	config := playback.DefaultConfig()

	flag.BoolVar(&showVersion, "version", false, "Show version information and exit")
	flag.StringVar(&routeFile, "route", "", "Route file to replay (.json or .gpx)")
	flag.DurationVar(&config.TickRate, "rate", config.TickRate, "Tick cadence for the playback driver")
	flag.Float64Var(&config.SpeedMultiplier, "speed", 1.0, "Playback speed multiplier (1.0=real-time, 2.0=2x speed)")
	flag.BoolVar(&config.Loop, "loop", false, "Loop the route continuously (default: stop after one pass)")
	flag.DurationVar(&config.Duration, "duration", 0, "How long to run the playback (e.g. 30s, 5m). Default is until the route completes")
	flag.StringVar(&format, "format", "json", "Output format: json (one snapshot per line) or nmea")
	flag.StringVar(&serialPort, "serial", "", "Serial port for output (e.g., /dev/ttyUSB0, COM1)")
	flag.IntVar(&baudRate, "baud", 9600, "Serial port baud rate")
	flag.StringVar(&recordFile, "record", "", "Record the replayed track to a GPX file")
	flag.BoolVar(&quiet, "quiet", false, "Suppress info messages")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nVehicle Route Player\n")
		fmt.Fprintf(os.Stderr, "Replays a recorded vehicle route in real time, emitting position and telemetry snapshots.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		if Version != "dev" {
			fmt.Printf("v%s\n", Version)
		} else {
			fmt.Printf("%s\n", Commit)
		}
		os.Exit(0)
	}

	if routeFile == "" {
		log.Fatal("A route file must be specified with -route")
	}
	if format != "json" && format != "nmea" {
		log.Fatalf("Unknown output format %q (expected json or nmea)", format)
	}
	if baudRate <= 0 {
		log.Fatal("Baud rate must be positive")
	}

	route, err := loadRoute(routeFile)
	if err != nil {
		log.Fatalf("Failed to load route: %v", err)
	}

	// Setup output writer (serial port or stdout)
	var out io.Writer = os.Stdout
	if serialPort != "" {
		mode := &serial.Mode{
			BaudRate: baudRate,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}

		port, err := serial.Open(serialPort, mode)
		if err != nil {
			log.Fatalf("Failed to open serial port %s: %v", serialPort, err)
		}
		defer port.Close()
		out = port

		if !quiet {
			fmt.Fprintf(os.Stderr, "Opened serial port: %s at %d baud\n", serialPort, baudRate)
		}
	}

	var recorder *playback.TrackRecorder
	if recordFile != "" {
		recorder, err = playback.NewTrackRecorder(recordFile)
		if err != nil {
			log.Fatalf("Failed to create track recorder: %v", err)
		}
		defer recorder.Close()
	}

	engine, err := playback.NewEngine(config)
	if err != nil {
		log.Fatalf("Failed to create playback engine: %v", err)
	}
	if err := engine.LoadRoute(route); err != nil {
		log.Fatalf("Failed to load route: %v", err)
	}
	if err := engine.Play(); err != nil {
		log.Fatalf("Failed to start playback: %v", err)
	}

	driver := playback.NewDriver(engine)
	driver.AddCallback(func(snap playback.Snapshot) {
		emit(out, format, snap)
		if recorder != nil && snap.Position != nil {
			recorder.Add(*snap.Position, time.Now())
			if recorder.Count()%10 == 0 {
				recorder.Flush()
			}
		}
	})

	if !quiet {
		fmt.Fprintf(os.Stderr, "Replaying route: %s (%d waypoints)\n", routeFile, len(route))
		fmt.Fprintf(os.Stderr, "Playback speed: %.1fx\n", config.SpeedMultiplier)
		fmt.Fprintf(os.Stderr, "Tick rate: %v\n", config.TickRate)
		if recordFile != "" {
			fmt.Fprintf(os.Stderr, "Recording track to: %s\n", recordFile)
		}
		fmt.Fprintf(os.Stderr, "\nPress Ctrl+C to stop\n\n")
	}

	if err := driver.Start(); err != nil {
		log.Fatalf("Failed to start driver: %v", err)
	}

	// Run until the route completes, the duration elapses, or a signal
	// arrives.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		driver.Wait()
		close(done)
	}()

	select {
	case <-sigChan:
		driver.Stop()
		<-done
	case <-done:
	}

	if !quiet {
		snap := engine.Snapshot()
		fmt.Fprintf(os.Stderr, "\nPlayback finished: %.1f m in %.1f s\n", snap.DistanceMeters, snap.ElapsedSeconds)
	}
}

// loadRoute picks the decoder from the file extension.
func loadRoute(filename string) (playback.Route, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gpx":
		return playback.ReadGPXFile(filename)
	default:
		return playback.ReadRouteFile(filename)
	}
}

// emit writes one snapshot in the selected output format.
func emit(out io.Writer, format string, snap playback.Snapshot) {
	switch format {
	case "nmea":
		for _, sentence := range nmea.Sentences(snap, time.Now()) {
			fmt.Fprint(out, sentence)
		}
	default:
		data, err := json.Marshal(snap)
		if err != nil {
			return
		}
		fmt.Fprintln(out, string(data))
	}
}
