// Package nmea renders playback snapshots as NMEA 0183 sentences, so a
// replayed route can feed any consumer that expects a GPS receiver, such as
// a chartplotter or a serial-attached device.
package nmea

import (
	"fmt"
	"math"
	"time"

	"github.com/ShauryaBist21/Vehicle-Movement/playback"
)

// 1 m/s = 1.94384 knots
const metersPerSecondToKnots = 1.94384

// Checksum calculates the NMEA checksum for a sentence, skipping the
// leading '$'.
func Checksum(sentence string) string {
	var checksum byte
	for i := 1; i < len(sentence); i++ {
		checksum ^= sentence[i]
	}
	return fmt.Sprintf("%02X", checksum)
}

// Format appends the checksum and line terminator to a bare sentence.
func Format(sentence string) string {
	return fmt.Sprintf("%s*%s\r\n", sentence, Checksum(sentence))
}

// coordinate converts decimal degrees to the NMEA DDMM.MMMM convention.
func coordinate(deg float64, width int) string {
	whole := int(math.Abs(deg))
	minutes := (math.Abs(deg) - float64(whole)) * 60
	return fmt.Sprintf("%0*d%07.4f", width, whole, minutes)
}

// RMC generates a Recommended Minimum sentence from a snapshot. A snapshot
// without a position produces a void (no fix) sentence.
func RMC(snap playback.Snapshot, timestamp time.Time) string {
	timeStr := timestamp.UTC().Format("150405")
	dateStr := timestamp.UTC().Format("020106")

	if snap.Position == nil {
		return Format(fmt.Sprintf("$GPRMC,%s,V,,,,,,,,%s,,,N", timeStr, dateStr))
	}

	lat := coordinate(snap.Position.Lat, 2)
	latHem := "N"
	if snap.Position.Lat < 0 {
		latHem = "S"
	}

	lon := coordinate(snap.Position.Lng, 3)
	lonHem := "E"
	if snap.Position.Lng < 0 {
		lonHem = "W"
	}

	speedKnots := snap.SpeedMps * metersPerSecondToKnots

	sentence := fmt.Sprintf("$GPRMC,%s,A,%s,%s,%s,%s,%.1f,%.1f,%s,,,A",
		timeStr,
		lat, latHem,
		lon, lonHem,
		speedKnots, snap.CourseDegrees,
		dateStr)

	return Format(sentence)
}

// GGA generates a Global Positioning System Fix Data sentence from a
// snapshot. Altitude is reported as zero; the route format carries none.
func GGA(snap playback.Snapshot, timestamp time.Time) string {
	timeStr := timestamp.UTC().Format("150405")

	if snap.Position == nil {
		return Format(fmt.Sprintf("$GPGGA,%s,,,,,0,00,,,,,,,,,", timeStr))
	}

	lat := coordinate(snap.Position.Lat, 2)
	latHem := "N"
	if snap.Position.Lat < 0 {
		latHem = "S"
	}

	lon := coordinate(snap.Position.Lng, 3)
	lonHem := "E"
	if snap.Position.Lng < 0 {
		lonHem = "W"
	}

	sentence := fmt.Sprintf("$GPGGA,%s,%s,%s,%s,%s,1,08,1.2,0.0,M,0.0,M,,",
		timeStr,
		lat, latHem,
		lon, lonHem)

	return Format(sentence)
}

// Sentences renders the standard per-tick sentence pair for a snapshot.
func Sentences(snap playback.Snapshot, timestamp time.Time) []string {
	return []string{
		GGA(snap, timestamp),
		RMC(snap, timestamp),
	}
}
