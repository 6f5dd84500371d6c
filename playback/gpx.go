package playback

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"
)

// gpxDocument is the root GPX structure, covering the track and route
// variants a recorded drive usually arrives as.
type gpxDocument struct {
	XMLName xml.Name   `xml:"gpx"`
	Version string     `xml:"version,attr"`
	Creator string     `xml:"creator,attr"`
	Xmlns   string     `xml:"xmlns,attr"`
	Track   gpxTrack   `xml:"trk"`
	Routes  []gpxRoute `xml:"rte"`
}

type gpxTrack struct {
	Name    string     `xml:"name"`
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxRoute struct {
	Name   string     `xml:"name"`
	Points []gpxPoint `xml:"rtept"`
}

type gpxPoint struct {
	Lat  float64   `xml:"lat,attr"`
	Lon  float64   `xml:"lon,attr"`
	Time time.Time `xml:"time"`
}

// ReadGPXFile reads a GPX file and converts its track points (or, failing
// that, the first route's points) into a playback route. Points without
// timestamps fail route validation since segment timing depends on them.
func ReadGPXFile(filename string) (Route, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open GPX file %s: %w", filename, err)
	}
	defer file.Close()

	var doc gpxDocument
	if err := xml.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX file %s: %w", filename, err)
	}

	points := doc.Track.Segment.Points
	if len(points) == 0 && len(doc.Routes) > 0 {
		points = doc.Routes[0].Points
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no track points or route points found in GPX file %s", filename)
	}

	route := make(Route, len(points))
	for i, pt := range points {
		route[i] = Waypoint{
			Latitude:  pt.Lat,
			Longitude: pt.Lon,
			Timestamp: pt.Time,
		}
	}

	if err := ValidateRoute(route); err != nil {
		return nil, fmt.Errorf("GPX file %s: %w", filename, err)
	}

	return route, nil
}

// TrackRecorder writes the positions a playback session actually produced
// to a GPX track file, so a replayed drive can be inspected afterwards.
type TrackRecorder struct {
	filename string
	doc      *gpxDocument
	file     *os.File
}

// NewTrackRecorder creates a GPX track recorder backed by the given file.
func NewTrackRecorder(filename string) (*TrackRecorder, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create GPX file %s: %w", filename, err)
	}

	return &TrackRecorder{
		filename: filename,
		file:     file,
		doc: &gpxDocument{
			Version: "1.1",
			Creator: "vehicle-movement",
			Xmlns:   "http://www.topografix.com/GPX/1/1",
			Track: gpxTrack{
				Name: "Playback Track",
			},
		},
	}, nil
}

// Add appends an interpolated position to the track.
func (r *TrackRecorder) Add(pos Position, timestamp time.Time) {
	r.doc.Track.Segment.Points = append(r.doc.Track.Segment.Points, gpxPoint{
		Lat:  pos.Lat,
		Lon:  pos.Lng,
		Time: timestamp.UTC(),
	})
}

// Count returns the number of recorded points.
func (r *TrackRecorder) Count() int {
	return len(r.doc.Track.Segment.Points)
}

// Flush rewrites the GPX file with the points recorded so far.
func (r *TrackRecorder) Flush() error {
	if _, err := r.file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek to beginning of file: %w", err)
	}
	if err := r.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate file: %w", err)
	}
	if _, err := r.file.WriteString(xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	encoder := xml.NewEncoder(r.file)
	encoder.Indent("", "  ")
	if err := encoder.Encode(r.doc); err != nil {
		return fmt.Errorf("failed to encode GPX data: %w", err)
	}

	return r.file.Sync()
}

// Close flushes the remaining points and closes the file.
func (r *TrackRecorder) Close() error {
	if r.file == nil {
		return nil
	}
	if err := r.Flush(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
