// Package replay records per-tick flight snapshots to a zstd-compressed
// JSON-lines journal. The journal is strictly an observer: recording never
// feeds back into the simulation.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/danmarai/slingshot-flyer/internal/models"
)

// Keyframe is one journal entry.
type Keyframe struct {
	Tick       uint64             `json:"tick"`
	State      models.FlightState `json:"state"`
	RecordedAt time.Time          `json:"recordedAt"`
}

type Recorder struct {
	f   *os.File
	zw  *zstd.Encoder
	enc *json.Encoder
}

// NewRecorder opens (truncates) a journal file for writing.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open replay journal: %w", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("replay journal: %w", err)
	}
	return &Recorder{f: f, zw: zw, enc: json.NewEncoder(zw)}, nil
}

// Record appends one keyframe.
func (r *Recorder) Record(kf Keyframe) error {
	if err := r.enc.Encode(kf); err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}
	return nil
}

// Close flushes the compressor and closes the file.
func (r *Recorder) Close() error {
	if err := r.zw.Close(); err != nil {
		r.f.Close()
		return fmt.Errorf("replay journal: %w", err)
	}
	return r.f.Close()
}

// ReadAll loads a complete journal for offline inspection.
func ReadAll(path string) ([]Keyframe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay journal: %w", err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("replay journal: %w", err)
	}
	defer zr.Close()

	var out []Keyframe
	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var kf Keyframe
		if err := json.Unmarshal(line, &kf); err != nil {
			return nil, fmt.Errorf("replay journal: %w", err)
		}
		out = append(out, kf)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay journal: %w", err)
	}
	return out, nil
}
