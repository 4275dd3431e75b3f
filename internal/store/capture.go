// Package store records bus envelopes to JSONL capture files and reads
// them back for replay.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmylchreest/hermes/internal/bus"
)

// SchemaVersion is the current capture schema version.
const SchemaVersion = 1

// Max length of one envelope line.
const maxLineSize = 16 * 1024 * 1024

// ErrCaptureClosed is returned when operations are attempted on a closed capture.
var ErrCaptureClosed = errors.New("capture is closed")

// schemaHeader is the first line of a capture file.
type schemaHeader struct {
	HermesCaptureVersion int   `json:"hermes_capture_version"`
	CreatedAt            int64 `json:"created_at"`
}

// Capture appends envelopes to a JSONL file. Payloads are stored base64
// encoded, so binary audio survives the round trip.
type Capture struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	count  int
	closed bool
}

// NewCapture opens path for appending, creating it and its parent
// directory if needed.
func NewCapture(path string) (*Capture, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	c := &Capture{
		path: path,
		file: file,
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.Size() == 0 {
		if err := c.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return c, nil
}

func (c *Capture) writeHeader() error {
	header := schemaHeader{
		HermesCaptureVersion: SchemaVersion,
		CreatedAt:            time.Now().Unix(),
	}

	data, err := json.Marshal(header)
	if err != nil {
		return err
	}

	_, err = c.file.Write(append(data, '\n'))
	return err
}

// Path returns the capture file path.
func (c *Capture) Path() string {
	return c.path
}

// Count returns the number of envelopes appended since the capture was opened.
func (c *Capture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Append adds an envelope to the capture. It is safe for concurrent use.
func (c *Capture) Append(env bus.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.file == nil {
		return ErrCaptureClosed
	}

	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	if _, err := c.file.Write(append(data, '\n')); err != nil {
		return err
	}
	c.count++
	return nil
}

// Close flushes and releases the file.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.file == nil {
		return nil
	}
	syncErr := c.file.Sync()
	closeErr := c.file.Close()
	c.file = nil
	return errors.Join(syncErr, closeErr)
}

// Load reads every envelope of the capture at path in file order.
// Malformed lines are skipped and counted.
func Load(path string) ([]bus.Envelope, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	return Read(file)
}

// Read decodes a capture stream. It returns the envelopes and the number
// of lines that could not be decoded.
func Read(r io.Reader) ([]bus.Envelope, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var (
		envs    []bus.Envelope
		skipped int
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err == nil && header.HermesCaptureVersion > 0 {
				if header.HermesCaptureVersion > SchemaVersion {
					return nil, 0, fmt.Errorf("unsupported schema version %d (max: %d)",
						header.HermesCaptureVersion, SchemaVersion)
				}
				continue
			}
		}

		var env bus.Envelope
		if err := json.Unmarshal(line, &env); err != nil || env.Topic == "" {
			skipped++
			continue
		}
		envs = append(envs, env)
	}

	if err := scanner.Err(); err != nil {
		return envs, skipped, fmt.Errorf("error reading capture: %w", err)
	}
	return envs, skipped, nil
}

// Gaps returns the delay before each envelope relative to the previous
// one, divided by speed. The first delay is zero; negative gaps become
// zero. A speed of zero or less yields no delays at all.
func Gaps(envs []bus.Envelope, speed float64) []time.Duration {
	gaps := make([]time.Duration, len(envs))
	if speed <= 0 {
		return gaps
	}
	for i := 1; i < len(envs); i++ {
		d := envs[i].Time.Sub(envs[i-1].Time)
		if d > 0 {
			gaps[i] = time.Duration(float64(d) / speed)
		}
	}
	return gaps
}
