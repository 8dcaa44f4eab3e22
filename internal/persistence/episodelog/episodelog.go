// Package episodelog records episodes as zstd-compressed JSONL: one
// header line per episode followed by one line per step.
package episodelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"gridverse.ai/internal/repr"
)

// Header is the first record of a log file.
type Header struct {
	Env        string `json:"env"`
	Seed       int64  `json:"seed"`
	ObsRep     string `json:"obs_rep,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

// StepRecord is one step of one episode. Episode and Step count from 0.
type StepRecord struct {
	Episode     int                   `json:"episode"`
	Step        int                   `json:"step"`
	Action      int                   `json:"action"`
	Reward      float64               `json:"reward"`
	Done        bool                  `json:"done"`
	Observation map[string]repr.Array `json:"observation,omitempty"`
}

// Writer appends JSON records to one zstd-compressed log file.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewWriter(path string, header Header) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w := &Writer{f: f, enc: enc, w: bufio.NewWriter(enc)}
	if err := w.Write(header); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return fmt.Errorf("episodelog: writer closed")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	ferr := w.w.Flush()
	if err := w.enc.Close(); ferr == nil {
		ferr = err
	}
	if err := w.f.Close(); ferr == nil {
		ferr = err
	}
	w.f = nil
	return ferr
}

// Reader streams records back out of a log file.
type Reader struct {
	f   *os.File
	dec *zstd.Decoder
	sc  *bufio.Scanner
	err error

	header Header
}

func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<24)
	r := &Reader{f: f, dec: dec, sc: sc}
	if !sc.Scan() {
		_ = r.Close()
		return nil, fmt.Errorf("episodelog: %s: missing header", path)
	}
	if err := json.Unmarshal(sc.Bytes(), &r.header); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("episodelog: %s: bad header: %w", path, err)
	}
	return r, nil
}

func (r *Reader) Header() Header { return r.header }

// Next decodes the next step record. It returns false at end of file or
// on a decode error; check Err afterwards.
func (r *Reader) Next(rec *StepRecord) bool {
	if r.err != nil || !r.sc.Scan() {
		return false
	}
	if err := json.Unmarshal(r.sc.Bytes(), rec); err != nil {
		r.err = fmt.Errorf("episodelog: bad record: %w", err)
		return false
	}
	return true
}

func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.sc.Err()
}

func (r *Reader) Close() error {
	r.dec.Close()
	return r.f.Close()
}
