// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/danielhkuo/voties/election"
)

// Writer appends held elections as JSON lines to zstd-compressed files,
// one file per UTC day
type Writer struct {
	dir    string
	prefix string
	logger *slog.Logger
	now    func() time.Time

	ch     chan election.HeldElection
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool

	mu     sync.Mutex
	curDay string
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

// NewWriter creates a writer under dir and starts its background
// goroutine. Files are named <prefix>-<yyyy-mm-dd>.jsonl.zst.
func NewWriter(dir, prefix string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = "elections"
	}
	w := &Writer{
		dir:    dir,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
		ch:     make(chan election.HeldElection, 256),
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for held := range w.ch {
			if err := w.Write(held); err != nil {
				w.logger.Error("failed to archive held election", "election_id", held.ID, "error", err)
			}
		}
	}()
	return w
}

// ElectionClosed queues held for archiving. Records are dropped if the
// writer falls behind.
func (w *Writer) ElectionClosed(held election.HeldElection) {
	if w.closed.Load() {
		return
	}
	select {
	case w.ch <- held:
	default:
		w.logger.Warn("archive writer behind, dropping held election", "election_id", held.ID)
	}
}

// Write appends one record and flushes it to the current frame
func (w *Writer) Write(held election.HeldElection) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := w.now().UTC().Format(time.DateOnly)
	if day != w.curDay {
		if err := w.rotateLocked(day); err != nil {
			return err
		}
	}

	b, err := json.Marshal(held)
	if err != nil {
		return fmt.Errorf("failed to encode held election: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Close drains queued records and finishes the current file
func (w *Writer) Close() error {
	w.once.Do(func() {
		w.closed.Store(true)
		close(w.ch)
		w.wg.Wait()
	})
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(day string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}
	f, err := os.OpenFile(w.PathFor(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curDay = day
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		err = w.w.Flush()
	}
	if w.enc != nil {
		err = errors.Join(err, w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		err = errors.Join(err, w.f.Close())
		w.f = nil
	}
	w.w = nil
	w.curDay = ""
	return err
}

// PathFor returns the archive file for a day formatted as yyyy-mm-dd
func (w *Writer) PathFor(day string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, day))
}

// ReadFile decodes every held election in one archive file
func ReadFile(path string) ([]election.HeldElection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a zstd JSONL stream of held elections. Concatenated frames
// from appended sessions are read in order.
func Read(r io.Reader) ([]election.HeldElection, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []election.HeldElection
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var held election.HeldElection
		if err := json.Unmarshal(line, &held); err != nil {
			return out, fmt.Errorf("archive line %d: %w", len(out)+1, err)
		}
		out = append(out, held)
	}
	if err := scanner.Err(); err != nil {
		return out, err
	}
	return out, nil
}
