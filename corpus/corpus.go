// Copyright 2023 The Rexterm Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package corpus reads and writes pattern corpora: newline-delimited
// JSON files of named terms.
//
// Each line holds one entry, {"name":"...","term":{...}}, with the
// term in its neutral JSON encoding. Corpora are the interchange
// format for batch translation and for regression suites that pin a
// set of patterns across releases. Files named *.zst or *.s2 are
// compressed with zstd or s2.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"

	"github.com/rexterm/rexterm/term"
)

// MaxEntrySize is the longest encoded entry line accepted by a
// Reader or produced by a Writer.
const MaxEntrySize = 1024 * 1024

// ErrTooLarge is returned when a single corpus entry would exceed
// MaxEntrySize.
var ErrTooLarge = errors.New("corpus: entry larger than MaxEntrySize")

// Entry is one named pattern in a corpus.
type Entry struct {
	Name string
	Term term.Term
}

// record is the wire shape of one line.
type record struct {
	Name string          `json:"name"`
	Term json.RawMessage `json:"term"`
}

// Compression reports the compression layered on a corpus file, by
// extension: "zstd" for .zst, "s2" for .s2, and "" otherwise.
func Compression(path string) string {
	switch filepath.Ext(path) {
	case ".zst":
		return "zstd"
	case ".s2":
		return "s2"
	default:
		return ""
	}
}

// A Writer appends entries to a corpus stream.
type Writer struct {
	dst     io.Writer
	closers []io.Closer
}

// NewWriter layers the named compression ("zstd", "s2" or "" for
// none) over w and returns a corpus Writer on top of it. Close
// flushes the compression layer but leaves w open.
func NewWriter(w io.Writer, compression string) (*Writer, error) {
	out := &Writer{dst: w}
	switch compression {
	case "zstd":
		zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		out.dst = zw
		out.closers = append(out.closers, zw)
	case "s2":
		sw := s2.NewWriter(w)
		out.dst = sw
		out.closers = append(out.closers, sw)
	case "":
	default:
		return nil, fmt.Errorf("corpus: no compression %q", compression)
	}
	return out, nil
}

// Create creates a corpus file at path, choosing the compression
// from the file extension. Close finishes the compression frame and
// closes the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, Compression(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closers = append(w.closers, f)
	return w, nil
}

// Add appends one entry to the corpus.
func (w *Writer) Add(name string, t term.Term) error {
	msg, err := term.Encode(t)
	if err != nil {
		return err
	}
	line, err := json.Marshal(&record{Name: name, Term: msg})
	if err != nil {
		return err
	}
	if len(line) > MaxEntrySize {
		return ErrTooLarge
	}
	line = append(line, '\n')
	_, err = w.dst.Write(line)
	return err
}

// Close flushes and closes the layers owned by the Writer. It does
// not close an io.Writer passed to NewWriter.
func (w *Writer) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	w.closers = nil
	return first
}

// A Reader iterates over the entries of a corpus stream.
type Reader struct {
	sc      *bufio.Scanner
	line    int
	closers []io.Closer
}

// NewReader layers the named decompression ("zstd", "s2" or "" for
// none) over r and returns a corpus Reader on top of it.
func NewReader(r io.Reader, compression string) (*Reader, error) {
	src := r
	var closers []io.Closer
	switch compression {
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		rc := zr.IOReadCloser()
		src = rc
		closers = append(closers, rc)
	case "s2":
		src = s2.NewReader(r)
	case "":
	default:
		return nil, fmt.Errorf("corpus: no compression %q", compression)
	}
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), MaxEntrySize)
	return &Reader{sc: sc, closers: closers}, nil
}

// Open opens the corpus file at path, choosing the decompression
// from the file extension.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, Compression(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closers = append(r.closers, f)
	return r, nil
}

// Next returns the next entry. Blank lines are skipped. After the
// final entry, Next returns io.EOF.
func (r *Reader) Next() (Entry, error) {
	for r.sc.Scan() {
		r.line++
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return Entry{}, fmt.Errorf("corpus: line %d: %w", r.line, err)
		}
		t, err := term.Decode(rec.Term)
		if err != nil {
			return Entry{}, fmt.Errorf("corpus: line %d: %w", r.line, err)
		}
		return Entry{Name: rec.Name, Term: t}, nil
	}
	if err := r.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return Entry{}, ErrTooLarge
		}
		return Entry{}, err
	}
	return Entry{}, io.EOF
}

// Close releases the layers owned by the Reader. It does not close
// an io.Reader passed to NewReader.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}
