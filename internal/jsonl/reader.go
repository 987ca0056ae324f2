package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// LineError reports a record that could not be decoded.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Reader decodes one JSON value per input line.
type Reader struct {
	br         *bufio.Reader
	line       int
	skipBlanks bool
}

type Option func(*Reader)

// WithSkipBlankLines ignores lines holding only whitespace. Skipped lines
// still count toward Line.
func WithSkipBlankLines() Option {
	return func(r *Reader) {
		r.skipBlanks = true
	}
}

func NewReader(r io.Reader, opts ...Option) *Reader {
	reader := &Reader{br: bufio.NewReaderSize(r, 64*1024)}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Decode reads the next line into v. It returns io.EOF once the input is exhausted.
// Unless WithSkipBlankLines is set, every line must hold exactly one record.
func (r *Reader) Decode(v any) error {
	for {
		raw, err := r.br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read line %d: %w", r.line+1, err)
		}
		if len(raw) == 0 && errors.Is(err, io.EOF) {
			return io.EOF
		}
		r.line++

		if r.skipBlanks && len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		raw = bytes.TrimSuffix(raw, []byte("\n"))
		raw = bytes.TrimSuffix(raw, []byte("\r"))

		if jerr := json.Unmarshal(raw, v); jerr != nil {
			return &LineError{Line: r.line, Err: jerr}
		}
		return nil
	}
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}
