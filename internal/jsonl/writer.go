package jsonl

import (
	"bufio"
	"encoding/json"
	"io"
)

// Writer encodes one JSON value per line. Non-ASCII text and HTML
// characters are written verbatim.
type Writer struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriterSize(w, 64*1024)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &Writer{bw: bw, enc: enc}
}

func (w *Writer) Write(v any) error {
	return w.enc.Encode(v)
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}
