package recordio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/hupe1980/vecfilter/model"
)

// Writer encodes records as JSON Lines.
type Writer struct {
	bw  *bufio.Writer
	enc io.WriteCloser
}

// NewWriter writes records to w, compressed with c. Close flushes the
// stream but does not close w.
func NewWriter(w io.Writer, c Compression) (*Writer, error) {
	enc, err := compress(w, c)
	if err != nil {
		return nil, err
	}
	return &Writer{bw: bufio.NewWriter(enc), enc: enc}, nil
}

// Write appends one record.
func (w *Writer) Write(rec model.Record) error {
	b, err := sonic.ConfigStd.Marshal(line{
		ID:       rec.ID,
		Metadata: rec.Metadata.ToAny(),
		Document: rec.Document,
	})
	if err != nil {
		return fmt.Errorf("recordio: encode %s: %w", rec.ID, err)
	}
	if _, err := w.bw.Write(b); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

// Close flushes buffered records and finishes the compressed stream.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		return err
	}
	return w.enc.Close()
}
