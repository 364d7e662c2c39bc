package report

import (
	"bytes"
	"context"
	"io"

	"github.com/viant/rxguard/analyzer/hazard"
)

// Writer emits hazards not covered by a baseline to an io.Writer
type Writer struct {
	out      io.Writer
	emitter  Emitter
	baseline *Baseline
	reported int
}

// NewWriter creates a writer, baseline is optional
func NewWriter(out io.Writer, emitter Emitter, baseline *Baseline) *Writer {
	return &Writer{out: out, emitter: emitter, baseline: baseline}
}

// Report implements analyzer.Reporter
func (w *Writer) Report(ctx context.Context, hazards []*hazard.Hazard) error {
	hazards = w.baseline.Filter(hazards)
	w.reported += len(hazards)
	data, err := w.emitter.Emit(hazards)
	if err != nil {
		return err
	}
	_, err = w.out.Write(data)
	return err
}

// Reported returns the number of hazards written
func (w *Writer) Reported() int {
	return w.reported
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
