package pdu

import (
	"context"
)

// AsyncSink is a byte sink whose Write may suspend the caller (e.g. a
// network connection wrapped for cooperative scheduling). The framing
// contract is identical to the blocking Writer; only the suspension points
// differ, one per call to Write (spec.md §5: "The PDU writer may be
// blocking or cooperative").
//
// There is no cancellation-safety requirement on mid-PDU suspension: if ctx
// is cancelled during a Write, the sink may be left holding a partial PDU
// and the caller must treat the connection as broken.
type AsyncSink interface {
	Write(ctx context.Context, p []byte) error
}

// AsyncWriter is the cooperative-scheduling counterpart to Writer. It
// builds the same bottom-up buffered payload, then performs exactly two
// Write calls to the sink: the 6-byte header, then the payload -- matching
// Writer's two io.Writer.Write calls so the wire bytes are identical
// regardless of which writer produced them.
type AsyncWriter struct {
	sink AsyncSink
}

// NewAsyncWriter wraps sink.
func NewAsyncWriter(sink AsyncSink) *AsyncWriter {
	return &AsyncWriter{sink: sink}
}

// WritePDU encodes p and writes it to the sink, suspending at each Write
// call per ctx's scheduling.
func (wr *AsyncWriter) WritePDU(ctx context.Context, p *PDU) error {
	header, payload, err := encodePDUFrame(p)
	if err != nil {
		return err
	}
	if err := wr.sink.Write(ctx, header); err != nil {
		return &WriteError{Kind: "WriteField", Field: "header", Cause: err}
	}
	if err := wr.sink.Write(ctx, payload); err != nil {
		return &WriteError{Kind: "WriteChunk", Name: "payload", Cause: err}
	}
	return nil
}
