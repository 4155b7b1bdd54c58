package pdu

import (
	"io"

	"github.com/dcmgo/dicom/dicomio"
	"github.com/dcmgo/dicom/dicomlog"
)

// Writer is a sequential byte writer for Upper Layer PDUs (spec.md §4.5):
// for each PDU, it buffers the payload bottom-up so the outer length can be
// prefixed, then emits type, reserved byte, length, and payload in order.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WritePDU encodes and emits p.
func (wr *Writer) WritePDU(p *PDU) error {
	header, payload, err := encodePDUFrame(p)
	if err != nil {
		return err
	}
	if _, err := wr.w.Write(header); err != nil {
		return &WriteError{Kind: "WriteField", Field: "header", Cause: err}
	}
	if _, err := wr.w.Write(payload); err != nil {
		return &WriteError{Kind: "WriteChunk", Name: "payload", Cause: err}
	}
	return nil
}

// encodePDUFrame builds p's header and payload bottom-up, shared by the
// blocking Writer and the cooperative AsyncWriter so both emit identical
// wire bytes.
func encodePDUFrame(p *PDU) (header []byte, payload []byte, err error) {
	enc := dicomio.NewEncoder(dicomio.BigEndian)
	switch p.Type {
	case TypeAssociateRQ:
		encodeAssociateRQ(enc, &p.AssociateRQ)
	case TypeAssociateAC:
		encodeAssociateAC(enc, &p.AssociateAC)
	case TypeAssociateRJ:
		encodeAssociateRJ(enc, &p.AssociateRJ)
	case TypePDataTF:
		encodePDataTF(enc, &p.PDataTF)
	case TypeReleaseRQ:
		enc.WriteZeros(4)
	case TypeReleaseRP:
		enc.WriteZeros(4)
	case TypeAbort:
		encodeAbort(enc, &p.Abort)
	default:
		enc.WriteBytes(p.Unknown.Data)
	}
	if err := enc.Error(); err != nil {
		return nil, nil, &WriteError{Kind: "WriteChunk", Name: "payload", Cause: err}
	}

	hdrEnc := dicomio.NewEncoder(dicomio.BigEndian)
	hdrEnc.WriteByte(byte(p.Type))
	hdrEnc.WriteByte(0)
	hdrEnc.WriteUInt32(uint32(len(enc.Bytes())))
	if err := hdrEnc.Error(); err != nil {
		return nil, nil, &WriteError{Kind: "WriteField", Field: "header", Cause: err}
	}
	dicomlog.Vtracef(2, "pdu: write type=0x%02x, %d bytes", byte(p.Type), len(enc.Bytes()))
	return hdrEnc.Bytes(), enc.Bytes(), nil
}

func encodeAssociateRQ(enc *dicomio.Encoder, rq *AssociateRQ) {
	enc.WriteUInt16(rq.ProtocolVersion)
	enc.WriteZeros(2)
	writeAETitle(enc, rq.CalledAETitle)
	writeAETitle(enc, rq.CallingAETitle)
	enc.WriteZeros(32)
	writeItem16(enc, ItemApplicationContext, []byte(rq.ApplicationContext))
	for _, pc := range rq.PresentationContexts {
		writePresentationContextRQ(enc, pc)
	}
	writeUserInformation(enc, rq.UserInformation)
}

func encodeAssociateAC(enc *dicomio.Encoder, ac *AssociateAC) {
	enc.WriteUInt16(ac.ProtocolVersion)
	enc.WriteZeros(2)
	writeAETitle(enc, ac.CalledAETitle)
	writeAETitle(enc, ac.CallingAETitle)
	enc.WriteZeros(32)
	writeItem16(enc, ItemApplicationContext, []byte(ac.ApplicationContext))
	for _, pc := range ac.PresentationContexts {
		writePresentationContextAC(enc, pc)
	}
	writeUserInformation(enc, ac.UserInformation)
}

func encodeAssociateRJ(enc *dicomio.Encoder, rj *AssociateRJ) {
	enc.WriteByte(0)
	enc.WriteByte(byte(rj.Result))
	enc.WriteByte(rj.Source)
	enc.WriteByte(rj.Reason)
}

func encodePDataTF(enc *dicomio.Encoder, p *PDataTF) {
	for _, pdv := range p.Values {
		sub := enc.SubEncoder()
		sub.WriteByte(pdv.ContextID)
		var ctrl byte
		if pdv.IsCommand {
			ctrl |= 0x01
		}
		if pdv.IsLastFragment {
			ctrl |= 0x02
		}
		sub.WriteByte(ctrl)
		sub.WriteBytes(pdv.Fragment)
		enc.WriteUInt32(uint32(len(sub.Bytes())))
		enc.Absorb(sub)
	}
}

func encodeAbort(enc *dicomio.Encoder, a *Abort) {
	enc.WriteZeros(2)
	enc.WriteByte(a.Source)
	enc.WriteByte(a.Reason)
}
