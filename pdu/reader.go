package pdu

import (
	"io"

	"github.com/dcmgo/dicom/dicomio"
	"github.com/dcmgo/dicom/dicomlog"
)

// Reader is the mirror of Writer: it reads type+reserved, then the length
// prefix, then constructs the PDU from the buffered payload (spec.md
// §4.6).
type Reader struct {
	r io.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadPDU reads and decodes the next PDU, or io.EOF at a clean stream end.
func (rd *Reader) ReadPDU() (*PDU, error) {
	header := dicomio.NewDecoder(rd.r, dicomio.BigEndian)
	pduType := PDUType(header.ReadByte())
	if header.Error() == io.EOF {
		return nil, io.EOF
	}
	header.ReadByte() // reserved
	length := header.ReadUInt32()
	if header.Error() != nil {
		return nil, &ReadError{Kind: "ReadHeader", Cause: header.Error()}
	}
	payload := header.ReadBytes(int(length))
	if header.Error() != nil {
		return nil, &ReadError{Kind: "ReadPayload", Cause: header.Error()}
	}
	dicomlog.Vtracef(2, "pdu: read type=0x%02x, %d bytes", byte(pduType), length)

	dec := dicomio.NewDecoder(newByteReader(payload), dicomio.BigEndian)
	p := &PDU{Type: pduType}
	var err error
	switch pduType {
	case TypeAssociateRQ:
		p.AssociateRQ, err = decodeAssociateRQ(dec)
	case TypeAssociateAC:
		p.AssociateAC, err = decodeAssociateAC(dec)
	case TypeAssociateRJ:
		p.AssociateRJ, err = decodeAssociateRJ(dec)
	case TypePDataTF:
		p.PDataTF, err = decodePDataTF(dec, len(payload))
	case TypeReleaseRQ:
		dec.ReadBytes(4)
	case TypeReleaseRP:
		dec.ReadBytes(4)
	case TypeAbort:
		p.Abort, err = decodeAbort(dec)
	default:
		p.Type = pduType
		p.Unknown = Unknown{PDUType: pduType, Data: payload}
		return p, nil
	}
	if err != nil {
		return nil, &ReadError{Kind: "DecodePayload", Cause: err}
	}
	if dec.Error() != nil && !isEOFLike(dec.Error()) {
		return nil, &ReadError{Kind: "DecodePayload", Cause: dec.Error()}
	}
	return p, nil
}

func decodeAssociateRQ(dec *dicomio.Decoder) (AssociateRQ, error) {
	var rq AssociateRQ
	rq.ProtocolVersion = dec.ReadUInt16()
	dec.ReadBytes(2)
	rq.CalledAETitle = readAETitle(dec)
	rq.CallingAETitle = readAETitle(dec)
	dec.ReadBytes(32)
	it := readItem16(dec)
	if it.Type == ItemApplicationContext {
		rq.ApplicationContext = string(it.Content)
	}
	for dec.Error() == nil {
		next := readItem16(dec)
		if dec.Error() != nil {
			break
		}
		switch next.Type {
		case ItemPresentationContextRQ:
			pc, err := readPresentationContextRQ(next.Content, dec.ByteOrder())
			if err != nil {
				return rq, err
			}
			rq.PresentationContexts = append(rq.PresentationContexts, pc)
		case ItemUserInformation:
			ui, err := readUserInformation(next.Content, dec.ByteOrder())
			if err != nil {
				return rq, err
			}
			rq.UserInformation = ui
		}
	}
	return rq, nil
}

func decodeAssociateAC(dec *dicomio.Decoder) (AssociateAC, error) {
	var ac AssociateAC
	ac.ProtocolVersion = dec.ReadUInt16()
	dec.ReadBytes(2)
	ac.CalledAETitle = readAETitle(dec)
	ac.CallingAETitle = readAETitle(dec)
	dec.ReadBytes(32)
	it := readItem16(dec)
	if it.Type == ItemApplicationContext {
		ac.ApplicationContext = string(it.Content)
	}
	for dec.Error() == nil {
		next := readItem16(dec)
		if dec.Error() != nil {
			break
		}
		switch next.Type {
		case ItemPresentationContextAC:
			pc, err := readPresentationContextAC(next.Content, dec.ByteOrder())
			if err != nil {
				return ac, err
			}
			ac.PresentationContexts = append(ac.PresentationContexts, pc)
		case ItemUserInformation:
			ui, err := readUserInformation(next.Content, dec.ByteOrder())
			if err != nil {
				return ac, err
			}
			ac.UserInformation = ui
		}
	}
	return ac, nil
}

func decodeAssociateRJ(dec *dicomio.Decoder) (AssociateRJ, error) {
	var rj AssociateRJ
	dec.ReadByte()
	rj.Result = RJResult(dec.ReadByte())
	rj.Source = dec.ReadByte()
	rj.Reason = dec.ReadByte()
	return rj, nil
}

func decodePDataTF(dec *dicomio.Decoder, payloadLen int) (PDataTF, error) {
	var p PDataTF
	read := 0
	for read < payloadLen {
		length := dec.ReadUInt32()
		if dec.Error() != nil {
			break
		}
		contextID := dec.ReadByte()
		ctrl := dec.ReadByte()
		fragment := dec.ReadBytes(int(length) - 2)
		if dec.Error() != nil {
			return p, dec.Error()
		}
		p.Values = append(p.Values, PresentationDataValue{
			ContextID:      contextID,
			IsCommand:      ctrl&0x01 != 0,
			IsLastFragment: ctrl&0x02 != 0,
			Fragment:       fragment,
		})
		read += 4 + int(length)
	}
	return p, nil
}

func decodeAbort(dec *dicomio.Decoder) (Abort, error) {
	var a Abort
	dec.ReadBytes(2)
	a.Source = dec.ReadByte()
	a.Reason = dec.ReadByte()
	return a, nil
}
