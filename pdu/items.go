package pdu

import (
	"github.com/dcmgo/dicom/dicomio"
)

// aeTitleLen is the fixed width of an AE title field on the wire.
const aeTitleLen = 16

func writeAETitle(enc *dicomio.Encoder, title string) {
	enc.WritePaddedString(title, aeTitleLen, 0x20)
}

func readAETitle(dec *dicomio.Decoder) string {
	return trimRight(dec.ReadString(aeTitleLen), ' ')
}

func trimRight(s string, pad byte) string {
	i := len(s)
	for i > 0 && s[i-1] == pad {
		i--
	}
	return s[:i]
}

// writeItem16 frames a sub-item with a 2-byte reserved field and 2-byte
// length, the common case for most sub-items (spec.md §4.4).
func writeItem16(enc *dicomio.Encoder, itemType ItemType, content []byte) {
	enc.WriteByte(byte(itemType))
	enc.WriteByte(0)
	enc.WriteUInt16(uint16(len(content)))
	enc.WriteBytes(content)
}

type item16 struct {
	Type    ItemType
	Content []byte
}

func readItem16(dec *dicomio.Decoder) item16 {
	t := ItemType(dec.ReadByte())
	dec.ReadByte() // reserved
	length := dec.ReadUInt16()
	content := dec.ReadBytes(int(length))
	return item16{Type: t, Content: content}
}

func writeAbstractSyntax(enc *dicomio.Encoder, a AbstractSyntaxItem) {
	writeItem16(enc, ItemAbstractSyntax, []byte(a.UID))
}

func writeTransferSyntax(enc *dicomio.Encoder, t TransferSyntaxItem) {
	writeItem16(enc, ItemTransferSyntax, []byte(t.UID))
}

func writePresentationContextRQ(enc *dicomio.Encoder, pc PresentationContextRQ) {
	sub := enc.SubEncoder()
	sub.WriteByte(pc.ID)
	sub.WriteZeros(3)
	writeAbstractSyntax(sub, pc.AbstractSyntax)
	for _, ts := range pc.TransferSyntaxes {
		writeTransferSyntax(sub, ts)
	}
	enc.WriteByte(byte(ItemPresentationContextRQ))
	enc.WriteByte(0)
	enc.WriteUInt16(uint16(len(sub.Bytes())))
	enc.Absorb(sub)
}

func readPresentationContextRQ(content []byte, order dicomio.ByteOrder) (PresentationContextRQ, error) {
	dec := dicomio.NewDecoder(newByteReader(content), order)
	pc := PresentationContextRQ{ID: dec.ReadByte()}
	dec.ReadBytes(3) // reserved
	for dec.Error() == nil {
		it := readItem16(dec)
		if dec.Error() != nil {
			break
		}
		switch it.Type {
		case ItemAbstractSyntax:
			pc.AbstractSyntax = AbstractSyntaxItem{UID: string(it.Content)}
		case ItemTransferSyntax:
			pc.TransferSyntaxes = append(pc.TransferSyntaxes, TransferSyntaxItem{UID: string(it.Content)})
		}
	}
	if dec.Error() != nil && !isEOFLike(dec.Error()) {
		return pc, dec.Error()
	}
	return pc, nil
}

func writePresentationContextAC(enc *dicomio.Encoder, pc PresentationContextAC) {
	sub := enc.SubEncoder()
	sub.WriteByte(pc.ID)
	sub.WriteByte(0)
	sub.WriteByte(byte(pc.Result))
	sub.WriteByte(0)
	writeTransferSyntax(sub, pc.TransferSyntax)
	enc.WriteByte(byte(ItemPresentationContextAC))
	enc.WriteByte(0)
	enc.WriteUInt16(uint16(len(sub.Bytes())))
	enc.Absorb(sub)
}

func readPresentationContextAC(content []byte, order dicomio.ByteOrder) (PresentationContextAC, error) {
	dec := dicomio.NewDecoder(newByteReader(content), order)
	pc := PresentationContextAC{ID: dec.ReadByte()}
	dec.ReadByte()
	pc.Result = PresentationContextResult(dec.ReadByte())
	dec.ReadByte()
	it := readItem16(dec)
	if it.Type == ItemTransferSyntax {
		pc.TransferSyntax = TransferSyntaxItem{UID: string(it.Content)}
	}
	if dec.Error() != nil && !isEOFLike(dec.Error()) {
		return pc, dec.Error()
	}
	return pc, nil
}

func writeUserInformation(enc *dicomio.Encoder, u UserInformation) {
	if u.IsEmpty() {
		return
	}
	sub := enc.SubEncoder()
	if u.MaxLengthReceived != nil {
		var lenBuf [4]byte
		order := sub.ByteOrder()
		order.PutUint32(lenBuf[:], *u.MaxLengthReceived)
		writeItem16(sub, ItemMaxLengthReceived, lenBuf[:])
	}
	if u.ImplementationClassUID != "" {
		writeItem16(sub, ItemImplementationClassUID, []byte(u.ImplementationClassUID))
	}
	if u.ImplementationVersion != "" {
		writeItem16(sub, ItemImplementationVersion, []byte(u.ImplementationVersion))
	}
	if u.UserIdentity != nil {
		id := u.UserIdentity
		responseRequested := byte(0)
		if id.ResponseRequested {
			responseRequested = 1
		}
		body := []byte{id.Type, responseRequested}
		body = appendU16Prefixed(body, sub.ByteOrder(), id.PrimaryField)
		body = appendU16Prefixed(body, sub.ByteOrder(), id.SecondaryField)
		writeItem16(sub, ItemUserIdentity, body)
	}
	for _, unk := range u.Unknown {
		writeItem16(sub, unk.Type, unk.Data)
	}
	enc.WriteByte(byte(ItemUserInformation))
	enc.WriteByte(0)
	enc.WriteUInt16(uint16(len(sub.Bytes())))
	enc.Absorb(sub)
}

func appendU16Prefixed(buf []byte, order dicomio.ByteOrder, field []byte) []byte {
	var lenBuf [2]byte
	order.PutUint16(lenBuf[:], uint16(len(field)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, field...)
	return buf
}

func readUserInformation(content []byte, order dicomio.ByteOrder) (UserInformation, error) {
	var u UserInformation
	dec := dicomio.NewDecoder(newByteReader(content), order)
	for dec.Error() == nil {
		it := readItem16(dec)
		if dec.Error() != nil {
			break
		}
		switch it.Type {
		case ItemMaxLengthReceived:
			if len(it.Content) >= 4 {
				v := order.Uint32(it.Content)
				u.MaxLengthReceived = &v
			}
		case ItemImplementationClassUID:
			u.ImplementationClassUID = string(it.Content)
		case ItemImplementationVersion:
			u.ImplementationVersion = string(it.Content)
		case ItemUserIdentity:
			u.UserIdentity = parseUserIdentity(it.Content, order)
		default:
			u.Unknown = append(u.Unknown, UnknownUserItem{Type: it.Type, Data: it.Content})
		}
	}
	if dec.Error() != nil && !isEOFLike(dec.Error()) {
		return u, dec.Error()
	}
	return u, nil
}

func parseUserIdentity(b []byte, order dicomio.ByteOrder) *UserIdentityItem {
	if len(b) < 2 {
		return nil
	}
	id := &UserIdentityItem{Type: b[0], ResponseRequested: b[1] != 0}
	pos := 2
	if pos+2 > len(b) {
		return id
	}
	primLen := int(order.Uint16(b[pos:]))
	pos += 2
	if pos+primLen > len(b) {
		return id
	}
	id.PrimaryField = b[pos : pos+primLen]
	pos += primLen
	if pos+2 > len(b) {
		return id
	}
	secLen := int(order.Uint16(b[pos:]))
	pos += 2
	if pos+secLen > len(b) {
		return id
	}
	id.SecondaryField = b[pos : pos+secLen]
	return id
}
