package dicom

import (
	"math"
	"strings"

	"github.com/dcmgo/dicom/dicomio"
)

func float32Bits(f float32) uint32 { return math.Float32bits(f) }
func float64Bits(f float64) uint64 { return math.Float64bits(f) }

// WriteOptions configures data-set encoding.
type WriteOptions struct {
	ByteOrder dicomio.ByteOrder
	VRKind    dicomio.VRKind
}

// WriteDataSet encodes every element of obj in ascending tag order into enc.
func WriteDataSet(enc *dicomio.Encoder, obj *InMemoryObject, opts WriteOptions) {
	for _, e := range obj.Iter() {
		writeElement(enc, e, opts)
	}
}

func writeElement(enc *dicomio.Encoder, e DataElement, opts WriteOptions) {
	enc.WriteUInt16(e.Header.Tag.Group)
	enc.WriteUInt16(e.Header.Tag.Element)

	switch {
	case e.Value.IsSequence():
		writeHeaderLength(enc, e.Header.VR, UNDEFINED, opts)
		items, _ := e.Value.Items()
		for _, item := range items {
			writeItem(enc, item, opts, UNDEFINED)
		}
		enc.WriteUInt16(TagSequenceDelimitationItem.Group)
		enc.WriteUInt16(TagSequenceDelimitationItem.Element)
		enc.WriteUInt32(0)
		return

	case e.Value.IsPixelSequence():
		writeHeaderLength(enc, e.Header.VR, UNDEFINED, opts)
		frags, _ := e.Value.PixelFragments()
		writeOffsetTableItem(enc, frags.OffsetTable)
		for _, f := range frags.Fragments {
			writeRawItem(enc, f)
		}
		enc.WriteUInt16(TagSequenceDelimitationItem.Group)
		enc.WriteUInt16(TagSequenceDelimitationItem.Element)
		enc.WriteUInt32(0)
		return

	default:
		prim, _ := e.Value.Primitive()
		raw, err := encodePrimitive(e.Header.VR, prim, enc.ByteOrder())
		if err != nil {
			enc.SetError(err)
			return
		}
		writeHeaderLength(enc, e.Header.VR, Length(uint32(len(raw))), opts)
		enc.WriteBytes(raw)
	}
}

func writeHeaderLength(enc *dicomio.Encoder, vr VR, length Length, opts WriteOptions) {
	if opts.VRKind != dicomio.ExplicitVR {
		enc.WriteUInt32(uint32(length))
		return
	}
	enc.WriteString(vr.String())
	if vr.UsesLongValueLength() {
		enc.WriteUInt16(0)
		enc.WriteUInt32(uint32(length))
	} else {
		enc.WriteUInt16(uint16(length))
	}
}

func writeItem(enc *dicomio.Encoder, item *InMemoryObject, opts WriteOptions, length Length) {
	sub := enc.SubEncoder()
	WriteDataSet(sub, item, opts)
	enc.WriteUInt16(TagItem.Group)
	enc.WriteUInt16(TagItem.Element)
	enc.WriteUInt32(uint32(len(sub.Bytes())))
	enc.Absorb(sub)
}

func writeOffsetTableItem(enc *dicomio.Encoder, table []uint32) {
	enc.WriteUInt16(TagItem.Group)
	enc.WriteUInt16(TagItem.Element)
	enc.WriteUInt32(uint32(len(table)) * 4)
	for _, v := range table {
		enc.WriteUInt32(v)
	}
}

func writeRawItem(enc *dicomio.Encoder, data []byte) {
	enc.WriteUInt16(TagItem.Group)
	enc.WriteUInt16(TagItem.Element)
	enc.WriteUInt32(uint32(len(data)))
	enc.WriteBytes(data)
}

func encodePrimitive(vr VR, v PrimitiveValue, order dicomio.ByteOrder) ([]byte, error) {
	switch KindOf(vr) {
	case KindBytes:
		b, _ := v.Bytes()
		return padBinary(b), nil
	case KindU16:
		u, _ := v.UInt16Slice()
		return encodeU16s(u, order), nil
	case KindI16:
		i, _ := v.Int16Slice()
		u := make([]uint16, len(i))
		for k, x := range i {
			u[k] = uint16(x)
		}
		return encodeU16s(u, order), nil
	case KindU32:
		u, _ := v.UInt32Slice()
		return encodeU32s(u, order), nil
	case KindI32:
		i, _ := v.Int32Slice()
		u := make([]uint32, len(i))
		for k, x := range i {
			u[k] = uint32(x)
		}
		return encodeU32s(u, order), nil
	case KindI64:
		i, _ := v.Int64Slice()
		u := make([]uint64, len(i))
		for k, x := range i {
			u[k] = uint64(x)
		}
		return encodeU64s(u, order), nil
	case KindU64:
		u, _ := v.UInt64Slice()
		return encodeU64s(u, order), nil
	case KindF32:
		f, _ := v.Float32Slice()
		u := make([]uint32, len(f))
		for k, x := range f {
			u[k] = float32Bits(x)
		}
		return encodeU32s(u, order), nil
	case KindF64:
		f, _ := v.Float64Slice()
		out := make([]byte, len(f)*8)
		for k, x := range f {
			order.PutUint64(out[k*8:], float64Bits(x))
		}
		return out, nil
	case KindTag:
		tags, _ := v.TagSlice()
		u := make([]uint16, 0, len(tags)*2)
		for _, t := range tags {
			u = append(u, t.Group, t.Element)
		}
		return encodeU16s(u, order), nil
	case KindDate, KindTime, KindDateTime:
		return padText(strings.Join(v.ToMultiStr(), `\`), TextPadByte), nil
	default:
		text := strings.Join(v.ToMultiStr(), `\`)
		pad := vr.PadByte()
		return padText(text, pad), nil
	}
}

func padBinary(b []byte) []byte {
	if len(b)%2 != 0 {
		return append(append([]byte(nil), b...), BinaryPadByte)
	}
	return b
}

func padText(s string, pad byte) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, pad)
	}
	return b
}

func encodeU16s(u []uint16, order dicomio.ByteOrder) []byte {
	out := make([]byte, len(u)*2)
	for i, x := range u {
		order.PutUint16(out[i*2:], x)
	}
	return out
}

func encodeU32s(u []uint32, order dicomio.ByteOrder) []byte {
	out := make([]byte, len(u)*4)
	for i, x := range u {
		order.PutUint32(out[i*4:], x)
	}
	return out
}

func encodeU64s(u []uint64, order dicomio.ByteOrder) []byte {
	out := make([]byte, len(u)*8)
	for i, x := range u {
		order.PutUint64(out[i*8:], x)
	}
	return out
}
