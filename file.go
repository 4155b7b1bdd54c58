package dicom

import (
	"bytes"
	"io"

	"github.com/dcmgo/dicom/dicomio"
	"github.com/dcmgo/dicom/dicomlog"
	"github.com/dcmgo/dicom/transfersyntax"
)

// FileObject pairs a data set with its file meta table (spec.md §3 "File
// Object").
type FileObject struct {
	Meta    *FileMetaTable
	Dataset *InMemoryObject
}

// ReadFileOptions configures FileObject reading.
type ReadFileOptions struct {
	Dict     Dictionary
	Registry transfersyntax.Registry
}

// ReadFile decodes a complete DICOM file: optional preamble, file meta
// group (always Explicit VR Little Endian), then the main data set encoded
// per the transfer syntax named in the meta group.
func ReadFile(r io.Reader, opts ReadFileOptions) (*FileObject, error) {
	if opts.Registry == nil {
		opts.Registry = transfersyntax.Default()
	}
	peek, _, err := dicomio.PeekBytes(r, 132)
	if err != nil && err != io.EOF {
		return nil, &ReadError{Kind: "Preamble", Cause: err}
	}

	switch DetectPreamble(peek) {
	case PreamblePresent:
		dicomlog.Vprintf(2, "dicom: preamble present, skipping 128 bytes and DICM magic")
		r = io.MultiReader(bytes.NewReader(peek[132:]), r)
	case PreambleAbsent:
		dicomlog.Vprintf(2, "dicom: no preamble, skipping DICM magic at byte 0")
		r = io.MultiReader(bytes.NewReader(peek[4:]), r)
	default:
		dicomlog.Vprintf(1, "dicom: preamble indeterminate, attempting bare meta parse")
		r = io.MultiReader(bytes.NewReader(peek), r)
	}

	// The meta group is bounded by its leading (0002,0000) group-length
	// element: 4-byte tag, "UL", 2-byte length, then the 4-byte value.
	var metaHead [12]byte
	if _, err := io.ReadFull(r, metaHead[:]); err != nil {
		return nil, &ReadError{Kind: "FileMeta", Cause: err}
	}
	metaRest := make([]byte, dicomio.LittleEndian.Uint32(metaHead[8:]))
	if _, err := io.ReadFull(r, metaRest); err != nil {
		return nil, &ReadError{Kind: "FileMeta", Cause: err}
	}
	metaDS, err := ReadDataSet(io.MultiReader(bytes.NewReader(metaHead[:]), bytes.NewReader(metaRest)), ReadOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Dict: StandardDictionary})
	if err != nil {
		return nil, &ReadError{Kind: "FileMeta", Cause: err}
	}
	meta, err := FileMetaTableFromElements(metaDS.Iter())
	if err != nil {
		return nil, err
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	props, ok := opts.Registry.Lookup(meta.TransferSyntaxUID)
	if !ok {
		return nil, &ReadError{Kind: "UnsupportedTransferSyntax", UID: meta.TransferSyntaxUID}
	}

	body := r
	if props.Codec != nil {
		decompressed, err := props.Codec.Decompress(r)
		if err != nil {
			return nil, &ReadError{Kind: "Decompress", Cause: err}
		}
		body = bytes.NewReader(decompressed)
	}

	ds, err := ReadDataSet(body, ReadOptions{ByteOrder: props.ByteOrder, VRKind: props.VRKind, Dict: opts.Dict})
	if err != nil {
		return nil, &ReadError{Kind: "Dataset", Cause: err}
	}
	meta.AutoInferFrom(ds)

	return &FileObject{Meta: meta, Dataset: ds}, nil
}

// WriteFile encodes fo as a complete DICOM file: the 128-byte preamble,
// "DICM" magic, the file meta group (always Explicit VR Little Endian),
// then the data set per the meta group's transfer syntax.
func WriteFile(w io.Writer, fo *FileObject, registry transfersyntax.Registry) error {
	if registry == nil {
		registry = transfersyntax.Default()
	}
	props, ok := registry.Lookup(fo.Meta.TransferSyntaxUID)
	if !ok {
		return &WriteError{Kind: "UnsupportedTransferSyntax"}
	}

	var preamble [128]byte
	if _, err := w.Write(preamble[:]); err != nil {
		return &WriteError{Kind: "WritePreamble", Cause: err}
	}
	if _, err := io.WriteString(w, "DICM"); err != nil {
		return &WriteError{Kind: "WriteMagic", Cause: err}
	}

	metaEnc := dicomio.NewEncoder(dicomio.LittleEndian)
	metaObj := FromElementIter(StandardDictionary, fo.Meta.ToElements())
	WriteDataSet(metaEnc, metaObj, WriteOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR})
	if err := metaEnc.Error(); err != nil {
		return &WriteError{Kind: "EncodeMeta", Cause: err}
	}
	if _, err := w.Write(metaEnc.Bytes()); err != nil {
		return &WriteError{Kind: "WriteMeta", Cause: err}
	}

	bodyEnc := dicomio.NewEncoder(props.ByteOrder)
	WriteDataSet(bodyEnc, fo.Dataset, WriteOptions{ByteOrder: props.ByteOrder, VRKind: props.VRKind})
	if err := bodyEnc.Error(); err != nil {
		return &WriteError{Kind: "EncodeDataset", Cause: err}
	}

	if props.Codec != nil {
		if err := props.Codec.Compress(w, bodyEnc.Bytes()); err != nil {
			return &WriteError{Kind: "Compress", Cause: err}
		}
		return nil
	}
	if _, err := w.Write(bodyEnc.Bytes()); err != nil {
		return &WriteError{Kind: "WriteDataset", Cause: err}
	}
	return nil
}
