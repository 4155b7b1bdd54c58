package dicom

// FileMetaTable is the fixed group 0x0002 record that precedes a data set
// in a DICOM file (spec.md §3 "File Object", §4.3).
type FileMetaTable struct {
	InformationVersion [2]byte // fixed 0x00, 0x01

	MediaStorageSOPClassUID    string
	MediaStorageSOPInstanceUID string
	TransferSyntaxUID          string
	ImplementationClassUID     string

	ImplementationVersionName    string
	SourceApplicationEntityTitle string
	PrivateInformationCreatorUID string
	PrivateInformation           []byte
}

// NewFileMetaTable returns a table with the fixed information version and
// the four required fields set from the arguments.
func NewFileMetaTable(sopClassUID, sopInstanceUID, transferSyntaxUID, implementationClassUID string) *FileMetaTable {
	return &FileMetaTable{
		InformationVersion:         [2]byte{0x00, 0x01},
		MediaStorageSOPClassUID:    sopClassUID,
		MediaStorageSOPInstanceUID: sopInstanceUID,
		TransferSyntaxUID:          transferSyntaxUID,
		ImplementationClassUID:     implementationClassUID,
	}
}

// Validate checks that every required field is present.
func (m *FileMetaTable) Validate() error {
	switch {
	case m.MediaStorageSOPClassUID == "":
		return &ReadError{Kind: "MissingMediaStorageSOPClassUID"}
	case m.MediaStorageSOPInstanceUID == "":
		return &ReadError{Kind: "MissingMediaStorageSOPInstanceUID"}
	case m.TransferSyntaxUID == "":
		return &ReadError{Kind: "MissingTransferSyntaxUID"}
	case m.ImplementationClassUID == "":
		return &ReadError{Kind: "MissingImplementationClassUID"}
	}
	return nil
}

// AutoInferFrom fills MediaStorageSOPClassUID/InstanceUID from the data
// set's SOP Class/Instance UID elements when the meta group left them
// empty (spec.md §4.3 "Auto-infer missing meta fields from the data set").
func (m *FileMetaTable) AutoInferFrom(ds *InMemoryObject) {
	if m.MediaStorageSOPClassUID == "" {
		if e, ok := ds.ElementOpt(TagSOPClassUID); ok {
			if s, err := e.Value.primitive.ToStr(); err == nil {
				m.MediaStorageSOPClassUID = s
			}
		}
	}
	if m.MediaStorageSOPInstanceUID == "" {
		if e, ok := ds.ElementOpt(TagSOPInstanceUID); ok {
			if s, err := e.Value.primitive.ToStr(); err == nil {
				m.MediaStorageSOPInstanceUID = s
			}
		}
	}
}

// ToElements renders the table as data elements in the standard's fixed
// serialization order, ready to be encoded Explicit VR Little Endian.
func (m *FileMetaTable) ToElements() []DataElement {
	elems := []DataElement{
		NewDataElement(TagFileMetaInformationVersion, OB, NewBytes(m.InformationVersion[:])),
		NewDataElement(TagMediaStorageSOPClassUID, UI, NewStr(m.MediaStorageSOPClassUID)),
		NewDataElement(TagMediaStorageSOPInstanceUID, UI, NewStr(m.MediaStorageSOPInstanceUID)),
		NewDataElement(TagTransferSyntaxUID, UI, NewStr(m.TransferSyntaxUID)),
		NewDataElement(TagImplementationClassUID, UI, NewStr(m.ImplementationClassUID)),
	}
	if m.ImplementationVersionName != "" {
		elems = append(elems, NewDataElement(TagImplementationVersionName, SH, NewStr(m.ImplementationVersionName)))
	}
	if m.SourceApplicationEntityTitle != "" {
		elems = append(elems, NewDataElement(TagSourceApplicationEntityTitle, AE, NewStr(m.SourceApplicationEntityTitle)))
	}
	if m.PrivateInformationCreatorUID != "" {
		elems = append(elems, NewDataElement(TagPrivateInformationCreatorUID, UI, NewStr(m.PrivateInformationCreatorUID)))
	}
	if len(m.PrivateInformation) > 0 {
		elems = append(elems, NewDataElement(TagPrivateInformation, OB, NewBytes(m.PrivateInformation)))
	}

	var groupLen uint64
	for _, e := range elems {
		groupLen += elementWireSize(e)
	}
	out := make([]DataElement, 0, len(elems)+1)
	out = append(out, NewDataElement(TagFileMetaInformationGroupLength, UL, NewU32s(uint32(groupLen))))
	out = append(out, elems...)
	return out
}

// FileMetaTableFromElements builds a table from parsed group-0x0002
// elements, ignoring the group length element itself (it is recomputed,
// never trusted).
func FileMetaTableFromElements(elems []DataElement) (*FileMetaTable, error) {
	m := &FileMetaTable{InformationVersion: [2]byte{0x00, 0x01}}
	for _, e := range elems {
		switch e.Header.Tag {
		case TagFileMetaInformationGroupLength:
			// recomputed on write; not retained
		case TagFileMetaInformationVersion:
			if b, err := e.Value.primitive.Bytes(); err == nil && len(b) >= 2 {
				m.InformationVersion = [2]byte{b[0], b[1]}
			}
		case TagMediaStorageSOPClassUID:
			m.MediaStorageSOPClassUID, _ = e.Value.primitive.ToStr()
		case TagMediaStorageSOPInstanceUID:
			m.MediaStorageSOPInstanceUID, _ = e.Value.primitive.ToStr()
		case TagTransferSyntaxUID:
			m.TransferSyntaxUID, _ = e.Value.primitive.ToStr()
		case TagImplementationClassUID:
			m.ImplementationClassUID, _ = e.Value.primitive.ToStr()
		case TagImplementationVersionName:
			m.ImplementationVersionName, _ = e.Value.primitive.ToStr()
		case TagSourceApplicationEntityTitle:
			m.SourceApplicationEntityTitle, _ = e.Value.primitive.ToStr()
		case TagPrivateInformationCreatorUID:
			m.PrivateInformationCreatorUID, _ = e.Value.primitive.ToStr()
		case TagPrivateInformation:
			m.PrivateInformation, _ = e.Value.primitive.Bytes()
		}
	}
	return m, nil
}

// DetectPreamble classifies the first 132 bytes of a file per spec.md
// §4.3: "present" skips the 128-byte preamble and confirms the DICM magic;
// "absent" means meta starts at byte 0 (but still begins with DICM);
// "auto" means neither signal was found and the meta parser should try its
// best (e.g. a bare data set with no meta group at all).
type PreambleKind int

const (
	PreambleAuto PreambleKind = iota
	PreamblePresent
	PreambleAbsent
)

// DetectPreamble inspects up to the first 132 bytes already read into buf.
func DetectPreamble(buf []byte) PreambleKind {
	if len(buf) >= 132 && string(buf[128:132]) == "DICM" {
		return PreamblePresent
	}
	if len(buf) >= 4 && string(buf[0:4]) == "DICM" {
		return PreambleAbsent
	}
	return PreambleAuto
}
