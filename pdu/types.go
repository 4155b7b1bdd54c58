// Package pdu implements the DICOM Upper Layer wire protocol (spec.md §4.4-
// §4.6): the seven PDU kinds exchanged to negotiate and carry an
// association, and their sub-items.
package pdu

// PDUType identifies one of the seven Upper Layer PDU kinds, or Unknown
// for anything else (round-tripped opaquely).
type PDUType uint8

const (
	TypeAssociateRQ PDUType = 0x01
	TypeAssociateAC PDUType = 0x02
	TypeAssociateRJ PDUType = 0x03
	TypePDataTF     PDUType = 0x04
	TypeReleaseRQ   PDUType = 0x05
	TypeReleaseRP   PDUType = 0x06
	TypeAbort       PDUType = 0x07
)

// ItemType identifies a sub-item kind within a PDU payload.
type ItemType uint8

const (
	ItemApplicationContext      ItemType = 0x10
	ItemPresentationContextRQ   ItemType = 0x20
	ItemPresentationContextAC   ItemType = 0x21
	ItemAbstractSyntax          ItemType = 0x30
	ItemTransferSyntax          ItemType = 0x40
	ItemUserInformation         ItemType = 0x50
	ItemMaxLengthReceived       ItemType = 0x51
	ItemImplementationClassUID  ItemType = 0x52
	ItemImplementationVersion   ItemType = 0x55
	ItemSOPClassExtendedNeg     ItemType = 0x56
	ItemUserIdentity            ItemType = 0x58
)

// PresentationContextResult is the accept/reject code in an A-ASSOCIATE-AC
// presentation context result item.
type PresentationContextResult uint8

const (
	ResultAccept                      PresentationContextResult = 0
	ResultUserRejection                PresentationContextResult = 1
	ResultNoReason                     PresentationContextResult = 2
	ResultAbstractSyntaxUnsupported    PresentationContextResult = 3
	ResultTransferSyntaxesUnsupported PresentationContextResult = 4
)

// RJResult is the A-ASSOCIATE-RJ result code.
type RJResult uint8

const (
	RJResultPermanent RJResult = 1
	RJResultTransient RJResult = 2
)

// ApplicationContextUID is the single well-known DICOM application context
// name used on every association.
const ApplicationContextUID = "1.2.840.10008.3.1.1.1"

// AbstractSyntaxItem names one SOP class being proposed.
type AbstractSyntaxItem struct {
	UID string
}

// TransferSyntaxItem names one transfer syntax UID proposed or accepted.
type TransferSyntaxItem struct {
	UID string
}

// PresentationContextRQ is a proposed presentation context (spec.md §4.4).
type PresentationContextRQ struct {
	ID              uint8 // odd, 1..255
	AbstractSyntax  AbstractSyntaxItem
	TransferSyntaxes []TransferSyntaxItem
}

// PresentationContextAC is an accepted/rejected presentation context.
type PresentationContextAC struct {
	ID             uint8
	Result         PresentationContextResult
	TransferSyntax TransferSyntaxItem
}

// UserIdentityItem implements the 0x58 user identity negotiation sub-item.
type UserIdentityItem struct {
	Type               uint8
	ResponseRequested  bool
	PrimaryField       []byte
	SecondaryField     []byte
}

// UnknownUserItem preserves an unrecognized user-information sub-item
// verbatim (spec.md §4.6: "Unknown user sub-items round-trip as
// Unknown(u8, []byte)").
type UnknownUserItem struct {
	Type ItemType
	Data []byte
}

// UserInformation is the 0x50 container of user sub-items. Fields are nil
// when absent; Unknown preserves anything this package doesn't model.
type UserInformation struct {
	MaxLengthReceived      *uint32
	ImplementationClassUID string
	ImplementationVersion  string
	UserIdentity           *UserIdentityItem
	Unknown                []UnknownUserItem
}

// IsEmpty reports whether no user-variable was set, in which case the
// writer must not emit the 0x50 sub-item at all (spec.md §4.5).
func (u *UserInformation) IsEmpty() bool {
	return u == nil || (u.MaxLengthReceived == nil &&
		u.ImplementationClassUID == "" &&
		u.ImplementationVersion == "" &&
		u.UserIdentity == nil &&
		len(u.Unknown) == 0)
}

// AssociateRQ is the A-ASSOCIATE-RQ PDU.
type AssociateRQ struct {
	ProtocolVersion      uint16
	CalledAETitle        string
	CallingAETitle       string
	ApplicationContext   string
	PresentationContexts []PresentationContextRQ
	UserInformation      UserInformation
}

// AssociateAC is the A-ASSOCIATE-AC PDU.
type AssociateAC struct {
	ProtocolVersion      uint16
	CalledAETitle        string // mirrors the request's called title
	CallingAETitle       string // mirrors the request's calling title
	ApplicationContext   string
	PresentationContexts []PresentationContextAC
	UserInformation      UserInformation
}

// AssociateRJ is the A-ASSOCIATE-RJ PDU.
type AssociateRJ struct {
	Result RJResult
	Source uint8
	Reason uint8
}

// PresentationDataValue is one PDV inside a P-DATA-TF PDU.
type PresentationDataValue struct {
	ContextID    uint8
	IsCommand    bool
	IsLastFragment bool
	Fragment     []byte
}

// PDataTF is the P-DATA-TF PDU.
type PDataTF struct {
	Values []PresentationDataValue
}

// ReleaseRQ is the A-RELEASE-RQ PDU (four reserved zero bytes, no fields).
type ReleaseRQ struct{}

// ReleaseRP is the A-RELEASE-RP PDU (four reserved zero bytes, no fields).
type ReleaseRP struct{}

// Abort is the A-ABORT PDU.
type Abort struct {
	Source uint8
	Reason uint8
}

// Unknown preserves an unrecognized PDU type verbatim (spec.md §4.6).
type Unknown struct {
	PDUType PDUType
	Data    []byte
}

// PDU is the tagged union over every Upper Layer PDU kind. Exactly one
// field is non-nil/meaningful, selected by Type.
type PDU struct {
	Type PDUType

	AssociateRQ AssociateRQ
	AssociateAC AssociateAC
	AssociateRJ AssociateRJ
	PDataTF     PDataTF
	ReleaseRQ   ReleaseRQ
	ReleaseRP   ReleaseRP
	Abort       Abort
	Unknown     Unknown
}
