package pdu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociateRQRoundTrip(t *testing.T) {
	maxLen := uint32(16384)
	rq := AssociateRQ{
		ProtocolVersion:    1,
		CalledAETitle:      "STORESCP",
		CallingAETitle:     "STORESCU",
		ApplicationContext: ApplicationContextUID,
		PresentationContexts: []PresentationContextRQ{
			{
				ID:             1,
				AbstractSyntax: AbstractSyntaxItem{UID: "1.2.840.10008.5.1.4.1.1.7"},
				TransferSyntaxes: []TransferSyntaxItem{
					{UID: "1.2.840.10008.1.2"},
					{UID: "1.2.840.10008.1.2.1"},
				},
			},
		},
		UserInformation: UserInformation{
			MaxLengthReceived:      &maxLen,
			ImplementationClassUID: "1.2.3.4.5",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WritePDU(&PDU{Type: TypeAssociateRQ, AssociateRQ: rq}))

	p, err := NewReader(&buf).ReadPDU()
	require.NoError(t, err)
	assert.Equal(t, TypeAssociateRQ, p.Type)
	assert.Equal(t, rq.CalledAETitle, p.AssociateRQ.CalledAETitle)
	assert.Equal(t, rq.CallingAETitle, p.AssociateRQ.CallingAETitle)
	assert.Equal(t, rq.ApplicationContext, p.AssociateRQ.ApplicationContext)
	require.Len(t, p.AssociateRQ.PresentationContexts, 1)
	assert.Equal(t, rq.PresentationContexts[0].AbstractSyntax, p.AssociateRQ.PresentationContexts[0].AbstractSyntax)
	assert.Equal(t, rq.PresentationContexts[0].TransferSyntaxes, p.AssociateRQ.PresentationContexts[0].TransferSyntaxes)
	require.NotNil(t, p.AssociateRQ.UserInformation.MaxLengthReceived)
	assert.Equal(t, maxLen, *p.AssociateRQ.UserInformation.MaxLengthReceived)
	assert.Equal(t, "1.2.3.4.5", p.AssociateRQ.UserInformation.ImplementationClassUID)
}

func TestPDataTFRoundTrip(t *testing.T) {
	pd := PDataTF{Values: []PresentationDataValue{
		{ContextID: 1, IsCommand: true, IsLastFragment: true, Fragment: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{ContextID: 1, IsCommand: false, IsLastFragment: true, Fragment: bytes.Repeat([]byte{0xAB}, 128)},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WritePDU(&PDU{Type: TypePDataTF, PDataTF: pd}))

	p, err := NewReader(&buf).ReadPDU()
	require.NoError(t, err)
	assert.Equal(t, TypePDataTF, p.Type)
	require.Len(t, p.PDataTF.Values, 2)
	assert.Equal(t, pd.Values[0], p.PDataTF.Values[0])
	assert.Equal(t, pd.Values[1], p.PDataTF.Values[1])
}

func TestAssociateRJRoundTrip(t *testing.T) {
	rj := AssociateRJ{Result: RJResultPermanent, Source: 2, Reason: 1}
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WritePDU(&PDU{Type: TypeAssociateRJ, AssociateRJ: rj}))

	p, err := NewReader(&buf).ReadPDU()
	require.NoError(t, err)
	assert.Equal(t, rj, p.AssociateRJ)
}

func TestAbortRoundTrip(t *testing.T) {
	a := Abort{Source: 0, Reason: 2}
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WritePDU(&PDU{Type: TypeAbort, Abort: a}))

	p, err := NewReader(&buf).ReadPDU()
	require.NoError(t, err)
	assert.Equal(t, a, p.Abort)
}

func TestUnknownPDUPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WritePDU(&PDU{Type: PDUType(0xAA), Unknown: Unknown{Data: []byte{1, 2, 3}}}))

	p, err := NewReader(&buf).ReadPDU()
	require.NoError(t, err)
	assert.Equal(t, PDUType(0xAA), p.Type)
	assert.Equal(t, []byte{1, 2, 3}, p.Unknown.Data)
}

func TestReleaseRQRPRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WritePDU(&PDU{Type: TypeReleaseRQ}))
	require.NoError(t, NewWriter(&buf).WritePDU(&PDU{Type: TypeReleaseRP}))

	r := NewReader(&buf)
	p1, err := r.ReadPDU()
	require.NoError(t, err)
	assert.Equal(t, TypeReleaseRQ, p1.Type)

	p2, err := r.ReadPDU()
	require.NoError(t, err)
	assert.Equal(t, TypeReleaseRP, p2.Type)
}
