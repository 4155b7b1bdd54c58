package dicom

// TokenKind discriminates the variants yielded by IntoTokens and consumed
// by BuildObject (spec.md §4.2 "Token stream").
type TokenKind int

const (
	TokenElementHeader TokenKind = iota
	TokenPrimitiveValue
	TokenSequenceStart
	TokenSequenceEnd
	TokenItemStart
	TokenItemEnd
	TokenPixelSequenceStart
	TokenOffsetTable
	TokenItemValue
)

// Token is a single step of the linearized element stream. Only the fields
// relevant to Kind are populated.
type Token struct {
	Kind TokenKind

	Header Header         // TokenElementHeader
	Value  PrimitiveValue // TokenPrimitiveValue

	Tag    Tag    // TokenSequenceStart, TokenPixelSequenceStart
	Length Length // TokenSequenceStart, TokenItemStart

	OffsetTable []uint32 // TokenOffsetTable
	ItemValue   []byte   // TokenItemValue
}

// TokenOptions controls IntoTokens's length-reporting behavior.
type TokenOptions struct {
	// WithLengths, when true, fills computed byte lengths into headers and
	// SequenceStart/ItemStart tokens. When false, all such lengths are
	// forced to Length::UNDEFINED and item/sequence ends become mandatory
	// delimiter tokens in the wire encoding (spec.md §4.2).
	WithLengths bool
}

// IntoTokens linearizes obj into a token stream suitable for encoding.
func (o *InMemoryObject) IntoTokens(opts TokenOptions) []Token {
	withLengths := opts.WithLengths && !o.charsetChanged
	var toks []Token
	for _, e := range o.Iter() {
		toks = append(toks, elementTokens(e, withLengths)...)
	}
	return toks
}

func elementTokens(e DataElement, withLengths bool) []Token {
	switch {
	case e.Value.IsSequence():
		items, _ := e.Value.Items()
		seqLen := UNDEFINED
		if withLengths {
			seqLen = e.Value.CalculateByteLen()
		}
		toks := []Token{{Kind: TokenSequenceStart, Tag: e.Header.Tag, Length: seqLen}}
		for _, item := range items {
			itemLen := UNDEFINED
			if withLengths {
				itemLen = item.ByteLen()
				if itemLen.IsUndefined() {
					var sum uint64
					for _, ie := range item.Iter() {
						sum += elementWireSize(ie)
					}
					itemLen = checkedLength(sum)
				}
			}
			toks = append(toks, Token{Kind: TokenItemStart, Length: itemLen})
			toks = append(toks, item.IntoTokens(TokenOptions{WithLengths: withLengths})...)
			toks = append(toks, Token{Kind: TokenItemEnd})
		}
		toks = append(toks, Token{Kind: TokenSequenceEnd})
		return toks

	case e.Value.IsPixelSequence():
		frags, _ := e.Value.PixelFragments()
		toks := []Token{{Kind: TokenPixelSequenceStart, Tag: e.Header.Tag}}
		if frags.HasOffsetTable() {
			otLen := Length(uint32(len(frags.OffsetTable)) * 4)
			toks = append(toks, Token{Kind: TokenItemStart, Length: otLen})
			toks = append(toks, Token{Kind: TokenOffsetTable, OffsetTable: frags.OffsetTable})
			toks = append(toks, Token{Kind: TokenItemEnd})
		} else {
			toks = append(toks, Token{Kind: TokenItemStart, Length: 0})
			toks = append(toks, Token{Kind: TokenItemEnd})
		}
		for _, frag := range frags.Fragments {
			toks = append(toks, Token{Kind: TokenItemStart, Length: Length(uint32(len(frag)))})
			toks = append(toks, Token{Kind: TokenItemValue, ItemValue: frag})
			toks = append(toks, Token{Kind: TokenItemEnd})
		}
		toks = append(toks, Token{Kind: TokenSequenceEnd})
		return toks

	default:
		hdr := e.Header
		if withLengths {
			hdr.Length = e.Value.CalculateByteLen()
		} else {
			hdr.Length = UNDEFINED
		}
		prim, _ := e.Value.Primitive()
		return []Token{
			{Kind: TokenElementHeader, Header: hdr},
			{Kind: TokenPrimitiveValue, Value: prim},
		}
	}
}

// TokenStreamError is returned by BuildObject for malformed streams.
type TokenStreamError struct {
	Kind string // "UnexpectedToken" | "PrematureEnd"
	Got  TokenKind
}

func (e *TokenStreamError) Error() string {
	return "dicom: token stream: " + e.Kind
}

// tokenCursor is a simple slice-backed token reader, since the in-memory
// token stream is fully materialized rather than pulled from an async
// source (spec.md §5: the token builder is synchronous and single-threaded).
type tokenCursor struct {
	toks []Token
	pos  int
}

func (c *tokenCursor) next() (Token, bool) {
	if c.pos >= len(c.toks) {
		return Token{}, false
	}
	t := c.toks[c.pos]
	c.pos++
	return t, true
}

func (c *tokenCursor) peek() (Token, bool) {
	if c.pos >= len(c.toks) {
		return Token{}, false
	}
	return c.toks[c.pos], true
}

// BuildObject consumes tokens (optionally from inside an already-open item,
// and optionally stopping early on reaching a tag >= readUntil) and
// reconstructs an InMemoryObject. It is the inverse of IntoTokens.
func BuildObject(dict Dictionary, toks []Token, inItem bool, readUntil Tag) (*InMemoryObject, int, error) {
	c := &tokenCursor{toks: toks}
	obj := NewInMemoryObject(dict)
	consumed, err := buildObjectInto(obj, c, inItem, readUntil)
	return obj, consumed, err
}

func buildObjectInto(obj *InMemoryObject, c *tokenCursor, inItem bool, readUntil Tag) (int, error) {
	hasReadUntil := readUntil != (Tag{})
	for {
		peeked, ok := c.peek()
		if !ok {
			if inItem {
				return c.pos, &TokenStreamError{Kind: "PrematureEnd"}
			}
			return c.pos, nil
		}
		if peeked.Kind == TokenItemEnd {
			if inItem {
				c.next()
				return c.pos, nil
			}
			return c.pos, &TokenStreamError{Kind: "UnexpectedToken", Got: peeked.Kind}
		}

		switch peeked.Kind {
		case TokenElementHeader:
			if hasReadUntil && peeked.Header.Tag.Compare(readUntil) >= 0 {
				return c.pos, nil
			}
			c.next()
			val, ok := c.next()
			if !ok || val.Kind != TokenPrimitiveValue {
				return c.pos, &TokenStreamError{Kind: "UnexpectedToken", Got: val.Kind}
			}
			obj.Put(DataElement{Header: peeked.Header, Value: NewPrimitiveComposite(val.Value)})

		case TokenSequenceStart:
			if hasReadUntil && peeked.Tag.Compare(readUntil) >= 0 {
				return c.pos, nil
			}
			c.next()
			var items []*InMemoryObject
			for {
				tok, ok := c.next()
				if !ok {
					return c.pos, &TokenStreamError{Kind: "PrematureEnd"}
				}
				if tok.Kind == TokenSequenceEnd {
					break
				}
				if tok.Kind != TokenItemStart {
					return c.pos, &TokenStreamError{Kind: "UnexpectedToken", Got: tok.Kind}
				}
				item := NewInMemoryObject(obj.dict)
				if _, err := buildObjectInto(item, c, true, Tag{}); err != nil {
					return c.pos, err
				}
				item.SetCachedLength(tok.Length)
				items = append(items, item)
			}
			obj.Put(DataElement{
				Header: Header{Tag: peeked.Tag, VR: SQ, Length: peeked.Length},
				Value:  NewSequenceComposite(items, peeked.Length),
			})

		case TokenPixelSequenceStart:
			if hasReadUntil && peeked.Tag.Compare(readUntil) >= 0 {
				return c.pos, nil
			}
			c.next()
			frags, err := buildPixelSequence(c)
			if err != nil {
				return c.pos, err
			}
			obj.Put(DataElement{
				Header: Header{Tag: peeked.Tag, VR: OB, Length: UNDEFINED},
				Value:  NewPixelSequenceComposite(frags),
			})

		default:
			return c.pos, &TokenStreamError{Kind: "UnexpectedToken", Got: peeked.Kind}
		}
	}
}

// buildPixelSequence implements the encapsulated-pixel-data rule: the first
// ItemValue encountered becomes the basic offset table entry, but only if
// it arrives before any ItemEnd; every subsequent ItemValue is a fragment.
func buildPixelSequence(c *tokenCursor) (PixelFragments, error) {
	var frags PixelFragments
	first := true
	for {
		tok, ok := c.next()
		if !ok {
			return frags, &TokenStreamError{Kind: "PrematureEnd"}
		}
		if tok.Kind == TokenSequenceEnd {
			return frags, nil
		}
		if tok.Kind != TokenItemStart {
			return frags, &TokenStreamError{Kind: "UnexpectedToken", Got: tok.Kind}
		}
		// Read the item body: either nothing (empty offset table item),
		// an OffsetTable token, or an ItemValue token, then ItemEnd.
		body, ok := c.next()
		if !ok {
			return frags, &TokenStreamError{Kind: "PrematureEnd"}
		}
		switch body.Kind {
		case TokenItemEnd:
			if first {
				frags.OffsetTable = []uint32{}
			}
		case TokenOffsetTable:
			frags.OffsetTable = body.OffsetTable
			end, ok := c.next()
			if !ok || end.Kind != TokenItemEnd {
				return frags, &TokenStreamError{Kind: "UnexpectedToken", Got: end.Kind}
			}
		case TokenItemValue:
			if first {
				frags.OffsetTable = decodeOffsetTable(body.ItemValue)
			} else {
				frags.Fragments = append(frags.Fragments, body.ItemValue)
			}
			end, ok := c.next()
			if !ok || end.Kind != TokenItemEnd {
				return frags, &TokenStreamError{Kind: "UnexpectedToken", Got: end.Kind}
			}
		default:
			return frags, &TokenStreamError{Kind: "UnexpectedToken", Got: body.Kind}
		}
		first = false
	}
}

func decodeOffsetTable(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return out
}
