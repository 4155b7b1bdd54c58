package dicom

// OpAction enumerates the attribute operation actions (spec.md §4.2
// "Attribute Operations").
type OpAction int

const (
	OpRemove OpAction = iota
	OpEmpty
	OpSetVr
	OpSet
	OpSetStr
	OpSetIfMissing
	OpSetStrIfMissing
	OpReplace
	OpReplaceStr
	OpPushStr
	OpPushI32
	OpPushU32
	OpPushI16
	OpPushU16
	OpPushF32
	OpPushF64
	OpTruncate
)

// constructive reports whether this action creates missing intermediate
// sequences/items while navigating a selector.
func (a OpAction) constructive() bool {
	switch a {
	case OpSet, OpSetStr, OpSetIfMissing, OpSetStrIfMissing,
		OpPushStr, OpPushI32, OpPushU32, OpPushI16, OpPushU16, OpPushF32, OpPushF64:
		return true
	default:
		return false
	}
}

// AttributeOp pairs a selector with the action to apply at it.
type AttributeOp struct {
	Selector AttributeSelector
	Action   OpAction

	VR        VR
	Primitive PrimitiveValue
	Str       string
	I32       int32
	U32       uint32
	I16       int16
	U16       uint16
	F32       float32
	F64       float64
	Limit     int
}

// Apply executes op against obj, per the semantics in spec.md §4.2. Every
// successful mutation resets obj's own cached length, even when the
// selector reaches into a nested item several levels down (spec.md §8
// invariant 6).
func (obj *InMemoryObject) Apply(op AttributeOp) error {
	if op.Action.constructive() {
		owner, tag, err := op.Selector.navigateConstructive(obj)
		if err != nil {
			return &ApplyError{Kind: ApplyMissingSequence, Cause: err}
		}
		if err := applyAt(owner, tag, op); err != nil {
			return err
		}
		obj.length = UNDEFINED
		return nil
	}

	e, err := op.Selector.EntryAt(obj)
	switch op.Action {
	case OpRemove:
		if err != nil {
			return nil // removing something already absent is not an error
		}
		owner, tag := lastOwner(obj, op.Selector)
		owner.RemoveElement(tag)
		obj.length = UNDEFINED
		return nil
	case OpEmpty:
		if err != nil {
			return &ApplyError{Kind: ApplyMissingSequence, Cause: err}
		}
		owner, tag := lastOwner(obj, op.Selector)
		e.Value = NewPrimitiveComposite(Empty())
		owner.Put(DataElement{Header: Header{Tag: tag, VR: e.Header.VR, Length: 0}, Value: e.Value})
		obj.length = UNDEFINED
		return nil
	case OpSetVr:
		if err != nil {
			return &ApplyError{Kind: ApplyMissingSequence, Cause: err}
		}
		owner, tag := lastOwner(obj, op.Selector)
		e.Header.VR = op.VR
		owner.Put(e)
		obj.length = UNDEFINED
		return nil
	case OpReplace:
		if err != nil {
			return nil // Replace* is a no-op when absent
		}
		if e.Value.IsSequence() || e.Value.IsPixelSequence() {
			return &ApplyError{Kind: ApplyIncompatibleTypes}
		}
		owner, tag := lastOwner(obj, op.Selector)
		owner.Put(NewDataElement(tag, e.Header.VR, op.Primitive))
		obj.length = UNDEFINED
		return nil
	case OpReplaceStr:
		if err != nil {
			return nil
		}
		owner, tag := lastOwner(obj, op.Selector)
		owner.Put(NewDataElement(tag, e.Header.VR, NewStr(op.Str)))
		obj.length = UNDEFINED
		return nil
	case OpTruncate:
		if err != nil {
			return &ApplyError{Kind: ApplyMissingSequence, Cause: err}
		}
		owner, tag := lastOwner(obj, op.Selector)
		if frags, ok := e.Value.PixelFragments(); ok {
			frags.Truncate(op.Limit)
			e.Value = NewPixelSequenceComposite(frags)
		} else if prim, ok := e.Value.Primitive(); ok {
			prim.Truncate(op.Limit)
			e.Value = NewPrimitiveComposite(prim)
		} else {
			return &ApplyError{Kind: ApplyNotASequence}
		}
		owner.Put(DataElement{Header: e.Header, Value: e.Value})
		obj.length = UNDEFINED
		return nil
	default:
		return &ApplyError{Kind: ApplyUnsupportedAction}
	}
}

// lastOwner re-navigates non-constructively to find the object owning the
// selector's final tag (all but the last step).
func lastOwner(root *InMemoryObject, s AttributeSelector) (*InMemoryObject, Tag) {
	cur := root
	for _, step := range s.steps {
		if step.Leaf {
			return cur, step.Tag
		}
		e, _ := cur.ElementOpt(step.Tag)
		items, _ := e.Value.Items()
		cur = items[step.Item]
	}
	return cur, Tag{}
}

// applyAt performs a constructive action once the owning object and leaf
// tag are known.
func applyAt(owner *InMemoryObject, tag Tag, op AttributeOp) error {
	existing, exists := owner.ElementOpt(tag)

	switch op.Action {
	case OpSet, OpSetIfMissing:
		if op.Action == OpSetIfMissing && exists {
			return nil
		}
		vr := op.VR
		if vr == VRInvalid {
			vr = resolveVRForValue(owner.dict, tag, op.Primitive.Kind())
		}
		if vr == SQ && op.Primitive.IsEmpty() {
			owner.Put(DataElement{Header: Header{Tag: tag, VR: SQ, Length: 0}, Value: NewSequenceComposite(nil, 0)})
			return nil
		}
		owner.Put(NewDataElement(tag, vr, op.Primitive))
		return nil

	case OpSetStr, OpSetStrIfMissing:
		if op.Action == OpSetStrIfMissing && exists {
			return nil
		}
		vr := op.VR
		if vr == VRInvalid {
			vr = resolveVR(owner.dict, tag, KindString)
		}
		owner.Put(NewDataElement(tag, vr, NewStr(op.Str)))
		return nil

	case OpPushStr, OpPushI32, OpPushU32, OpPushI16, OpPushU16, OpPushF32, OpPushF64:
		if exists && (existing.Value.IsSequence() || existing.Value.IsPixelSequence()) {
			return &ApplyError{Kind: ApplyIncompatibleTypes}
		}
		var prim PrimitiveValue
		if exists {
			prim, _ = existing.Value.Primitive()
		} else {
			prim = Empty()
		}
		vr := existing.Header.VR
		var err error
		switch op.Action {
		case OpPushStr:
			err = prim.ExtendStr(op.Str)
			if vr == VRInvalid {
				vr = resolveVR(owner.dict, tag, KindString)
			}
		case OpPushI32:
			err = prim.ExtendI32(op.I32)
			if vr == VRInvalid {
				vr = resolveVR(owner.dict, tag, KindI32)
			}
		case OpPushU32:
			err = prim.ExtendU32(op.U32)
			if vr == VRInvalid {
				vr = resolveVR(owner.dict, tag, KindU32)
			}
		case OpPushI16:
			err = prim.ExtendI16(op.I16)
			if vr == VRInvalid {
				vr = resolveVR(owner.dict, tag, KindI16)
			}
		case OpPushU16:
			err = prim.ExtendU16(op.U16)
			if vr == VRInvalid {
				vr = resolveVR(owner.dict, tag, KindU16)
			}
		case OpPushF32:
			err = prim.ExtendF32(op.F32)
			if vr == VRInvalid {
				vr = resolveVR(owner.dict, tag, KindF32)
			}
		case OpPushF64:
			err = prim.ExtendF64(op.F64)
			if vr == VRInvalid {
				vr = resolveVR(owner.dict, tag, KindF64)
			}
		}
		if err != nil {
			return &ApplyError{Kind: ApplyIncompatibleTypes, Cause: err}
		}
		owner.Put(NewDataElement(tag, vr, prim))
		return nil

	default:
		return &ApplyError{Kind: ApplyUnsupportedAction}
	}
}

// resolveVRForValue looks up tag's standard VR in dict, falling back to the
// natural VR of the value kind being inserted when the dictionary has no
// entry (spec.md §4.2's "or the target type's natural VR").
func resolveVRForValue(dict Dictionary, tag Tag, kind ValueKind) VR {
	if dict != nil {
		if vr, ok := dict.VRByTag(tag); ok {
			return vr
		}
	}
	return VRForValueKind(kind)
}

// resolveVR looks up tag's standard VR in dict, falling back to a natural
// VR derived from kind when the dictionary has no entry.
func resolveVR(dict Dictionary, tag Tag, fallbackKind Kind) VR {
	if dict != nil {
		if vr, ok := dict.VRByTag(tag); ok {
			return vr
		}
	}
	switch fallbackKind {
	case KindU16:
		return US
	case KindU32:
		return UL
	case KindI16:
		return SS
	case KindI32:
		return SL
	case KindF32:
		return FL
	case KindF64:
		return FD
	default:
		return LO
	}
}
