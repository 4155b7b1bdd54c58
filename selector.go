package dicom

// SelectorStep is one hop of an AttributeSelector: either a leaf tag or a
// step into a specific item of a sequence at tag.
type SelectorStep struct {
	Tag  Tag
	Item int // meaningful only when this is not the final step
	Leaf bool
}

// AttributeSelector is a non-empty path into a data set (spec.md §4.2
// "Attribute Selector"): every step but the last addresses an item inside a
// nested sequence; the last step names the leaf element.
type AttributeSelector struct {
	steps []SelectorStep
}

// NewSelector builds a selector from a single leaf tag.
func NewSelector(tag Tag) AttributeSelector {
	return AttributeSelector{steps: []SelectorStep{{Tag: tag, Leaf: true}}}
}

// NewNestedSelector builds a selector from a sequence of tags, all nested
// at item 0 except the last, which is the leaf.
func NewNestedSelector(tags ...Tag) AttributeSelector {
	steps := make([]SelectorStep, len(tags))
	for i, t := range tags {
		steps[i] = SelectorStep{Tag: t, Item: 0, Leaf: i == len(tags)-1}
	}
	return AttributeSelector{steps: steps}
}

// NewStepSelector builds a selector from explicit steps.
func NewStepSelector(steps ...SelectorStep) AttributeSelector {
	return AttributeSelector{steps: append([]SelectorStep(nil), steps...)}
}

// ValueAt navigates obj along the selector, returning the leaf primitive
// value. Fails with AtAccessError identifying the offending step.
func (s AttributeSelector) ValueAt(obj *InMemoryObject) (PrimitiveValue, error) {
	e, err := s.EntryAt(obj)
	if err != nil {
		return PrimitiveValue{}, err
	}
	prim, ok := e.Value.Primitive()
	if !ok {
		return PrimitiveValue{}, &AtAccessError{Kind: MissingLeafElement, StepIndex: len(s.steps) - 1, Tag: s.steps[len(s.steps)-1].Tag}
	}
	return prim, nil
}

// EntryAt navigates obj along the selector, returning the whole leaf
// element.
func (s AttributeSelector) EntryAt(obj *InMemoryObject) (DataElement, error) {
	cur := obj
	for i, step := range s.steps {
		e, ok := cur.ElementOpt(step.Tag)
		if !ok {
			return DataElement{}, &AtAccessError{Kind: MissingSequence, StepIndex: i, Tag: step.Tag}
		}
		if step.Leaf {
			return e, nil
		}
		items, ok := e.Value.Items()
		if !ok {
			return DataElement{}, &AtAccessError{Kind: NotASequence, StepIndex: i, Tag: step.Tag}
		}
		if step.Item >= len(items) {
			return DataElement{}, &AtAccessError{Kind: MissingSequence, StepIndex: i, Tag: step.Tag}
		}
		cur = items[step.Item]
	}
	return DataElement{}, &AtAccessError{Kind: MissingLeafElement, StepIndex: len(s.steps) - 1, Tag: s.steps[len(s.steps)-1].Tag}
}

// UpdateValueAt mutates the leaf value deeply via fn, resetting the root
// object's cached length.
func (s AttributeSelector) UpdateValueAt(obj *InMemoryObject, fn func(*CompositeValue)) error {
	cur := obj
	for i, step := range s.steps {
		e, ok := cur.ElementOpt(step.Tag)
		if !ok {
			return &AtAccessError{Kind: MissingSequence, StepIndex: i, Tag: step.Tag}
		}
		if step.Leaf {
			fn(&e.Value)
			cur.Put(e)
			obj.length = UNDEFINED
			return nil
		}
		items, ok := e.Value.Items()
		if !ok {
			return &AtAccessError{Kind: NotASequence, StepIndex: i, Tag: step.Tag}
		}
		if step.Item >= len(items) {
			return &AtAccessError{Kind: MissingSequence, StepIndex: i, Tag: step.Tag}
		}
		cur = items[step.Item]
	}
	return &AtAccessError{Kind: MissingLeafElement, StepIndex: len(s.steps) - 1, Tag: s.steps[len(s.steps)-1].Tag}
}

// navigateConstructive is like EntryAt's traversal, but creates missing
// intermediate sequences and items along the way -- used by the
// constructive AttributeOp actions (spec.md §4.2). It returns the object
// owning the leaf tag.
func (s AttributeSelector) navigateConstructive(root *InMemoryObject) (*InMemoryObject, Tag, error) {
	cur := root
	for i, step := range s.steps {
		if step.Leaf {
			return cur, step.Tag, nil
		}
		e, ok := cur.ElementOpt(step.Tag)
		if ok && !e.Value.IsSequence() {
			return nil, Tag{}, &AtAccessError{Kind: NotASequence, StepIndex: i, Tag: step.Tag}
		}
		var items []*InMemoryObject
		if ok {
			items, _ = e.Value.Items()
		}
		if step.Item == len(items) {
			items = append(items, NewInMemoryObject(cur.dict))
			cur.Put(DataElement{
				Header: Header{Tag: step.Tag, VR: SQ, Length: UNDEFINED},
				Value:  NewSequenceComposite(items, UNDEFINED),
			})
		} else if step.Item > len(items) {
			return nil, Tag{}, &AtAccessError{Kind: MissingSequence, StepIndex: i, Tag: step.Tag}
		}
		cur = items[step.Item]
	}
	return cur, Tag{}, &AtAccessError{Kind: MissingLeafElement, StepIndex: len(s.steps) - 1, Tag: s.steps[len(s.steps)-1].Tag}
}
