package jadzia

// Unflatten rebuilds a canonical mapping from flat records. Each record's
// selector is composed, property names and values are converted, and records
// landing on the same selector merge into one mapping in first-seen order.
// A later assignment to the same property overwrites the earlier value.
func Unflatten(records []Record, opts Options) (*Map, error) {
	root := &Map{}
	for _, rec := range records {
		if err := assign(root, rec, opts); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func assign(root *Map, rec Record, opts Options) error {
	selectors := ComposeSelector(rec.Selector)

	cur := root
	for i, sel := range selectors {
		existing, ok := cur.Get(sel)
		if !ok {
			next := &Map{}
			cur.Set(sel, next)
			cur = next
			continue
		}
		next, isMap := existing.(*Map)
		if !isMap {
			return pathError(selectors[:i+1], "%w: %q holds a value and nested rules", ErrNestingConflict, sel)
		}
		cur = next
	}

	name := PropName(rec.Prop, opts)
	value, err := PropValue(rec.Value, name, opts)
	if err != nil {
		return &PathError{Path: append(clonePath(selectors), name), Err: err}
	}
	if existing, ok := cur.Get(name); ok {
		if _, isMap := existing.(*Map); isMap {
			return pathError(append(clonePath(selectors), name), "%w: %q holds nested rules and a value", ErrNestingConflict, name)
		}
	}
	cur.Set(name, String(value))
	return nil
}
