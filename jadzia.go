package jadzia

// ToObject compiles a rule tree into its canonical form: a nested mapping
// from final selectors to property values. With sorting enabled the keys of
// every level are ordered by weight.
func ToObject(tree Node, opts ...Option) (*Map, error) {
	return toObject(tree, resolveOptions(opts))
}

func toObject(tree Node, o Options) (*Map, error) {
	records, err := Flatten(tree, o)
	if err != nil {
		return nil, err
	}
	obj, err := Unflatten(records, o)
	if err != nil {
		return nil, err
	}
	if o.Sort {
		obj = Sort(obj)
	}
	return obj, nil
}

// ToCSS compiles a rule tree into CSS text.
func ToCSS(tree Node, opts ...Option) (string, error) {
	o := resolveOptions(opts)
	obj, err := toObject(tree, o)
	if err != nil {
		return "", err
	}
	return Format(obj, WithOptions(o))
}
