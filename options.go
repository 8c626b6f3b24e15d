package jadzia

import (
	"maps"
	"slices"
)

// Options controls a conversion. It is passed by value to every stage and to
// every Func found in the rule tree.
type Options struct {
	// Unit is appended to bare non-zero numbers of unit-bearing properties.
	Unit string
	// Sort orders selectors and properties by weight instead of source order.
	Sort bool
	// Indent is the number of spaces per nesting level. Zero disables
	// indentation but keeps line breaks.
	Indent int
	// Customs holds property base names emitted as custom properties ("--name").
	Customs []string
	// Vars carries caller values for deferred computations, e.g. theme colours.
	Vars map[string]any
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Unit:   "px",
		Indent: 4,
	}
}

// Option modifies the options of a conversion.
type Option func(*Options)

// WithUnit sets the unit appended to bare numbers.
func WithUnit(unit string) Option {
	return func(o *Options) { o.Unit = unit }
}

// WithSort enables or disables weight ordering.
func WithSort(sort bool) Option {
	return func(o *Options) { o.Sort = sort }
}

// WithIndent sets the indent width. Negative widths are treated as zero.
func WithIndent(n int) Option {
	return func(o *Options) { o.Indent = max(n, 0) }
}

// WithCustoms sets the custom property names.
func WithCustoms(names ...string) Option {
	return func(o *Options) { o.Customs = names }
}

// WithVar sets one caller value visible to deferred computations.
func WithVar(name string, value any) Option {
	return func(o *Options) {
		vars := make(map[string]any, len(o.Vars)+1)
		maps.Copy(vars, o.Vars)
		vars[name] = value
		o.Vars = vars
	}
}

// WithOptions replaces the whole record.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func resolveOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.Indent = max(o.Indent, 0)
	return o
}

// Var returns the caller value stored under name.
func (o Options) Var(name string) (any, bool) {
	v, ok := o.Vars[name]
	return v, ok
}

func (o Options) isCustom(name string) bool {
	return slices.Contains(o.Customs, name)
}
