// Package jadzia compiles nested rule trees into CSS.
//
// A rule tree is a nested mapping keyed by selector fragments, at-rules and
// property names. Values are scalars, lists, nested mappings or deferred
// computations that receive the conversion options.
//
// # Compiling
//
//	tree := jadzia.NewMap(
//		jadzia.KV("main", jadzia.NewMap(
//			jadzia.KV("color", "blue"),
//			jadzia.KV(".sub, &.sticky", jadzia.NewMap(
//				jadzia.KV("marginTop", 3),
//			)),
//		)),
//	)
//	css, err := jadzia.ToCSS(tree, jadzia.WithIndent(2))
//
// produces
//
//	main {
//	  color: blue;
//	}
//	main .sub {
//	  margin-top: 3px;
//	}
//	main.sticky {
//	  margin-top: 3px;
//	}
//
// # Selectors
//
// Comma-separated keys expand into one rule per selector. A fragment starting
// with "&" or ":" attaches to its parent without a space, a fragment ending
// with "&" is inserted before its parent. "@media" fragments at any depth are
// hoisted and merged with "and"; other at-rules drop the selectors around
// them.
//
// # Stages
//
// ToObject runs Flatten, ComposeSelector, Unflatten and optionally Sort.
// ToCSS additionally runs Format. Each stage is exported for callers that
// hold intermediate results.
package jadzia
