package jadzia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeSelector(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want []string
	}{
		{name: "empty path", path: nil, want: []string{}},
		{name: "descendants", path: []string{"main", ".sub", "a"}, want: []string{"main .sub a"}},
		{name: "attached", path: []string{"main", "&.sticky"}, want: []string{"main.sticky"}},
		{name: "attached with space", path: []string{"ul", "& > li"}, want: []string{"ul> li"}},
		{name: "pseudo class", path: []string{"a", ":hover"}, want: []string{"a:hover"}},
		{name: "pseudo element", path: []string{"a", "::after"}, want: []string{"a::after"}},
		{name: "parent insertion", path: []string{"main", "sub", "inter&"}, want: []string{"main inter sub"}},
		{name: "parent insertion without parent", path: []string{"html&", "body"}, want: []string{"body"}},
		{name: "lone ampersand", path: []string{"main", "&"}, want: []string{"main"}},
		{name: "empty fragments", path: []string{"", "b", ""}, want: []string{"b"}},
		{name: "only empty fragment", path: []string{""}, want: []string{}},
		{
			name: "media hoisted",
			path: []string{"b", "i", "@media print"},
			want: []string{"@media print", "b i"},
		},
		{
			name: "media merged",
			path: []string{"@media screen", "nav", "@media (min-width: 900px)"},
			want: []string{"@media screen and (min-width: 900px)", "nav"},
		},
		{
			name: "at-rule drops outer selectors",
			path: []string{"b", "i", "@keyframes hey", "from"},
			want: []string{"@keyframes hey", "from"},
		},
		{
			name: "media before other at-rules",
			path: []string{"@supports (display: grid)", "@media print", "b"},
			want: []string{"@media print", "@supports (display: grid)", "b"},
		},
		{
			name: "bare media",
			path: []string{"@media", "b"},
			want: []string{"@media ", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeSelector(tt.path))
		})
	}
}

func TestSplitSelector(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{key: "", want: []string{""}},
		{key: "b", want: []string{"b"}},
		{key: "b, i", want: []string{"b", "i"}},
		{key: " b ,, i , ", want: []string{"b", "i"}},
		{key: " , ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSelector(tt.key))
		})
	}
}
