package jadzia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	var nilMap *Map
	var nilFunc Func

	tests := []struct {
		name string
		node Node
		want Kind
	}{
		{name: "nil", node: nil, want: KindEmpty},
		{name: "nil map", node: nilMap, want: KindEmpty},
		{name: "nil func", node: nilFunc, want: KindEmpty},
		{name: "empty map", node: NewMap(), want: KindEmpty},
		{name: "empty list", node: List{}, want: KindEmpty},
		{name: "bool", node: Bool(false), want: KindBool},
		{name: "number", node: Number(0), want: KindNumber},
		{name: "string", node: String(""), want: KindString},
		{name: "func", node: Func(func(Options) (Node, error) { return nil, nil }), want: KindFunc},
		{name: "map", node: NewMap(KV("a", 1)), want: KindMap},
		{name: "scalar list", node: List{Number(1), String("solid"), Bool(true)}, want: KindScalarList},
		{name: "list with map", node: List{String("a"), NewMap(KV("a", 1))}, want: KindList},
		{name: "list with empty", node: List{String("a"), nil}, want: KindList},
		{name: "opaque", node: Opaque{Value: struct{}{}}, want: KindSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.node))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "scalar list", KindScalarList.String())
	assert.Equal(t, "symbol", KindSymbol.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestValue(t *testing.T) {
	type color string

	assert.Nil(t, Value(nil))
	assert.Nil(t, Value((*int)(nil)))
	assert.Nil(t, Value([]string(nil)))
	assert.Equal(t, Bool(true), Value(true))
	assert.Equal(t, Number(3), Value(3))
	assert.Equal(t, Number(3), Value(uint8(3)))
	assert.Equal(t, Number(1.5), Value(float32(1.5)))
	assert.Equal(t, String("red"), Value(color("red")))
	assert.Equal(t, List{Number(1), String("solid")}, Value([]any{1, "solid"}))
	assert.Equal(t, List{String("a"), String("b")}, Value([2]string{"a", "b"}))

	n := 7
	assert.Equal(t, Number(7), Value(&n))

	m, ok := Value(map[string]int{"b": 2, "a": 1}).(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	_, isFunc := Value(func(Options) Node { return nil }).(Func)
	assert.True(t, isFunc)

	assert.Equal(t, KindSymbol, Classify(Value(map[int]string{1: "a"})))
	assert.Equal(t, KindSymbol, Classify(Value(struct{ A int }{1})))
}

func TestMap(t *testing.T) {
	m := NewMap(KV("b", 1), KV("a", 2), KV("b", 3))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"b", "a"}, m.Keys())

	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, Number(3), v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	var zero Map
	zero.Set("x", String("y"))
	assert.Equal(t, 1, zero.Len())

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
		break
	}
	assert.Equal(t, []string{"b"}, keys)
}

func TestMapClone(t *testing.T) {
	inner := NewMap(KV("color", "red"))
	m := NewMap(KV("b", inner), KV("margin", []any{1, 2}))

	c := m.Clone()
	inner.Set("color", String("blue"))

	sub, _ := c.Get("b")
	v, _ := sub.(*Map).Get("color")
	assert.Equal(t, String("red"), v)
}

func TestMapMarshalJSON(t *testing.T) {
	m := NewMap(
		KV("z", "last"),
		KV("a", NewMap(KV("n", 1.5), KV("ok", true), KV("none", nil))),
		KV("l", []any{1, "x"}),
	)

	b, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last","a":{"n":1.5,"ok":true,"none":null},"l":[1,"x"]}`, string(b))

	_, err = NewMap(KV("f", make(chan int))).MarshalJSON()
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}
