package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obj(members ...Member) Value { return MapValue(members) }

func arr(elems ...Value) Value { return ArrayValue(elems) }

func m(key string, v Value) Member { return Member{Key: key, Value: v} }

func ints(n int) Value {
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = Text(strings.Repeat("x", i+1))
	}
	return ArrayValue(elems)
}

func plainLines(v *Viewer) []string {
	f := v.AsWidget().Render(DefaultHints())
	lines := make([]string, f.Height())
	for i, l := range f.Lines {
		lines[i] = l.Plain()
	}
	return lines
}

func allKnobs(v *Viewer) []string {
	var out []string
	for _, k := range knobs(v.root, nil, nil) {
		out = append(out, k.String())
	}
	return out
}

func TestRenderObject(t *testing.T) {
	v := New(obj(m("foo", Text("String!")), m("bar", Text("true"))))

	want := []string{
		"{ [-]",
		"  bar: true,",
		"  foo: String!,",
		"}",
	}
	if diff := cmp.Diff(want, plainLines(v)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderArrayFooter(t *testing.T) {
	v := New(arr(Text("1"), Text("2"), Text("3"), Text("4"), Text("5")))

	want := []string{
		"[ [-]",
		"  1,",
		"  2,",
		"  3,",
		"] <-3/5+>",
	}
	if diff := cmp.Diff(want, plainLines(v)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyAndFolded(t *testing.T) {
	v := New(arr())
	assert.Equal(t, []string{"[ [-]", "] < 0/0 >"}, plainLines(v))

	require.NoError(t, v.ToggleActiveElement())
	assert.Equal(t, []string{"[ [+] ]"}, plainLines(v))

	o := New(obj(m("a", Text("1"))))
	require.NoError(t, o.ToggleActiveElement())
	assert.Equal(t, []string{"{ [+] }"}, plainLines(o))
}

func TestRenderNestedAndMultiline(t *testing.T) {
	v := New(obj(
		m("list", arr(Text("a"))),
		m("text", Text("line1\nline2")),
	))

	want := []string{
		"{ [-]",
		"  list: [ [-]",
		"    a,",
		"  ] <-1/1 >,",
		"  text: line1",
		"  line2,",
		"}",
	}
	if diff := cmp.Diff(want, plainLines(v)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDescription(t *testing.T) {
	point := describedMap{desc: "Point", members: []Member{m("x", Text("1"))}}
	v := New(point)
	assert.Equal(t, []string{"Point { [-]", "  x: 1,", "}"}, plainLines(v))
}

func TestRenderIndentation(t *testing.T) {
	v := New(obj(m("a", Text("1"))))
	f := v.AsWidget().Indentation(4).Render(DefaultHints())
	assert.Equal(t, "    a: 1,", f.Lines[1].Plain())
}

type describedMap struct {
	desc    string
	members []Member
}

func (d describedMap) Visit() Variant { return Map(d.members...).WithDescription(d.desc) }

func TestKnobOrder(t *testing.T) {
	v := New(obj(
		m("b", Text("x")),
		m("a", arr(Text("1"), Text("2"))),
	))

	want := []string{
		"#toggle",
		"/a#toggle",
		"/a/0",
		"/a/1",
		"/a#shrink",
		"/b",
	}
	if diff := cmp.Diff(want, allKnobs(v)); diff != "" {
		t.Errorf("knob order mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectNextPrevious(t *testing.T) {
	v := New(obj(
		m("b", Text("x")),
		m("a", arr(Text("1"), Text("2"))),
	))
	assert.Equal(t, "#toggle", v.ActivePath().String())

	assert.ErrorIs(t, v.SelectPrevious(), ErrNoSelection)

	for i := 0; i < 5; i++ {
		require.NoError(t, v.SelectNext())
	}
	assert.Equal(t, "/b", v.ActivePath().String())
	assert.Equal(t, "x", v.ActiveValue())

	assert.ErrorIs(t, v.SelectNext(), ErrNoSelection)
	assert.Equal(t, "/b", v.ActivePath().String())

	require.NoError(t, v.SelectPrevious())
	assert.Equal(t, "/a#shrink", v.ActivePath().String())
}

func TestScrollToBeginningAndEnd(t *testing.T) {
	v := New(ints(5))

	require.NoError(t, v.ScrollToEnd())
	assert.Equal(t, "#grow", v.ActivePath().String())
	assert.ErrorIs(t, v.ScrollToEnd(), ErrNoSelection)

	require.NoError(t, v.ScrollToBeginning())
	assert.Equal(t, "#toggle", v.ActivePath().String())
	assert.ErrorIs(t, v.ScrollToBeginning(), ErrNoSelection)

	require.NoError(t, v.ScrollForwards())
	assert.Equal(t, "/0", v.ActivePath().String())
	require.NoError(t, v.ScrollBackwards())
	assert.Equal(t, "#toggle", v.ActivePath().String())
}

func TestGrowMovesToShrinkWhenExhausted(t *testing.T) {
	v := New(ints(4))
	require.NoError(t, v.SelectLast())
	require.Equal(t, "#grow", v.ActivePath().String())

	require.NoError(t, v.ToggleActiveElement())
	assert.Equal(t, "#shrink", v.ActivePath().String())
	assert.Equal(t, "] <-4/4 >", plainLines(v)[5])
}

func TestShrinkMovesToGrowWhenEmpty(t *testing.T) {
	v := New(ints(3), WithInitialItems(1))
	require.NoError(t, v.SelectNext()) // /0
	require.NoError(t, v.SelectNext()) // #shrink
	require.Equal(t, "#shrink", v.ActivePath().String())

	require.NoError(t, v.ToggleActiveElement())
	assert.Equal(t, "#grow", v.ActivePath().String())
	assert.Equal(t, []string{"[ [-]", "] < 0/3+>"}, plainLines(v))
}

func TestToggleScalarHasNoAction(t *testing.T) {
	v := New(Text("hello"))
	assert.Equal(t, "/", v.ActivePath().String())
	assert.True(t, errors.Is(v.ToggleActiveElement(), ErrNoAction))
	assert.Equal(t, "hello", v.ActiveValue())
}

func TestFoldingHidesChildren(t *testing.T) {
	v := New(obj(m("a", obj(m("b", Text("1"))))))
	require.NoError(t, v.SelectNext())
	require.Equal(t, "/a#toggle", v.ActivePath().String())

	require.NoError(t, v.ToggleActiveElement())
	assert.Equal(t, []string{"{ [-]", "  a: { [+] },", "}"}, plainLines(v))
	assert.Equal(t, []string{"#toggle", "/a#toggle"}, allKnobs(v))

	require.NoError(t, v.SelectFirst())
	require.NoError(t, v.ToggleActiveElement())
	assert.Equal(t, []string{"#toggle"}, allKnobs(v))
	assert.ErrorIs(t, v.SelectNext(), ErrNoSelection)
}

func TestUpdateHighlightsChangedScalars(t *testing.T) {
	v := New(obj(m("foo", Text("String!")), m("bar", Text("true"))))
	v.Update(obj(m("foo", Text("999")), m("bar", Text("true"))))

	root := v.root.(*objectNode)
	assert.True(t, root.members["foo"].(*scalarNode).changed)
	assert.False(t, root.members["bar"].(*scalarNode).changed)

	v.Update(obj(m("foo", Text("999")), m("bar", Text("true"))))
	root = v.root.(*objectNode)
	assert.False(t, root.members["foo"].(*scalarNode).changed, "highlight lasts one update")
}

func TestUpdateKeepsViewState(t *testing.T) {
	v := New(obj(m("a", ints(5)), m("b", Text("x"))))
	require.NoError(t, v.SelectNext()) // /a#toggle
	require.NoError(t, v.ToggleActiveElement())

	v.Update(obj(m("a", ints(2)), m("b", Text("x"))))
	a := v.root.(*objectNode).members["a"].(*arrayNode)
	assert.False(t, a.extended)
	assert.Equal(t, 2, a.numExtended)
	assert.True(t, a.lengthChanged)
	assert.Equal(t, "/a#toggle", v.ActivePath().String())
}

func TestUpdateArrayPositional(t *testing.T) {
	v := New(arr(Text("1"), Text("2"), Text("3"), Text("4"), Text("5")))
	v.Update(arr(Text("1"), Text("9")))

	a := v.root.(*arrayNode)
	assert.Equal(t, 2, a.numExtended)
	assert.True(t, a.lengthChanged)
	assert.False(t, a.values[0].(*scalarNode).changed)
	assert.True(t, a.values[1].(*scalarNode).changed)
}

func TestUpdateKindChangeMarksLeaves(t *testing.T) {
	v := New(obj(m("a", Text("1"))))
	v.Update(obj(m("a", obj(m("x", Text("1")), m("y", arr(Text("2")))))))

	a := v.root.(*objectNode).members["a"].(*objectNode)
	assert.True(t, a.members["x"].(*scalarNode).changed)
	assert.True(t, a.members["y"].(*arrayNode).values[0].(*scalarNode).changed)

	v.Update(obj(m("a", Text("1"))))
	assert.True(t, v.root.(*objectNode).members["a"].(*scalarNode).changed)
}

func TestUpdateDescriptionChange(t *testing.T) {
	v := New(describedMap{desc: "A"})
	v.Update(describedMap{desc: "B"})
	assert.True(t, v.root.(*objectNode).descriptionChanged)

	v.Update(describedMap{desc: "B"})
	assert.False(t, v.root.(*objectNode).descriptionChanged)
}

func TestResetClearsHighlights(t *testing.T) {
	v := New(Text("1"))
	v.Update(Text("2"))
	require.True(t, v.root.(*scalarNode).changed)

	v.Reset(Text("3"))
	assert.False(t, v.root.(*scalarNode).changed)
}

func TestFixPathAfterUpdate(t *testing.T) {
	tests := []struct {
		name   string
		before Value
		moves  int
		after  Value
		want   string
	}{
		{
			name:   "removed key selects following key",
			before: obj(m("a", Text("1")), m("foo", Text("2")), m("goo", Text("3"))),
			moves:  2,
			after:  obj(m("a", Text("1")), m("goo", Text("3"))),
			want:   "/goo",
		},
		{
			name:   "removed last key selects last key",
			before: obj(m("a", Text("1")), m("foo", Text("2"))),
			moves:  2,
			after:  obj(m("a", Text("1"))),
			want:   "/a",
		},
		{
			name:   "removed all keys selects toggle",
			before: obj(m("a", Text("1"))),
			moves:  1,
			after:  obj(),
			want:   "#toggle",
		},
		{
			name:   "shortened array selects last shown element",
			before: ints(5),
			moves:  3,
			after:  ints(2),
			want:   "/1",
		},
		{
			name:   "kind change selects first knob",
			before: obj(m("a", Text("1"))),
			moves:  1,
			after:  obj(m("a", ints(2))),
			want:   "/a#toggle",
		},
		{
			name:   "scalar root",
			before: obj(m("a", Text("1"))),
			moves:  1,
			after:  Text("plain"),
			want:   "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.before)
			for i := 0; i < tt.moves; i++ {
				require.NoError(t, v.SelectNext())
			}
			v.Update(tt.after)
			assert.Equal(t, tt.want, v.ActivePath().String())
		})
	}
}

func TestExpandAll(t *testing.T) {
	v := New(obj(m("a", ints(5))))
	require.NoError(t, v.ToggleActiveElement())
	v.ExpandAll()

	lines := plainLines(v)
	assert.Len(t, lines, 9)
	assert.Equal(t, "  ] <-5/5 >,", lines[7])
}

func TestRevisionAdvances(t *testing.T) {
	v := New(ints(2))
	r := v.Revision()
	require.NoError(t, v.SelectNext())
	assert.Greater(t, v.Revision(), r)

	r = v.Revision()
	require.NoError(t, v.SelectFirst())
	assert.Greater(t, v.Revision(), r)

	r = v.Revision()
	assert.Error(t, v.SelectFirst())
	assert.Equal(t, r, v.Revision())
}

func TestPathPointerEscaping(t *testing.T) {
	p := Path{{Kind: StepMember, Key: "a/b"}, {Kind: StepMember, Key: "c~d"}, {Kind: StepElement, Index: 3}, {Kind: StepScalar}}
	assert.Equal(t, "/a~1b/c~0d/3", p.Pointer())
	assert.Equal(t, "/a~1b/c~0d/3", p.String())
}
