package component_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/delaneyj/layoutparty/component"
	"github.com/delaneyj/layoutparty/deptree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	for _, tc := range []struct {
		definition string
		mode       deptree.SizeMode
		pixels     int
	}{
		{"", deptree.SizeUndefined, 0},
		{"50%", deptree.SizeRelative, 100},
		{"100%", deptree.SizeRelative, 200},
		{"12px", deptree.SizeFixed, 12},
		{" 12.6px ", deptree.SizeFixed, 13},
		{"2em", deptree.SizeFixed, 32},
		{"7", deptree.SizeFixed, 7},
	} {
		t.Run(tc.definition, func(t *testing.T) {
			s, err := component.ParseSize(tc.definition)
			require.NoError(t, err)
			assert.Equal(t, tc.mode, s.Mode)
			assert.Equal(t, tc.pixels, s.Pixels(200))
		})
	}

	for _, bad := range []string{"wide", "-3px", "%", "px"} {
		_, err := component.ParseSize(bad)
		assert.ErrorIs(t, err, component.ErrBadSize, bad)
	}
}

func TestLoadSpec(t *testing.T) {
	s, err := component.LoadSpec("../testdata/form.yaml")
	require.NoError(t, err)
	assert.Equal(t, "window", s.ID)
	assert.True(t, s.Scrolls)
	require.Len(t, s.Children, 1)
	assert.Len(t, s.Children[0].Children, 4)

	r, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 9, r.Len())
	assert.Equal(t, []string{"window", "form", "footer"}, r.Containers())

	title := r.MustGet("title")
	assert.Equal(t, deptree.SizeRelative, title.SizeMode(deptree.Horizontal))
	assert.Equal(t, deptree.SizeUndefined, title.SizeMode(deptree.Vertical))
	assert.Equal(t, "form", title.Parent().ID())
	assert.True(t, r.MustGet("form").IsDirectional())
	assert.True(t, r.MustGet("help").Hidden())
	assert.Nil(t, r.Root().Parent())

	_, err = component.LoadSpec("../testdata/missing.yaml")
	assert.Error(t, err)
}

func TestSpecRoundTrip(t *testing.T) {
	s, err := component.LoadSpec("../testdata/overflow.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))
	again, err := component.DecodeSpec(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, again)
	assert.Contains(t, s.String(), "id: viewport")
}

func TestDecodeSpecRejectsUnknownFields(t *testing.T) {
	_, err := component.DecodeSpec(strings.NewReader("id: a\ncolour: red\n"))
	assert.ErrorContains(t, err, "colour")
}

func TestBuildErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		spec component.Spec
		err  error
	}{
		{
			name: "missing id",
			spec: component.Spec{Layout: component.LayoutSimple},
			err:  component.ErrMissingID,
		},
		{
			name: "duplicate id",
			spec: component.Spec{ID: "a", Layout: component.LayoutSimple, Children: []component.Spec{{ID: "a"}}},
			err:  component.ErrDuplicateID,
		},
		{
			name: "bad width",
			spec: component.Spec{ID: "a", Width: "wide"},
			err:  component.ErrBadSize,
		},
		{
			name: "unknown layout",
			spec: component.Spec{ID: "a", Layout: "grid"},
			err:  component.ErrBadLayout,
		},
		{
			name: "unknown orientation",
			spec: component.Spec{ID: "a", Layout: component.LayoutSimple, Orientation: "diagonal"},
			err:  component.ErrBadLayout,
		},
		{
			name: "children without layout",
			spec: component.Spec{ID: "a", Children: []component.Spec{{ID: "b"}}},
			err:  component.ErrBadLayout,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.spec.Build()
			assert.ErrorIs(t, err, tc.err)
		})
	}

	assert.Panics(t, func() { component.Spec{}.MustBuild() })
}

func TestRegistryAdd(t *testing.T) {
	r := component.NewRegistry()
	root, err := r.Add("", component.Spec{ID: "root", Layout: component.LayoutSimple})
	require.NoError(t, err)
	assert.Same(t, root, r.Root())

	_, err = r.Add("", component.Spec{ID: "other"})
	assert.ErrorIs(t, err, component.ErrUnknownParent)

	_, err = r.Add("nowhere", component.Spec{ID: "child"})
	assert.ErrorIs(t, err, component.ErrUnknownParent)

	leaf, err := r.Add("root", component.Spec{ID: "leaf", Width: "10px"})
	require.NoError(t, err)
	assert.Equal(t, []deptree.Component{leaf}, root.Children())

	_, err = r.Add("leaf", component.Spec{ID: "under-leaf"})
	assert.ErrorIs(t, err, component.ErrBadLayout)

	c, ok := r.Component("leaf")
	require.True(t, ok)
	assert.Equal(t, "leaf", c.ID())
	_, ok = r.Component("under-leaf")
	assert.False(t, ok)
	assert.Panics(t, func() { r.MustGet("under-leaf") })

	var visited []string
	r.Walk(func(n *component.Node) bool {
		visited = append(visited, n.ID())
		return true
	})
	assert.Equal(t, []string{"root", "leaf"}, visited)
	assert.Len(t, r.Components(), 2)
}
