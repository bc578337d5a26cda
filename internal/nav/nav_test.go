package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Item {
	return []Item{
		{ID: "a", Title: "A", Path: "/s/a", Level: 0},
		{ID: "b", Title: "B", Path: "/s/b", Level: 1},
		{ID: "c", Title: "C", Path: "/s/c", Level: 1},
		{ID: "d", Title: "D", Path: "/s/d", Level: 0},
		{ID: "e", Title: "E", Path: "/s/e", Level: 1},
	}
}

func ids(items []RenderedItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestBuildGroupsNestedItems(t *testing.T) {
	groups := Build(sample(), "", nil)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Parent.ID)
	assert.Equal(t, []string{"b", "c"}, ids(groups[0].Children))
	assert.Equal(t, "d", groups[1].Parent.ID)
	assert.Equal(t, []string{"e"}, ids(groups[1].Children))
}

func TestBuildDropsOrphans(t *testing.T) {
	items := append([]Item{{ID: "orphan", Path: "/s/orphan", Level: 1}}, sample()...)
	groups := Build(items, "/s/orphan", nil)
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.NotContains(t, ids(g.Children), "orphan")
		assert.False(t, g.Expanded)
	}
}

func TestBuildExpandsGroupOfActiveRoute(t *testing.T) {
	groups := Build(sample(), "/s/e", nil)
	assert.False(t, groups[0].Expanded)
	assert.True(t, groups[1].Expanded)
	assert.True(t, groups[1].Children[0].Active)
	assert.False(t, groups[1].Parent.Active)

	groups = Build(sample(), "/s/a", nil)
	assert.True(t, groups[0].Expanded)
	assert.True(t, groups[0].Parent.Active)
}

func TestOverridesWinOverActiveRoute(t *testing.T) {
	o := Overrides{}
	groups := Build(sample(), "/s/b", o)
	require.True(t, groups[0].Expanded)

	o.Toggle(groups[0])
	groups = Build(sample(), "/s/b", o)
	assert.False(t, groups[0].Expanded)

	o.Toggle(groups[1])
	groups = Build(sample(), "/s/b", o)
	assert.True(t, groups[1].Expanded)

	o.Toggle(groups[0])
	groups = Build(sample(), "/s/b", o)
	assert.True(t, groups[0].Expanded)
}

func TestFind(t *testing.T) {
	groups := Build(sample(), "", nil)
	g, ok := Find(groups, "d")
	require.True(t, ok)
	assert.True(t, g.HasChildren())
	_, ok = Find(groups, "b")
	assert.False(t, ok)
}

func TestBreadcrumbs(t *testing.T) {
	groups := Build(sample(), "/s/c", nil)
	crumbs := Breadcrumbs("Brand", "/s/a", groups, "Section", "s", RenderedItem{Href: "/s/c", Label: "C"})
	var labels []string
	for _, c := range crumbs {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Brand", "Section", "A", "C"}, labels)
	assert.True(t, crumbs[len(crumbs)-1].Active)

	crumbs = Breadcrumbs("Brand", "/s/a", groups, "", "brand-assets", RenderedItem{Href: "/brand-assets/color-kit"})
	labels = labels[:0]
	for _, c := range crumbs {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Brand", "Brand Assets", "Color Kit"}, labels)
}
