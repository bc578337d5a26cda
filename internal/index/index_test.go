package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finoverse.com/brandbook/internal/content"
)

func twoSectionBook() *content.Brandbook {
	return &content.Brandbook{
		BrandName: "Test",
		Sections: []content.Section{
			{ID: "one", Title: "One", Slug: "one", Pages: []content.Page{
				{ID: "a", Title: "A", Slug: "a"},
				{ID: "b", Title: "B", Slug: "b", NavLevel: 1},
			}},
			{ID: "two", Title: "Two", Slug: "two", Pages: []content.Page{
				{ID: "c", Title: "C", Slug: "c"},
			}},
		},
	}
}

func TestFindEveryValidPair(t *testing.T) {
	bb, err := content.Default()
	require.NoError(t, err)
	idx, err := Build(bb)
	require.NoError(t, err)

	for _, sec := range bb.Sections {
		for _, p := range sec.Pages {
			l, ok := idx.Find(sec.Slug, p.Slug)
			require.True(t, ok, "%s/%s", sec.Slug, p.Slug)
			assert.Equal(t, p.ID, l.Page.ID)
			assert.Equal(t, sec.Title, l.SectionTitle)
			assert.Equal(t, "/"+sec.Slug+"/"+p.Slug, l.Path)
		}
	}
}

func TestFindMiss(t *testing.T) {
	idx, err := Build(twoSectionBook())
	require.NoError(t, err)

	for _, pair := range [][2]string{{"foo", "bar"}, {"one", "c"}, {"", ""}, {"one", ""}} {
		_, ok := idx.Find(pair[0], pair[1])
		assert.False(t, ok, "%v", pair)
	}
}

func TestOrderCrossesSections(t *testing.T) {
	idx, err := Build(twoSectionBook())
	require.NoError(t, err)

	var paths []string
	for _, e := range idx.Entries() {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"/one/a", "/one/b", "/two/c"}, paths)

	b, ok := idx.Find("one", "b")
	require.True(t, ok)
	assert.Equal(t, 1, b.Index)
	assert.Equal(t, 3, b.Total)
	require.NotNil(t, b.Previous)
	require.NotNil(t, b.Next)
	assert.Equal(t, "/one/a", b.Previous.Path)
	assert.Equal(t, "/two/c", b.Next.Path)
	assert.Equal(t, "C", b.Next.Title)
}

func TestNeighboursAtEnds(t *testing.T) {
	idx, err := Build(twoSectionBook())
	require.NoError(t, err)

	first, ok := idx.Find("one", "a")
	require.True(t, ok)
	assert.Nil(t, first.Previous)
	assert.NotNil(t, first.Next)

	last, ok := idx.Find("two", "c")
	require.True(t, ok)
	assert.NotNil(t, last.Previous)
	assert.Nil(t, last.Next)
}

func TestNeighboursMatchFlattenedOrder(t *testing.T) {
	bb, err := content.Default()
	require.NoError(t, err)
	idx, err := Build(bb)
	require.NoError(t, err)

	entries := idx.Entries()
	for i, e := range entries {
		l, ok := idx.FindPath(e.Path)
		require.True(t, ok)
		assert.Equal(t, i, l.Index)
		if i > 0 {
			require.NotNil(t, l.Previous)
			assert.Equal(t, entries[i-1].Path, l.Previous.Path)
		}
		if i < len(entries)-1 {
			require.NotNil(t, l.Next)
			assert.Equal(t, entries[i+1].Path, l.Next.Path)
		}
	}
}

func TestFindIsIdempotent(t *testing.T) {
	idx, err := Build(twoSectionBook())
	require.NoError(t, err)

	a, ok1 := idx.Find("one", "b")
	b, ok2 := idx.Find("one", "b")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, a, b)
}

func TestBuildRejectsDuplicateRoutes(t *testing.T) {
	bb := twoSectionBook()
	bb.Sections[1].Slug = "one"
	bb.Sections[1].Pages[0].Slug = "a"
	_, err := Build(bb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate route /one/a")
}

func TestDefaultAndNavigation(t *testing.T) {
	bb, err := content.Default()
	require.NoError(t, err)
	idx, err := Build(bb)
	require.NoError(t, err)

	assert.Equal(t, "/finoverse-brand/introduction", idx.DefaultPath())
	assert.Equal(t, idx.First(), idx.Default())

	nav := idx.Navigation()
	require.Len(t, nav, 1)
	require.Len(t, nav[0].Pages, idx.Len())
	assert.Equal(t, "/finoverse-brand/brand-tone", nav[0].Pages[1].Path)
	assert.Equal(t, 1, nav[0].Pages[6].NavLevel)

	l, ok := idx.ByID("ai-overview")
	require.True(t, ok)
	assert.Equal(t, "/finoverse-brand/ai", l.Path)
}

func TestDefaultFallsBackToFirstPage(t *testing.T) {
	idx, err := Build(twoSectionBook())
	require.NoError(t, err)
	assert.Equal(t, "/one/a", idx.DefaultPath())
}
