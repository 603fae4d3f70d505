package dropdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// fakeMeasurer returns fixed rectangles and counts calls.
type fakeMeasurer struct {
	rects map[domain.FilterType]Rect
	calls int
}

func (f *fakeMeasurer) Measure(t domain.FilterType) (Rect, bool) {
	f.calls++
	r, ok := f.rects[t]
	return r, ok
}

func TestPositioner_RefreshStoresMeasurements(t *testing.T) {
	p := NewPositioner()
	m := &fakeMeasurer{rects: map[domain.FilterType]Rect{
		domain.FilterCategory: {Bottom: 2, Right: 10},
		domain.FilterTag:      {Bottom: 2, Right: 40},
	}}

	changed := p.Refresh(m, 5)

	assert.True(t, changed)
	cat, ok := p.Position(domain.FilterCategory)
	require.True(t, ok)
	assert.Equal(t, Rect{Bottom: 7, Right: 10}, cat)
	tag, ok := p.Position(domain.FilterTag)
	require.True(t, ok)
	assert.Equal(t, Rect{Bottom: 7, Right: 40}, tag)
	assert.Equal(t, 2, m.calls)
}

func TestPositioner_RefreshUnchanged(t *testing.T) {
	p := NewPositioner()
	m := &fakeMeasurer{rects: map[domain.FilterType]Rect{
		domain.FilterCategory: {Bottom: 2, Right: 10},
	}}

	require.True(t, p.Refresh(m, 0))

	assert.False(t, p.Refresh(m, 0))
}

func TestPositioner_RefreshDetectsChanges(t *testing.T) {
	tests := []struct {
		name    string
		next    Rect
		scrollY int
	}{
		{"bottom moved", Rect{Bottom: 3, Right: 10}, 0},
		{"right moved", Rect{Bottom: 2, Right: 12}, 0},
		{"scrolled", Rect{Bottom: 2, Right: 10}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPositioner()
			m := &fakeMeasurer{rects: map[domain.FilterType]Rect{
				domain.FilterCategory: {Bottom: 2, Right: 10},
			}}
			require.True(t, p.Refresh(m, 0))

			m.rects[domain.FilterCategory] = tt.next
			assert.True(t, p.Refresh(m, tt.scrollY))

			got, _ := p.Position(domain.FilterCategory)
			assert.Equal(t, tt.next.Bottom+tt.scrollY, got.Bottom)
			assert.Equal(t, tt.next.Right, got.Right)
		})
	}
}

func TestPositioner_UnmeasuredControlKeepsNoPosition(t *testing.T) {
	p := NewPositioner()
	m := MeasureFunc(func(t domain.FilterType) (Rect, bool) {
		return Rect{Bottom: 1, Right: 1}, t == domain.FilterTag
	})

	assert.True(t, p.Refresh(m, 0))

	_, ok := p.Position(domain.FilterCategory)
	assert.False(t, ok)
	_, ok = p.Position(domain.FilterTag)
	assert.True(t, ok)
}

func TestPositioner_NilMeasurer(t *testing.T) {
	p := NewPositioner()

	assert.False(t, p.Refresh(nil, 0))
}

func TestOverlay(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"

	out := Overlay(base, "XX\nYY", 1, 3)

	assert.Equal(t, "aaaaaaaaaa\nbbbXXbbbbb\ncccYYccccc", out)
}

func TestOverlay_ExtendsBase(t *testing.T) {
	out := Overlay("ab", "XY\nZW", 1, 4)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ab", lines[0])
	assert.Equal(t, "    XY", lines[1])
	assert.Equal(t, "    ZW", lines[2])
}

func TestOverlay_NegativeOrigin(t *testing.T) {
	out := Overlay("abcd", "X", -1, -2)

	assert.Equal(t, "Xbcd", out)
}

func TestAnchor(t *testing.T) {
	top, left := Anchor(Rect{Bottom: 4, Right: 30}, 12)
	assert.Equal(t, 4, top)
	assert.Equal(t, 18, left)

	_, left = Anchor(Rect{Bottom: 4, Right: 5}, 12)
	assert.Equal(t, 0, left)
}

func TestCategoryOptions(t *testing.T) {
	c := domain.NewFilterCriteria().SetFilter(domain.FilterCategory, "medical", true)

	opts := CategoryOptions(c)

	require.Len(t, opts, 3)
	assert.Equal(t, "procedural", opts[0].Name)
	assert.False(t, opts[0].Selected)
	assert.Equal(t, "medical", opts[1].Name)
	assert.True(t, opts[1].Selected)
	assert.Contains(t, opts[2].Label, "Other Evidence")
}

func TestTagOptions(t *testing.T) {
	c := domain.NewFilterCriteria().SetFilter(domain.FilterTag, "knee", true)

	opts := TagOptions([]string{"back", "knee"}, c)

	require.Len(t, opts, 2)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
}

func TestPicker_Navigation(t *testing.T) {
	p := NewPicker(nil, domain.FilterCategory)
	p.SetOptions(CategoryOptions(domain.NewFilterCriteria()))

	p.MoveUp()
	assert.Equal(t, 0, p.Cursor())

	p.MoveDown()
	p.MoveDown()
	p.MoveDown()
	assert.Equal(t, 2, p.Cursor())

	p.SetOptions(p.Options()[:1])
	assert.Equal(t, 0, p.Cursor())
}

func TestPicker_ToggleCategory(t *testing.T) {
	state := domain.NewListState()
	p := NewPicker(nil, domain.FilterCategory)
	p.SetOptions(CategoryOptions(state.Criteria))
	p.MoveDown()

	state = domain.Reduce(state, p.Toggle())
	assert.True(t, state.Criteria.IsSet(domain.FilterCategory, "medical"))

	p.SetOptions(CategoryOptions(state.Criteria))
	state = domain.Reduce(state, p.Toggle())
	assert.False(t, state.Criteria.IsSet(domain.FilterCategory, "medical"))
}

func TestPicker_ToggleTag(t *testing.T) {
	p := NewPicker(nil, domain.FilterTag)
	p.SetOptions(TagOptions([]string{"knee"}, domain.NewFilterCriteria()))

	action := p.Toggle()

	assert.Equal(t, domain.SetTagFilter{Tag: "knee", Selected: true}, action)
}

func TestPicker_ToggleEmpty(t *testing.T) {
	p := NewPicker(nil, domain.FilterTag)

	assert.Nil(t, p.Toggle())
}

func TestPicker_Clear(t *testing.T) {
	p := NewPicker(nil, domain.FilterTag)

	assert.Equal(t, domain.ClearFilters{Type: domain.FilterTag}, p.Clear())
	assert.Equal(t, domain.FilterTag, p.Type())
}

func TestPicker_View(t *testing.T) {
	c := domain.NewFilterCriteria().SetFilter(domain.FilterCategory, "other", true)
	p := NewPicker(nil, domain.FilterCategory)
	p.SetOptions(CategoryOptions(c))

	view := ansi.Strip(p.View())

	assert.Contains(t, view, "[ ] P Procedural")
	assert.Contains(t, view, "[x] O Other Evidence")
	assert.Greater(t, p.Width(), len("[x] O Other Evidence"))
}

func TestPicker_ViewEmpty(t *testing.T) {
	p := NewPicker(nil, domain.FilterTag)

	assert.Contains(t, ansi.Strip(p.View()), "No tags")
}
