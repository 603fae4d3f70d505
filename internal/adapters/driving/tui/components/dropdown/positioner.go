// Package dropdown provides the filter dropdowns of the document list: a
// positioner that keeps track of where each filter control sits on
// screen, and the picker drawn over the list at that position.
package dropdown

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// Rect is the anchor of a dropdown: the line below its filter control
// and the cell column right after it.
type Rect struct {
	Bottom int
	Right  int
}

// Measurer reports the current rectangle of a filter control. The second
// return value is false when the control is not rendered.
type Measurer interface {
	Measure(t domain.FilterType) (Rect, bool)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(t domain.FilterType) (Rect, bool)

// Measure implements Measurer.
func (f MeasureFunc) Measure(t domain.FilterType) (Rect, bool) {
	return f(t)
}

// Positioner stores the last measured anchor of every filter control.
type Positioner struct {
	positions map[domain.FilterType]Rect
}

// NewPositioner creates a positioner with no stored anchors.
func NewPositioner() *Positioner {
	return &Positioner{positions: make(map[domain.FilterType]Rect)}
}

// Refresh measures every filter control, shifts Bottom by scrollY and
// stores the result when Bottom or Right changed. It reports whether any
// stored anchor changed.
func (p *Positioner) Refresh(m Measurer, scrollY int) bool {
	if m == nil {
		return false
	}
	changed := false
	for _, t := range domain.FilterTypes {
		rect, ok := m.Measure(t)
		if !ok {
			continue
		}
		rect.Bottom += scrollY
		if prev, seen := p.positions[t]; seen && prev == rect {
			continue
		}
		p.positions[t] = rect
		changed = true
	}
	return changed
}

// Position returns the stored anchor of a filter type.
func (p *Positioner) Position(t domain.FilterType) (Rect, bool) {
	r, ok := p.positions[t]
	return r, ok
}

// Overlay draws box over base with its top-left corner at line top and
// cell column left. Lines of base are cut ANSI-aware so styling on either
// side of the box survives. base is extended with blank lines if the box
// reaches past its end.
func Overlay(base, box string, top, left int) string {
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	for len(baseLines) < top+len(boxLines) {
		baseLines = append(baseLines, "")
	}

	for i, boxLine := range boxLines {
		line := baseLines[top+i]
		if w := ansi.StringWidth(line); w < left {
			line += strings.Repeat(" ", left-w)
		}
		prefix := ansi.Truncate(line, left, "")
		suffix := ansi.TruncateLeft(line, left+ansi.StringWidth(boxLine), "")
		baseLines[top+i] = prefix + boxLine + suffix
	}
	return strings.Join(baseLines, "\n")
}

// Anchor converts a stored anchor to the top-left corner of a box of the
// given width, keeping the box on screen.
func Anchor(r Rect, boxWidth int) (top, left int) {
	left = r.Right - boxWidth
	if left < 0 {
		left = 0
	}
	return r.Bottom, left
}
