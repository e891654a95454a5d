package ui

import (
	"strings"

	"viaggio/internal/render"

	"github.com/muesli/reflow/wordwrap"
)

const indentStep = 2

// DayView draws a content tree as styled terminal text.
type DayView struct {
	// Focused is highlighted with the cursor. May be nil.
	Focused *render.Node
	// Checked reports the state of a checklist index. May be nil.
	Checked func(index int) bool
	Width   int

	lines     []string
	focusLine int
}

// Render draws tree and returns the text together with the line the
// focused node starts on (-1 when nothing is focused).
func (v *DayView) Render(tree *render.Node) (string, int) {
	v.lines = v.lines[:0]
	v.focusLine = -1
	v.node(tree, 0)
	return strings.Join(v.lines, "\n"), v.focusLine
}

// RenderDay draws tree without a cursor.
func RenderDay(tree *render.Node, checked func(int) bool, width int) string {
	v := &DayView{Checked: checked, Width: width}
	out, _ := v.Render(tree)
	return out
}

func (v *DayView) node(n *render.Node, depth int) {
	if n == nil {
		return
	}
	if n == v.Focused {
		v.focusLine = len(v.lines)
	}

	switch n.Kind {
	case render.KindDay:
		for i, c := range n.Children {
			if i > 0 {
				v.blank()
			}
			v.node(c, depth)
		}
		return

	case render.KindHeader:
		v.add(depth, n, DayDateStyle.Render(n.Label)+"  "+RouteStyle.Render(n.Text))

	case render.KindSection:
		v.add(depth, n, SectionStyle.Render(n.Label))
		for _, c := range n.Children {
			v.node(c, depth+1)
		}

	case render.KindPlaceholder:
		v.add(depth, n, EmptyStateStyle.Render(n.Text))

	case render.KindCheckbox:
		if v.isChecked(n.Index) {
			v.add(depth, n, "[x] "+CheckedStyle.Render(n.Text))
		} else {
			v.add(depth, n, "[ ] "+n.Text)
		}

	case render.KindText:
		v.add(depth, n, "• "+n.Text)

	case render.KindActivity:
		v.add(depth, n, ActivityNameStyle.Render(n.Label))
		v.wrapped(depth+1, n.Text)
		for _, c := range n.Children {
			v.node(c, depth+1)
		}
		v.actions(depth+1, n)

	case render.KindDetails:
		for _, c := range n.Children {
			v.node(c, depth)
		}

	case render.KindDetailTag:
		v.add(depth, n, TagLabelStyle.Render(n.Label+":")+" "+n.Text)

	case render.KindRestaurant:
		v.add(depth, n, ActivityNameStyle.Render(n.Label))
		for _, c := range n.Children {
			v.node(c, depth+1)
		}
		v.actions(depth+1, n)

	case render.KindRestaurantLine:
		v.add(depth, n, n.Label+" "+n.Text)

	case render.KindAccommodation:
		v.add(depth, n, n.Label+" "+n.Text)
		v.actions(depth+1, n)
	}
}

func (v *DayView) isChecked(index int) bool {
	return v.Checked != nil && v.Checked(index)
}

// add appends one line at depth, marking it with the cursor when n is the
// focused node and this is its first line.
func (v *DayView) add(depth int, n *render.Node, text string) {
	prefix := "  "
	if n == v.Focused && v.focusLine == len(v.lines) {
		prefix = CursorStyle.Render("▸ ")
	}
	v.lines = append(v.lines, prefix+strings.Repeat(" ", depth*indentStep)+text)
}

func (v *DayView) wrapped(depth int, text string) {
	if text == "" {
		return
	}
	width := v.Width - 2 - depth*indentStep
	if width < 20 {
		width = 20
	}
	for _, line := range strings.Split(wordwrap.String(text, width), "\n") {
		v.lines = append(v.lines, "  "+strings.Repeat(" ", depth*indentStep)+DescriptionStyle.Render(line))
	}
}

func (v *DayView) actions(depth int, n *render.Node) {
	if len(n.Actions) == 0 {
		return
	}
	style := ActionStyle
	if n == v.Focused {
		style = FocusedActionStyle
	}
	buttons := make([]string, len(n.Actions))
	for i, a := range n.Actions {
		buttons[i] = style.Render(a.Label)
	}
	v.lines = append(v.lines, "  "+strings.Repeat(" ", depth*indentStep)+strings.Join(buttons, " "))
}

func (v *DayView) blank() {
	v.lines = append(v.lines, "")
}
