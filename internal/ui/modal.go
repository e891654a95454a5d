package ui

import (
	"strings"

	"viaggio/internal/mapview"
	"viaggio/internal/model"
	"viaggio/internal/render"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	mapTitlePrefix = "Carte - "
	modalMaxWidth  = 72
	closeHint      = "x fermer"
)

// dialog is the open/closed state of one modal. Closing hides the dialog and
// leaves its content in place.
type dialog struct {
	open  bool
	title string
}

// detailsDialog shows one activity.
type detailsDialog struct {
	dialog
	activity model.Activity
}

func (d detailsDialog) body(width int) string {
	var lines []string
	lines = append(lines, ActivityNameStyle.Render(d.activity.Name))
	if d.activity.Description != "" {
		lines = append(lines, DescriptionStyle.Render(wordwrap.String(d.activity.Description, width)))
	}
	if tags := render.RenderActivityDetails(d.activity.Details); tags != nil {
		lines = append(lines, "")
		for _, t := range tags.Children {
			lines = append(lines, wordwrap.String(TagLabelStyle.Render(t.Label+":")+" "+t.Text, width))
		}
	}
	return strings.Join(lines, "\n")
}

// mapDialog shows the shared map widget.
type mapDialog struct {
	dialog
}

func mapBody(widget *mapview.Map, width, height int) string {
	if widget == nil {
		return ""
	}
	return widget.View(width, height)
}

// modalInnerWidth is the text width available inside a modal of width.
func modalInnerWidth(width int) int {
	return width - ModalStyle.GetHorizontalPadding()
}

// modalBox frames title and body in the modal border.
func modalBox(title, body string, width int) string {
	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			ModalTitleStyle.Width(modalInnerWidth(width)-lipgloss.Width(closeHint)-1).Render(title),
			" ",
			HelpDescStyle.Render(closeHint),
		),
		"",
		body,
	)
	return ModalStyle.Width(width).Render(inner)
}

// rect is a screen area in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// centered returns the area a w x h block occupies when centered on a
// screen of the given size.
func centered(w, h, screenW, screenH int) rect {
	x := (screenW - w) / 2
	y := (screenH - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return rect{x: x, y: y, w: w, h: h}
}

// overlay draws box centered on a blank screen.
func overlay(box string, screenW, screenH int) string {
	r := centered(lipgloss.Width(box), lipgloss.Height(box), screenW, screenH)
	lines := strings.Split(box, "\n")

	out := make([]string, 0, screenH)
	for i := 0; i < r.y; i++ {
		out = append(out, "")
	}
	pad := strings.Repeat(" ", r.x)
	for _, l := range lines {
		out = append(out, pad+l)
	}
	return strings.Join(out, "\n")
}
