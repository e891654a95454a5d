package ui

import (
	"strings"

	"viaggio/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(modal model.Modal, width int) string {
	switch modal {
	case model.ModalDetails, model.ModalMap:
		return renderModalHelp(width)
	default:
		return renderDayHelp(width)
	}
}

func renderDayHelp(width int) string {
	keys := []string{
		helpKey("1-9", "day"),
		helpKey("h/l", "prev/next"),
		helpKey("j/k", "navigate"),
		helpKey("space", "check"),
		helpKey("d", "details"),
		helpKey("m", "map"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderModalHelp(width int) string {
	keys := []string{
		helpKey("x", "close"),
		helpKey("click outside", "close"),
		helpKey("esc", "close all"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Days"),
		helpSection([]helpItem{
			{"1 - 9", "Go to day"},
			{"h / ←", "Previous day"},
			{"l / →", "Next day"},
		}),
		titleSection("Day content"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"space", "Check / uncheck morning item"},
			{"enter", "Check item or open details"},
			{"d", "Open activity details"},
			{"m", "Show on map"},
		}),
		titleSection("Dialogs"),
		helpSection([]helpItem{
			{"x", "Close dialog"},
			{"click outside", "Close dialog"},
			{"esc", "Close all dialogs"},
		}),
		titleSection("General"),
		helpSection([]helpItem{
			{"?", "Toggle help"},
			{"q", "Save progress and quit"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
