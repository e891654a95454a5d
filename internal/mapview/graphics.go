package mapview

import (
	"image"
	"os"

	"github.com/qeesung/image2ascii/convert"
)

// TerminalCapabilities describes how the map may be drawn.
type TerminalCapabilities struct {
	// Colored enables ANSI colors in the ASCII output.
	Colored bool
}

// DetectTerminalCapabilities inspects the environment for color support.
func DetectTerminalCapabilities() TerminalCapabilities {
	return TerminalCapabilities{
		Colored: os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb",
	}
}

// renderImage draws img into width x height terminal cells.
func renderImage(img image.Image, caps TerminalCapabilities, width, height int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = width
	opts.FixedHeight = height
	opts.FitScreen = false
	opts.Colored = caps.Colored

	return converter.Image2ASCIIString(img, &opts)
}
