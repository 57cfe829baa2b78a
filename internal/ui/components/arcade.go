package components

import (
	"image/color"

	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered cards.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int, border color.Color) string {
	return theme.Card.
		BorderForeground(border).
		Width(cw - 2).
		Render(content)
}
