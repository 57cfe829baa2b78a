package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

const bannerArt = `     ██╗███████╗     ██████╗ ██╗   ██╗██╗███████╗
     ██║██╔════╝    ██╔═══██╗██║   ██║██║╚══███╔╝
     ██║███████╗    ██║   ██║██║   ██║██║  ███╔╝
██   ██║╚════██║    ██║▄▄ ██║██║   ██║██║ ███╔╝
╚█████╔╝███████║    ╚██████╔╝╚██████╔╝██║███████╗
 ╚════╝ ╚══════╝     ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "J S · Q U I Z"

// BannerWidth is the widest line of the full banner.
const BannerWidth = 50

// RenderBanner returns the JS QUIZ banner styled in the primary color.
// Uses a compact fallback for widths narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
