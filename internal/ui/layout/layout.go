package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// HeaderHeight and FooterHeight are the rendered bar heights,
	// borders included.
	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one key and what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether a level card cannot be drawn at all.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal, centred in what is there.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("JS Quiz needs more room"),
		"",
		theme.Body.Render(fmt.Sprintf("Resize to at least %d x %d", MinWidth, MinHeight)),
		theme.Muted.Render(fmt.Sprintf("now %d x %d", width, height)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// HeaderInfo is the progress and wallet status shown in the header.
type HeaderInfo struct {
	MaxScore     int
	HighestLevel int
	Wallet       string // connected address, "" when disconnected
}

func (h HeaderInfo) status() string {
	gap := theme.Muted.Render("   ")
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d", h.MaxScore)) +
		gap +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("▲ L%d", h.HighestLevel)) +
		gap +
		theme.Muted.Render(ShortAddress(h.Wallet))
}

// RenderHeader draws the brand on the left, the screen title centred and
// the progress status on the right.
func RenderHeader(title string, info HeaderInfo, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" {JS} Quiz")
	status := info.status() + " "

	inner := max(width-2, 0)
	middle := max(inner-lipgloss.Width(brand)-lipgloss.Width(status), 0)
	center := lipgloss.PlaceHorizontal(middle, lipgloss.Center, theme.Body.Render(title))

	row := lipgloss.JoinHorizontal(lipgloss.Top, brand, center, status)
	return bar(row, width)
}

// ShortAddress abbreviates a 0x address to 0x1234…abcd.
func ShortAddress(addr string) string {
	if addr == "" {
		return "no wallet"
	}
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// RenderFooter lists the key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(h.Key)+" "+theme.Muted.Render(h.Description))
	}
	return bar(" "+strings.Join(parts, theme.Muted.Render("  ·  ")), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, giving content whatever
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
