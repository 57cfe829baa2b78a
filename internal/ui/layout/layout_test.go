package layout

import (
	"strings"
	"testing"
)

func TestShortAddress(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "no wallet"},
		{"0xabc", "0xabc"},
		{"0x1234567890abcdef1234567890abcdef12345678", "0x1234…5678"},
	}
	for _, tt := range tests {
		if got := ShortAddress(tt.in); got != tt.want {
			t.Errorf("ShortAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Levels", HeaderInfo{MaxScore: 9, HighestLevel: 4}, 100)
	for _, want := range []string{"Quiz", "Levels", "★ 9", "L4", "no wallet"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}

func TestRenderHeader_NarrowStaysOneRow(t *testing.T) {
	info := HeaderInfo{MaxScore: 10, HighestLevel: 10, Wallet: "0x1234567890abcdef1234567890abcdef12345678"}
	h := RenderHeader("Level 10", info, MinWidth)
	if got := strings.Count(h, "\n") + 1; got != HeaderHeight {
		t.Errorf("header height = %d, want %d", got, HeaderHeight)
	}
	if !strings.Contains(h, "0x1234…5678") {
		t.Error("header missing wallet")
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "R", Description: "Retry level"}, {Key: "Esc", Description: "Levels"}}, 80)
	for _, want := range []string{"R", "Retry level", "Esc", "·"} {
		if !strings.Contains(f, want) {
			t.Errorf("footer missing %q", want)
		}
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Levels", HeaderInfo{HighestLevel: 1}, 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := strings.Count(frame, "\n") + 1; got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
}
