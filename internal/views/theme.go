package views

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme carries the hex palette rows fade between.
type Theme struct {
	Dark       bool
	Background string
	Text       string
	Done       string
	Accent     string
	ChipIdle   string
	ChipActive string
	ChipText   string
	Muted      string
}

var (
	darkTheme = Theme{
		Dark:       true,
		Background: "#1E1E1E",
		Text:       "#E5E7EB",
		Done:       "#9CA3AF",
		Accent:     "#60A5FA",
		ChipIdle:   "#334155",
		ChipActive: "#1E3A8A",
		ChipText:   "#F9FAFB",
		Muted:      "#6B7280",
	}
	lightTheme = Theme{
		Background: "#FFFFFF",
		Text:       "#1F2937",
		Done:       "#9CA3AF",
		Accent:     "#3B82F6",
		ChipIdle:   "#0F172A",
		ChipActive: "#1E3A8A",
		ChipText:   "#F9FAFB",
		Muted:      "#9CA3AF",
	}
)

func DarkTheme() Theme  { return darkTheme }
func LightTheme() Theme { return lightTheme }

// Fade blends hex towards the theme background. opacity 1 keeps hex as is,
// 0 lands on the background.
func (t Theme) Fade(hex string, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return lipgloss.Color(hex)
	}
	if opacity < 0 {
		opacity = 0
	}
	fg, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	bg, err := colorful.Hex(t.Background)
	if err != nil {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(fg.BlendLab(bg, 1-opacity).Clamped().Hex())
}

// ApplyColorProfile picks the lipgloss colour profile for the TUI and returns
// the matching theme. NO_COLOR forces plain ASCII; SELESAI_THEME=light|dark
// overrides background detection.
func ApplyColorProfile() Theme {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		profile := termenv.ColorProfile()
		colorterm := strings.ToLower(os.Getenv("COLORTERM"))
		if profile != termenv.Ascii && (strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")) {
			profile = termenv.TrueColor
		}
		lipgloss.SetColorProfile(profile)
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv("SELESAI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return lightTheme
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return darkTheme
	}
	if lipgloss.HasDarkBackground() {
		return darkTheme
	}
	return lightTheme
}
