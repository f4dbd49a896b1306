package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the terminal color palette. Colors are ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color

	// Navigation bar. The background switches to NavScrolledBackground
	// once the reader has scrolled past the top of the page.
	NavForeground         lipgloss.Color
	NavBackground         lipgloss.Color
	NavScrolledBackground lipgloss.Color
	NavActiveForeground   lipgloss.Color
	NavActiveBackground   lipgloss.Color

	HeadingForeground lipgloss.Color
	LinkForeground    lipgloss.Color
	BorderColor       lipgloss.Color
	HelpText          lipgloss.Color

	SuccessText lipgloss.Color
	WarningText lipgloss.Color
	ErrorText   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	Accent:     lipgloss.Color("39"),

	NavForeground:         lipgloss.Color("250"),
	NavBackground:         lipgloss.Color("0"),
	NavScrolledBackground: lipgloss.Color("236"),
	NavActiveForeground:   lipgloss.Color("0"),
	NavActiveBackground:   lipgloss.Color("39"),

	HeadingForeground: lipgloss.Color("75"),
	LinkForeground:    lipgloss.Color("81"),
	BorderColor:       lipgloss.Color("240"),
	HelpText:          lipgloss.Color("241"),

	SuccessText: lipgloss.Color("78"),
	WarningText: lipgloss.Color("214"),
	ErrorText:   lipgloss.Color("196"),
}
