package tui

import (
	"github.com/charmbracelet/lipgloss"

	"finoverse.com/brandbook/internal/prefs"
)

// Terminal colours, ANSI 256.
var (
	colorCoral = lipgloss.Color("209")
	colorGreen = lipgloss.Color("114")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorInk   = lipgloss.Color("235")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
	colorLine  = lipgloss.Color("238")
	colorPaper = lipgloss.Color("252")
)

type styles struct {
	brand    lipgloss.Style
	title    lipgloss.Style
	heading  lipgloss.Style
	eyebrow  lipgloss.Style
	body     lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	active   lipgloss.Style
	cursor   lipgloss.Style
	success  lipgloss.Style
	danger   lipgloss.Style
	sidebar  lipgloss.Style
	footer   lipgloss.Style
	selected lipgloss.Style
}

func newStyles(t prefs.Theme) styles {
	fg, line := colorWhite, colorLine
	if !t.IsDark() {
		fg, line = colorInk, colorPaper
	}
	return styles{
		brand:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		heading:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		eyebrow:  lipgloss.NewStyle().Foreground(colorCoral),
		body:     lipgloss.NewStyle().Foreground(fg),
		muted:    lipgloss.NewStyle().Foreground(colorGray),
		accent:   lipgloss.NewStyle().Foreground(colorCoral),
		active:   lipgloss.NewStyle().Bold(true).Foreground(colorCoral),
		cursor:   lipgloss.NewStyle().Reverse(true),
		success:  lipgloss.NewStyle().Foreground(colorGreen),
		danger:   lipgloss.NewStyle().Foreground(colorRed),
		sidebar:  lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(line).PaddingRight(1),
		footer:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(line),
		selected: lipgloss.NewStyle().Bold(true).Foreground(colorInk).Background(colorCoral),
	}
}
