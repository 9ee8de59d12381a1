package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette. The accent matches the RAM green of the SVG sinks so
// CLI output and rendered strips read as one tool.
var (
	colorAccent  = lipgloss.Color("35")  // green, success and highlights
	colorAlert   = lipgloss.Color("167") // soft red, errors
	colorCaution = lipgloss.Color("220") // amber, warnings
	colorValue   = lipgloss.Color("255") // bright white, values
	colorMuted   = lipgloss.Color("245") // gray, secondary text
	colorFaint   = lipgloss.Color("240") // dim gray, separators
	colorCommand = lipgloss.Color("75")  // light blue, suggested commands
)

var (
	// StyleHighlight emphasizes the chip or plan a command acted on.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	styleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
)

// status glyphs, one per message class.
var (
	glyphSuccess = lipgloss.NewStyle().Foreground(colorAccent).Render("✓")
	glyphError   = lipgloss.NewStyle().Foreground(colorAlert).Render("✗")
	glyphWarning = lipgloss.NewStyle().Foreground(colorCaution).Render("!")
	glyphInfo    = styleMuted.Render("›")
)

// status prints one glyph-prefixed line. All the printXxx helpers funnel
// through here so message layout stays uniform.
func status(glyph, format string, args ...any) {
	fmt.Println(glyph + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(glyphSuccess, format, args...) }
func printError(format string, args ...any)   { status(glyphError, format, args...) }
func printInfo(format string, args ...any)    { status(glyphInfo, format, args...) }

func printWarning(format string, args ...any) {
	msg := lipgloss.NewStyle().Foreground(colorCaution).Render(fmt.Sprintf(format, args...))
	status(glyphWarning, "%s", msg)
}

// printDetail prints an indented secondary line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact path.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render("→") + " " + styleValue.Render(path))
}

// printKeyValue prints a labeled value in the aligned key column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints the one-line chip summary shown after a successful
// build: region count, bus width, and whether the result came from cache.
func printStats(regionCount int, addressWidth uint, cached bool) {
	source := styleMuted.Render("fresh")
	if cached {
		source = StyleHighlight.Render("cached")
	}
	sep := styleDim.Render(" · ")
	fmt.Println("  " +
		styleDim.Render(fmt.Sprintf("%d regions", regionCount)) + sep +
		styleDim.Render(fmt.Sprintf("%d-bit bus", addressWidth)) + sep +
		source)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
