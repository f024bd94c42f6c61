package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/questgame/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryStyle colors build blue, ship green and reach purple.
func CategoryStyle(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryBuild:
		return StyleBlue
	case domain.CategoryShip:
		return StyleGreen
	case domain.CategoryReach:
		return StylePurple
	default:
		return StyleDim
	}
}

// CategoryBadge renders a category as "[ship]" in its color.
func CategoryBadge(c domain.Category) string {
	if c == "" {
		return StyleDim.Render("[--]")
	}
	return CategoryStyle(c).Render(fmt.Sprintf("[%s]", c))
}

// LootToken renders a loot token, highlighting badges by rarity.
func LootToken(token string) string {
	switch token {
	case domain.TokenEpicBadge:
		return StyleYellow.Bold(true).Render("★ " + token)
	case domain.TokenRareBadge:
		return StyleBlue.Render("◆ " + token)
	case domain.TokenCommonGem:
		return StyleFg.Render("· " + token)
	default:
		return StyleDim.Render(token)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Hint renders a no-op outcome such as "no active quest" as a dim line.
func Hint(text string) string {
	return StyleDim.Render("· "+text) + "\n"
}
