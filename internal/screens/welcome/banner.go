package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/toeicz/internal/ui/theme"
)

const bannerArt = `
████████╗ ██████╗ ███████╗██╗ ██████╗███████╗
╚══██╔══╝██╔═══██╗██╔════╝██║██╔════╝╚══███╔╝
   ██║   ██║   ██║█████╗  ██║██║       ███╔╝
   ██║   ██║   ██║██╔══╝  ██║██║      ███╔╝
   ██║   ╚██████╔╝███████╗██║╚██████╗███████╗
   ╚═╝    ╚═════╝ ╚══════╝╚═╝ ╚═════╝╚══════╝`

const bannerCompact = "T O E I C Z"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 50

// RenderBanner returns the TOEICZ banner styled in the primary color.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
