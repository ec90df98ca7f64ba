package convergetui_test

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Plain output keeps the assertions on rendered text stable.
	lipgloss.SetColorProfile(termenv.Ascii)
}
