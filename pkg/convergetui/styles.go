package convergetui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	currentKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	doneStyle       = lipgloss.NewStyle().Margin(1, 2)
	errStyle        = lipgloss.NewStyle().Margin(1, 2)
	progressStyle   = lipgloss.NewStyle().Margin(1, 2)
	spinnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	checkMark       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
	errorMark       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗")
)

// TeaMsgWriteLog is sent to print a log line above the progress view.
type TeaMsgWriteLog string

func finalPause() tea.Cmd {
	return tea.Tick(time.Millisecond*500, func(_ time.Time) tea.Msg {
		return nil
	})
}

func writeLog(msg TeaMsgWriteLog, width int) tea.Cmd {
	logMsg := strings.Trim(string(msg), "\r\n")
	logMsg = lipgloss.NewStyle().Width(max(0, width-2)).Render(logMsg)

	return tea.Println(logMsg)
}

func getErrorMessage(err error, width int) string {
	errMsg := strings.Trim(fmt.Sprintf("%v", err), "\r\n")

	return errStyle.Width(max(0, width-2)).Render(errMsg + "\n")
}
