package convergetui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/gradlepin/pkg/converge"
)

// Model shows a spinner per file in progress, a progress bar, and one
// result line per converged file.
type Model struct {
	err       error
	counts    map[converge.Status]int
	verb      string
	started   []string
	completed []string
	spinner   spinner.Model
	progress  progress.Model
	total     int
	width     int
	height    int
	mu        sync.RWMutex
	done      bool
}

// NewModel creates a [Model]. verb is shown next to each file in progress,
// in present participle tense (e.g. "converging").
func NewModel(verb string) *Model {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	s := spinner.New()
	s.Style = spinnerStyle

	return &Model{
		counts:    map[converge.Status]int{},
		verb:      cases.Title(language.English).String(verb),
		started:   []string{},
		completed: []string{},
		spinner:   s,
		progress:  p,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.progress.SetPercent(0))
}

//nolint:ireturn // Third-party.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}

	case TeaMsgWriteLog:
		return m, writeLog(msg, m.width)

	case converge.EventSetTotal:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.total = int(msg)

	case converge.EventConverging:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.started = append(m.started, string(msg))

	case converge.EventConverged:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.completed = append(m.completed, msg.Key)
		m.counts[msg.Status]++

		line := fmt.Sprintf("%s %s %s", checkMark, msg.Key, msg.Status)
		if msg.Err != nil {
			line = fmt.Sprintf("%s %s: %v", errorMark, msg.Key, msg.Err)
		}

		cmds := []tea.Cmd{tea.Println(line)}
		if m.total > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(len(m.completed))/float64(m.total)))
		}

		return m, tea.Batch(cmds...)

	case converge.EventDone:
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.done {
			return m, nil
		}

		m.done = true
		m.err = msg.Err

		return m, tea.Sequence(finalPause(), tea.Quit)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}

		return m, cmd
	}

	return m, nil
}

func (m *Model) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.done {
		if m.err != nil {
			return getErrorMessage(m.err, m.width)
		}

		return doneStyle.Render(m.summary() + "\n")
	}

	w := lipgloss.Width(strconv.Itoa(m.total))
	count := fmt.Sprintf(" %*d/%*d", w, len(m.completed), w, m.total)

	progRendered := progressStyle.Render(m.progress.View() + count)
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(progRendered)))
	progOut := progRendered + gap + "\n"

	spinners := []string{}
	for _, key := range inProgress(m.started, m.completed) {
		spin := m.spinner.View() + " "
		cellsAvail := max(0, m.width-lipgloss.Width(spin))

		info := lipgloss.NewStyle().MaxWidth(cellsAvail).Render(m.verb + " " + currentKeyStyle.Render(key))

		cellsRemaining := max(0, m.width-lipgloss.Width(spin+info))
		spinners = append(spinners, spin+info+strings.Repeat(" ", cellsRemaining))
	}

	return strings.Join(spinners, "\n") + "\n" + progOut
}

func (m *Model) summary() string {
	parts := []string{}

	for _, s := range []converge.Status{
		converge.StatusPatched,
		converge.StatusCreated,
		converge.StatusUnchanged,
		converge.StatusFailed,
	} {
		if n := m.counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}

	if len(parts) == 0 {
		return "Done! Nothing to converge."
	}

	return "Done! " + strings.Join(parts, ", ") + "."
}

func inProgress(started, completed []string) []string {
	out := []string{}

	for _, x := range started {
		if !slices.Contains(completed, x) {
			out = append(out, x)
		}
	}

	return out
}
