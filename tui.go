package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI message types
type RecordingStartMsg struct{}
type RecordingStopMsg struct{}
type ResultMsg struct {
	Text     string
	NoSpeech bool
}
type AudioLevelMsg struct{ Level float64 }
type ErrorMsg struct{ Text string }
type ModeLineMsg struct{ Text string }
type tickMsg time.Time

type tuiState int

const (
	tuiStateIdle tuiState = iota
	tuiStateRecording
	tuiStateWorking
)

type tuiModel struct {
	state         tuiState
	recordStart   time.Time
	audioLevel    float64
	width, height int
	modeLine      string
	lastText      string
	lastErr       string
	noSpeech      bool
	count         int
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
	tuiReady   = make(chan struct{})
	tuiOnce    sync.Once
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	recStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	noTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

func NewTUIProgram(modeLine string) *tea.Program {
	return tea.NewProgram(tuiModel{modeLine: modeLine})
}

// tuiSend delivers a message if the TUI is running; a no-op in tray mode.
func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func tuiTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	tuiOnce.Do(func() { close(tuiReady) })
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tickMsg:
		return m, tuiTick()

	case RecordingStartMsg:
		m.state = tuiStateRecording
		m.recordStart = time.Now()
		m.audioLevel = 0
		m.lastErr = ""

	case RecordingStopMsg:
		m.state = tuiStateWorking
		m.audioLevel = 0

	case AudioLevelMsg:
		if m.state == tuiStateRecording {
			// smoothed so the meter doesn't flicker
			m.audioLevel = m.audioLevel*0.6 + msg.Level*0.4
		}

	case ResultMsg:
		m.state = tuiStateIdle
		m.noSpeech = msg.NoSpeech
		if !msg.NoSpeech {
			m.lastText = msg.Text
			m.count++
		}

	case ErrorMsg:
		m.state = tuiStateIdle
		m.lastErr = msg.Text

	case ModeLineMsg:
		m.modeLine = msg.Text
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("dictate") + "  " + idleStyle.Render(m.modeLine) + "\n\n")

	switch m.state {
	case tuiStateRecording:
		dur := time.Since(m.recordStart).Round(time.Second)
		b.WriteString(recStyle.Render(fmt.Sprintf("● recording %s", dur)) + "  " + levelBar(m.audioLevel) + "\n")
	case tuiStateWorking:
		b.WriteString(textStyle.Render("… transcribing") + "\n")
	default:
		b.WriteString(idleStyle.Render("idle") + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.lastErr != "":
		b.WriteString(errStyle.Render("error: "+m.lastErr) + "\n")
	case m.noSpeech:
		b.WriteString(noTextStyle.Render("(no speech detected)") + "\n")
	case m.lastText != "":
		b.WriteString(textStyle.Render(m.lastText) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(fmt.Sprintf("%d transcriptions · hotkey toggles · q quits", m.count)))
	return b.String()
}

func levelBar(level float64) string {
	const width = 20
	filled := int(level * 4 * width) // speech RMS rarely exceeds 0.25
	if filled > width {
		filled = width
	}
	return textStyle.Render(strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled))
}
