package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/genregenie/internal/formatter"
	"github.com/desertthunder/genregenie/internal/models"
	"github.com/desertthunder/genregenie/internal/tasks"
)

const (
	appTitle    = "Genre Genie"
	inputPrompt = "Paste a YouTube Music Video URL:"
	buttonLabel = "[ Identify Genre ]"
	inputWidth  = 60
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	IdleView ViewState = iota
	RunningView
	ResolvedView
)

func (v ViewState) String() string {
	switch v {
	case IdleView:
		return "idle"
	case RunningView:
		return "running"
	case ResolvedView:
		return "resolved"
	default:
		return ""
	}
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Predictor
	width        int
	height       int
	input        textinput.Model
	spinner      spinner.Model
	progressChan chan tasks.ProgressUpdate
	doneChan     chan predictionResult
	progress     tasks.ProgressUpdate
	prediction   *models.Prediction
	err          error
	label        string
	dialog       string
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model that submits to engine.
func NewModel(ctx context.Context, engine tasks.Predictor) *Model {
	input := textinput.New()
	input.Placeholder = "https://www.youtube.com/watch?v=..."
	input.Width = inputWidth
	input.Prompt = "> "
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.warn

	return &Model{
		ctx:     ctx,
		view:    IdleView,
		engine:  engine,
		input:   input,
		spinner: s,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if m.view != RunningView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			return m, m.waitForProgress()
		case MsgPredictionComplete:
			m.complete(msg.data.(predictionResult))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the form, the result region and any open dialog.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(appTitle))
	b.WriteString("\n")
	b.WriteString(inputPrompt)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderButton())
	b.WriteString("\n\n")

	if m.dialog != "" {
		b.WriteString(m.renderDialog())
	} else {
		b.WriteString(m.renderResult())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.dialog != "" {
		if key.Matches(msg, m.keys.dismiss) {
			m.dialog = ""
			m.err = nil
			m.view = IdleView
		}
		return m, nil
	}

	switch {
	case m.view == RunningView:
		if msg.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit clears the prior result and parses the input before any network call is made.
func (m *Model) submit() tea.Cmd {
	m.prediction = nil
	m.err = nil
	m.label = ""
	m.progress = tasks.ProgressUpdate{}
	m.view = IdleView

	id, err := models.ParseVideoID(m.input.Value())
	if err != nil {
		m.err = err
		m.dialog = formatter.DialogMessage(err)
		return nil
	}

	m.view = RunningView
	return tea.Batch(m.startPrediction(id), m.spinner.Tick)
}

// startPrediction runs the pipeline in a goroutine.
//
// The outcome is sent on doneChan before progressChan is closed.
func (m *Model) startPrediction(id models.VideoID) tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan predictionResult, 1)
	m.progressChan = progress
	m.doneChan = done

	ctx := m.ctx
	engine := m.engine
	go func() {
		prediction, err := engine.Predict(ctx, id, progress)
		done <- predictionResult{prediction: prediction, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return nil
		}

		update, ok := <-progress
		if !ok {
			return predictionCompleteMsg(<-done)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) complete(result predictionResult) {
	m.progressChan = nil
	m.doneChan = nil
	m.prediction = result.prediction
	m.err = result.err

	switch formatter.Classify(result.err) {
	case formatter.Dialog:
		m.dialog = formatter.DialogMessage(result.err)
		m.view = IdleView
	default:
		m.label = formatter.Label(result.prediction, result.err)
		m.view = ResolvedView
	}
}

func (m *Model) renderButton() string {
	if m.view == RunningView {
		return styles.disabled.Render(buttonLabel)
	}
	return styles.button.Render(buttonLabel)
}

func (m *Model) renderResult() string {
	switch m.view {
	case RunningView:
		msg := m.progress.Message
		if msg == "" {
			msg = "Working..."
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), msg)
	case ResolvedView:
		if m.err != nil {
			return styles.err.Render(m.label)
		}
		if !m.prediction.Found() {
			return styles.warn.Render(m.label)
		}
		return styles.ok.Render(m.label)
	default:
		return ""
	}
}

func (m *Model) renderDialog() string {
	return styles.dialog.Render(fmt.Sprintf("%s\n\n%s", styles.err.Render(m.dialog), m.help.ShortHelpView([]key.Binding{m.keys.dismiss})))
}

func (m *Model) renderHelp() string {
	if m.view == RunningView {
		return m.help.ShortHelpView([]key.Binding{m.keys.quit})
	}
	return m.help.View(m.keys)
}
