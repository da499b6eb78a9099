package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jii-iin/weathermix/internal/shared"
	"github.com/jii-iin/weathermix/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FormView ViewState = iota
	RunningView
	ResultsView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	engine     *tasks.MixEngine
	canPublish bool
	width      int
	height     int

	// Form state.
	city     textinput.Model
	keywords textinput.Model
	modeIdx  int
	limit    int
	minBPM   int
	publish  bool
	focus    int

	// Run state.
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	spinner      spinner.Model
	runResult    *tasks.MixResult
	runErr       error

	// Results state.
	result        *tasks.MixResult
	trackList     list.Model
	publishStatus string

	status string // form-level status from the previous run
	help   help.Model
	keys   keyMap
}

type progressMsg tasks.ProgressUpdate

type mixDoneMsg struct {
	result *tasks.MixResult
	err    error
}

// NewModel creates a new TUI model around the mix engine. canPublish gates the
// publish checkbox; pass false when no user session is available.
func NewModel(ctx context.Context, engine *tasks.MixEngine, canPublish bool) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.focused

	return &Model{
		ctx:        ctx,
		view:       FormView,
		engine:     engine,
		canPublish: canPublish,
		city:       newCityInput(),
		keywords:   newKeywordsInput(),
		limit:      tasks.DefaultTrackLimit,
		minBPM:     tasks.DefaultBPM,
		spinner:    sp,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.trackList.Width() != 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		case RunningView:
			return m.handleRunningKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		}

	case spinner.TickMsg:
		if m.view == RunningView {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case progressMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case mixDoneMsg:
		return m.handleMixDone(msg)
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case RunningView:
		return m.renderRunning()
	case ResultsView:
		return m.renderResults()
	default:
		return ""
	}
}

func (m *Model) handleRunningKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = FormView
		m.result = nil
		m.publishStatus = ""
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

// startRun kicks off the pipeline in a goroutine and begins draining the
// progress channel.
func (m *Model) startRun() tea.Cmd {
	req := tasks.MixRequest{
		City:     m.city.Value(),
		Mode:     m.mode(),
		Limit:    m.limit,
		MinBPM:   float64(m.minBPM),
		Keywords: m.keywords.Value(),
		Publish:  m.publish && m.canPublish,
	}
	if req.City == "" {
		req.City = "Seoul"
	}

	m.view = RunningView
	m.status = ""
	m.runResult = nil
	m.runErr = nil
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Run(m.ctx, req, m.progressChan)
		m.runResult = result
		m.runErr = err
		close(m.progressChan)
	}()

	return tea.Batch(m.spinner.Tick, m.waitForProgress())
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return mixDoneMsg{result: m.runResult, err: m.runErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return mixDoneMsg{result: m.runResult, err: m.runErr}
		}
		return progressMsg(update)
	}
}

// handleMixDone routes a finished run: recoverable failures return to the
// form with a status line, anything with tracks moves to the results view.
func (m *Model) handleMixDone(msg mixDoneMsg) (tea.Model, tea.Cmd) {
	m.progressChan = nil

	err := msg.err
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrCityNotFound):
		m.status = "날씨 정보를 찾을 수 없습니다."
		m.view = FormView
		return m, nil
	case errors.Is(err, shared.ErrNoResults):
		m.status = "추천 결과가 없습니다."
		m.view = FormView
		return m, nil
	case errors.Is(err, shared.ErrPlaylistCreate):
		// Tracks were generated; only the publish step failed.
		m.publishStatus = fmt.Sprintf("플레이리스트 생성 실패: %v", err)
	default:
		m.status = fmt.Sprintf("Error: %v", err)
		m.view = FormView
		return m, nil
	}

	m.result = msg.result
	items := make([]list.Item, len(m.result.Tracks))
	for i, track := range m.result.Tracks {
		items[i] = trackItem{track: track}
	}
	m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.trackList.Title = fmt.Sprintf("🎵 %s", m.result.Query)
	m.trackList.SetShowHelp(false)
	if m.width > 0 {
		m.trackList.SetSize(m.width-4, m.height-10)
	}
	m.view = ResultsView
	return m, nil
}

func (m *Model) renderRunning() string {
	title := styles.title.Render("Generating Weather Mix")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchWeather:
		phase = "Fetching weather..."
	case tasks.MapMood:
		phase = "Mapping mood..."
	case tasks.SearchCatalog:
		phase = "Searching tracks..."
	case tasks.FilterTempo:
		phase = "Filtering by tempo..."
	case tasks.PublishPlaylist:
		phase = "Creating playlist..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s %s\n%s", title, m.spinner.View(), phase, styles.help.Render(m.progress.Message))
}

func (m *Model) renderResults() string {
	w := m.result.Weather
	banner := styles.ok.Render(fmt.Sprintf("%s 현재 날씨: %s / %.1f°C", w.City, w.Description, w.TempC))
	mood := styles.help.Render(fmt.Sprintf("mood: %s", m.result.Mood))

	var publish string
	switch {
	case m.result.Playlist != nil:
		publish = fmt.Sprintf("%s\n%s", styles.ok.Render("✅ 플레이리스트 생성 완료!"), m.result.Playlist.WebURL)
	case m.publishStatus != "":
		publish = styles.err.Render(m.publishStatus)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if publish != "" {
		return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n\n%s", banner, mood, publish, m.trackList.View(), helpView)
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", banner, mood, m.trackList.View(), helpView)
}
