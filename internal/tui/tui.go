// Package tui provides a Bubble Tea terminal user interface for spotify-downloader.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/spotify-downloader/internal/config"
	"github.com/handiism/spotify-downloader/internal/download"
	"github.com/handiism/spotify-downloader/internal/spotify"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1DB954")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1DB954")).
			Padding(1, 2)

	collectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many log lines the UI keeps.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateLogin State = iota
	StateLoggingIn
	StateInput
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// ConnectFunc opens a session with the given credentials.
type ConnectFunc func(ctx context.Context, creds spotify.Credentials, deviceName string) (spotify.Session, error)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	username  textinput.Model
	password  textinput.Model
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	names     []string
	results   []download.Result
	err       error

	connect ConnectFunc
	session spotify.Session

	// Download context. run counts resets; messages from earlier runs are dropped.
	ctx    context.Context
	cancel context.CancelFunc
	run    int

	// Manager events are pushed to events and forwarded to the program by Run.
	events chan<- download.ProgressEvent
	done   <-chan struct{}

	manager *download.Manager

	// Download progress
	totalTracks     int32
	processedTracks int32
	receivedBytes   int64

	// Options
	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model. events and done may be nil, in which
// case manager events are not shown.
func NewModel(settings *config.Settings, connect ConnectFunc, events chan<- download.ProgressEvent, done <-chan struct{}) Model {
	user := textinput.New()
	user.Placeholder = "username"
	user.Focus()
	user.CharLimit = 200
	user.Width = 40

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 200
	pass.Width = 40

	ti := textinput.New()
	ti.Placeholder = "https://open.spotify.com/album/... or tracks.txt"
	ti.CharLimit = 2000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateLogin,
		username:  user,
		password:  pass,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		connect:   connect,
		ctx:       ctx,
		cancel:    cancel,
		events:    events,
		done:      done,
		playlist:  settings.CreatePlaylist,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when the manager reports progress.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// LoginDoneMsg is sent when the login attempt finishes.
	LoginDoneMsg struct {
		Session spotify.Session
		Err     error
		run     int
	}

	// InitDoneMsg is sent when reference resolution completes.
	InitDoneMsg struct {
		Names   []string
		Manager *download.Manager
		Err     error
		run     int
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Received  int64
		Processed int32
		Total     int32
		Results   []download.Result
		Err       error
		run       int
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			m.closeSession()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateLogin, StateInput:
				m.closeSession()
				return m, tea.Quit
			case StateLoggingIn, StateInitializing, StateDownloading:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "tab", "shift+tab", "up", "down":
			if m.state == StateLogin {
				m.toggleLoginFocus()
				return m, nil
			}

		case "enter":
			switch {
			case m.state == StateLogin && m.username.Focused():
				m.toggleLoginFocus()
				return m, nil
			case m.state == StateLogin && m.username.Value() != "" && m.password.Value() != "":
				m.state = StateLoggingIn
				return m, tea.Batch(m.login(), m.spinner.Tick)
			case m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "":
				m.state = StateInitializing
				return m, tea.Batch(m.initializeDownload(), m.spinner.Tick)
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				m.closeSession()
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case LoginDoneMsg:
		if msg.run != m.run || m.state != StateLoggingIn {
			// Cancelled while logging in.
			if msg.Session != nil {
				msg.Session.Close()
			}
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.session = msg.Session
		m.password.SetValue("")
		m.state = StateInput
		m.textInput.Focus()

	case InitDoneMsg:
		if msg.run != m.run || m.state != StateInitializing {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.names = msg.Names
			m.manager = msg.Manager
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		if msg.run != m.run {
			return m, nil
		}
		m.receivedBytes = msg.Received
		m.processedTracks = msg.Processed
		m.totalTracks = msg.Total
		m.results = msg.Results
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.receivedBytes, m.processedTracks, m.totalTracks = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	switch m.state {
	case StateLogin:
		var cmd tea.Cmd
		if m.username.Focused() {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		cmds = append(cmds, cmd)
	case StateInput:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) toggleLoginFocus() {
	if m.username.Focused() {
		m.username.Blur()
		m.password.Focus()
		return
	}
	m.password.Blur()
	m.username.Focus()
}

// reset prepares a new download. A live session is kept, otherwise the
// login screen is shown again.
func (m *Model) reset() {
	m.logs = nil
	m.names = nil
	m.results = nil
	m.err = nil
	m.processedTracks = 0
	m.totalTracks = 0
	m.receivedBytes = 0
	m.manager = nil
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.run++

	if m.session == nil {
		m.state = StateLogin
		m.password.SetValue("")
		m.password.Blur()
		m.username.Focus()
		return
	}
	m.state = StateInput
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func (m *Model) closeSession() {
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
}

func (m Model) percent() float64 {
	if m.totalTracks == 0 {
		return 0
	}
	return float64(m.processedTracks) / float64(m.totalTracks)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ Spotify Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download Ogg Vorbis tracks, albums and playlists"))
	b.WriteString("\n\n")

	switch m.state {
	case StateLogin:
		b.WriteString(m.viewLogin())
	case StateLoggingIn:
		b.WriteString(m.viewWaiting("Logging in as " + m.username.Value() + "..."))
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewWaiting("Resolving references..."))
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Log in:"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Device name: %s", m.settings.DeviceName)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter track, album or playlist links, or a tracks file:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create playlist (ctrl+p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+l)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadsPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewWaiting(label string) string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if len(m.names) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d collection(s):", len(m.names))))
		b.WriteString("\n")
		for _, name := range m.names {
			b.WriteString(collectionStyle.Render("  ♪ " + name))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Tracks: %d/%d | Downloaded: %.2f MB",
		m.processedTracks,
		m.totalTracks,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	counts := make(map[download.Status]int)
	for _, r := range m.results {
		counts[r.Status]++
	}

	return boxStyle.Render(fmt.Sprintf(
		"✨ Download Complete!\n\n"+
			"Downloaded: %d\n"+
			"Skipped: %d\n"+
			"Unavailable: %d\n"+
			"Failed: %d\n"+
			"Size: %.2f MB",
		counts[download.StatusDownloaded],
		counts[download.StatusSkipped],
		counts[download.StatusUnavailable],
		counts[download.StatusFailed],
		float64(m.receivedBytes)/1024/1024,
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateLogin:
		return "tab: next field • enter: log in • esc: quit"
	case StateInput:
		return "enter: start • ctrl+p: playlist • ctrl+l: verbose • esc: quit"
	case StateLoggingIn, StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// login opens the session in the background.
func (m *Model) login() tea.Cmd {
	ctx := m.ctx
	creds := spotify.Credentials{Username: m.username.Value(), Password: m.password.Value()}
	deviceName := m.settings.DeviceName
	connect := m.connect
	run := m.run

	return func() tea.Msg {
		session, err := connect(ctx, creds, deviceName)
		return LoginDoneMsg{Session: session, Err: err, run: run}
	}
}

// initializeDownload resolves the entered references and creates the manager.
func (m *Model) initializeDownload() tea.Cmd {
	ctx := m.ctx
	value := m.textInput.Value()
	session := m.session
	run := m.run

	onProgress := forwarder(m.events, m.done)

	settings := *m.settings
	settings.CreatePlaylist = m.playlist

	return func() tea.Msg {
		input, err := openReferences(value)
		if err != nil {
			return InitDoneMsg{Err: err, run: run}
		}
		defer input.Close()

		manager := download.NewManager(&settings, session, onProgress)
		if err := manager.Initialize(ctx, input); err != nil {
			return InitDoneMsg{Err: err, run: run}
		}

		return InitDoneMsg{
			Names:   manager.GetCollectionNames(),
			Manager: manager,
			run:     run,
		}
	}
}

// forwarder returns a progress callback that hands events to Run. Events
// are dropped once done is closed.
func forwarder(events chan<- download.ProgressEvent, done <-chan struct{}) func(download.ProgressEvent) {
	return func(event download.ProgressEvent) {
		if events == nil {
			return
		}
		select {
		case events <- event:
		case <-done:
		}
	}
}

// startDownload starts the actual download in background.
func (m *Model) startDownload() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	run := m.run

	return func() tea.Msg {
		if manager == nil {
			return DownloadDoneMsg{Err: fmt.Errorf("no manager"), run: run}
		}

		err := manager.StartDownloads(ctx)
		received, processed, total := manager.GetProgress()

		return DownloadDoneMsg{
			Received:  received,
			Processed: processed,
			Total:     total,
			Results:   manager.Results(),
			Err:       err,
			run:       run,
		}
	}
}

// openReferences returns the lines to resolve: the contents of value when
// it names a file, otherwise its space or comma separated references.
func openReferences(value string) (io.ReadCloser, error) {
	value = strings.TrimSpace(value)
	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		return os.Open(value)
	}

	refs := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(refs) == 0 {
		return nil, fmt.Errorf("no references given")
	}
	return io.NopCloser(strings.NewReader(strings.Join(refs, "\n"))), nil
}

// Run starts the TUI application.
func Run(settings *config.Settings, connect ConnectFunc) error {
	events := make(chan download.ProgressEvent, 64)
	done := make(chan struct{})

	p := tea.NewProgram(NewModel(settings, connect, events, done), tea.WithAltScreen())

	var g errgroup.Group
	g.Go(func() error {
		defer close(done)
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		for {
			select {
			case event := <-events:
				p.Send(ProgressMsg{Event: event})
			case <-done:
				return nil
			}
		}
	})

	return g.Wait()
}
