// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for BuzzLink.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gt-buzzlink/buzzlink/internal/session"
	"github.com/gt-buzzlink/buzzlink/internal/ui/components"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
)

// inputCharLimit caps the length of a single query.
const inputCharLimit = 2000

// endpointBackend is implemented by backends whose endpoint can change at
// runtime, such as *chatapi.Client.
type endpointBackend interface {
	SetBaseURL(string)
	Endpoint() string
}

// Options configures a chat Model.
type Options struct {
	Backend        session.Backend
	Session        *session.Session // nil creates a new session
	Endpoint       string           // shown in the header and status bar
	ShowWelcome    bool
	RenderMarkdown bool
	MarkdownStyle  string // "dark", "light" or "auto"
	Hyperlinks     bool
	Logger         *zap.Logger
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the chat view.
// Session and component fields are pointers so copies made by Update share
// the same transcript.
type Model struct {
	theme   *styles.Theme
	session *session.Session
	backend session.Backend
	log     *zap.Logger

	// Bubbles
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Components
	header    *components.Header
	statusBar *components.StatusBar
	welcome   *components.Welcome
	footer    *components.Footer
	toasts    *components.ToastManager
	markdown  *components.MarkdownRenderer

	endpoint    string
	showWelcome bool
	hyperlinks  bool

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a chat model.
func New(theme *styles.Theme, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New(session.Config{Logger: log})
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = components.InputPlaceholder
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.CharLimit = inputCharLimit
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner.Bubble()
	sp.Style = theme.Spinner

	var md *components.MarkdownRenderer
	if opts.RenderMarkdown {
		md = components.NewMarkdownRenderer(opts.MarkdownStyle)
	}

	m := Model{
		theme:       theme,
		session:     sess,
		backend:     opts.Backend,
		log:         log.Named("tui"),
		viewport:    vp,
		input:       ti,
		spinner:     sp,
		keyMap:      DefaultKeyMap(),
		header:      components.NewHeader(theme),
		statusBar:   components.NewStatusBar(theme),
		welcome:     components.NewWelcome(theme),
		footer:      components.NewFooter(theme),
		toasts:      components.NewToastManager(theme),
		markdown:    md,
		showWelcome: opts.ShowWelcome,
		hyperlinks:  opts.Hyperlinks,
		width:       80,
		height:      24,
	}
	m.setEndpoint(opts.Endpoint)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Session returns the session backing the view.
func (m Model) Session() *session.Session {
	return m.session
}

// Endpoint returns the endpoint currently shown.
func (m Model) Endpoint() string {
	return m.endpoint
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) setEndpoint(endpoint string) {
	if endpoint == "" {
		if eb, ok := m.backend.(endpointBackend); ok {
			endpoint = eb.Endpoint()
		}
	}
	m.endpoint = endpoint
	m.header.SetEndpoint(endpoint)
	m.statusBar.SetEndpoint(endpoint)
}
