// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/chat"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/gateway"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/ui/styles"
)

// =============================================================================
// PICKER KINDS
// =============================================================================

type pickerKind int

const (
	pickerNone pickerKind = iota
	pickerCountry
	pickerTopic
	pickerModel
	pickerSession
)

// =============================================================================
// APP MODEL
// =============================================================================

// App is the Bubble Tea model for the whole client.
type App struct {
	manager *chat.Manager
	gw      *gateway.Client
	theme   *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	picker   list.Model
	picking  pickerKind

	// Metadata
	countries []string
	topics    []string
	models    []model.Info

	// Mirrored state (updated only from store notifications)
	selection model.Selection
	sessions  []*model.ChatSession
	activeID  int64
	hasActive bool
	loading   bool
	examples  []string
	sources   []string

	// Rendered transcript lines for the active session.
	transcript []string
	renderer   *glamour.TermRenderer

	showExamples bool
	statusMsg    string
}

// NewApp wires the TUI to the lifecycle manager and gateway.
func NewApp(manager *chat.Manager, gw *gateway.Client, showExamples bool) *App {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask about visas, insurance, safety or immigration..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Cyan)

	picker := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	picker.SetShowHelp(false)
	picker.SetShowStatusBar(false)

	return &App{
		manager:      manager,
		gw:           gw,
		theme:        theme,
		input:        input,
		spinner:      sp,
		picker:       picker,
		showExamples: showExamples,
		selection:    manager.Store().Selection(),
	}
}

// Init loads backend metadata and starts the spinner.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadMetadata(), a.spinner.Tick, textinput.Blink)
}

// =============================================================================
// COMMANDS
// =============================================================================

func (a *App) loadMetadata() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		countries := a.gw.GetCountries(ctx)
		topics := a.gw.GetTopics(ctx)
		models := a.manager.RefreshModels(ctx)
		a.manager.RefreshContext(ctx)
		return MetadataLoadedMsg{Countries: countries, Topics: topics, Models: models}
	}
}

func (a *App) createChat() tea.Cmd {
	return func() tea.Msg {
		session, err := a.manager.CreateNewChat(context.Background())
		return ChatCreatedMsg{Session: session, Err: err}
	}
}

func (a *App) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		user, bot, _ := a.manager.SendMessage(context.Background(), text)
		return ExchangeDoneMsg{User: user, Bot: bot}
	}
}

func (a *App) applyCountry(key string) tea.Cmd {
	return func() tea.Msg {
		a.manager.UpdateCountry(context.Background(), key)
		return ModelsRefreshedMsg{Models: a.manager.Models()}
	}
}

func (a *App) applyTopic(key string) tea.Cmd {
	return func() tea.Msg {
		a.manager.UpdateTopic(context.Background(), key)
		return ModelsRefreshedMsg{Models: a.manager.Models()}
	}
}

func (a *App) applySession(id int64) tea.Cmd {
	return func() tea.Msg {
		a.manager.SelectChat(context.Background(), id)
		return ModelsRefreshedMsg{Models: a.manager.Models()}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case MetadataLoadedMsg:
		a.countries = msg.Countries
		a.topics = msg.Topics
		a.models = msg.Models
		return a, nil

	case ModelsRefreshedMsg:
		a.models = msg.Models
		return a, nil

	case SelectionChangedMsg:
		a.selection = msg.Selection
		return a, nil

	case SessionListChangedMsg:
		a.sessions = msg.Sessions
		return a, nil

	case ActiveSessionChangedMsg:
		a.activeID = msg.Session.ID
		a.hasActive = true
		a.rebuildTranscript(msg.Session.Messages)
		return a, nil

	case LoadingChangedMsg:
		a.loading = msg.Loading
		return a, nil

	case MessageAppendedMsg:
		if a.hasActive && msg.SessionID == a.activeID {
			a.rebuildTranscript(msg.Transcript)
		}
		return a, nil

	case ContextChangedMsg:
		a.examples = msg.Examples
		a.sources = msg.Sources
		return a, nil

	case ChatCreatedMsg:
		if msg.Err != nil {
			a.statusMsg = msg.Err.Error()
		} else {
			a.statusMsg = ""
		}
		return a, nil

	case ExchangeDoneMsg:
		// Transcript already updated through MessageAppendedMsg.
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Picker mode swallows everything except apply/cancel.
	if a.picking != pickerNone {
		switch msg.String() {
		case "esc":
			a.picking = pickerNone
			return a, nil
		case "enter":
			return a.applyPicker()
		}
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "enter":
		text := a.input.Value()
		if strings.TrimSpace(text) == "" || a.loading || !a.hasActive {
			return a, nil
		}
		a.input.Reset()
		return a, a.sendMessage(text)
	case "ctrl+n":
		if a.loading {
			return a, nil
		}
		return a, a.createChat()
	case "ctrl+k":
		a.openPicker(pickerCountry)
		return a, nil
	case "ctrl+t":
		a.openPicker(pickerTopic)
		return a, nil
	case "ctrl+o":
		a.openPicker(pickerModel)
		return a, nil
	case "ctrl+l":
		a.openPicker(pickerSession)
		return a, nil
	case "ctrl+e":
		a.showExamples = !a.showExamples
		a.resize(a.width, a.height)
		return a, nil
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// =============================================================================
// PICKERS
// =============================================================================

func (a *App) openPicker(kind pickerKind) {
	items := []list.Item{}
	title := ""

	switch kind {
	case pickerCountry:
		title = "Country"
		for _, key := range a.countries {
			items = append(items, pickerItem{id: key, title: catalog.CountryLabel(key)})
		}
	case pickerTopic:
		title = "Topic"
		for _, key := range a.topics {
			items = append(items, pickerItem{id: key, title: catalog.TopicLabel(key)})
		}
	case pickerModel:
		title = "Model"
		for _, m := range a.models {
			items = append(items, pickerItem{id: m.ID, title: m.Name, desc: m.ID})
		}
	case pickerSession:
		title = "Sessions"
		for _, s := range a.sessions {
			items = append(items, sessionItem{session: s})
		}
	}

	a.picker.SetItems(items)
	a.picker.Title = title
	a.picker.SetSize(a.pickerWidth(), a.pickerHeight())
	a.picking = kind
}

func (a *App) applyPicker() (tea.Model, tea.Cmd) {
	kind := a.picking
	a.picking = pickerNone

	switch kind {
	case pickerCountry:
		if item, ok := a.picker.SelectedItem().(pickerItem); ok {
			return a, a.applyCountry(item.id)
		}
	case pickerTopic:
		if item, ok := a.picker.SelectedItem().(pickerItem); ok {
			return a, a.applyTopic(item.id)
		}
	case pickerModel:
		if item, ok := a.picker.SelectedItem().(pickerItem); ok {
			a.manager.UpdateModel(item.id)
		}
	case pickerSession:
		if item, ok := a.picker.SelectedItem().(sessionItem); ok {
			return a, a.applySession(item.session.ID)
		}
	}
	return a, nil
}

func (a *App) pickerWidth() int {
	w := a.width - 8
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) pickerHeight() int {
	h := a.height - 6
	if h > 20 {
		h = 20
	}
	if h < 5 {
		h = 5
	}
	return h
}

// =============================================================================
// PICKER ITEMS
// =============================================================================

type pickerItem struct {
	id    string
	title string
	desc  string
}

func (i pickerItem) Title() string       { return i.title }
func (i pickerItem) Description() string { return i.desc }
func (i pickerItem) FilterValue() string { return i.title }

type sessionItem struct {
	session *model.ChatSession
}

func (i sessionItem) Title() string { return i.session.Title }
func (i sessionItem) Description() string {
	last := i.session.LastMessage()
	if last == nil {
		return "empty"
	}
	return last.Preview(60)
}
func (i sessionItem) FilterValue() string { return i.session.Title }
