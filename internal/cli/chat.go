// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler.
//
// Handles the "readytogo chat" command: a line-based REPL against the
// same lifecycle manager the TUI uses, with input history.
//
// Examples:
//   readytogo chat                          Chat with configured defaults
//   readytogo chat --country Japan --topic visa
//   readytogo chat --model phi-2            Preselect a model
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/archive"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/chat"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/config"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/store"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	referenceStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Underline(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// RunChat runs the interactive chat REPL.
func RunChat(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	st := store.New()
	gw := NewGateway(cfg, nil)
	manager := chat.NewManager(st, gw)

	if cfg.UI.ArchiveEnabled {
		if arc, err := archive.OpenDefault(); err == nil {
			manager.SetRecorder(arc)
			defer arc.Close()
		}
	}

	ctx := context.Background()
	manager.UpdateCountry(ctx, cfg.Defaults.Country)
	manager.UpdateTopic(ctx, cfg.Defaults.Topic)
	manager.UpdateModel(cfg.Defaults.Model)
	manager.RefreshModels(ctx)

	input := NewChatCLI()
	defer input.Close()

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	if !args.Quiet {
		fmt.Println(welcomeStyle.Render("Ready To Go - travel regulation chat"))
		fmt.Println(infoStyle.Render("Type /help for commands, /quit to exit."))
		fmt.Println()
	}

	if _, err := manager.CreateNewChat(ctx); err != nil {
		return fmt.Errorf("failed to start chat: %w", err)
	}
	printGreeting(st, args.Quiet)

	for {
		sel := st.Selection()
		prompt := promptStyle.Render(catalog.CountryLabel(sel.Country) + "/" + sel.Topic + "> ")
		text, err := input.ReadInput(prompt)
		if err != nil {
			// Ctrl+C or Ctrl+D ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return nil
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "/") {
			if done := handleSlashCommand(ctx, manager, text, args.Quiet); done {
				return nil
			}
			continue
		}

		_, bot, err := manager.SendMessage(ctx, text)
		if err != nil {
			fmt.Println(warningStyle.Render("send failed: " + err.Error()))
			continue
		}
		if bot == nil {
			continue
		}
		printBotMessage(renderer, bot.Text, bot.References)
	}
}

// handleSlashCommand executes one interactive command. Returns true
// when the session should end.
func handleSlashCommand(ctx context.Context, manager *chat.Manager, text string, quiet bool) bool {
	st := manager.Store()
	fields := strings.Fields(text)
	cmd := fields[0]
	arg := ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(commandStyle.Render("/country NAME  /topic NAME  /model ID  /models"))
		fmt.Println(commandStyle.Render("/new  /sessions  /switch <id>  /examples  /sources  /quit"))

	case "/country":
		if arg == "" {
			fmt.Println(infoStyle.Render("country: " + catalog.CountryLabel(st.Selection().Country)))
			break
		}
		manager.UpdateCountry(ctx, catalog.CountryKey(arg))
		fmt.Println(infoStyle.Render("country set, topic cleared; pick one with /topic"))

	case "/topic":
		if arg == "" {
			fmt.Println(infoStyle.Render("topic: " + catalog.TopicLabel(st.Selection().Topic)))
			break
		}
		manager.UpdateTopic(ctx, catalog.TopicKey(arg))

	case "/model":
		if arg == "" {
			fmt.Println(infoStyle.Render("model: " + st.Selection().Model))
			break
		}
		manager.UpdateModel(arg)

	case "/models":
		for _, m := range manager.Models() {
			marker := "  "
			if m.ID == st.Selection().Model {
				marker = "* "
			}
			fmt.Println(commandStyle.Render(marker+m.ID) + infoStyle.Render("  "+m.Name))
		}

	case "/new":
		if _, err := manager.CreateNewChat(ctx); err != nil {
			fmt.Println(warningStyle.Render(err.Error()))
			break
		}
		printGreeting(st, quiet)

	case "/sessions":
		active := st.GetActiveChat()
		for _, s := range st.Chats() {
			marker := "  "
			if active != nil && s.ID == active.ID {
				marker = "* "
			}
			fmt.Printf("%s%d  %s (%d messages)\n", marker, s.ID, s.Title, s.MessageCount())
		}

	case "/switch":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || !manager.SelectChat(ctx, id) {
			fmt.Println(warningStyle.Render("no such session: " + arg))
			break
		}
		fmt.Println(infoStyle.Render("switched to " + st.GetActiveChat().Title))

	case "/examples":
		examples, _ := st.Context()
		if len(examples) == 0 {
			fmt.Println(infoStyle.Render("no example questions for this selection"))
			break
		}
		for _, ex := range examples {
			fmt.Println(infoStyle.Render("  - " + ex))
		}

	case "/sources":
		_, sources := st.Context()
		if len(sources) == 0 {
			fmt.Println(infoStyle.Render("no document sources for this selection"))
			break
		}
		for _, src := range sources {
			fmt.Println(referenceStyle.Render("  - " + src))
		}

	default:
		fmt.Println(warningStyle.Render("unknown command " + cmd + " (try /help)"))
	}
	return false
}

func printGreeting(st *store.Store, quiet bool) {
	session := st.GetActiveChat()
	if session == nil {
		return
	}
	if !quiet {
		title := session.Title
		if session.Offline {
			title += "  " + warningStyle.Render("[offline]")
		}
		fmt.Println(infoStyle.Render("session: " + title))
	}
	if first := session.LastMessage(); first != nil {
		fmt.Println(first.Text)
	}
	fmt.Println()
}

func printBotMessage(renderer *glamour.TermRenderer, text string, refs []string) {
	body := text
	if renderer != nil {
		if rendered, err := renderer.Render(text); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	fmt.Println(body)
	for _, ref := range refs {
		fmt.Println(referenceStyle.Render("  → " + ref))
	}
	fmt.Println()
}
