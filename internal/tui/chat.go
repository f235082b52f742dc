package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/devmentor/server/internal/chat"
)

// community chat room view
type ChatModel struct {
	client      *WSClient
	displayName string
	input       textinput.Model
	viewport    viewport.Model
	lines       []string
	onlineCount int
	typingUsers map[string]bool
	wasTyping   bool
	connected   bool
	width       int
	height      int
	ready       bool
	err         error
}

// returns a new chat room view
func NewChatModel(client *WSClient, displayName string) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "say something..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputStyle

	return &ChatModel{
		client:      client,
		displayName: displayName,
		input:       ti,
		typingUsers: make(map[string]bool),
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return m.client.ConnectCmd()
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case WSConnectedMsg:
		m.connected = true

		if err := m.client.Join(m.displayName); err != nil {
			m.err = err
			return m, nil
		}

		return m, m.client.WaitForEventCmd()

	case WSConnectErrorMsg:
		m.err = msg.err
		return m, nil

	case WSClosedMsg:
		m.connected = false
		m.appendLine(systemStyle.Render("* connection closed"))
		return m, nil

	case ChatEventMsg:
		m.handleEvent(msg.event)
		return m, m.client.WaitForEventCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" && m.connected {
				if err := m.client.SendChatMessage(m.displayName, text); err != nil {
					m.err = err
				}
				m.input.SetValue("")
				m.stopTypingIfNeeded()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6

		viewportHeight := max(msg.Height-7, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true
			m.refreshViewport()
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
	}

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	m.syncTypingState(before)

	return m, cmd
}

// routes a relay event into the transcript and presence state
func (m *ChatModel) handleEvent(ev chat.Event) {
	switch ev.Type {
	case chat.TypeExistingMessages:
		var history []ChatMessage
		if err := json.Unmarshal(ev.Payload, &history); err != nil {
			return
		}

		for _, msg := range history {
			m.appendLine(m.renderMessage(msg))
		}

	case chat.TypeMessage:
		var msg ChatMessage
		if err := json.Unmarshal(ev.Payload, &msg); err != nil {
			return
		}

		m.appendLine(m.renderMessage(msg))

	case chat.TypeUserJoined:
		var p chat.PresencePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}

		m.appendLine(systemStyle.Render(fmt.Sprintf("* %s joined", p.DisplayName)))

	case chat.TypeUserLeft:
		var p chat.PresencePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}

		delete(m.typingUsers, p.DisplayName)
		m.appendLine(systemStyle.Render(fmt.Sprintf("* %s left", p.DisplayName)))

	case chat.TypeOnlineUsers:
		var count int
		if err := json.Unmarshal(ev.Payload, &count); err != nil {
			return
		}

		m.onlineCount = count

	case chat.TypeUserTyping:
		var p chat.PresencePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}

		m.typingUsers[p.DisplayName] = true

	case chat.TypeUserStoppedTyping:
		var p chat.PresencePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}

		delete(m.typingUsers, p.DisplayName)
	}
}

func (m *ChatModel) renderMessage(msg ChatMessage) string {
	style := senderStyle
	if msg.DisplayName == m.displayName {
		style = ownSenderStyle
	}

	return fmt.Sprintf("%s %s", style.Render(msg.DisplayName+":"), msg.Text)
}

func (m *ChatModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshViewport()
}

func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// emits typing/stopTyping when the input transitions between empty
// and non-empty
func (m *ChatModel) syncTypingState(before string) {
	now := m.input.Value()

	if !m.connected {
		return
	}

	if before == "" && now != "" && !m.wasTyping {
		m.wasTyping = true
		m.client.Typing(m.displayName) //nolint:errcheck,gosec // best-effort indicator
	}

	if now == "" && m.wasTyping {
		m.stopTypingIfNeeded()
	}
}

func (m *ChatModel) stopTypingIfNeeded() {
	if m.wasTyping {
		m.wasTyping = false
		m.client.StopTyping(m.displayName) //nolint:errcheck,gosec // best-effort indicator
	}
}

func (m *ChatModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWhite).
		Render("COMMUNITY CHAT")

	presence := presenceStyle.Render(fmt.Sprintf("%d online", m.onlineCount))

	status := ""
	if !m.connected {
		status = errorStyle.Render(" [disconnected]")
	}

	help := helpStyle.Render("[Enter: Send] [Ctrl+C: Back]")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, header, "  ", presence, status))
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(m.typingLine())
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(help)

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
	}

	return b.String()
}

func (m *ChatModel) typingLine() string {
	if len(m.typingUsers) == 0 {
		return ""
	}

	names := make([]string, 0, len(m.typingUsers))
	for name := range m.typingUsers {
		names = append(names, name)
	}

	sort.Strings(names)

	verb := "is"
	if len(names) > 1 {
		verb = "are"
	}

	return typingStyle.Render(fmt.Sprintf("%s %s typing...", strings.Join(names, ", "), verb))
}
