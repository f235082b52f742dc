package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// builds the relay endpoint from the server base URL
func wsEndpoint(serverURL string) string {
	endpoint := strings.Replace(serverURL, "http://", "ws://", 1)
	endpoint = strings.Replace(endpoint, "https://", "wss://", 1)

	return strings.TrimRight(endpoint, "/") + "/api/v1/ws"
}

func NewApp(serverURL, displayName string) *Model {
	return &Model{
		state:   StateWelcome,
		welcome: NewWelcome(displayName),
		chat:    NewChatModel(NewWSClient(wsEndpoint(serverURL)), displayName),
		mentor:  NewMentorModel(NewMentorClient(strings.TrimRight(serverURL, "/"))),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// only quit from welcome screen, not from the inner views
		if msg.String() == "ctrl+c" && m.state == StateWelcome {
			return m, tea.Quit
		}

		// in a view, ctrl+c goes back to welcome
		if msg.String() == "ctrl+c" {
			m.state = StateWelcome
			m.err = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// size both views so entering either starts laid out
		m.chat, _ = m.chat.Update(msg)
		m.mentor, _ = m.mentor.Update(msg)
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterChatMsg:
		m.state = StateChat
		m.err = nil
		return m, m.chat.Init()

	case EnterMentorMsg:
		m.state = StateMentor
		m.err = nil
		return m, m.mentor.Init()
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcome(msg)

	case StateChat:
		return m.updateChat(msg)

	case StateMentor:
		return m.updateMentor(msg)

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateChat:
		return m.chat.View()

	case StateMentor:
		return m.mentor.View()

	default:
		return "Unknown state"
	}
}

func (m *Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.welcome, cmd = m.welcome.Update(msg)

	return m, cmd
}

func (m *Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)

	return m, cmd
}

func (m *Model) updateMentor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.mentor, cmd = m.mentor.Update(msg)

	return m, cmd
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to exit\n", err)
}
