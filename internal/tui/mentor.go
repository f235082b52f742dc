package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// mentor conversation view
type MentorModel struct {
	client     *MentorClient
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	renderer   *glamour.TermRenderer
	transcript []string
	isFetching bool
	width      int
	height     int
	ready      bool
}

// returns a new mentor conversation view
func NewMentorModel(client *MentorClient) *MentorModel {
	ti := textinput.New()
	ti.Placeholder = "ask your mentor anything..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorTeal)

	return &MentorModel{
		client:  client,
		input:   ti,
		spinner: sp,
	}
}

func (m *MentorModel) Init() tea.Cmd {
	return nil
}

func (m *MentorModel) Update(msg tea.Msg) (*MentorModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && !m.isFetching {
			input := strings.TrimSpace(m.input.Value())
			if input != "" {
				m.isFetching = true
				m.input.SetValue("")
				m.appendBlock(ownSenderStyle.Render("you:") + " " + input)

				return m, tea.Batch(m.client.QueryCmd(input), m.spinner.Tick)
			}
			return m, nil
		}

	case MentorResponseMsg:
		m.isFetching = false
		m.appendBlock(senderStyle.Render("mentor:") + "\n" + m.renderMarkdown(msg.reply))

		if msg.ide != "" {
			m.appendBlock(infoStyle.Render("suggested code:") + "\n" + msg.ide)
		}

		m.input.Focus()
		return m, nil

	case MentorErrorMsg:
		m.isFetching = false
		m.appendBlock(errorStyle.Render(fmt.Sprintf("error: %v", msg.err)))
		m.input.Focus()
		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6

		viewportHeight := max(msg.Height-6, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(msg.Width-8),
			)
			if err == nil {
				m.renderer = renderer
			}

			m.refreshViewport()
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// mentor replies are markdown; fall back to plain text if the
// renderer is unavailable
func (m *MentorModel) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

func (m *MentorModel) appendBlock(block string) {
	m.transcript = append(m.transcript, block)
	m.refreshViewport()
}

func (m *MentorModel) refreshViewport() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *MentorModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWhite).
		Render("AI MENTOR")

	help := helpStyle.Render("[Enter: Ask] [Ctrl+C: Back]")

	b.WriteString(header)
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View() + infoStyle.Render(" thinking..."))
	}
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(help)

	return b.String()
}
