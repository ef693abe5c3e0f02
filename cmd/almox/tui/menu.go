package tui

import (
	"strings"

	"github.com/almoxarifado/almox/internal/commands"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// menuLevel tracks a position in the navigation stack.
type menuLevel struct {
	title  string
	items  []menuItem
	cursor int
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items    []menuItem // top-level items
	cursor   int
	stack    []menuLevel // navigation stack (pushed on drill-in)
	state    commands.MenuState
	width    int
	height   int
	Version  string
	Quitting bool
	Selected MenuAction // set when a leaf action is chosen
}

// NewMenuModel creates a menu model from detected state.
func NewMenuModel(state commands.MenuState) MenuModel {
	return MenuModel{
		items: BuildMenuItems(state),
		state: state,
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// currentItems returns the items visible at the current navigation depth.
func (m MenuModel) currentItems() []menuItem {
	if len(m.stack) == 0 {
		return m.items
	}
	return m.stack[len(m.stack)-1].items
}

// currentTitle returns the title of the current submenu, or "" for top level.
func (m MenuModel) currentTitle() string {
	if len(m.stack) == 0 {
		return ""
	}
	return m.stack[len(m.stack)-1].title
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		items := m.currentItems()

		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}

		case "enter":
			if m.cursor >= 0 && m.cursor < len(items) {
				selected := items[m.cursor]
				if selected.isCategory() {
					m.stack = append(m.stack, menuLevel{
						title:  selected.label,
						items:  selected.children,
						cursor: m.cursor,
					})
					m.cursor = 0
				} else {
					m.Selected = selected.action
					return m, tea.Quit
				}
			}

		case "esc":
			if len(m.stack) > 0 {
				prev := m.stack[len(m.stack)-1]
				m.stack = m.stack[:len(m.stack)-1]
				m.cursor = prev.cursor
			} else {
				m.Quitting = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m MenuModel) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	subtle := lipgloss.NewStyle().Foreground(colorSubtext0)

	b.WriteString(TitleStyle.Render("almox"))
	if title := m.currentTitle(); title != "" {
		b.WriteString(subtle.Render(" > " + title))
		b.WriteString("\n\n")
	} else {
		if m.Version != "" {
			b.WriteString(" " + subtle.Render("v"+m.Version))
		}
		b.WriteString("\n")
		b.WriteString(subtle.Render(buildStatusSummary(m.state)))
		b.WriteString("\n\n")
	}

	items := m.currentItems()
	for i, item := range items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(colorBlue)
		}

		line := cursor + style.Render(item.label)
		if item.desc != "" {
			line += " " + subtle.Render(item.desc)
		}
		if item.isCategory() {
			line += " " + subtle.Render(">")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if len(m.stack) > 0 {
		b.WriteString(HintStyle.Render("esc voltar  q sair"))
	} else {
		b.WriteString(HintStyle.Render("q sair"))
	}
	b.WriteString("\n")

	content := b.String()
	if m.width > 0 {
		boxStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(1, 2).
			Width(min(m.width-2, 56))
		content = boxStyle.Render(content)
	}

	return content
}

// buildStatusSummary returns a one-line session summary for the menu header.
func buildStatusSummary(state commands.MenuState) string {
	var parts []string
	switch {
	case !state.HasToken:
		parts = append(parts, "sem token")
	case state.Subject != "":
		parts = append(parts, "usuário: "+state.Subject)
	default:
		parts = append(parts, "token definido")
	}
	if state.Admin {
		parts = append(parts, "ADMIN")
	}
	if state.TokenExpired {
		parts = append(parts, "token expirado")
	}
	if state.APIURL != "" {
		parts = append(parts, state.APIURL)
	}
	return strings.Join(parts, " | ")
}
