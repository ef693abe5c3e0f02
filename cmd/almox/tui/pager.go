package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PageButton is one rendered page button.
type PageButton struct {
	Label  string // 1-based page number
	Index  int    // 0-based page index
	Active bool
}

// Pager renders one button per server-reported page, the current one
// highlighted. It never computes the page count itself.
type Pager struct {
	total  int
	active int
	width  int
}

// SetPages updates the page count and the current index.
func (p *Pager) SetPages(total, active int) {
	p.total = max(total, 0)
	p.active = active
}

// SetWidth sets the available width for rendering.
func (p *Pager) SetWidth(w int) {
	p.width = w
}

// Active returns the current page index.
func (p Pager) Active() int {
	return p.active
}

// Buttons lists the page buttons in order.
func (p Pager) Buttons() []PageButton {
	buttons := make([]PageButton, 0, p.total)
	for i := 0; i < p.total; i++ {
		buttons = append(buttons, PageButton{
			Label:  strconv.Itoa(i + 1),
			Index:  i,
			Active: i == p.active,
		})
	}
	return buttons
}

// Update handles page navigation keys. It emits a PageSelectMsg and leaves
// the active index alone; the owner moves it once the workflow accepts.
func (p Pager) Update(msg tea.Msg) (Pager, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || p.total == 0 {
		return p, nil
	}

	target := -1
	switch s := key.String(); s {
	case "left", "h":
		target = p.active - 1
	case "right", "l":
		target = p.active + 1
	case "home", "g":
		target = 0
	case "end", "G":
		target = p.total - 1
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 9 {
			target = n - 1
		}
	}

	if target < 0 || target >= p.total || target == p.active {
		return p, nil
	}
	return p, func() tea.Msg {
		return PageSelectMsg{Index: target}
	}
}

// View renders the page buttons as a single horizontal line.
func (p Pager) View() string {
	if p.total == 0 {
		return ""
	}
	parts := make([]string, 0, p.total)
	for _, b := range p.Buttons() {
		if b.Active {
			parts = append(parts, ActivePageStyle.Render(b.Label))
		} else {
			parts = append(parts, InactivePageStyle.Render(b.Label))
		}
	}
	return PagerStyle.Width(p.width).Render(strings.Join(parts, " "))
}
