package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with list counts and keyboard shortcuts.
type StatusBar struct {
	records    int
	page       int // 0-based
	totalPages int
	readFailed bool
	admin      bool
	busy       string
	width      int
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the status bar from the workflow's current state.
func (s *StatusBar) Update(records, page, totalPages int, readFailed, admin bool) {
	s.records = records
	s.page = page
	s.totalPages = totalPages
	s.readFailed = readFailed
	s.admin = admin
}

// SetBusy shows a transient activity label; "" clears it.
func (s *StatusBar) SetBusy(label string) {
	s.busy = label
}

// View renders the status bar.
func (s StatusBar) View() string {
	left := fmt.Sprintf("%d entradas", s.records)
	if s.totalPages > 0 {
		left += fmt.Sprintf(" · página %d/%d", s.page+1, s.totalPages)
	}
	if s.busy != "" {
		left += " · " + s.busy
	}
	if s.readFailed {
		left += " · " + StatusBarWarnStyle.Render("falha ao carregar")
	}

	shortcuts := []string{
		StatusBarKeyStyle.Render("f") + ": filtros",
		StatusBarKeyStyle.Render("←/→") + ": páginas",
		StatusBarKeyStyle.Render("r") + ": atualizar",
	}
	if s.admin {
		shortcuts = append(shortcuts, StatusBarKeyStyle.Render("+")+": registrar")
	}
	shortcuts = append(shortcuts, StatusBarKeyStyle.Render("q")+": sair")
	right := strings.Join(shortcuts, " · ")

	availableWidth := s.width - 2 // account for StatusBarStyle padding
	gap := max(availableWidth-ansi.StringWidth(left)-ansi.StringWidth(right), 1)

	return StatusBarStyle.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}
