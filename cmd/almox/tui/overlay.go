package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// OverlayType identifies the kind of modal overlay.
type OverlayType int

const (
	OverlayAlert  OverlayType = iota // message with a single OK button
	OverlayChoice                    // list of choices with cursor
)

// Overlay renders a centered modal box on top of existing content.
type Overlay struct {
	overlayType OverlayType
	title       string
	message     string   // body text (for Alert)
	choices     []string // choice list (for Choice)
	cursor      int      // selected choice index
	active      bool
}

// NewAlertOverlay creates an error alert dismissed with Enter or Esc.
func NewAlertOverlay(title, message string) Overlay {
	return Overlay{
		overlayType: OverlayAlert,
		title:       title,
		message:     message,
		active:      true,
	}
}

// NewChoiceOverlay creates a list-of-choices dialog with the cursor on
// selected.
func NewChoiceOverlay(title string, choices []string, selected int) Overlay {
	if selected < 0 || selected >= len(choices) {
		selected = 0
	}
	return Overlay{
		overlayType: OverlayChoice,
		title:       title,
		choices:     choices,
		cursor:      selected,
		active:      true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Message returns the alert body.
func (o Overlay) Message() string {
	return o.message
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}

	switch o.overlayType {
	case OverlayAlert:
		return o.updateAlert(msg)
	case OverlayChoice:
		return o.updateChoice(msg)
	}
	return o, nil
}

func (o Overlay) updateAlert(msg tea.Msg) (Overlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter", " ":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: true}
			}
		}
	}
	return o, nil
}

func (o Overlay) updateChoice(msg tea.Msg) (Overlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: false}
			}
		case "up", "k":
			if o.cursor > 0 {
				o.cursor--
			}
		case "down", "j":
			if o.cursor < len(o.choices)-1 {
				o.cursor++
			}
		case "enter":
			if len(o.choices) == 0 {
				o.active = false
				return o, func() tea.Msg { return OverlayCloseMsg{Confirmed: false} }
			}
			o.active = false
			idx := o.cursor
			result := o.choices[idx]
			return o, func() tea.Msg {
				return OverlayCloseMsg{Result: result, Index: idx, Confirmed: true}
			}
		}
	}
	return o, nil
}

// View renders the overlay box. It does not composite over a background;
// that is the caller's responsibility using Composite().
func (o Overlay) View() string {
	if !o.active {
		return ""
	}

	var b strings.Builder
	switch o.overlayType {
	case OverlayAlert:
		b.WriteString(AlertTitleStyle.Render(o.title))
		b.WriteString("\n\n")
		b.WriteString(o.message)
		b.WriteString("\n\n")
		b.WriteString(OverlayButtonActiveStyle.Render("OK"))
		return AlertOverlayStyle.Render(b.String())
	case OverlayChoice:
		b.WriteString(OverlayTitleStyle.Render(o.title))
		b.WriteString("\n\n")
		if len(o.choices) == 0 {
			b.WriteString(HintStyle.Render("(nenhuma opção)"))
			b.WriteString("\n")
		}
		for i, choice := range o.choices {
			if i == o.cursor {
				b.WriteString(OverlayChoiceCursorStyle.Render("> " + choice))
			} else {
				b.WriteString("  " + choice)
			}
			b.WriteString("\n")
		}
	}
	return OverlayStyle.Render(b.String())
}

// extractOverlayClose runs cmd and returns its OverlayCloseMsg, if any.
func extractOverlayClose(cmd tea.Cmd) *OverlayCloseMsg {
	if cmd == nil {
		return nil
	}
	if msg, ok := cmd().(OverlayCloseMsg); ok {
		return &msg
	}
	return nil
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")

	// Pad background to fill the screen height.
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}

		// Cut by display cells so styled background lines stay intact.
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)

		left := ansi.Truncate(bgLine, startCol, "")
		if w := ansi.StringWidth(left); w < startCol {
			left += strings.Repeat(" ", startCol-w)
		}

		right := ""
		if end := startCol + ansi.StringWidth(overlayLine); end < bgWidth {
			right = ansi.TruncateLeft(bgLine, end, "")
		}

		bgLines[row] = left + overlayLine + right
	}

	return strings.Join(bgLines[:max(totalHeight, 1)], "\n")
}

// OverlayMaxWidth returns a reasonable maximum width for the overlay content.
func OverlayMaxWidth(termWidth int) int {
	return min(max(termWidth*2/3, 40), 60)
}
