package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

// Color constants extracted from the Mocha palette for convenience.
var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Pager styles.
var (
	// ActivePageStyle is used for the current page button.
	ActivePageStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true)

	// InactivePageStyle is used for the other page buttons.
	InactivePageStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface0).
				Padding(0, 1)

	// PagerStyle is the strip behind the page buttons.
	PagerStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// Table styles.
var (
	// TableHeaderStyle is used for the column headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMauve).
				Bold(true).
				Padding(0, 1)

	// TableCellStyle is used for record cells.
	TableCellStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	// TableBorderStyle colors the grid lines.
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(colorSurface1)

	// EmptyStyle is used for the "no records" line.
	EmptyStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Italic(true).
			Padding(1, 2)

	// TitleStyle is used for the screen title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)
)

// Filter panel styles.
var (
	// FilterPanelStyle wraps the filter panel.
	FilterPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSurface1).
				Padding(0, 1)

	// FieldLabelStyle is used for input labels.
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Width(16)

	// FocusedLabelStyle is used for the label of the focused input.
	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true).
				Width(16)

	// ValueStyle is used for chooser values (period, product).
	ValueStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)

	// StatusBarWarnStyle is the dim hint shown after a failed read.
	StatusBarWarnStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				Background(colorSurface0).
				Italic(true)
)

// Overlay styles.
var (
	// OverlayStyle is the border and background for modal overlays.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	// ClosingOverlayStyle is used while the entry modal plays its exit.
	ClosingOverlayStyle = OverlayStyle.
				BorderForeground(colorOverlay0).
				Foreground(colorOverlay0)

	// AlertOverlayStyle is used for error alerts.
	AlertOverlayStyle = OverlayStyle.
				BorderForeground(colorRed)

	// OverlayTitleStyle is used for the title text in overlays.
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// AlertTitleStyle is used for the title of error alerts.
	AlertTitleStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	// OverlayButtonActiveStyle is used for the focused button in overlays.
	OverlayButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue).
					Padding(0, 2)

	// OverlayChoiceCursorStyle is used for the cursor in choice overlays.
	OverlayChoiceCursorStyle = lipgloss.NewStyle().
					Foreground(colorBlue).
					Bold(true)

	// HintStyle is used for dim key hints.
	HintStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)
)
