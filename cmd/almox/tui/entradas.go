package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/almoxarifado/almox/internal/entradas"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// overlayContext tracks what the currently-active overlay was opened for.
type overlayContext int

const (
	overlayNone    overlayContext = iota
	overlayAlert                  // error alert
	overlayPeriod                 // period chooser in the filter panel
	overlayProduct                // product chooser in the entry form
)

// Options configures the entradas screen.
type Options struct {
	Admin   bool          // offer the register action
	Timeout time.Duration // per-request timeout
}

// EntradasModel is the entradas screen: records grid, pager, filter panel
// and the registration modal. All workflow state lives in the Workflow; this
// model routes keys and turns workflow requests into tea.Cmds.
type EntradasModel struct {
	w       *entradas.Workflow
	backend entradas.Backend
	creds   entradas.CredentialSource
	opts    Options

	// Layout components.
	filters   FilterPanel
	form      EntryForm
	pager     Pager
	statusBar StatusBar
	overlay   Overlay

	overlayCtx  overlayContext
	focus       FocusZone
	filtersOpen bool
	submitting  bool

	width, height int
	ready         bool
	quitting      bool
}

// NewEntradasModel creates the screen around w.
func NewEntradasModel(w *entradas.Workflow, backend entradas.Backend, creds entradas.CredentialSource, opts Options) EntradasModel {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	m := EntradasModel{
		w:       w,
		backend: backend,
		creds:   creds,
		opts:    opts,
		filters: NewFilterPanel(w.Staged),
		form:    NewEntryForm(w.Draft, w.Products),
		focus:   FocusTable,
	}
	m.syncStatus()
	return m
}

// Workflow exposes the underlying workflow.
func (m EntradasModel) Workflow() *entradas.Workflow {
	return m.w
}

// Init issues the initial list fetch and the product fetch together.
func (m EntradasModel) Init() tea.Cmd {
	req := m.w.BeginRefresh()
	return tea.Batch(
		fetchEntries(m.backend, req, m.opts.Timeout),
		fetchProducts(m.backend, m.opts.Timeout),
	)
}

// Update satisfies tea.Model.
func (m EntradasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.statusBar.SetWidth(msg.Width)
		m.pager.SetWidth(msg.Width)
		return m, nil

	case EntriesLoadedMsg:
		m.w.ApplyEntries(msg.Generation, msg.Page, msg.Err)
		m.syncStatus()
		return m, nil

	case ProductsLoadedMsg:
		if m.w.ApplyProducts(msg.Products, msg.Err) {
			m.form.SetProducts(m.w.Products)
		}
		return m, nil

	case SubmitDoneMsg:
		return m.handleSubmitDone(msg)

	case AnimationDoneMsg:
		m.w.AnimationFinished()
		return m, nil

	case PageSelectMsg:
		return m.goToPage(msg.Index)

	case ApplyFiltersMsg:
		m.w.Staged = m.filters.Criteria()
		return m.fetch(m.w.ApplyFilters())

	case ClearFiltersMsg:
		req := m.w.ClearFilters()
		m.filters.Load(m.w.Staged)
		return m.fetch(req)

	case PeriodRequestMsg:
		labels := make([]string, len(entradas.Periods))
		for i, p := range entradas.Periods {
			labels[i] = p.Label()
		}
		m.overlay = NewChoiceOverlay("Período", labels, periodIndex(m.filters.Period()))
		m.overlayCtx = overlayPeriod
		return m, nil

	case ProductRequestMsg:
		labels, selected := m.form.ProductChoices()
		m.overlay = NewChoiceOverlay("Produto", labels, selected)
		m.overlayCtx = overlayProduct
		return m, nil

	case SubmitRequestMsg:
		return m.submit()

	case CloseRequestMsg:
		return m.closeModal()
	}

	// When overlay is active, route ALL messages to the overlay.
	if m.overlay.Active() {
		return m.updateOverlay(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.focus {
	case FocusFilters:
		return m.updateFilters(key)
	case FocusForm:
		return m.updateForm(key)
	}
	return m.updateTable(key)
}

// --- Update helpers ---

func (m EntradasModel) updateTable(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "f":
		m.filtersOpen = !m.filtersOpen
		if m.filtersOpen {
			m.focus = FocusFilters
		}
		return m, nil
	case "r":
		return m.fetch(m.w.BeginRefresh())
	case "+":
		return m.openModal()
	}

	var cmd tea.Cmd
	m.pager, cmd = m.pager.Update(key)
	return m, cmd
}

func (m EntradasModel) updateFilters(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "esc" {
		m.filtersOpen = false
		m.focus = FocusTable
		return m, nil
	}
	var cmd tea.Cmd
	m.filters, cmd = m.filters.Update(key)
	// Staged only; nothing is fetched until apply.
	m.w.Staged = m.filters.Criteria()
	return m, cmd
}

func (m EntradasModel) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(key)
	field := m.form.Focused()
	if m.form.Value(field) != m.w.Draft.Get(field) {
		m.w.SetField(field, m.form.Value(field))
	}
	return m, cmd
}

func (m EntradasModel) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasActive := m.overlay.Active()
	var cmd tea.Cmd
	m.overlay, cmd = m.overlay.Update(msg)

	// The close cmd only carries the result; handle it here instead of a
	// round trip through the event loop.
	if wasActive && !m.overlay.Active() && cmd != nil {
		if closeMsg := extractOverlayClose(cmd); closeMsg != nil {
			return m.handleOverlayClose(*closeMsg)
		}
	}
	return m, cmd
}

func (m EntradasModel) handleOverlayClose(msg OverlayCloseMsg) (tea.Model, tea.Cmd) {
	ctx := m.overlayCtx
	m.overlayCtx = overlayNone
	if !msg.Confirmed {
		return m, nil
	}

	switch ctx {
	case overlayPeriod:
		if msg.Index >= 0 && msg.Index < len(entradas.Periods) {
			m.filters.SetPeriod(entradas.Periods[msg.Index])
			m.w.Staged = m.filters.Criteria()
		}
	case overlayProduct:
		if id, ok := m.form.SelectProduct(msg.Index); ok {
			m.w.SetField(entradas.FieldProductID, id)
		}
	}
	return m, nil
}

func (m EntradasModel) openModal() (tea.Model, tea.Cmd) {
	if !m.opts.Admin {
		return m, nil
	}
	if !m.w.OpenModal() {
		return m, nil
	}
	// A draft left by an earlier close is shown again.
	m.form = NewEntryForm(m.w.Draft, m.w.Products)
	m.focus = FocusForm
	return m, nil
}

func (m EntradasModel) closeModal() (tea.Model, tea.Cmd) {
	if !m.w.CloseModal() {
		return m, nil
	}
	m.focus = FocusTable
	return m, finishAnimation()
}

func (m EntradasModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting || m.w.Modal.Phase() != entradas.PhaseOpen {
		return m, nil
	}

	// The credential is read now, not when the screen was built.
	cred, err := m.creds.Credential()
	if err != nil {
		return m.alert(fmt.Errorf("%w: %w", entradas.ErrMissingCredential, err)), nil
	}
	sub, err := m.w.PrepareSubmit(cred)
	if err != nil {
		return m.alert(err), nil
	}

	m.submitting = true
	m.statusBar.SetBusy("registrando…")
	return m, submitEntrada(m.backend, sub, m.opts.Timeout)
}

func (m EntradasModel) handleSubmitDone(msg SubmitDoneMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	m.statusBar.SetBusy("")

	req, err := m.w.CompleteSubmit(msg.Err)
	if err != nil {
		return m.alert(err), nil
	}

	m.form = NewEntryForm(m.w.Draft, m.w.Products)
	m.focus = FocusTable
	m.syncStatus()
	return m, tea.Batch(
		fetchEntries(m.backend, req, m.opts.Timeout),
		finishAnimation(),
	)
}

func (m EntradasModel) goToPage(i int) (tea.Model, tea.Cmd) {
	req, ok := m.w.GoToPage(i)
	if !ok {
		return m, nil
	}
	return m.fetch(req)
}

func (m EntradasModel) fetch(req entradas.ListRequest) (tea.Model, tea.Cmd) {
	m.syncStatus()
	return m, fetchEntries(m.backend, req, m.opts.Timeout)
}

func (m EntradasModel) alert(err error) EntradasModel {
	m.overlay = NewAlertOverlay("Erro", entradas.AlertMessage(err))
	m.overlayCtx = overlayAlert
	return m
}

// syncStatus pushes workflow state into the pager and status bar.
func (m *EntradasModel) syncStatus() {
	m.pager.SetPages(m.w.Page.TotalPages, m.w.Page.Index)
	m.statusBar.Update(len(m.w.Records), m.w.Page.Index, m.w.Page.TotalPages, m.w.LastReadErr != nil, m.opts.Admin)
}

// View satisfies tea.Model.
func (m EntradasModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Carregando..."
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Entradas"))
	if summary := filterSummary(m.w.Applied); summary != "" {
		b.WriteString(" " + HintStyle.Render(summary))
	}
	b.WriteString("\n")
	if m.filtersOpen {
		b.WriteString(m.filters.View())
		b.WriteString("\n")
	}
	b.WriteString(RenderRecords(m.w.Records, m.width))
	b.WriteString("\n")
	if pager := m.pager.View(); pager != "" {
		b.WriteString(pager)
		b.WriteString("\n")
	}

	statusView := m.statusBar.View()
	body := b.String()
	bodyHeight := m.height - lipgloss.Height(statusView)
	if pad := bodyHeight - lipgloss.Height(body); pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	frame := body + statusView

	switch {
	case m.overlay.Active():
		return Composite(frame, m.overlay.View(), m.width, m.height)
	case m.w.Modal.Visible():
		style := OverlayStyle
		if m.w.Modal.Phase() == entradas.PhaseClosing {
			style = ClosingOverlayStyle
		}
		modal := style.Width(OverlayMaxWidth(m.width)).Render(m.form.View("Registrar entrada"))
		return Composite(frame, modal, m.width, m.height)
	}
	return frame
}

// filterSummary describes the applied filters for the title line.
func filterSummary(f entradas.FilterCriteria) string {
	var parts []string
	if f.ProductID != "" {
		parts = append(parts, "produto "+f.ProductID)
	}
	if f.Period != entradas.PeriodNone {
		parts = append(parts, strings.ToLower(f.Period.Label()))
	}
	if f.HasDateRange() {
		parts = append(parts, f.StartDate+" a "+f.EndDate)
	}
	return strings.Join(parts, " · ")
}
