package tui

import (
	"strings"

	"github.com/almoxarifado/almox/internal/entradas"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// filterField indexes the filter panel rows.
type filterField int

const (
	filterName filterField = iota
	filterProduct
	filterPeriod
	filterStart
	filterEnd
	filterFieldCount
)

func (f filterField) label() string {
	switch f {
	case filterName:
		return "Nome"
	case filterProduct:
		return "Produto (ID)"
	case filterPeriod:
		return "Período"
	case filterStart:
		return "Data início"
	case filterEnd:
		return "Data fim"
	}
	return ""
}

// PeriodRequestMsg asks the owner to open the period chooser.
type PeriodRequestMsg struct{}

// ApplyFiltersMsg is sent when the user applies the staged filters.
type ApplyFiltersMsg struct{}

// ClearFiltersMsg is sent when the user clears all filters.
type ClearFiltersMsg struct{}

// FilterPanel stages filter edits. Nothing it does triggers a fetch; only
// ApplyFiltersMsg and ClearFiltersMsg do.
type FilterPanel struct {
	inputs map[filterField]textinput.Model
	period entradas.Period
	focus  filterField
}

// NewFilterPanel creates a panel showing f.
func NewFilterPanel(f entradas.FilterCriteria) FilterPanel {
	p := FilterPanel{inputs: make(map[filterField]textinput.Model)}
	for _, field := range []filterField{filterName, filterProduct, filterStart, filterEnd} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 24
		switch field {
		case filterProduct:
			ti.Placeholder = "ex.: 12"
		case filterStart, filterEnd:
			ti.Placeholder = "AAAA-MM-DD"
			ti.CharLimit = 10
		}
		p.inputs[field] = ti
	}
	p.Load(f)
	p.setFocus(filterName)
	return p
}

// Load replaces the panel contents with f.
func (p *FilterPanel) Load(f entradas.FilterCriteria) {
	p.setValue(filterName, f.Name)
	p.setValue(filterProduct, f.ProductID)
	p.setValue(filterStart, f.StartDate)
	p.setValue(filterEnd, f.EndDate)
	p.period = f.Period
}

func (p *FilterPanel) setValue(f filterField, v string) {
	ti := p.inputs[f]
	ti.SetValue(v)
	p.inputs[f] = ti
}

// Criteria returns the staged filters.
func (p FilterPanel) Criteria() entradas.FilterCriteria {
	return entradas.FilterCriteria{
		Name:      p.inputs[filterName].Value(),
		ProductID: strings.TrimSpace(p.inputs[filterProduct].Value()),
		Period:    p.period,
		StartDate: strings.TrimSpace(p.inputs[filterStart].Value()),
		EndDate:   strings.TrimSpace(p.inputs[filterEnd].Value()),
	}
}

// SetPeriod sets the period row.
func (p *FilterPanel) SetPeriod(period entradas.Period) {
	p.period = period
}

// Period returns the period row.
func (p FilterPanel) Period() entradas.Period {
	return p.period
}

func (p *FilterPanel) setFocus(f filterField) {
	p.focus = f
	for field, ti := range p.inputs {
		if field == f {
			ti.Focus()
		} else {
			ti.Blur()
		}
		p.inputs[field] = ti
	}
}

// Update handles keys while the panel has focus.
func (p FilterPanel) Update(msg tea.Msg) (FilterPanel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			p.setFocus((p.focus + 1) % filterFieldCount)
			return p, nil
		case "shift+tab", "up":
			p.setFocus((p.focus + filterFieldCount - 1) % filterFieldCount)
			return p, nil
		case "ctrl+r":
			return p, func() tea.Msg { return ClearFiltersMsg{} }
		case "enter":
			if p.focus == filterPeriod {
				return p, func() tea.Msg { return PeriodRequestMsg{} }
			}
			return p, func() tea.Msg { return ApplyFiltersMsg{} }
		case "left", "right":
			if p.focus == filterPeriod {
				p.period = cyclePeriod(p.period, key.String() == "right")
				return p, nil
			}
		}
	}

	ti, ok := p.inputs[p.focus]
	if !ok {
		return p, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	p.inputs[p.focus] = ti
	return p, cmd
}

func cyclePeriod(cur entradas.Period, forward bool) entradas.Period {
	n := len(entradas.Periods)
	idx := periodIndex(cur)
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx + n - 1) % n
	}
	return entradas.Periods[idx]
}

func periodIndex(p entradas.Period) int {
	for i, candidate := range entradas.Periods {
		if candidate == p {
			return i
		}
	}
	return 0
}

// View renders the panel.
func (p FilterPanel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Filtros"))
	b.WriteString("\n")
	for f := filterField(0); f < filterFieldCount; f++ {
		label := FieldLabelStyle.Render(f.label())
		if f == p.focus {
			label = FocusedLabelStyle.Render(f.label())
		}
		b.WriteString(label)
		if f == filterPeriod {
			b.WriteString(ValueStyle.Render("‹ " + p.period.Label() + " ›"))
		} else {
			b.WriteString(p.inputs[f].View())
		}
		b.WriteString("\n")
	}
	b.WriteString(HintStyle.Render("enter aplicar · ctrl+r limpar · esc fechar"))
	return FilterPanelStyle.Render(b.String())
}
