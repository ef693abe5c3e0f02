package tui

import (
	"strconv"
	"strings"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/entradas"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ProductRequestMsg asks the owner to open the product chooser.
type ProductRequestMsg struct{}

// SubmitRequestMsg is sent when the user submits the entry form.
type SubmitRequestMsg struct{}

// CloseRequestMsg is sent when the user dismisses the entry modal.
type CloseRequestMsg struct{}

// EntryForm is the body of the registration modal. It mirrors the workflow
// draft; the owner copies every edit back with Workflow.SetField.
type EntryForm struct {
	inputs    map[entradas.Field]textinput.Model
	productID string
	products  []api.ProductRef
	focus     int // index into entradas.Fields
}

// NewEntryForm creates a form showing d, offering products in the chooser.
func NewEntryForm(d entradas.Draft, products []api.ProductRef) EntryForm {
	f := EntryForm{
		inputs:    make(map[entradas.Field]textinput.Model),
		productID: d.Get(entradas.FieldProductID),
		products:  products,
	}
	for _, field := range entradas.Fields {
		if field == entradas.FieldProductID {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 80
		ti.Width = 28
		if field == entradas.FieldQuantity {
			ti.Placeholder = "mínimo 1"
			ti.CharLimit = 9
		}
		ti.SetValue(d.Get(field))
		f.inputs[field] = ti
	}
	f.setFocus(0)
	return f
}

// Focused returns the field with keyboard focus.
func (f EntryForm) Focused() entradas.Field {
	return entradas.Fields[f.focus]
}

// Value returns the current text of field.
func (f EntryForm) Value(field entradas.Field) string {
	if field == entradas.FieldProductID {
		return f.productID
	}
	return f.inputs[field].Value()
}

// SetProducts replaces the chooser's options.
func (f *EntryForm) SetProducts(products []api.ProductRef) {
	f.products = products
}

// ProductChoices returns the chooser labels and the index of the selected
// product, -1 when none matches.
func (f EntryForm) ProductChoices() ([]string, int) {
	labels := make([]string, len(f.products))
	selected := -1
	for i, p := range f.products {
		labels[i] = p.Name
		if strconv.FormatInt(p.ID, 10) == f.productID {
			selected = i
		}
	}
	return labels, selected
}

// SelectProduct picks the product at index i of the chooser and returns its
// id as draft text.
func (f *EntryForm) SelectProduct(i int) (string, bool) {
	if i < 0 || i >= len(f.products) {
		return "", false
	}
	f.productID = strconv.FormatInt(f.products[i].ID, 10)
	return f.productID, true
}

func (f EntryForm) productLabel() string {
	if f.productID == "" {
		return "Selecione um produto"
	}
	for _, p := range f.products {
		if strconv.FormatInt(p.ID, 10) == f.productID {
			return p.Name
		}
	}
	return "#" + f.productID
}

func (f *EntryForm) setFocus(i int) {
	f.focus = i
	focused := entradas.Fields[i]
	for field, ti := range f.inputs {
		if field == focused {
			ti.Focus()
		} else {
			ti.Blur()
		}
		f.inputs[field] = ti
	}
}

// Update handles keys while the modal is open.
func (f EntryForm) Update(msg tea.Msg) (EntryForm, tea.Cmd) {
	n := len(entradas.Fields)
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg { return CloseRequestMsg{} }
		case "ctrl+s":
			return f, func() tea.Msg { return SubmitRequestMsg{} }
		case "tab", "down":
			f.setFocus((f.focus + 1) % n)
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focus + n - 1) % n)
			return f, nil
		case "enter":
			switch {
			case f.Focused() == entradas.FieldProductID:
				return f, func() tea.Msg { return ProductRequestMsg{} }
			case f.focus == n-1:
				return f, func() tea.Msg { return SubmitRequestMsg{} }
			default:
				f.setFocus(f.focus + 1)
				return f, nil
			}
		}
	}

	ti, ok := f.inputs[f.Focused()]
	if !ok {
		return f, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	f.inputs[f.Focused()] = ti
	return f, cmd
}

// View renders the form body.
func (f EntryForm) View(title string) string {
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(title))
	b.WriteString("\n\n")
	for i, field := range entradas.Fields {
		label := FieldLabelStyle.Render(field.Label())
		if i == f.focus {
			label = FocusedLabelStyle.Render(field.Label())
		}
		b.WriteString(label)
		if field == entradas.FieldProductID {
			b.WriteString(ValueStyle.Render(f.productLabel() + " ▾"))
		} else {
			b.WriteString(f.inputs[field].View())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("tab próximo · ctrl+s registrar · esc fechar"))
	return b.String()
}
