package tui

import (
	"testing"

	"github.com/almoxarifado/almox/internal/commands"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuModel_InitialState(t *testing.T) {
	m := NewMenuModel(commands.MenuState{})

	assert.Equal(t, 0, m.cursor)
	assert.Len(t, m.stack, 0, "should start at top level with empty stack")
	assert.False(t, m.Quitting)
	assert.Equal(t, MenuAction{}, m.Selected)
}

func TestMenuModel_Navigation_DownUp(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{})

	model = sendKey(model, "j")
	assert.Equal(t, 1, model.(MenuModel).cursor)

	model = sendKey(model, "k")
	assert.Equal(t, 0, model.(MenuModel).cursor)
}

func TestMenuModel_Navigation_NoWraparound(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{}) // 4 categories

	model = sendKey(model, "k")
	assert.Equal(t, 0, model.(MenuModel).cursor)

	for i := 0; i < 6; i++ {
		model = sendKey(model, "j")
	}
	assert.Equal(t, 3, model.(MenuModel).cursor)
}

func TestMenuModel_DrillIntoCategory(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{})

	model = sendSpecialKey(model, tea.KeyEnter)
	menu := model.(MenuModel)

	assert.Len(t, menu.stack, 1)
	assert.Equal(t, 0, menu.cursor)
	assert.Equal(t, "Entradas", menu.stack[0].title)
	assert.Contains(t, menu.View(), "Ver entradas")
}

func TestMenuModel_SelectTUIAction(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{})

	model = sendSpecialKey(model, tea.KeyEnter) // Entradas
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := model.(MenuModel)

	assert.Equal(t, ActionEntradas, menu.Selected.ID)
	assert.Equal(t, ActionTUI, menu.Selected.Type)
	require.NotNil(t, cmd)
}

func TestMenuModel_SelectCLIAction(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{})

	model = sendKey(model, "j")                 // Produtos
	model = sendSpecialKey(model, tea.KeyEnter) // drill in
	model = sendKey(model, "j")                 // Importar planilha
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := model.(MenuModel)

	assert.Equal(t, ActionImport, menu.Selected.ID)
	assert.Equal(t, ActionCLI, menu.Selected.Type)
	require.NotNil(t, cmd)
}

func TestMenuModel_EscGoesBack(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{})

	model = sendKey(model, "j")
	model = sendSpecialKey(model, tea.KeyEnter)
	require.Len(t, model.(MenuModel).stack, 1)

	model = sendSpecialKey(model, tea.KeyEscape)
	menu := model.(MenuModel)
	assert.Len(t, menu.stack, 0, "should return to top level")
	assert.Equal(t, 1, menu.cursor, "cursor restored to the category")
}

func TestMenuModel_EscFromTopLevel_Quits(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.True(t, model.(MenuModel).Quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, model.View())
}

func TestMenuModel_QuitFromTopLevel(t *testing.T) {
	var model tea.Model = NewMenuModel(commands.MenuState{})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.True(t, model.(MenuModel).Quitting)
	require.NotNil(t, cmd)
}

func TestMenuModel_View(t *testing.T) {
	m := NewMenuModel(commands.MenuState{
		HasToken: true,
		Subject:  "ana",
		Admin:    true,
		APIURL:   "http://localhost:8080",
	})
	m.Version = "1.0.0"
	m.width = 60
	m.height = 20

	view := m.View()
	assert.Contains(t, view, "almox")
	assert.Contains(t, view, "v1.0.0")
	assert.Contains(t, view, "usuário: ana")
	assert.Contains(t, view, "ADMIN")
	assert.Contains(t, view, "Entradas")
	assert.Contains(t, view, "Produtos")
	assert.Contains(t, view, "Sessão")
	assert.Contains(t, view, "Config")
}

func TestBuildStatusSummary(t *testing.T) {
	assert.Equal(t, "sem token", buildStatusSummary(commands.MenuState{}))
	assert.Equal(t, "token definido | token expirado | http://x",
		buildStatusSummary(commands.MenuState{HasToken: true, TokenExpired: true, APIURL: "http://x"}))
}
