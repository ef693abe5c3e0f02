package tui

import "github.com/almoxarifado/almox/internal/commands"

// BuildMenuItems returns the menu item tree based on the detected state.
func BuildMenuItems(state commands.MenuState) []menuItem {
	return []menuItem{
		buildEntradasCategory(state),
		buildProdutosCategory(),
		buildSessionCategory(state),
		buildConfigCategory(),
	}
}

func buildEntradasCategory(state commands.MenuState) menuItem {
	children := []menuItem{
		{label: "Ver entradas", desc: "filtrar e paginar", action: MenuAction{ID: ActionEntradas, Type: ActionTUI}},
	}
	// The backend only accepts entradas from admins.
	if state.Admin {
		children = append(children,
			menuItem{label: "Registrar entrada", action: MenuAction{ID: ActionEntradaAdd, Type: ActionCLI}},
		)
	}
	return menuItem{label: "Entradas", children: children}
}

func buildProdutosCategory() menuItem {
	return menuItem{
		label: "Produtos",
		children: []menuItem{
			{label: "Listar produtos", action: MenuAction{ID: ActionProdutos, Type: ActionCLI}},
			{label: "Importar planilha", desc: ".xlsx ou .csv", action: MenuAction{ID: ActionImport, Type: ActionCLI}},
		},
	}
}

func buildSessionCategory(state commands.MenuState) menuItem {
	children := []menuItem{
		{label: "Definir token", action: MenuAction{ID: ActionTokenSet, Type: ActionCLI}},
	}
	if state.HasToken {
		children = append(children,
			menuItem{label: "Ver token", action: MenuAction{ID: ActionTokenShow, Type: ActionCLI}},
			menuItem{label: "Remover token", action: MenuAction{ID: ActionTokenClear, Type: ActionCLI}},
		)
	}
	return menuItem{label: "Sessão", children: children}
}

func buildConfigCategory() menuItem {
	return menuItem{
		label: "Config",
		children: []menuItem{
			{label: "Status", desc: "sessão e backend", action: MenuAction{ID: ActionStatus, Type: ActionCLI}},
			{label: "Ver configuração", action: MenuAction{ID: ActionConfigShow, Type: ActionCLI}},
			{label: "Alterar URL da API", action: MenuAction{ID: ActionConfigSetURL, Type: ActionCLI}},
		},
	}
}
