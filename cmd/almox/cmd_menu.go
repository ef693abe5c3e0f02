package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/almoxarifado/almox/cmd/almox/tui"
	"github.com/almoxarifado/almox/internal/commands"
	"github.com/almoxarifado/almox/internal/config"
	"github.com/almoxarifado/almox/internal/paths"
	"github.com/almoxarifado/almox/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

func runMainMenu(cmd *cobra.Command, args []string) error {
	// TTY guard: fall back to status when stdin is not a terminal
	// (piping, CI, scripts, etc.)
	if !term.IsTerminal(os.Stdin.Fd()) {
		return statusCmd.RunE(cmd, args)
	}

	for {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}
		state := commands.DetectMenuState(paths.ConfigFile(), session.NewStore(paths.SessionFile()), cfg.APIURL)

		model := tui.NewMenuModel(state)
		model.Version = version
		p := tea.NewProgram(model, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		menu := finalModel.(tui.MenuModel)
		if menu.Quitting {
			return nil
		}

		action := menu.Selected
		if action.ID == "" {
			return nil
		}

		err = dispatchAction(cmd, action)

		// For CLI actions, wait for user to press Enter before returning to menu
		if action.Type == tui.ActionCLI {
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
			}
			fmt.Print("\nPress Enter to return to menu...")
			bufio.NewReader(os.Stdin).ReadBytes('\n')
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func dispatchAction(cmd *cobra.Command, action tui.MenuAction) error {
	switch action.ID {
	// Entradas
	case tui.ActionEntradas:
		return entradasCmd.RunE(entradasCmd, nil)
	case tui.ActionEntradaAdd:
		return entradasAddCmd.RunE(entradasAddCmd, nil)

	// Produtos
	case tui.ActionProdutos:
		return produtosListCmd.RunE(produtosListCmd, nil)
	case tui.ActionImport:
		return produtosImportCmd.RunE(produtosImportCmd, nil)

	// Sessão
	case tui.ActionTokenSet:
		return tokenSetCmd.RunE(tokenSetCmd, nil)
	case tui.ActionTokenShow:
		return tokenShowCmd.RunE(tokenShowCmd, nil)
	case tui.ActionTokenClear:
		return tokenClearCmd.RunE(tokenClearCmd, nil)

	// Config
	case tui.ActionStatus:
		return statusCmd.RunE(statusCmd, nil)
	case tui.ActionConfigShow:
		return configShowCmd.RunE(configShowCmd, nil)
	case tui.ActionConfigSetURL:
		return configSetURLCmd.RunE(configSetURLCmd, nil)

	default:
		return fmt.Errorf("unknown action: %s", action.ID)
	}
}
