package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/almoxarifado/almox/internal/commands"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored bearer token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store the bearer token used for writes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) > 0 {
			token = args[0]
		}
		if token == "" {
			if !term.IsTerminal(os.Stdin.Fd()) {
				return errors.New("token argument required")
			}
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Bearer token").
						EchoMode(huh.EchoModePassword).
						Value(&token).
						Validate(required),
				),
			).Run()
			if err != nil {
				return err
			}
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		info, err := commands.SetToken(a.store, strings.TrimSpace(token))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Token stored in %s\n", a.store.Path())
		printTokenInfo(info)
		return nil
	},
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Describe the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		info, err := commands.ShowToken(a.store, time.Now())
		if err != nil {
			return err
		}
		printTokenInfo(info)
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := commands.ClearToken(a.store); err != nil {
			return err
		}
		fmt.Println("✓ Token removed.")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenClearCmd)
}

func printTokenInfo(info *commands.TokenInfo) {
	if !info.Decodable {
		fmt.Println("  Token is not a JWT; roles unknown.")
		return
	}
	if info.Subject != "" {
		fmt.Printf("  Subject: %s\n", info.Subject)
	}
	if len(info.Roles) > 0 {
		fmt.Printf("  Roles:   %s\n", strings.Join(info.Roles, ", "))
	}
	fmt.Printf("  Admin:   %t\n", info.Admin)
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired {
			state = "expired"
		}
		fmt.Printf("  Expires: %s (%s)\n", info.ExpiresAt.Local().Format(time.DateTime), state)
	}
}
