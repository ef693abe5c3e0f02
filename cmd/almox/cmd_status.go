package main

import (
	"fmt"
	"time"

	"github.com/almoxarifado/almox/internal/commands"
	"github.com/almoxarifado/almox/internal/paths"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and backend status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := commands.Status(cmdContext(cmd), a.client, a.cfg.APIURL, paths.ConfigFile(), a.store)
		if err != nil {
			return err
		}

		fmt.Println("BACKEND")
		fmt.Printf("  %s\n", result.APIURL)
		if result.Reachable {
			fmt.Printf("  ✓ reachable, %d product(s)\n", result.ProductCount)
		} else {
			fmt.Printf("  ✗ unreachable: %v\n", result.ReachErr)
		}
		fmt.Println()

		fmt.Println("SESSION")
		if !result.HasToken {
			fmt.Println("  No token stored (run 'almox token set')")
		} else {
			if result.Subject != "" {
				fmt.Printf("  User:  %s\n", result.Subject)
			}
			fmt.Printf("  Admin: %t\n", result.Admin)
			if !result.ExpiresAt.IsZero() {
				fmt.Printf("  Expires: %s\n", result.ExpiresAt.Local().Format(time.DateTime))
			}
		}
		fmt.Println()

		fmt.Println("FILES")
		fmt.Printf("  config:  %s\n", result.ConfigFile)
		fmt.Printf("  session: %s\n", result.SessionFile)
		return nil
	},
}
