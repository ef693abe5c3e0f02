package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/almoxarifado/almox/internal/commands"
	"github.com/almoxarifado/almox/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var (
	importDryRun bool
	importYes    bool
)

// previewLimit caps how many parsed rows the import preview prints.
const previewLimit = 10

var produtosCmd = &cobra.Command{
	Use:   "produtos",
	Short: "Browse and import products",
}

var produtosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		products, err := commands.ListProdutos(cmdContext(cmd), a.client)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products registered.")
			return nil
		}
		for _, p := range products {
			fmt.Printf("  %6d  %s\n", p.ID, p.Name)
		}
		return nil
	},
}

var produtosImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import products from an .xlsx or .csv spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive := term.IsTerminal(os.Stdin.Fd())

		var path string
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			if !interactive {
				return errors.New("file argument required")
			}
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Spreadsheet to import").
						Description(".xlsx or .csv, header row first").
						Value(&path).
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

		im := importer.New(a.client, a.logger)

		// Always preview first; the upload is a second, confirmed step.
		res, err := commands.ImportProdutos(cmdContext(cmd), im, a.store, path, true)
		if err != nil {
			return err
		}
		printPreview(res.Preview)

		if importDryRun {
			return nil
		}
		if len(res.Preview.Rows) == 0 {
			return errors.New("nothing to import")
		}

		if !importYes {
			if !interactive {
				return errors.New("refusing to upload without --yes when stdin is not a terminal")
			}
			confirmed := true
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Upload %d product(s)?", len(res.Preview.Rows))).
						Affirmative("Upload").
						Negative("Cancel").
						Value(&confirmed),
				),
			).Run()
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Import cancelled.")
				return nil
			}
		}

		res, err = commands.ImportProdutos(cmdContext(cmd), im, a.store, path, false)
		if err != nil {
			return err
		}

		fmt.Printf("\n✓ Imported %d product(s).\n", res.Server.ImportedCount)
		if len(res.Server.Errors) > 0 {
			fmt.Println("\nRejected by the server:")
			for _, e := range res.Server.Errors {
				fmt.Printf("  ✗ %s\n", e)
			}
		}
		return nil
	},
}

func init() {
	produtosImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Preview the spreadsheet without uploading")
	produtosImportCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Upload without asking for confirmation")

	produtosCmd.AddCommand(produtosListCmd)
	produtosCmd.AddCommand(produtosImportCmd)
}

func printPreview(p importer.Preview) {
	fmt.Printf("%d row(s) parsed, %d with errors\n", len(p.Rows), len(p.Errors))
	for i, r := range p.Rows {
		if i == previewLimit {
			fmt.Printf("  … %d more\n", len(p.Rows)-previewLimit)
			break
		}
		fmt.Printf("  %4d  %-12s %-30s %5d %s\n", r.Line, r.SKU, truncate(r.Name, 30), r.Quantity, r.Unit)
	}
	for _, e := range p.Errors {
		fmt.Printf("  ✗ %s\n", e)
	}
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n-1])) + "…"
}
