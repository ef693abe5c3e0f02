package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/almoxarifado/almox/cmd/almox/tui"
	"github.com/almoxarifado/almox/internal/commands"
	"github.com/almoxarifado/almox/internal/entradas"
	"github.com/almoxarifado/almox/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var (
	listProduct string
	listPeriod  string
	listStart   string
	listEnd     string
	listPage    int

	addProduct     string
	addQuantity    string
	addResponsible string
	addDestination string
)

var entradasCmd = &cobra.Command{
	Use:   "entradas",
	Short: "Browse entradas interactively",
	Long:  "Opens the entradas screen. Falls back to 'entradas list' when stdin is not a terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdin.Fd()) {
			return entradasListCmd.RunE(cmd, args)
		}
		return runEntradasTUI()
	},
}

var entradasListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of entradas",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := commands.ListEntradas(cmdContext(cmd), a.client, a.cfg.PageSize, commands.ListOptions{
			ProductID: listProduct,
			Period:    listPeriod,
			Start:     listStart,
			End:       listEnd,
			Page:      listPage,
		}, a.logger)
		if err != nil {
			return err
		}

		fmt.Println(tui.RenderRecords(result.Records, 0))
		if result.TotalPages > 0 {
			fmt.Printf("Page %d of %d\n", result.Page, result.TotalPages)
		}
		return nil
	},
}

var entradasAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an entrada (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		draft := entradas.EmptyDraft().
			Set(entradas.FieldProductID, addProduct).
			Set(entradas.FieldQuantity, addQuantity).
			Set(entradas.FieldResponsible, addResponsible).
			Set(entradas.FieldDestination, addDestination)

		if draft.Validate() != nil && term.IsTerminal(os.Stdin.Fd()) {
			draft, err = promptDraft(cmd, a, draft)
			if err != nil {
				return err
			}
		}

		if err := commands.AddEntrada(cmdContext(cmd), a.client, a.store, draft, a.logger); err != nil {
			// The alert text never carries the backend body; details are in the log.
			return errors.New(entradas.AlertMessage(err))
		}
		fmt.Println("✓ Entrada registered.")
		return nil
	},
}

func init() {
	entradasListCmd.Flags().StringVar(&listProduct, "product", "", "Filter by product id")
	entradasListCmd.Flags().StringVar(&listPeriod, "period", "", "Filter by period: week, month or year")
	entradasListCmd.Flags().StringVar(&listStart, "start", "", "Range start (YYYY-MM-DD), requires --end")
	entradasListCmd.Flags().StringVar(&listEnd, "end", "", "Range end (YYYY-MM-DD), requires --start")
	entradasListCmd.Flags().IntVar(&listPage, "page", 1, "Page number, starting at 1")

	entradasAddCmd.Flags().StringVar(&addProduct, "product", "", "Product id")
	entradasAddCmd.Flags().StringVar(&addQuantity, "quantity", "", "Quantity added (at least 1)")
	entradasAddCmd.Flags().StringVar(&addResponsible, "responsible", "", "Person responsible")
	entradasAddCmd.Flags().StringVar(&addDestination, "destination", "", "Destination")

	entradasCmd.AddCommand(entradasListCmd)
	entradasCmd.AddCommand(entradasAddCmd)
}

func runEntradasTUI() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	token, err := a.store.Credential()
	if err != nil {
		return err
	}

	w := entradas.NewWorkflow(a.cfg.PageSize, a.logger)
	model := tui.NewEntradasModel(w, a.client, a.store, tui.Options{
		Admin:   session.IsAdmin(token),
		Timeout: a.cfg.Timeout,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// promptDraft asks for the fields d is missing.
func promptDraft(cmd *cobra.Command, a *app, d entradas.Draft) (entradas.Draft, error) {
	products, err := commands.ListProdutos(cmdContext(cmd), a.client)
	if err != nil {
		return d, fmt.Errorf("loading products: %w", err)
	}
	if len(products) == 0 {
		return d, errors.New("no products registered")
	}

	options := make([]huh.Option[string], 0, len(products))
	for _, p := range products {
		id := strconv.FormatInt(p.ID, 10)
		options = append(options, huh.NewOption(fmt.Sprintf("%s (#%s)", p.Name, id), id))
	}

	productID := d.ProductID
	quantity := d.QuantityAdded
	responsible := d.Responsible
	destination := d.Destination

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(entradas.FieldProductID.Label()).
				Options(options...).
				Value(&productID),
			huh.NewInput().
				Title(entradas.FieldQuantity.Label()).
				Value(&quantity).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 1 {
						return errors.New("enter a whole number of at least 1")
					}
					return nil
				}),
			huh.NewInput().
				Title(entradas.FieldResponsible.Label()).
				Value(&responsible).
				Validate(required),
			huh.NewInput().
				Title(entradas.FieldDestination.Label()).
				Value(&destination).
				Validate(required),
		),
	).Run()
	if err != nil {
		return d, err
	}

	return d.Set(entradas.FieldProductID, productID).
		Set(entradas.FieldQuantity, quantity).
		Set(entradas.FieldResponsible, responsible).
		Set(entradas.FieldDestination, destination), nil
}

func required(s string) error {
	if s == "" {
		return errors.New("required")
	}
	return nil
}
