package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/almoxarifado/almox/internal/config"
	"github.com/almoxarifado/almox/internal/paths"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage almox configuration",
	Long:  "Commands for reading and editing ~/.almox/config.yaml. ALMOX_* environment variables override the file.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", paths.ConfigFile(), data)
		return nil
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url [url]",
	Short: "Set the backend base URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(paths.ConfigFile())
		if err != nil {
			return err
		}

		var raw string
		if len(args) > 0 {
			raw = args[0]
		}
		if raw == "" {
			if !term.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("url argument required")
			}
			raw = cfg.APIURL
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("API base URL").
						Value(&raw).
						Validate(validateBaseURL),
				),
			).Run()
			if err != nil {
				return err
			}
		}
		if err := validateBaseURL(raw); err != nil {
			return err
		}

		cfg.APIURL = raw
		if err := config.Save(paths.ConfigFile(), cfg); err != nil {
			return err
		}
		fmt.Printf("✓ API URL set to %s\n", raw)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetURLCmd)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: want http(s)://host[:port]", raw)
	}
	return nil
}
