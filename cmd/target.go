package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type targetJSON struct {
	Name         string `json:"name"`
	BaseURL      string `json:"base_url"`
	LoginPath    string `json:"login_path"`
	LandingPath  string `json:"landing_path"`
	TransferPath string `json:"transfer_path"`
	CookieName   string `json:"cookie_name"`
	Selected     bool   `json:"selected"`
}

func newTargetCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Inspect target profiles",
	}

	cmd.AddCommand(newTargetListCmd(app))
	return cmd
}

func newTargetListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List target profiles from targets.toml plus the built-in testfire profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := app.targets.List(cmd.Context())
			if err != nil {
				return err
			}

			selected := app.flags.name
			if selected == "" {
				selected = app.cfg.Target
			}

			if asJSON {
				out := make([]targetJSON, 0, len(targets))
				for _, target := range targets {
					out = append(out, targetJSON{
						Name:         target.Name,
						BaseURL:      target.BaseURL,
						LoginPath:    target.LoginPath,
						LandingPath:  target.LandingPath,
						TransferPath: target.TransferPath,
						CookieName:   target.CookieName,
						Selected:     target.Name == selected,
					})
				}
				return writeJSON(cmd, out)
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"", "Name", "Base URL", "Login", "Landing", "Transfer", "Cookie"})
			for _, target := range targets {
				marker := ""
				if target.Name == selected {
					marker = "*"
				}
				tw.AppendRow(table.Row{marker, target.Name, target.BaseURL, target.LoginPath, target.LandingPath, target.TransferPath, target.CookieName})
			}
			return writeLine(cmd, tw.Render())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}
