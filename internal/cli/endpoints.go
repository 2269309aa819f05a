package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ui/tui"
)

func endpointsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "endpoints",
		Short: "Inspect endpoints in the MCP config",
	}

	c.AddCommand(endpointsListCmd(opts), endpointsLatestCmd(opts))
	return c
}

func endpointsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List endpoints; * marks the one query would use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			cat, err := app.source.LoadCatalog(app.configPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(cat.Endpoints) == 0 {
				fmt.Fprintln(w, "(no endpoints found)")
				return nil
			}

			latest := domain.MostRecentIndex(cat.Endpoints)

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("", "NAME", "URL", "LAST UPDATED")
			for i, ep := range cat.Endpoints {
				mark := ""
				if i == latest {
					mark = "*"
				}
				updated := ep.LastUpdated
				if updated == "" {
					updated = "-"
				}
				t.Row(mark, ep.Name, ep.URL, updated)
			}

			fmt.Fprintf(w, "Config: %s\n", cat.Source)
			fmt.Fprintln(w, t.Render())
			return nil
		},
	}
}

func endpointsLatestCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "latest",
		Short: "Print the most recently updated endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			cat, err := app.source.LoadCatalog(app.configPath)
			if err != nil {
				return err
			}

			latest := cat.Latest()
			if latest == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.DefaultTheme().Warn.Render("Warning:")+" No endpoint selected")
				return nil
			}

			w := cmd.OutOrStdout()
			ep := latest.Masked()
			if asJSON {
				return writeIndentedJSON(w, ep)
			}

			fmt.Fprintf(w, "%s %s\n", tui.DefaultTheme().Title.Render(ep.Name), ep.URL)
			if ep.LastUpdated != "" {
				fmt.Fprintf(w, "  last_updated: %s\n", ep.LastUpdated)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "Print the endpoint as JSON")
	return c
}
