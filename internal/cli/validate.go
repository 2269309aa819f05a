package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TeddyJubu/unified-mcp/internal/ui/tui"
	"github.com/TeddyJubu/unified-mcp/internal/usecase"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the MCP config and resolve templates (no HTTP)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateConfig(app.source, usecase.WithValidateVars(app.vars))
			rep, err := uc.Execute(cmd.Context(), app.configPath)
			if err != nil {
				return err
			}

			th := tui.DefaultTheme()
			w := cmd.OutOrStdout()

			for _, warning := range rep.Warnings {
				fmt.Fprintln(w, th.Warn.Render("warning:")+" "+warning)
			}
			for _, p := range rep.Problems {
				fmt.Fprintf(w, "%s %s: %s\n", th.Mark(false), p.Endpoint, tui.UserMessage(p.Err))
			}

			if !rep.OK() {
				return fmt.Errorf("config has %d problem(s)", len(rep.Problems))
			}

			latest := "none"
			if rep.Latest != nil {
				latest = rep.Latest.Name
			}
			fmt.Fprintf(w, "OK (%d endpoint(s), most recent: %s)\n", len(rep.Catalog.Endpoints), latest)
			return nil
		},
	}
}
