package cli

import (
	"github.com/spf13/cobra"

	"github.com/TeddyJubu/unified-mcp/internal/infra/httpprober"
	"github.com/TeddyJubu/unified-mcp/internal/infra/logger"
	"github.com/TeddyJubu/unified-mcp/internal/ui/tui"
	"github.com/TeddyJubu/unified-mcp/internal/usecase"
)

func uiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Browse endpoints and probe them interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			timeout := httpprober.Timeout(app.settings.Probe.TimeoutMS)
			uc := usecase.NewQueryEndpoint(app.source, app.prober(timeout),
				usecase.WithVars(app.vars),
				usecase.WithStore(app.store()),
			)

			return tui.Run(tui.Deps{
				ConfigPath: app.configPath,
				Source:     app.source,
				Query:      uc,
				Logger:     logger.L(),
			})
		},
	}
}
