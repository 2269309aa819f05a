package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/TeddyJubu/unified-mcp/internal/infra/catalogwatch"
	"github.com/TeddyJubu/unified-mcp/internal/infra/logger"
	"github.com/TeddyJubu/unified-mcp/internal/server"
	"github.com/TeddyJubu/unified-mcp/internal/ui/tui"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	var host string
	var port int
	var watch bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP status server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			s := app.settings
			if cmd.Flags().Changed("host") {
				s.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				s.Server.Port = port
			}

			log := logger.L()

			catalog := catalogwatch.New(app.configPath, app.source, catalogwatch.WithLogger(log))
			if err := catalog.Reload(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if watch {
				go func() {
					if err := catalog.Watch(ctx); err != nil {
						log.Warn("catalog.watch_stopped", "error", err)
					}
				}()
			}

			srv := server.New(s, catalog, server.WithLogger(log))

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			fmt.Fprintf(cmd.OutOrStdout(), "%s listening on http://%s (config: %s, %d endpoint(s))\n",
				tui.DefaultTheme().OK.Render("unified-mcp"), displayAddr(s.Server.Host, s.Server.Port),
				app.configPath, len(catalog.Current().Endpoints))

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				log.Info("server.shutdown")
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	c.Flags().StringVar(&host, "host", "", "Listen host (default: all interfaces)")
	c.Flags().IntVar(&port, "port", 3000, "Listen port (default from settings or $PORT)")
	c.Flags().BoolVar(&watch, "watch", false, "Reload the MCP config when it changes")
	return c
}

func displayAddr(host string, port int) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", host, port)
}
