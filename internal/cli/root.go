package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TeddyJubu/unified-mcp/internal/infra/logger"
	"github.com/TeddyJubu/unified-mcp/internal/infra/mcpconfig"
	"github.com/TeddyJubu/unified-mcp/internal/ui/tui"
)

type rootOptions struct {
	debug        bool
	configPath   string
	settingsPath string

	cleanup func() error
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if opts.cleanup != nil {
		_ = opts.cleanup()
	}
	if err != nil {
		logger.L().Error("command.failed", "error", err)
		fmt.Fprintln(stderr, tui.DefaultTheme().Fail.Render("Error:")+" "+tui.UserMessage(err))
		return 1
	}
	return 0
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "unified-mcp",
		Short:         "Status server and health checks for MCP endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cleanup, err := logger.Setup(logger.Config{
				Root:  mcpconfig.Dir(),
				Debug: opts.debug,
			})
			if err == nil {
				opts.cleanup = cleanup
			}
			logger.L().Debug("command.start", "cmd", cmd.CommandPath())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to <mcp dir>/logs/"+logger.FileName)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "MCP config file (default $MCP_CONFIG or ~/.mcp/config.json)")
	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "settings file (default: nearest unified-mcp.yaml)")

	cmd.AddCommand(
		serveCmd(opts),
		queryCmd(opts),
		endpointsCmd(opts),
		validateCmd(opts),
		initCmd(opts),
		uiCmd(opts),
		versionCmd(),
	)
	return cmd
}
