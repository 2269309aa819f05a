package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TeddyJubu/unified-mcp/internal/infra/fsworkspace"
	"github.com/TeddyJubu/unified-mcp/internal/infra/mcpconfig"
	"github.com/TeddyJubu/unified-mcp/internal/usecase"
)

func initCmd(opts *rootOptions) *cobra.Command {
	var dir string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create the MCP directory with a sample config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			root := strings.TrimSpace(dir)
			if root == "" {
				root = mcpconfig.Dir()
			}
			root, err = filepath.Abs(root)
			if err != nil {
				return err
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer(app.settings))
			written, err := uc.Execute(root, force)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(written) == 0 {
				fmt.Fprintf(w, "%s already initialized (use --force to overwrite)\n", root)
				return nil
			}
			for _, p := range written {
				fmt.Fprintf(w, "created %s\n", p)
			}
			fmt.Fprintf(w, "\nEdit %s, then run `unified-mcp query`.\n", filepath.Join(root, "config.json"))
			return nil
		},
	}

	c.Flags().StringVar(&dir, "dir", "", "Directory to initialize (default $MCP_HOME or ~/.mcp)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return c
}
