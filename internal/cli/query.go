package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TeddyJubu/unified-mcp/internal/infra/httpprober"
	"github.com/TeddyJubu/unified-mcp/internal/infra/logger"
	"github.com/TeddyJubu/unified-mcp/internal/ui/tui"
	"github.com/TeddyJubu/unified-mcp/internal/usecase"
)

func queryCmd(opts *rootOptions) *cobra.Command {
	var name string
	var path string
	var timeout time.Duration
	var format string
	var noSave bool

	c := &cobra.Command{
		Use:   "query",
		Short: "Check the health of the most recently updated MCP endpoint",
		Long: "Query loads the MCP config, picks an endpoint (by --name, or the one with the\n" +
			"latest last_updated) and performs a GET on its health path.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "pretty" && format != "json" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}

			app, err := loadApp(opts)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("timeout") {
				timeout = httpprober.Timeout(app.settings.Probe.TimeoutMS)
			}

			ucOpts := []usecase.QueryOption{usecase.WithVars(app.vars)}
			if !noSave {
				ucOpts = append(ucOpts, usecase.WithStore(app.store()))
			}
			uc := usecase.NewQueryEndpoint(app.source, app.prober(timeout), ucOpts...)

			out, err := uc.Execute(cmd.Context(), usecase.QueryInput{
				ConfigPath: app.configPath,
				Name:       name,
				HealthPath: path,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Selected() {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.DefaultTheme().Warn.Render("Warning:")+" No endpoint selected")
				return nil
			}

			logger.L().Info("probe.done",
				"endpoint", out.Endpoint.Name,
				"status", out.Result.StatusCode,
				"latency_ms", out.Result.LatencyMS,
				"failed", out.Result.Failed(),
			)
			if out.SaveErr != nil {
				logger.L().Warn("probe.save_failed", "error", out.SaveErr)
				fmt.Fprintln(cmd.ErrOrStderr(), tui.DefaultTheme().Warn.Render("Warning:")+" probe not saved: "+tui.UserMessage(out.SaveErr))
			}

			if err := printProbe(w, out, format); err != nil {
				return err
			}

			if out.Result.Failed() {
				return &tui.ProbeFailure{Result: out.Result}
			}
			return nil
		},
	}

	c.Flags().StringVarP(&name, "name", "n", "", "Endpoint name (default: most recently updated)")
	c.Flags().StringVarP(&path, "path", "p", "", "Health path appended to the endpoint URL (default /health)")
	c.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the probe artifact under <mcp dir>/probes")
	return c
}

func printProbe(w io.Writer, out usecase.QueryOutcome, format string) error {
	if format == "json" {
		payload := map[string]any{
			"endpoint": out.Endpoint.Masked(),
			"result":   out.Result,
			"body":     bodyValue(out.Result.Response.Body),
		}
		if out.ArtifactID != "" {
			payload["probe_id"] = out.ArtifactID
		}
		return writeIndentedJSON(w, payload)
	}

	printPrettyProbe(w, out)
	return nil
}

func printPrettyProbe(w io.Writer, out usecase.QueryOutcome) {
	th := tui.DefaultTheme()
	r := out.Result

	fmt.Fprintf(w, "%s %s\n", th.Badge(!r.Failed()), th.Title.Render(out.Endpoint.Name))
	fmt.Fprintf(w, "  url:     %s %s\n", r.Method, r.URL)

	if r.StatusCode != 0 {
		fmt.Fprintf(w, "  status:  %d %s\n", r.StatusCode, r.StatusText)
	}
	if r.Error != nil {
		fmt.Fprintf(w, "  error:   %s (%s)\n", r.Error.Message, r.Error.Kind)
	}
	fmt.Fprintf(w, "  latency: %dms\n", r.LatencyMS)

	if len(r.Assertions) > 0 {
		fmt.Fprintln(w, "  checks:")
		for _, a := range r.Assertions {
			fmt.Fprintf(w, "    %s %s: %s\n", th.Mark(a.Passed), a.Name, a.Message)
		}
	}

	if body := prettyBody(r.Response.Body); body != "" {
		fmt.Fprintln(w, "  body:")
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		if r.Response.Truncated {
			fmt.Fprintln(w, th.Help.Render("    (truncated)"))
		}
	}

	if out.ArtifactID != "" {
		fmt.Fprintln(w, th.Help.Render("  saved:   "+out.ArtifactID))
	}
}

// prettyBody indents JSON bodies and passes anything else through.
func prettyBody(b []byte) string {
	if len(bytes.TrimSpace(b)) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return strings.TrimRight(string(b), "\n")
	}
	return buf.String()
}

func bodyValue(b []byte) any {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	return string(b)
}

