package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TeddyJubu/unified-mcp/internal/usecase"
)

const probeDeadline = time.Minute

func cmdLoadCatalog(deps Deps) tea.Cmd {
	return func() tea.Msg {
		cat, err := deps.Source.LoadCatalog(deps.ConfigPath)
		return catalogLoadedMsg{cat: cat, err: err}
	}
}

func cmdProbe(deps Deps, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeDeadline)
		defer cancel()

		out, err := deps.Query.Execute(ctx, usecase.QueryInput{
			ConfigPath: deps.ConfigPath,
			Name:       name,
		})
		if deps.Logger != nil {
			if err != nil {
				deps.Logger.Error("tui.probe.failed", "endpoint", name, "error", err)
			} else if out.Selected() {
				deps.Logger.Info("tui.probe.done",
					"endpoint", out.Endpoint.Name,
					"status", out.Result.StatusCode,
					"failed", out.Result.Failed(),
				)
			}
		}
		return probeDoneMsg{out: out, err: err}
	}
}
