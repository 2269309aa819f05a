package tui

import (
	"context"
	"log/slog"

	"github.com/TeddyJubu/unified-mcp/internal/ports"
	"github.com/TeddyJubu/unified-mcp/internal/usecase"
)

// Querier runs one health probe; *usecase.QueryEndpoint satisfies it.
type Querier interface {
	Execute(ctx context.Context, in usecase.QueryInput) (usecase.QueryOutcome, error)
}

type Deps struct {
	ConfigPath string
	Source     ports.EndpointSource
	Query      Querier

	Logger *slog.Logger
}
