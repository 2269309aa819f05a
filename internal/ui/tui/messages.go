package tui

import (
	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/usecase"
)

type catalogLoadedMsg struct {
	cat domain.Catalog
	err error
}

type probeDoneMsg struct {
	out usecase.QueryOutcome
	err error
}
