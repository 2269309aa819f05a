package ports

import "github.com/TeddyJubu/unified-mcp/internal/domain"

// VarsSource provides variables for {{var}} placeholders, typically the
// process environment layered over a .env file.
type VarsSource interface {
	LoadVars() (domain.Vars, error)
}
