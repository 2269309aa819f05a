package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("unified-mcp %s (commit=%s, date=%s)", Version, Commit, Date)
}

// UserAgent is sent on every probe request.
func UserAgent() string {
	return "unified-mcp/" + Version
}
