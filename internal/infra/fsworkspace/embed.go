package fsworkspace

import "embed"

//go:embed all:templates
var templatesFS embed.FS
