package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// ProbeFailure reports a probe that ran but did not pass. Its Result has
// already been shown to the user.
type ProbeFailure struct {
	Result domain.ProbeResult
}

func (e *ProbeFailure) Error() string {
	if e.Result.Error != nil {
		return e.Result.Error.Message
	}
	failed := 0
	for _, a := range e.Result.Assertions {
		if !a.Passed {
			failed++
		}
	}
	return fmt.Sprintf("%d of %d health check(s) failed", failed, len(e.Result.Assertions))
}

// UserMessage turns an error into the one line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var pf *ProbeFailure
	if errors.As(err, &pf) {
		return probeMessage(pf)
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindNotFound:
			switch {
			case strings.HasPrefix(oe.Op, "mcpconfig"):
				return "Config file not found"
			case strings.HasPrefix(oe.Op, "usecase.select"):
				name := strings.TrimPrefix(oe.Err.Error(), "endpoint ")
				return "Endpoint not found: " + strings.TrimSuffix(name, ": "+domain.ErrNotFound.Error())
			case strings.HasPrefix(oe.Op, "settings"):
				return "Settings file not found"
			}
			return "Not found"

		case domain.KindMissingVar:
			if v := extractMissingVarName(err.Error()); v != "" {
				return "Missing variable " + v
			}
			return "Missing variable"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid config at " + base + " line " + line
			}
			if oe.Err != nil {
				return "Invalid config at " + base + ": " + oe.Err.Error()
			}
			return "Invalid config at " + base
		}
	}

	return err.Error()
}

func probeMessage(pf *ProbeFailure) string {
	pe := pf.Result.Error
	if pe == nil {
		return pf.Error()
	}
	switch pe.Kind {
	case domain.ProbeErrorRefused:
		return "Connection refused - check if MCP server is running"
	case domain.ProbeErrorHTTP:
		return pe.Message
	case domain.ProbeErrorTimeout, domain.ProbeErrorDNS, domain.ProbeErrorConn:
		return "No response received from server"
	}
	return pe.Message
}

func extractLine(s string) string {
	if m := reLine.FindStringSubmatch(s); len(m) == 2 {
		return m[1]
	}
	return ""
}

func extractMissingVarName(s string) string {
	const marker = "missing variable:"

	i := strings.LastIndex(strings.ToLower(s), marker)
	if i < 0 {
		return ""
	}
	fields := strings.Fields(s[i+len(marker):])
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], " .,:;\"'")
}
