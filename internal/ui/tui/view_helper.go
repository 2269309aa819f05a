package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

const maxBodyLines = 20

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func prettyBody(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return "(empty)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err == nil {
		return buf.String()
	}
	return string(bytes.TrimSpace(body))
}

func renderProbe(t Theme, r domain.ProbeResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n\n", t.Badge(!r.Failed()), r.Method, r.URL)

	if r.Error != nil {
		fmt.Fprintf(&b, "Error: %s (%s)\n", r.Error.Message, r.Error.Kind)
	}
	if r.StatusCode != 0 {
		fmt.Fprintf(&b, "Status: %d %s\n", r.StatusCode, r.StatusText)
	}
	fmt.Fprintf(&b, "Latency: %dms\n", r.LatencyMS)

	if len(r.Assertions) > 0 {
		b.WriteString("\nChecks:\n")
		for _, a := range r.Assertions {
			fmt.Fprintf(&b, "  %s %s: %s\n", t.Mark(a.Passed), a.Name, a.Message)
		}
	}

	if r.StatusCode != 0 {
		b.WriteString("\nBody:\n")
		lines := strings.Split(prettyBody(r.Response.Body), "\n")
		if len(lines) > maxBodyLines {
			lines = append(lines[:maxBodyLines], "…")
		}
		for _, l := range lines {
			b.WriteString("  ")
			b.WriteString(clampString(l, 120))
			b.WriteString("\n")
		}
		if r.Response.Truncated {
			b.WriteString("  (truncated)\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
