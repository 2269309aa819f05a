package domain

import "strings"

// MaskValue replaces sensitive values in output and persisted artifacts.
const MaskValue = "********"

// IsSensitiveHeader reports whether a header carries credentials.
func IsSensitiveHeader(name string) bool {
	k := strings.ToLower(strings.TrimSpace(name))
	switch k {
	case "authorization", "proxy-authorization", "cookie", "set-cookie", "x-api-key", "x-auth-token":
		return true
	}

	return strings.Contains(k, "token") ||
		strings.Contains(k, "secret") ||
		strings.Contains(k, "password") ||
		strings.Contains(k, "api-key") ||
		strings.Contains(k, "apikey")
}

// MaskHeaders returns a copy of h with sensitive values replaced.
func MaskHeaders(h Headers) Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		if IsSensitiveHeader(k) {
			v = MaskValue
		}
		out[k] = v
	}
	return out
}

// MaskHeaderValues is MaskHeaders for multi-valued response headers.
func MaskHeaderValues(h map[string][]string) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, vals := range h {
		cp := make([]string, len(vals))
		for i, v := range vals {
			if IsSensitiveHeader(k) {
				v = MaskValue
			}
			cp[i] = v
		}
		out[k] = cp
	}
	return out
}

// Masked returns a copy of ep with sensitive headers replaced.
func (e Endpoint) Masked() Endpoint {
	out := e
	out.Headers = MaskHeaders(e.Headers)
	return out
}
