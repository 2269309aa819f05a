package domain

// HTTPMethod represents an HTTP method. Probes only ever issue GET.
type HTTPMethod string

const (
	MethodGet HTTPMethod = "GET"
)

// DefaultHealthPath is appended to an endpoint URL when probing it.
const DefaultHealthPath = "/health"

// Headers is a map representation of HTTP headers.
type Headers map[string]string

// JSONPathAssertion defines checks on the value found at a JSONPath
// expression in a probe response body.
type JSONPathAssertion struct {
	Exists   bool    `json:"exists,omitempty"`
	Eq       *string `json:"eq,omitempty"`
	Contains *string `json:"contains,omitempty"`
	Matches  *string `json:"matches,omitempty"`
}

// ExpectSpec describes what a healthy probe response looks like.
// A zero ExpectSpec means "any status below 400".
type ExpectSpec struct {
	Status       *int                         `json:"status,omitempty"`
	MaxLatencyMS *int                         `json:"max_ms,omitempty"`
	JSONPath     map[string]JSONPathAssertion `json:"jsonpath,omitempty"`
}

// IsZero reports whether no expectation was configured.
func (e ExpectSpec) IsZero() bool {
	return e.Status == nil && e.MaxLatencyMS == nil && len(e.JSONPath) == 0
}

// Endpoint is one MCP server entry from the user's config.
type Endpoint struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Headers Headers `json:"headers,omitempty"`

	// LastUpdated is kept exactly as written in the config. It may be empty
	// or unparseable; the selector deprioritizes such values.
	LastUpdated string `json:"last_updated,omitempty"`

	// HealthPath overrides DefaultHealthPath for this endpoint.
	HealthPath string     `json:"health_path,omitempty"`
	Expect     ExpectSpec `json:"expect,omitzero"`
}

// Marker implements Marked.
func (e Endpoint) Marker() string { return e.LastUpdated }

// ProbePath returns the path appended to URL when probing.
func (e Endpoint) ProbePath(fallback string) string {
	if e.HealthPath != "" {
		return e.HealthPath
	}
	if fallback != "" {
		return fallback
	}
	return DefaultHealthPath
}

// Catalog is the ordered set of endpoints loaded from one config file.
// Order is significant: it breaks ties in MostRecent.
type Catalog struct {
	Source    string     `json:"source"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Latest returns the most recently updated endpoint, or nil if the catalog is empty.
func (c Catalog) Latest() *Endpoint {
	return MostRecent(c.Endpoints)
}
