package mcpconfig

type jsonConfig struct {
	Endpoints []jsonEndpoint `json:"endpoints"`
	MCPs      []jsonEndpoint `json:"mcps"`
}

type jsonEndpoint struct {
	Name        string            `json:"name"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers"`
	LastUpdated any               `json:"last_updated"`
	HealthPath  string            `json:"health_path"`
	Expect      jsonExpect        `json:"expect"`
}

type jsonExpect struct {
	Status *int `json:"status"`
	MaxMS  *int `json:"max_ms"`

	JSONPath map[string]jsonJSONPathAssertion `json:"jsonpath"`
}

type jsonJSONPathAssertion struct {
	Exists   bool    `json:"exists"`
	Eq       *string `json:"eq"`
	Contains *string `json:"contains"`
	Matches  *string `json:"matches"`
}
