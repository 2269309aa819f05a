// Package domain contains the core model for unified-mcp: MCP endpoints, the
// recency selector that picks the freshest endpoint, probe results and errors.
//
// The domain does not depend on JSON/YAML parsing, net/http clients or the
// filesystem. Infra adapters map into and out of these types.
package domain
