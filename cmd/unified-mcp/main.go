package main

import "github.com/TeddyJubu/unified-mcp/internal/cli"

func main() {
	cli.Execute()
}
