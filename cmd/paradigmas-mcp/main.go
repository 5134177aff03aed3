// Package main provides the paradigmas-mcp binary, an MCP server exposing the catalogue to AI agents.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/config"
	pmcp "github.com/ormasoftchile/paradigmas/pkg/mcp"
)

var version = "dev"

func main() {
	config.LoadDotEnv(".env")
	cfg, _, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cat := catalogue.Default()
	if cfg.Catalogue != "" {
		c, errs := catalogue.ValidateFile(cfg.Catalogue)
		if catalogue.HasErrors(errs) {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  %v\n", e)
			}
			fmt.Fprintln(os.Stderr, "Validation failed")
			os.Exit(1)
		}
		cat = c
	}

	s := pmcp.NewServer(version, cat)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
