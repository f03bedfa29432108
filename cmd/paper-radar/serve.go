// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the papers page and raw document over HTTP",
	Long: `Serve exposes the rendered card page at / and the raw JSON artifact at
/papers.json. The artifact is re-read on every request, so a scheduled
generate run updates the page without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Serve.Addr
		}

		fmt.Printf("serving %s on %s\n", artifactPath(cfg), addr)
		return http.ListenAndServe(addr, serve.Handler(artifactPath(cfg)))
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, \":8080\")")

	rootCmd.AddCommand(serveCmd)
}
