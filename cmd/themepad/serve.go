package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepad/internal/config"
	"github.com/jmylchreest/themepad/internal/web"
)

var serveOpts struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web theme switcher",
	Long: `Serve a page with the theme switcher and the applied stylesheet.

Endpoints:
  GET  /             switcher page
  GET  /theme.css    applied :root stylesheet
  POST /apply        apply and remember (form field "theme")
  POST /preview      apply without remembering
  GET  /api/themes   theme index as JSON
  GET  /api/current  applied theme as JSON

The saved theme is restored on start.

Cross-origin POSTs are rejected unless the origin is listed in
[server] allowed_origins (empty by default, same-origin only).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOpts.addr, "addr", "",
		"Listen address (default from config, "+config.DefaultAddr+")")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveOpts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx := cmd.Context()
	app.loader.RestoreSaved(ctx)

	srv := web.New(web.Config{
		Loader:         app.loader,
		Styles:         app.scope,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})
	return srv.Serve(ctx, addr)
}
