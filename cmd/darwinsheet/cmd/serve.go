package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/umeldt/darwinsheet/internal/logging"
	"github.com/umeldt/darwinsheet/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the checker over HTTP.",
	Long: `The serve command starts an HTTP server. POST a sample log to /api/check
(optionally with ?setup=name) to get the report as JSON. /api/fields and
/api/setups list the catalogue and the setups, /metrics serves Prometheus metrics.`,
	Run: cliCmdServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Address to listen on (default :8080)")
	bindFlags(serveCmd.Flags(), map[string]string{"listen": "listen"})
}

func cliCmdServe(cmd *cobra.Command, args []string) {
	settings, cat, err := loadCatalogue()
	if err != nil {
		printErrors("Loading the field catalogue failed", err)
		exit(exitError)
	}

	if _, err := settings.Setups.Get(settings.Setup); err != nil {
		fmt.Fprintln(stderr, err)
		exit(exitError)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := server.New(server.Options{
		Catalogue:    cat,
		Setups:       settings.Setups,
		DefaultSetup: settings.Setup,
		HeaderRow:    settings.HeaderRow,
		Log:          logging.Log,
		Registry:     reg,
	})
	if err := s.Start(settings.Listen); err != nil {
		printErrors("Server stopped", err)
		exit(exitError)
	}
}
