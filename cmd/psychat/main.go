// Command psychat serves and inspects the psychat navigation table.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/psychat-dev/psychat/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(err, "P400")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "psychat",
		Short: "Navigation server for the psychat front-end",
		Long: `psychat maps navigation paths to views.

It serves the route table over HTTP and WebSocket, and can resolve
paths or build links from the command line:

  • /                          → HomePage
  • /psychologist/:id/intro    → PsychologistIntro
  • /psychologist/:id/chat     → PsychologistChat`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		resolveCmd(),
		routesCmd(),
		hrefCmd(),
		versionCmd(),
	)

	return rootCmd
}
