package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd, a := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "consolidacao",
		Short: "Consolidated municipal inventory: office validation and field route",
		Long: `consolidacao keeps one master inventory of municipal items through an
office (gabinete) validation pass and a field (campo) visit pass.

The source table is an xlsx or csv spreadsheet, or a SQLite database,
selected by the file extension of the source path.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.flags.source, "source", "", "source table path (overrides CONSOLIDACAO_SOURCE_PATH)")
	rootCmd.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newServeCommand(a),
		newCheckCommand(a),
		newRouteCommand(a),
		newConvertCommand(a),
	)

	return rootCmd, a
}
