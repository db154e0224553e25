package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand builds the storefront command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Local storefront cart and session client",
		Long:          "Maintains a locally persisted shopping cart, reconciles it with the backend on login, and serves a local HTTP API for a UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))

	return cmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
