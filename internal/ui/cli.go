// Package ui implements the command line interface. The bare command opens
// the interactive board; subcommands cover one-shot edits, exports, and
// queries against the scheduling authority.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/config"
	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	cfg   *config.Config
	root  *cobra.Command
	debug bool // Enable debug logging
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{cfg: cfg}

	a.root = &cobra.Command{
		Use:   "slate",
		Short: "A collaborative course schedule board",
		Long: `Slate is the department's course scheduling client.

Running it bare opens the interactive board, live-synced with everyone
else editing the same term. Subcommands make one-shot edits, export the
schedule, and query course history without entering the board.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(a.cfg, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.setCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.undoCmd())
	a.root.AddCommand(a.facultyCmd())
	a.root.AddCommand(a.historyCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.adviseCmd())
	a.root.AddCommand(a.shareCmd())
	a.root.AddCommand(a.backupCmd())
	a.root.AddCommand(a.restoreCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("slate %s (commit: %s)\n", Version, Commit)
		},
	}
}

// authority builds the HTTP client for one-shot commands.
func (a *App) authority() *remote.Authority {
	return remote.NewAuthority(a.cfg.Server.URL, a.logger())
}

func (a *App) logger() zerolog.Logger {
	var w io.Writer = io.Discard
	if a.debug {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
