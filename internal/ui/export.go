package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schedule to a file",
		Long: `Export the term's schedule.

Formats:
  json  - the full schedule snapshot
  xlsx  - the printable slot grid`,
		Example: `  slate export
  slate export --format xlsx --out fall.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "xlsx" {
				return fmt.Errorf("unknown format %q: must be json or xlsx", format)
			}

			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			path := out
			if path == "" {
				path = export.Filename(format, time.Now())
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer func() { _ = f.Close() }()

			switch format {
			case "json":
				err = export.WriteJSON(f, store.Term(), store.Courses(), store.Faculty())
			case "xlsx":
				err = export.WriteGrid(f, store.Term(), store.Courses())
			}
			if err != nil {
				return err
			}

			okText.Printf("Exported %s schedule to %s\n", store.Term(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format: json or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: timestamped name in the current directory)")

	return cmd
}
