package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/history"
)

func (a *App) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query and maintain the course archive",
	}

	cmd.AddCommand(a.historyShowCmd())
	cmd.AddCommand(a.historyImportCmd())

	return cmd
}

func (a *App) historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <code> <number>",
		Short:   "Show a course's past offerings",
		Example: `  slate history show ECON 301`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			archive, err := history.Load(a.cfg.Storage.HistoryPath)
			if err != nil {
				return err
			}

			rec := archive.Lookup(args[0], args[1])
			if rec == nil {
				return fmt.Errorf("no archive entry for %s %s", args[0], args[1])
			}

			slotHeader.Printf("%s %s: %s\n", rec.Code, rec.Number, rec.Name)
			if rec.Description != "" {
				fmt.Printf("\n%s\n", rec.Description)
			}
			if rec.Credits != "" {
				detailText.Printf("\nCredits: %s", rec.Credits)
			}
			if rec.Core != "" {
				detailText.Printf("  Core: %s", rec.Core)
			}
			if rec.Offered != "" {
				detailText.Printf("  Offered: %s", rec.Offered)
			}
			fmt.Println()

			if len(rec.Offerings) == 0 {
				fmt.Println("\nNo recorded offerings.")
				return nil
			}

			fmt.Println("\nPast offerings:")
			for _, off := range rec.Offerings {
				instructor := off.Instructor
				if instructor == "" {
					instructor = "unknown"
				}
				fmt.Printf("  %d %-7s sec %-3s %s\n", off.Year, off.Term, off.Section, instructor)
			}
			return nil
		},
	}
}

func (a *App) historyImportCmd() *cobra.Command {
	var infoPath, descPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build the course archive from registrar dumps",
		Long: `Parse the registrar's class info and class descriptions text dumps
into the local course archive used by "history show" and "advise".`,
		Example: `  slate history import --info "class info.txt" --descriptions "class descriptions.txt"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			f, err := os.Open(infoPath)
			if err != nil {
				return fmt.Errorf("opening class info: %w", err)
			}
			defer func() { _ = f.Close() }()

			archive, err := history.ParseClassInfo(f)
			if err != nil {
				return err
			}

			if descPath != "" {
				df, err := os.Open(descPath)
				if err != nil {
					return fmt.Errorf("opening descriptions: %w", err)
				}
				defer func() { _ = df.Close() }()

				descs, err := history.ParseDescriptions(df)
				if err != nil {
					return err
				}
				archive.Merge(descs)
			}

			if err := archive.Save(a.cfg.Storage.HistoryPath); err != nil {
				return err
			}

			okText.Printf("Archived %d courses to %s\n", len(archive), a.cfg.Storage.HistoryPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&infoPath, "info", "", "Registrar class info dump (required)")
	cmd.Flags().StringVar(&descPath, "descriptions", "", "Registrar class descriptions dump")
	_ = cmd.MarkFlagRequired("info")

	return cmd
}
