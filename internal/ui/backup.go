package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/db"
	"github.com/nvelez/slate/internal/remote"
)

func (a *App) backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Save the term's schedule to the local cache",
		Long: `Fetch the authority's current schedule for the configured term and
save it to the local cache. "slate restore" pushes the saved copy back.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.authority().Snapshot(cmd.Context(), a.cfg.Term())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			cache, err := db.New(a.cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			if err := cache.SaveSnapshot(cmd.Context(), a.cfg.Term(), snap.Courses, snap.Faculty); err != nil {
				return err
			}

			okText.Printf("Backed up %d courses and %d faculty for %s\n",
				len(snap.Courses), len(snap.Faculty), a.cfg.Term())
			return nil
		},
	}
}

func (a *App) restoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Push the last backup to the authority",
		Long: `Replace the authority's schedule for the configured term with the
last local backup. Every connected client reloads: this is a destructive,
shared operation, so it asks for confirmation unless --yes is passed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := db.New(a.cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			savedAt, ok, err := cache.SavedAt(cmd.Context(), a.cfg.Term())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no backup found for %s: run `slate backup` first", a.cfg.Term())
			}

			courses, faculty, err := cache.LoadSnapshot(cmd.Context(), a.cfg.Term())
			if err != nil {
				return err
			}

			if !yes {
				warnText.Printf("About to replace the shared %s schedule with the backup from %s (%d courses).\n",
					a.cfg.Term(), savedAt.Format("2006-01-02 15:04"), len(courses))
				if !promptYesNo("Continue?") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			snap := &remote.Snapshot{Courses: courses, Faculty: faculty}
			if err := a.authority().Restore(cmd.Context(), a.cfg.Term(), snap); err != nil {
				return fmt.Errorf("restoring schedule: %w", err)
			}

			okText.Printf("Restored %s from the %s backup\n", a.cfg.Term(), savedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
