package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/schedule"
)

func (a *App) addCmd() *cobra.Command {
	var (
		name       string
		instructor string
		room       string
		slotID     string
		bimodal    bool
	)

	cmd := &cobra.Command{
		Use:   "add <code> <number>",
		Short: "Add a new course section",
		Long: `Add a new section of a course. The section number is assigned
automatically, one past the highest existing section of the same course.`,
		Example: `  slate add ECON 301 --instructor Smith --slot MW-A --room RO-23
  slate add MGMT 562 --name "Financial & Managerial Accounting" --bimodal`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, pub, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			course, err := store.Add(schedule.AddFields{
				Code:       args[0],
				Number:     args[1],
				Name:       name,
				Instructor: instructor,
				Room:       room,
				SlotID:     slotID,
				Bimodal:    bimodal,
			})
			if err != nil {
				return err
			}

			id := course.ID
			if pub.confirmed != nil && pub.confirmed.ID != id {
				store.AdoptID(id, pub.confirmed.ID)
				id = pub.confirmed.ID
			}

			okText.Printf("Added %s (%s)\n", course.Label(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Course name")
	cmd.Flags().StringVar(&instructor, "instructor", "", "Instructor")
	cmd.Flags().StringVar(&room, "room", "", "Room")
	cmd.Flags().StringVar(&slotID, "slot", "", "Slot id (empty for the unscheduled pool)")
	cmd.Flags().BoolVar(&bimodal, "bimodal", false, "Bimodal delivery (graduate courses only)")

	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <course-id>",
		Short: "Remove a course section",
		Long: `Remove a course section from the schedule.

Removal is not undoable; the section is gone for every connected client.`,
		Example: `  slate remove ECON-301-2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			course := store.Course(args[0])
			if err := store.Remove(args[0]); err != nil {
				return err
			}

			okText.Printf("Removed %s\n", course.Label())
			return nil
		},
	}
}

func (a *App) undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last edit made on the board",
		RunE: func(_ *cobra.Command, _ []string) error {
			return fmt.Errorf("undo history lives in the board session: open the board with `slate` and press u")
		},
	}
}
