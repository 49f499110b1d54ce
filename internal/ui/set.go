package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/schedule"
)

func (a *App) setCmd() *cobra.Command {
	var (
		name       string
		instructor string
		room       string
		bimodal    bool
	)

	cmd := &cobra.Command{
		Use:   "set <course-id>",
		Short: "Edit a course's details",
		Long: `Edit a course's name, instructor, room, or bimodal flag.

Only the provided flags change. Unlike a move, a room change is refused
when the room is already occupied in the course's slot. The bimodal flag
only applies to graduate courses (numbered 500 and above).`,
		Example: `  slate set ECON-301-1 --instructor Smith
  slate set MGMT-562-1 --room RO-23 --bimodal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := schedule.Fields{}
			if cmd.Flags().Changed("name") {
				fields.Name = &name
			}
			if cmd.Flags().Changed("instructor") {
				fields.Instructor = &instructor
			}
			if cmd.Flags().Changed("room") {
				fields.Room = &room
			}
			if cmd.Flags().Changed("bimodal") {
				fields.Bimodal = &bimodal
			}
			if fields.IsZero() {
				return errors.New("nothing to change: pass at least one of --name, --instructor, --room, --bimodal")
			}

			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			if err := store.Update(args[0], fields); err != nil {
				var conflict *schedule.RoomConflictError
				if errors.As(err, &conflict) {
					return fmt.Errorf("room %s is taken in %s by %s; move that course first or pick another room",
						conflict.Room, schedule.SlotLabel(conflict.SlotID), conflict.Blocking.Label())
				}
				return err
			}

			okText.Printf("Updated %s\n", store.Course(args[0]).Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Course name")
	cmd.Flags().StringVar(&instructor, "instructor", "", "Instructor (added to the faculty roster)")
	cmd.Flags().StringVar(&room, "room", "", "Room, empty to clear")
	cmd.Flags().BoolVar(&bimodal, "bimodal", false, "Bimodal delivery (graduate courses only)")

	return cmd
}
