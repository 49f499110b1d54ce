package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/schedule"
)

func (a *App) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <course-id> <slot-id|none>",
		Short: "Move a course to a slot",
		Long: `Move a course to a different time slot.

Pass "none" as the slot to park the course in the unscheduled pool. If the
target room is taken in that slot, the course moves anyway and its room
assignment is cleared; pick a new room with "slate set --room".`,
		Example: `  slate move ECON-301-1 MW-B
  slate move ECON-301-1 none`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, slotID := args[0], args[1]
			if slotID == "none" {
				slotID = ""
			}

			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			res, err := store.Move(courseID, slotID)
			if err != nil {
				return err
			}

			course := store.Course(courseID)
			if slotID == "" {
				okText.Printf("Moved %s to the unscheduled pool\n", course.Label())
			} else {
				okText.Printf("Moved %s to %s\n", course.Label(), schedule.SlotLabel(slotID))
			}
			if res.RoomCleared {
				warnText.Printf("Room %s is taken in that slot; the room assignment was cleared.\n", res.ClearedRoom)
			}
			return nil
		},
	}
}
