package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var unscheduledOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the term's schedule grouped by slot",
		Example: `  slate list
  slate list --unscheduled`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			courses := store.Courses()
			if len(courses) == 0 {
				fmt.Println("No courses scheduled this term.")
				return nil
			}

			bySlot := make(map[string][]*schedule.Course)
			var unscheduled []*schedule.Course
			for _, c := range courses {
				if c.SlotID == "" {
					unscheduled = append(unscheduled, c)
					continue
				}
				bySlot[c.SlotID] = append(bySlot[c.SlotID], c)
			}

			if !unscheduledOnly {
				for _, slot := range schedule.Slots() {
					group := bySlot[slot.ID]
					if len(group) == 0 {
						continue
					}
					slotHeader.Printf("%s (%s)\n", slot.Label, slot.ID)
					for _, c := range group {
						printCourse(c)
					}
					fmt.Println()
				}
			}

			if len(unscheduled) > 0 {
				warnText.Printf("Unscheduled (%d)\n", len(unscheduled))
				for _, c := range unscheduled {
					printCourse(c)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&unscheduledOnly, "unscheduled", false, "Only show courses without a slot")

	return cmd
}

func printCourse(c *schedule.Course) {
	courseText.Printf("  %-14s", c.Label())

	instructor := c.Instructor
	if instructor == "" {
		instructor = "staff TBD"
	}
	detailText.Printf(" %-20s", instructor)
	if c.Room != "" {
		detailText.Printf(" %-8s", c.Room)
	}
	if c.Bimodal {
		detailText.Print(" [bimodal]")
	}
	fmt.Println()
}
