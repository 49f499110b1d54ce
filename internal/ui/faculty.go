package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) facultyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faculty",
		Short: "Manage the faculty roster",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the faculty roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			roster := store.Faculty()
			if len(roster) == 0 {
				fmt.Println("The faculty roster is empty.")
				return nil
			}
			for _, name := range roster {
				fmt.Println(name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a name to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			added, err := store.AddFaculty(args[0])
			if err != nil {
				return err
			}
			if !added {
				fmt.Printf("%s is already on the roster.\n", args[0])
				return nil
			}
			okText.Printf("Added %s to the roster\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a name from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			removed, err := store.RemoveFaculty(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("%s is not on the roster.\n", args[0])
				return nil
			}
			okText.Printf("Removed %s from the roster\n", args[0])
			return nil
		},
	})

	return cmd
}
