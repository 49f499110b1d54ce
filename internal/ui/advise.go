package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvelez/slate/internal/advisor"
	"github.com/nvelez/slate/internal/history"
)

func (a *App) adviseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advise",
		Short: "Ask the LLM advisor to review the draft schedule",
		Long: `Send the current schedule, roster, and course archive to the
configured LLM and print its review. Advice is read-only; nothing on the
board changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := advisor.NewClient(a.cfg.LLM.Provider, a.cfg.LLM.Model, a.cfg.LLM.BaseURL)
			if err != nil {
				return err
			}

			store, _, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}

			archive, err := history.Load(a.cfg.Storage.HistoryPath)
			if err != nil {
				return err
			}

			advice, err := advisor.New(client).Advise(cmd.Context(), advisor.Input{
				Term:    store.Term(),
				Year:    time.Now().Year(),
				Courses: store.Courses(),
				Faculty: store.Faculty(),
				Archive: archive,
			})
			if err != nil {
				return err
			}

			fmt.Println(advice)
			return nil
		},
	}
}
