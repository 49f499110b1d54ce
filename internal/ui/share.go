package ui

import (
	"fmt"
	"net/url"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func (a *App) shareCmd() *cobra.Command {
	var highlight string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Copy a shareable board link",
		Long: `Build a link to the web board for the configured term and copy it
to the clipboard. Use --highlight to open the board with one course
highlighted.`,
		Example: `  slate share
  slate share --highlight ECON-301-1`,
		RunE: func(_ *cobra.Command, _ []string) error {
			link, err := shareURL(a.cfg.Server.URL, a.cfg.Server.Term, highlight)
			if err != nil {
				return err
			}

			if err := clipboard.WriteAll(link); err != nil {
				// No clipboard on this terminal; the link is still usable.
				fmt.Println(link)
				return nil
			}

			okText.Printf("Copied to clipboard: %s\n", link)
			return nil
		},
	}

	cmd.Flags().StringVar(&highlight, "highlight", "", "Course id to highlight on the board")

	return cmd
}

func shareURL(base, term, highlight string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing server url: %w", err)
	}

	q := u.Query()
	q.Set("term", term)
	if highlight != "" {
		q.Set("highlight", highlight)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
