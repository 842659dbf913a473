package command

import (
	"fmt"

	"bookscan/internal/records"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the total number of recorded books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		n, err := records.NewStore(cfg.BooksCSV).Count()
		if err != nil {
			return fmt.Errorf("failed to count books: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Total books: %d\n", n)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded book titles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		titles, err := records.NewStore(cfg.BooksCSV).Titles()
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(titles) == 0 {
			fmt.Fprintln(out, "No books found.")
			return nil
		}

		headingColor.Fprintf(out, "Books in library (%d total):\n\n", len(titles))
		for i, t := range titles {
			fmt.Fprintf(out, "%3d. %s\n", i+1, t)
		}
		return nil
	},
}
