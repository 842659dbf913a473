package command

import (
	"errors"
	"fmt"

	"bookscan/cmd/bookscan/credentials"

	"github.com/spf13/cobra"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the catalog API key stored in the OS keyring",
	Long:  `The key is sent with every catalog request unless CATALOG_API_KEY is set.`,
}

var apikeySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the catalog API key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			answer, err := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).ask("API key", "")
			if err != nil {
				return err
			}
			key = answer
		}

		if err := credentials.StoreAPIKey(key); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
		successColor.Fprintln(cmd.OutOrStdout(), "✓ API key stored.")
		return nil
	},
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored catalog API key (masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := credentials.GetAPIKey()
		if errors.Is(err, credentials.ErrNoAPIKey) {
			fmt.Fprintln(cmd.OutOrStdout(), "No API key stored.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\n", credentials.Mask(key))
		return nil
	},
}

var apikeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored catalog API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := credentials.DeleteAPIKey()
		if err != nil && !errors.Is(err, credentials.ErrNoAPIKey) {
			return fmt.Errorf("failed to remove API key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
		return nil
	},
}

func init() {
	apikeyCmd.AddCommand(apikeySetCmd)
	apikeyCmd.AddCommand(apikeyShowCmd)
	apikeyCmd.AddCommand(apikeyClearCmd)
}
