package command

import (
	"strings"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup CODE",
	Short: "Look up a barcode without the camera",
	Long:  `Resolve a barcode or ISBN exactly as a scan would: catalog first, then the local library. New catalog hits are recorded.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		svc := newServices(cfg, logger)
		defer svc.Close()

		res, err := svc.resolver.Resolve(cmd.Context(), strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		printResolution(cmd.OutOrStdout(), res)
		return nil
	},
}
