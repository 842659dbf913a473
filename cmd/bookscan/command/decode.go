package command

import (
	"errors"
	"fmt"
	"io"

	"bookscan/internal/barcode"
	"bookscan/internal/camera"

	"github.com/spf13/cobra"
)

var decodeNoResolve bool

var decodeCmd = &cobra.Command{
	Use:   "decode FILE|DIR...",
	Short: "Decode barcodes from saved images",
	Long: `Run the barcode locator over still images (PNG, JPEG, GIF). Directories are
read in name order. Every decoded code is looked up and recorded like a scan
unless --no-resolve is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		dec := barcode.Select(cfg.Decoder, logger)
		if !barcode.Enabled(dec) {
			return barcode.ErrNoDecoder
		}
		locator := barcode.NewLocator(dec, logger)

		src, err := camera.NewFileSource(args...)
		if err != nil {
			return err
		}
		defer src.Close()

		var svc *services
		if !decodeNoResolve {
			svc = newServices(cfg, logger)
			defer svc.Close()
		}

		out := cmd.OutOrStdout()
		found := 0
		for {
			img, err := src.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				warnColor.Fprintf(out, "Skipping %s: %v\n", src.Current(), err)
				continue
			}

			det, ok := locator.Locate(img)
			if !ok {
				warnColor.Fprintf(out, "No barcode found in %s\n", src.Current())
				continue
			}
			found++
			headingColor.Fprintf(out, "%s: %s\n", src.Current(), det.Text)
			if svc == nil {
				continue
			}

			res, err := svc.resolver.Resolve(cmd.Context(), det.Text)
			if err != nil {
				return err
			}
			printResolution(out, res)
			fmt.Fprintln(out)
		}

		if found == 0 {
			return errors.New("no barcodes found")
		}
		return nil
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeNoResolve, "no-resolve", false, "only print decoded codes")
}
