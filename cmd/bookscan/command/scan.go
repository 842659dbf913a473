package command

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"bookscan/internal/barcode"
	"bookscan/internal/scan"

	"github.com/spf13/cobra"
)

var (
	scanSource  string
	scanNoWin   bool
	scanNoStdin bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a book barcode with the camera",
	Long: `Open the configured camera (webcam or RTSP stream), wait for a readable
barcode, then look the book up and record it. Press 'q' in the preview window,
or type q and Enter in the terminal, to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if scanSource != "" {
			cfg.CameraSource = scanSource
		}
		device, err := cfg.CameraDevice()
		if err != nil {
			return err
		}

		dec := barcode.Select(cfg.Decoder, logger)
		if !barcode.Enabled(dec) {
			errorColor.Fprintln(cmd.ErrOrStderr(), "Barcode decoding is disabled; use 'bookscan add' to enter books by hand.")
			return barcode.ErrNoDecoder
		}

		src, display, release, err := openCamera(device, cfg.FrameWidth, cfg.FrameHeight, !scanNoWin)
		if err != nil {
			return err
		}
		defer release()

		var opts []scan.Option
		if display != nil {
			opts = append(opts, scan.WithDisplay(display))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if !scanNoStdin {
			var cancel func()
			ctx, cancel = scan.CancelOnInput(ctx, cmd.InOrStdin(), "q")
			defer cancel()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scanning with %s decoder (%v)... hold the barcode steady.\n", dec.Name(), device)

		result, err := scan.New(src, barcode.NewLocator(dec, logger), logger, opts...).Run(ctx)
		if errors.Is(err, scan.ErrCancelled) {
			warnColor.Fprintln(out, "Scan cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Barcode: %s\nFetching from the catalog...\n\n", result.Text)

		svc := newServices(cfg, logger)
		defer svc.Close()

		res, err := svc.resolver.Resolve(cmd.Context(), result.Text)
		if err != nil {
			return err
		}
		printResolution(out, res)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanSource, "source", "", "camera source: webcam or rtsp (default $CAMERA_SOURCE)")
	scanCmd.Flags().BoolVar(&scanNoWin, "no-preview", false, "do not open the preview window")
	scanCmd.Flags().BoolVar(&scanNoStdin, "no-stdin", false, "do not watch the terminal for q")
}
