package command

// root.go defines the bookscan root command and its global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile     string // dotenv file read before the environment
	storePath   string // overrides BOOKS_CSV
	logLevel    string // overrides LOG_LEVEL
	decoderName string // overrides DECODER
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookscan",
	Short: "bookscan - scan book barcodes into a local library",
	Long: `bookscan reads book barcodes from a webcam or RTSP camera, looks the code up
in an online book catalog and records new books in a local CSV library.
Use it to:
- Scan a book and see its details and similar titles
- Decode barcodes from saved photos
- Add books by hand when a barcode cannot be read
- Count and list the books already recorded

Use "bookscan [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "path of the books CSV (default $BOOKS_CSV or books.csv)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&decoderName, "decoder", "", "barcode decoder: zxing, zbar, none")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apikeyCmd)
}
