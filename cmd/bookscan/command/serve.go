package command

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookscan/internal/httpapi"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library over a local JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		svc := newServices(cfg, logger)
		defer svc.Close()

		if cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := httpapi.NewRouter(httpapi.Deps{
			Store:    svc.store,
			Entries:  svc.entries,
			Resolver: svc.resolver,
		}, logger)

		addr := serveAddr
		if addr == "" {
			addr = fmt.Sprintf("127.0.0.1:%d", cfg.HTTPPort)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Server running at", addr)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpapi.Serve(ctx, addr, router, logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1:$HTTP_PORT)")
}
