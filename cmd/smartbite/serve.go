package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vbonduro/smartbite/internal/db"
	"github.com/vbonduro/smartbite/internal/logging"
	"github.com/vbonduro/smartbite/internal/photostore/local"
	"github.com/vbonduro/smartbite/internal/store"
	"github.com/vbonduro/smartbite/internal/web"
	"github.com/vbonduro/smartbite/internal/web/templates"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web chat",
		Long: `Starts the SmartBite web chat. Each browser tab is a chat session with
its own shopping cart; transcripts are kept in the sqlite database.`,
		Example: `  # Start on LISTEN_ADDR (default :8080)
  smartbite serve

  # Start on a custom address
  smartbite serve --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer cleanup()

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				logger.Error("failed to open database", "error", err)
				return err
			}
			defer func() {
				if err := database.Close(); err != nil {
					logger.Error("failed to close database", "error", err)
				}
			}()

			uploads, err := local.NewLocalPhotoStore(cfg.UploadPath)
			if err != nil {
				logger.Error("failed to initialize upload store", "error", err)
				return err
			}

			ctx := cmd.Context()
			assistant, shutdownTelemetry, err := newAssistant(ctx, cfg, uploads, logger)
			if err != nil {
				logger.Error("failed to initialize assistant", "error", err)
				return err
			}
			defer shutdownTelemetry()

			server := web.NewServer(
				assistant,
				store.NewSessionStore(database),
				store.NewMessageStore(database),
				templates.FS,
				uploads,
				logger,
				web.WithPongWait(cfg.WSPongWait),
			)

			if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", "error", err)
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "address to listen on (overrides LISTEN_ADDR)")

	return cmd
}
