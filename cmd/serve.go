package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/docbrowser/internal/activity"
	"github.com/ziadkadry99/docbrowser/internal/db"
	"github.com/ziadkadry99/docbrowser/internal/nav"
	"github.com/ziadkadry99/docbrowser/internal/queries"
	"github.com/ziadkadry99/docbrowser/internal/render"
	"github.com/ziadkadry99/docbrowser/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document browser web server",
	Long:  `Starts the HTTP server that renders the document list, answers search and autocomplete requests and hosts the live websocket view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()

		// Open database.
		dbPath := filepath.Join(cfg.DataDir, "docbrowser.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		renderer, err := render.New()
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		activityStore := activity.NewStore(database)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, logger)

		r := srv.Router()
		queries.New(newDocumentsClient(cfg), renderer, activityStore, logger).RegisterRoutes(r)
		activity.RegisterRoutes(r, activityStore)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, nav.BasePath, http.StatusFound)
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("docbrowser starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.String("database", dbPath),
			zap.String("backend", cfg.API.BaseURL))

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
