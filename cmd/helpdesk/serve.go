package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"helpdesk/internal/handler"
	"helpdesk/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP chat endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()
		gen, err := a.generator()
		if err != nil {
			a.logger.Error("startup aborted", zap.Error(err))
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		var m *metrics.Metrics
		if a.cfg.Metrics.Enabled {
			m = a.metrics
		}
		router := handler.NewRouter(handler.RouterDeps{
			Chat:        handler.NewChatHandler(a.answerService(gen)),
			Health:      handler.NewHealthHandler(a.index, gen.Name()),
			Metrics:     m,
			MetricsPath: a.cfg.Metrics.Path,
			Logger:      a.logger,
		})
		srv := &http.Server{
			Addr:         a.cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(a.cfg.Server.WriteTimeoutSecs) * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			a.logger.Info("listening", zap.String("addr", srv.Addr), zap.String("provider", gen.Name()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.Server.ShutdownTimeoutSecs)*time.Second)
			defer cancel()
			a.logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}
