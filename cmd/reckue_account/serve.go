package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dao "reckue_account/internal/dao/mysql"
	"reckue_account/internal/handler"
	"reckue_account/internal/https_server"
	"reckue_account/internal/service"
	"reckue_account/internal/service/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCmd 启动 HTTP 服务
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := openDeps(ctx, conf)
	if err != nil {
		zap.L().Error("init dependencies failed", zap.Error(err))
		return err
	}
	defer d.Close()

	if err := handler.InitTrans("en"); err != nil {
		return fmt.Errorf("init validator translator: %w", err)
	}

	manager := newJWTManager(conf)
	tokens := d.tokenStore()
	svc := service.NewServices(d.repositories(), tokens, manager,
		health.Check{Name: "mysql", Ping: func(ctx context.Context) error { return dao.Ping(ctx, d.db) }},
		health.Check{Name: "redis", Ping: tokens.Ping},
	)

	engine := https_server.NewEngine(conf, handler.NewHandlers(svc), manager)
	srv := https_server.NewServer(conf, engine)

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.String("addr", srv.Addr), zap.String("mode", conf.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zap.L().Error("http server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(conf.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	zap.L().Info("http server stopped")
	return nil
}
