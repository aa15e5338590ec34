package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/book-inventory/internal/infrastructure/config"
	"github.com/xiebiao/book-inventory/pkg/logger"
	"github.com/xiebiao/book-inventory/pkg/tracing"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 这些Provider需要从Config中提取参数,Wire无法自动推断

// provideLogger 从配置创建Logger
func provideLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	l, cleanup, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return l, cleanup, nil
}

// tracerReady 标记全局TracerProvider已初始化
type tracerReady struct{}

// provideTracer 初始化OpenTelemetry
// tracing.enabled=false时使用otel默认的no-op Provider
func provideTracer(cfg *config.Config) (tracerReady, func(), error) {
	if !cfg.Tracing.Enabled {
		return tracerReady{}, func() {}, nil
	}

	shutdown, err := tracing.InitTracer(tracing.Options{
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return tracerReady{}, nil, fmt.Errorf("初始化Tracer失败: %w", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("关闭Tracer失败")
		}
	}
	return tracerReady{}, cleanup, nil
}

// App 应用程序
type App struct {
	cfg    *config.Config
	server *http.Server
}

// newApp 创建应用程序
func newApp(cfg *config.Config, engine *gin.Engine, _ tracerReady) *App {
	return &App{
		cfg: cfg,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Run 启动HTTP服务并阻塞,收到SIGINT/SIGTERM后优雅关闭
// 关闭流程:停止接收新请求 → 等待处理中的请求完成(最多shutdown_timeout)
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.server.Addr).Str("mode", a.cfg.Server.Mode).Msg("服务启动成功")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP服务器启动失败: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("正在优雅关闭服务")
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务器强制关闭: %w", err)
	}

	log.Info().Msg("HTTP服务器已关闭")
	return nil
}
