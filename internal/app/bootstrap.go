package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/vatcheck/config"
	"github.com/Gunvolt24/vatcheck/internal/kafka"
	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/internal/registry"
	"github.com/Gunvolt24/vatcheck/internal/registry/vies"
	"github.com/Gunvolt24/vatcheck/internal/repo/postgres"
	rest "github.com/Gunvolt24/vatcheck/internal/transport/http"
	"github.com/Gunvolt24/vatcheck/internal/usecase"
	"github.com/Gunvolt24/vatcheck/pkg/logger"
	"github.com/Gunvolt24/vatcheck/pkg/metrics"
	"github.com/Gunvolt24/vatcheck/pkg/telemetry"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

// Version — версия сборки (задаётся через -ldflags "-X .../internal/app.Version=...").
var Version = "dev"

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмер запросов; nil — Kafka отключена
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// newRegistryClient — SOAP-клиент VIES из конфигурации.
func newRegistryClient(cfg config.Registry) *vies.Client {
	return vies.NewClient(vies.Config{
		URL:            cfg.URL,
		ConnectTimeout: cfg.ConnectTimeout,
		Timeout:        cfg.Timeout,
	})
}

// newHTTPServer — http.Server с таймаутами из конфигурации.
func newHTTPServer(cfg config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Конфигурация консьюмера проверяется до подключения к БД.
	var consumerCfg *kafka.ConsumerConfig
	if cfg.Kafka.Enabled {
		consumerCfg = &kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}
		if err := consumerCfg.Validate(); err != nil {
			closeLogger()
			return nil, func() {}, err
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Миграции журнала проверок, затем пул подключений.
	if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
		closeLogger()
		return nil, func() {}, fmt.Errorf("migrate: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Version:     Version,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка зависимостей доменного слоя: формат → реестр → журнал.
	checks := postgres.NewCheckRepository(pool)
	registryValidator := registry.NewValidator(newRegistryClient(cfg.Registry), logg)
	vatService := usecase.NewVatService(
		validate.NewFormatChecker(),
		registryValidator,
		checks,
		logg,
		usecase.WithDefaultStrict(cfg.Registry.Strict),
	)
	logg.Infof(ctx, "vat registry url=%s strict=%v connect_timeout=%s timeout=%s",
		cfg.Registry.URL, cfg.Registry.Strict, cfg.Registry.ConnectTimeout, cfg.Registry.Timeout)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(vatService, logg, cfg.HTTP.HandlerTimeout, cfg.Registry.Strict)
	httpSrv := newHTTPServer(cfg.HTTP, rest.NewRouter(httpHandler, otelServiceName))

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Консьюмер запросов на проверку.
	var consumer *kafka.Consumer
	if consumerCfg != nil {
		consumer = kafka.NewConsumer(consumerCfg, vatService, logg)
		app.KafkaConsumer = consumer
	} else {
		logg.Infof(ctx, "kafka consumer disabled")
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		pool.Close()
		closeLogger()
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
// Ошибка старта HTTP-сервера возвращается вызывающему.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	// Запуск консьюмера.
	if a.KafkaConsumer != nil {
		g.Go(func() error {
			a.Logger.Infof(ctx, "kafka consumer starting")
			err := a.KafkaConsumer.Run(gctx)
			if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("kafka consumer: %w", err)
		})
	}

	// Запуск HTTP-сервера.
	g.Go(func() error {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Остановка: по сигналу (ctx) или по ошибке любого компонента (gctx).
	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
		a.shutdown(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		a.Logger.Warnf(ctx, "background error: %v", err)
	}
	a.Logger.Infof(ctx, "service stopped")
	return err
}

// shutdown — корректная остановка HTTP-сервера и консьюмера.
func (a *App) shutdown(ctx context.Context) {
	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}
}
