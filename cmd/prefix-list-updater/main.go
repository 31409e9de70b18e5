package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/adapters/ipresolver"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/app"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/config"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/logger"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/metrics"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/storage/ec2pl"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/version"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "", "Path to configuration file (optional, ENV is enough)")
}

func main() {
	flag.Parse()

	if flag.Arg(0) == "version" {
		version.PrintVersion()
		return
	}

	// .env — для локального запуска; отсутствие файла не ошибка
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Запуск основного приложения
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "prefix-list-updater exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	var logg *logger.Logger

	// --------- Инициализация логгера ---------
	if cfg.Logger.File != "" {
		// Инициализация логгера с выводом в файл
		f, err := os.OpenFile(cfg.Logger.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			// логер не инициализирован, пишем в stderr
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logg = logger.NewWithWriter(f, &cfg.Logger)
		defer f.Close()
	} else {
		// Инициализация логгера с выводом в stdout
		logg = logger.New(&cfg.Logger)
		logg.Info("Logger initialized", "level", cfg.Logger.Level)
	}

	// Контекст процесса с сигналами ОС
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --------- Инициализация коллабораторов ---------
	// Любая ошибка здесь (креды, конфиг SDK) фатальна — до первого цикла.
	repo, err := ec2pl.New(rootCtx, cfg.AWS.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize EC2 prefix list client: %w", err)
	}

	resolver := ipresolver.New(cfg.IPService.URL, cfg.IPService.Timeout)

	// --------- Инициализация сервисов ---------
	monitor := app.NewMonitorService(resolver, repo, &cfg.Monitor)
	scheduler := app.NewScheduler(monitor, logg, &cfg.Monitor)

	logg.Info("starting prefix list updater",
		"prefix_list_id", cfg.Monitor.PrefixListID,
		"entry_description", cfg.Monitor.EntryDescription,
		"check_interval", cfg.Monitor.CheckInterval.String(),
		"ip_service", cfg.IPService.URL,
		"once", cfg.Monitor.Once,
	)

	// -------- Запуск scheduler'а и метрик в горутинах --------
	// Используем errgroup для управления горутинами и обработки ошибок
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	// HTTP-эндпоинт метрик поднимаем только в continuous-режиме
	if cfg.Metrics.Enabled && !cfg.Monitor.Once {
		if err := metrics.Register(nil); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			logg.Info("metrics endpoint listening", "address", cfg.Metrics.Address)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		// Горутина, которая слушает ctx.Done и гасит HTTP-сервер метрик
		g.Go(func() error {
			<-ctx.Done()

			logg.Info("shutting down metrics endpoint...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// Ждём завершения горутин
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error("error from goroutines", "error", err)
		return err
	}

	logg.Info("application stopped gracefully")
	return nil
}
