// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/macro_copa/chart"
	"github.com/LilVoxy/macro_copa/config"
	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/LilVoxy/macro_copa/dataset"
	"github.com/LilVoxy/macro_copa/layout"
	"github.com/LilVoxy/macro_copa/routes"
	"github.com/LilVoxy/macro_copa/utils"
	"github.com/LilVoxy/macro_copa/websocket"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "macro_copa",
		Short:         "Дашборд макроэкономических индикаторов по странам",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Путь к YAML-файлу конфигурации")
	return cmd
}

func run(configPath string) error {
	fmt.Println("Запуск сервера...")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	logger, err := utils.NewLogger(cfg.Logging.Verbose, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("не удалось инициализировать логгер: %w", err)
	}
	defer logger.Close()

	// Данные загружаются один раз и больше не меняются
	store, err := loadStore(cfg)
	if err != nil {
		return fmt.Errorf("не удалось загрузить данные: %w", err)
	}
	logger.Info("✅ Загружено %d наблюдений из %s (пропущено без значения: %d)",
		store.Len(), store.FileName(), store.Dropped())

	app := &dashboard.App{
		Store:    store,
		Layout:   layout.Build(store, cfg.Defaults, logger),
		Renderer: chart.NewRenderer(cfg.Chart.WidthIn, cfg.Chart.HeightIn),
	}

	// Создаем менеджер WebSocket-сессий
	wsManager := websocket.NewManager(app)
	go wsManager.Run()

	scheduler, err := wsManager.StartSweeper(cfg.Sessions.SweepInterval, cfg.Sessions.InactivityTimeout)
	if err != nil {
		wsManager.Stop()
		return fmt.Errorf("не удалось запустить планировщик: %w", err)
	}

	router := mux.NewRouter()
	routes.SetupRoutes(router, app, wsManager, cfg.Server.StaticDir, logger)

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Запускаем сервер в отдельной горутине
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		log.Println("⚠️ Получен сигнал завершения, закрываем соединения...")
	case err := <-serveErr:
		runErr = fmt.Errorf("ошибка запуска сервера: %w", err)
	}

	scheduler.Stop()
	wsManager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Ошибка остановки сервера: %v", err)
	}

	log.Println("👋 Сервер остановлен")
	return runErr
}

func loadStore(cfg *config.Config) (*dataset.Store, error) {
	if cfg.Dataset.Source != config.SourceMySQL {
		return dataset.Load(cfg.Dataset.Path)
	}

	db, err := config.ConnectDatabase(cfg.Dataset.MySQL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return dataset.LoadMySQL(ctx, db, cfg.Dataset.MySQL.Table)
}
