package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/exercisetracker/internal/config"
	"github.com/hitoshi/exercisetracker/internal/database"
	"github.com/hitoshi/exercisetracker/internal/exercise"
	"github.com/hitoshi/exercisetracker/internal/handler"
	"github.com/hitoshi/exercisetracker/internal/logger"
	"github.com/hitoshi/exercisetracker/internal/metrics"
	"github.com/hitoshi/exercisetracker/internal/middleware"
	"github.com/hitoshi/exercisetracker/internal/repository"
	"github.com/hitoshi/exercisetracker/internal/user"
)

// connectTimeout は起動時のDB疎通確認のタイムアウト。
const connectTimeout = 10 * time.Second

// Init はアプリケーションの初期化を行う。
// .envファイルがあれば読み込み、環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. .envファイルの読み込み（存在しない場合は環境変数のみを使用する）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}

	// 3. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 4. 設定されたログレベルで再セットアップする
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("mongo_uri", maskMongoURI(cfg.MongoURI)),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := database.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			slog.Error("failed to disconnect database", slog.String("error", err.Error()))
		}
	}()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established",
		slog.String("database", db.Database().Name()),
	)

	// 2. メトリクスの初期化
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// 3. リポジトリの初期化
	userRepo := repository.NewMongoUserRepo(db.Database())
	exerciseRepo := repository.NewMongoExerciseRepo(db.Database())

	// 4. ドメインサービスの初期化
	userService := user.NewService(userRepo, collector)
	exerciseService := exercise.NewService(userRepo, exerciseRepo, collector)

	// 5. ルーターの構築
	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		MetricsRecorder:   collector,

		HealthChecker:  db,
		MetricsHandler: metrics.Handler(registry),

		UserService:     userService,
		ExerciseService: exerciseService,
		IndexSyncers:    []handler.IndexSyncer{userService, exerciseService},
	}

	if cfg.RateLimitEnabled() {
		rl := middleware.NewRateLimiter(middleware.RateLimiterConfigPerMinute(cfg.RateLimitPerMinute))
		defer rl.Stop()
		deps.RateLimiter = rl
		slog.Info("rate limiting enabled", slog.Int("per_minute", cfg.RateLimitPerMinute))
	}

	router := handler.NewRouter(deps)

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server listen error: %w", err)
	case <-stop:
	}
	slog.Info("shutting down API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はインデックスのマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("mongo_uri", maskMongoURI(cfg.MongoURI)),
	)

	if err := database.RunMigrations(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	target := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(target)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskMongoURI は接続文字列の認証情報をマスクする。
func maskMongoURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		return "***"
	}
	if u.User != nil {
		u.User = url.User("***")
	}
	u.RawQuery = ""
	return u.String()
}
