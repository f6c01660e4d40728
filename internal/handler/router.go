package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hitoshi/exercisetracker/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter // nilの場合はレート制限なし
	MetricsRecorder   middleware.HTTPRecorder // nilの場合はメトリクスを記録しない

	// 運用
	HealthChecker  HealthChecker
	MetricsHandler http.Handler // nilの場合は/metricsを公開しない

	// ユーザー
	UserService UserServiceInterface

	// エクササイズ
	ExerciseService ExerciseServiceInterface

	// ランディングページ表示後のインデックス同期対象
	IndexSyncers []IndexSyncer
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → RealIP → StripSlashes → Logging → Recovery → Metrics → CORS → RateLimit
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewRecoveryMiddleware())
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}

	pageHandler := NewPageHandler(deps.IndexSyncers...)
	userHandler := NewUserHandler(deps.UserService)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService)

	// --- 運用エンドポイント ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- ランディングページ ---
	r.Get("/", pageHandler.Index)
	r.Get("/public/*", pageHandler.Public)

	// ユーザー管理
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/delete", userHandler.DeleteUsers)

		r.Route("/{_id}", func(r chi.Router) {
			r.Post("/exercises", exerciseHandler.AddExercise)
			r.Get("/logs", exerciseHandler.GetLog)
		})
	})

	// エクササイズ管理
	r.Get("/api/exercises/delete", exerciseHandler.DeleteExercises)

	return r
}
