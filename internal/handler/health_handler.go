package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/exercisetracker/internal/middleware"
)

// healthCheckTimeout はヘルスチェック時のDB疎通確認のタイムアウト。
const healthCheckTimeout = 3 * time.Second

// HealthChecker はストレージの疎通確認インターフェース。
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthHandler はヘルスチェックハンドラーを返す。
// checkerがnilの場合は常にokを返す。
// GET /health
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()

			if err := checker.Ping(ctx); err != nil {
				slog.Warn("health check failed", slog.String("error", err.Error()))
				middleware.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
				return
			}
		}

		middleware.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
