package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPRecorder はリクエストメトリクスの記録インターフェース。
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
}

// unmatchedRoute はどのルートにも一致しなかったリクエストのラベル。
// パスをそのままラベルにするとカーディナリティが発散するため固定値にまとめる。
const unmatchedRoute = "unmatched"

// NewMetricsMiddleware はルートパターン単位でリクエスト数とレイテンシを記録するミドルウェアを返す。
// ルートパターンはchiのルーティング完了後に確定するため、ハンドラー実行後に取得する。
func NewMetricsMiddleware(recorder HTTPRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			recorder.RecordHTTPRequest(r.Method, route, rec.statusCode, time.Since(start))
		})
	}
}
