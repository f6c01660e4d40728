package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// panicMessage はpanic発生時にクライアントへ返すメッセージ。
const panicMessage = "Internal server error!"

// NewRecoveryMiddleware はpanic発生時にプロセスクラッシュを防ぎ、
// 500レスポンスを返すミドルウェアを生成する。
func NewRecoveryMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slog.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("request_id", RequestIDFromContext(r.Context())),
						slog.String("stack", string(debug.Stack())),
					)
					WriteMessage(w, http.StatusInternalServerError, panicMessage)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
