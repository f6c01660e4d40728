// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを受け渡すHTTPヘッダー名。
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength はクライアント指定のリクエストIDとして受け付ける最大長。
const maxRequestIDLength = 128

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// requestIDContextKey はリクエストコンテキストにリクエストIDを格納するためのキー。
var requestIDContextKey = contextKey("request_id")

// NewRequestIDMiddleware はリクエストごとにIDを割り当てるミドルウェアを返す。
// クライアントがX-Request-IDを指定した場合はそれを引き継ぎ、なければUUIDv4を生成する。
// IDはレスポンスヘッダーとリクエストコンテキストの両方に設定する。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext はリクエストコンテキストからリクエストIDを取得する。
// 設定されていない場合は空文字を返す。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
